package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"flashcards/internal/domain"
	"flashcards/internal/repository"

	"go.uber.org/zap"
)

// separatorRx matches an en or em dash with optional spaces around it, or a
// hyphen with a space on at least one side. A bare hyphen inside a word
// ("well-known") is not a separator.
var separatorRx = regexp.MustCompile(`\s*[–—]\s*|\s+-\s*|-\s+`)

// ParseLine splits "word - translation" on the first dash.
// ok is false if there is no dash or either side is empty after trimming.
func ParseLine(line string) (word, translation string, ok bool) {
	parts := separatorRx.Split(line, 2)
	if len(parts) != 2 {
		return "", "", false
	}

	word = strings.TrimSpace(parts[0])
	translation = strings.TrimSpace(parts[1])
	if word == "" || translation == "" {
		return "", "", false
	}

	return word, translation, true
}

// VocabularyService handles word-related business logic
type VocabularyService struct {
	docRepo repository.DocumentRepository
	logger  *zap.Logger

	// Serializes load-modify-save cycles on the document
	mu sync.Mutex
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(docRepo repository.DocumentRepository, logger *zap.Logger) *VocabularyService {
	return &VocabularyService{
		docRepo: docRepo,
		logger:  logger,
	}
}

// AddEntries parses lines and upserts every valid pair into the user's
// vocabulary. The document is saved once, even when nothing was added.
// Malformed lines are counted in skipped and never returned as errors.
func (s *VocabularyService) AddEntries(userID string, lines []string) (added, skipped int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.docRepo.Load()
	if err != nil {
		return 0, 0, fmt.Errorf("load vocabulary: %w", err)
	}

	vocab := doc[userID]
	if vocab == nil {
		vocab = domain.Vocabulary{}
	}

	for _, line := range lines {
		word, translation, ok := ParseLine(line)
		if !ok {
			skipped++
			continue
		}
		vocab[word] = translation
		added++
	}

	doc[userID] = vocab
	if err := s.docRepo.Save(doc); err != nil {
		return 0, 0, fmt.Errorf("save vocabulary: %w", err)
	}

	s.logger.Debug("Vocabulary updated",
		zap.String("user_id", userID),
		zap.Int("added", added),
		zap.Int("skipped", skipped),
		zap.Int("total", len(vocab)),
	)

	return added, skipped, nil
}

// Vocabulary returns a copy of the user's vocabulary, empty if the user is unknown
func (s *VocabularyService) Vocabulary(userID string) (domain.Vocabulary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.docRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	return doc[userID].Clone(), nil
}

// Count returns the number of words the user has saved
func (s *VocabularyService) Count(userID string) (int, error) {
	vocab, err := s.Vocabulary(userID)
	if err != nil {
		return 0, err
	}
	return len(vocab), nil
}

// ListPairs returns the user's vocabulary sorted by word
func (s *VocabularyService) ListPairs(userID string) ([]domain.WordPair, error) {
	vocab, err := s.Vocabulary(userID)
	if err != nil {
		return nil, err
	}

	pairs := make([]domain.WordPair, 0, len(vocab))
	for word, translation := range vocab {
		pairs = append(pairs, domain.WordPair{Word: word, Translation: translation})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Word < pairs[j].Word
	})

	return pairs, nil
}
