package service

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"flashcards/internal/domain"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// QuizService issues two-option questions from the user's vocabulary
// and grades the answers. Sessions live in memory only.
type QuizService struct {
	vocab  *VocabularyService
	logger *zap.Logger

	intn  func(n int) int
	now   func() time.Time
	newID func() string

	sessions map[string]*domain.Session
	mu       sync.Mutex
}

// NewQuizService creates a new quiz service
func NewQuizService(vocab *VocabularyService, logger *zap.Logger) *QuizService {
	return &QuizService{
		vocab:    vocab,
		logger:   logger,
		intn:     rand.IntN,
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: make(map[string]*domain.Session),
	}
}

// StartQuiz builds a new question for the user and replaces any pending one
func (s *QuizService) StartQuiz(userID string) (*domain.Question, error) {
	vocab, err := s.vocab.Vocabulary(userID)
	if err != nil {
		return nil, fmt.Errorf("start quiz: %w", err)
	}

	if len(vocab) < domain.MinQuizWords {
		return nil, domain.ErrNotEnoughWords
	}

	// Map iteration order is random, sort so the draw only depends on intn
	words := lo.Keys(vocab)
	sort.Strings(words)

	word := words[s.intn(len(words))]
	correct := vocab[word]

	distractors := lo.FilterMap(words, func(w string, _ int) (string, bool) {
		return vocab[w], vocab[w] != correct
	})
	wrong := domain.PlaceholderTranslation
	if len(distractors) > 0 {
		wrong = distractors[s.intn(len(distractors))]
	}

	correctIndex := s.intn(2)
	var options [2]string
	options[correctIndex] = correct
	options[1-correctIndex] = wrong

	session := &domain.Session{
		ID:           s.newID(),
		UserID:       userID,
		Word:         word,
		Options:      options,
		CorrectIndex: correctIndex,
		CreatedAt:    s.now(),
	}

	s.mu.Lock()
	_, replaced := s.sessions[userID]
	s.sessions[userID] = session
	s.mu.Unlock()

	s.logger.Debug("Quiz started",
		zap.String("user_id", userID),
		zap.String("session_id", session.ID),
		zap.Int("vocabulary_size", len(vocab)),
		zap.Bool("replaced_pending", replaced),
	)

	return session.Question(), nil
}

// GradeAnswer checks the selected option against the user's live session.
// The session is consumed on a successful grade. A missing, expired or
// already graded session, or a sessionID from an older question, gives
// ErrNoActiveQuestion.
func (s *QuizService) GradeAnswer(userID, sessionID string, index int) (domain.GradeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok || session.ID != sessionID {
		return domain.GradeResult{}, domain.ErrNoActiveQuestion
	}

	if index < 0 || index >= len(session.Options) {
		return domain.GradeResult{}, domain.ErrInvalidOption
	}

	delete(s.sessions, userID)

	return domain.GradeResult{
		Correct:            index == session.CorrectIndex,
		Word:               session.Word,
		CorrectTranslation: session.Options[session.CorrectIndex],
	}, nil
}

// PendingSession returns the user's live session, if any
func (s *QuizService) PendingSession(userID string) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return domain.Session{}, false
	}
	return *session, true
}

// ExpireSessions drops sessions created more than maxAge ago and
// returns how many were removed
func (s *QuizService) ExpireSessions(maxAge time.Duration) int {
	cutoff := s.now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, session := range s.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(s.sessions, userID)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info("Expired quiz sessions",
			zap.Int("removed", removed),
			zap.Duration("max_age", maxAge),
		)
	}

	return removed
}
