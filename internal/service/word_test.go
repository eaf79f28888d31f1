package service

import (
	"fmt"
	"testing"

	"flashcards/internal/domain"
	"flashcards/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name                string
		line                string
		expectedWord        string
		expectedTranslation string
		expectedOK          bool
	}{
		{
			name:                "hyphen with spaces",
			line:                "dog - собака",
			expectedWord:        "dog",
			expectedTranslation: "собака",
			expectedOK:          true,
		},
		{
			name:                "en dash",
			line:                "cat – кот",
			expectedWord:        "cat",
			expectedTranslation: "кот",
			expectedOK:          true,
		},
		{
			name:                "em dash",
			line:                "house — дом",
			expectedWord:        "house",
			expectedTranslation: "дом",
			expectedOK:          true,
		},
		{
			name:                "en dash without spaces",
			line:                "cat–кот",
			expectedWord:        "cat",
			expectedTranslation: "кот",
			expectedOK:          true,
		},
		{
			name:                "em dash without spaces",
			line:                "house—дом",
			expectedWord:        "house",
			expectedTranslation: "дом",
			expectedOK:          true,
		},
		{
			name:                "surrounding whitespace",
			line:                "  word  -  translation  ",
			expectedWord:        "word",
			expectedTranslation: "translation",
			expectedOK:          true,
		},
		{
			name:                "tabs around separator",
			line:                "word\t-\ttranslation",
			expectedWord:        "word",
			expectedTranslation: "translation",
			expectedOK:          true,
		},
		{
			name:                "hyphen with space on the left only",
			line:                "dog -собака",
			expectedWord:        "dog",
			expectedTranslation: "собака",
			expectedOK:          true,
		},
		{
			name:                "hyphen with space on the right only",
			line:                "dog- собака",
			expectedWord:        "dog",
			expectedTranslation: "собака",
			expectedOK:          true,
		},
		{
			name:                "splits on first separator only",
			line:                "a - b - c",
			expectedWord:        "a",
			expectedTranslation: "b - c",
			expectedOK:          true,
		},
		{
			name:                "hyphenated word",
			line:                "e-mail - электронная почта",
			expectedWord:        "e-mail",
			expectedTranslation: "электронная почта",
			expectedOK:          true,
		},
		{
			name:                "translation contains em dash",
			line:                "x — y — z",
			expectedWord:        "x",
			expectedTranslation: "y — z",
			expectedOK:          true,
		},
		{
			name:       "bare hyphen inside a word",
			line:       "not-a-pair",
			expectedOK: false,
		},
		{
			name:       "no separator",
			line:       "just words",
			expectedOK: false,
		},
		{
			name:       "empty line",
			line:       "",
			expectedOK: false,
		},
		{
			name:       "empty word",
			line:       " - собака",
			expectedOK: false,
		},
		{
			name:       "empty translation",
			line:       "dog - ",
			expectedOK: false,
		},
		{
			name:       "only separator",
			line:       "—",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, translation, ok := ParseLine(tt.line)

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedWord, word)
			assert.Equal(t, tt.expectedTranslation, translation)
		})
	}
}

func TestVocabularyService_AddEntries(t *testing.T) {
	tests := []struct {
		name            string
		initial         domain.Document
		lines           []string
		expectedAdded   int
		expectedSkipped int
		expectedVocab   domain.Vocabulary
	}{
		{
			name:            "mixed input",
			lines:           []string{"dog - собака", "cat – кот", "not-a-pair"},
			expectedAdded:   2,
			expectedSkipped: 1,
			expectedVocab:   domain.Vocabulary{"dog": "собака", "cat": "кот"},
		},
		{
			name:            "empty line list",
			lines:           []string{},
			expectedAdded:   0,
			expectedSkipped: 0,
			expectedVocab:   domain.Vocabulary{},
		},
		{
			name:            "all malformed",
			lines:           []string{"", "nothing here", "dog -"},
			expectedAdded:   0,
			expectedSkipped: 3,
			expectedVocab:   domain.Vocabulary{},
		},
		{
			name:            "overwrite existing word",
			initial:         testutil.NewTestDocument("123", domain.Vocabulary{"dog": "пёс", "cat": "кот"}),
			lines:           []string{"dog - собака"},
			expectedAdded:   1,
			expectedSkipped: 0,
			expectedVocab:   domain.Vocabulary{"dog": "собака", "cat": "кот"},
		},
		{
			name:            "duplicate word in one batch keeps last",
			lines:           []string{"dog - пёс", "dog - собака"},
			expectedAdded:   2,
			expectedSkipped: 0,
			expectedVocab:   domain.Vocabulary{"dog": "собака"},
		},
		{
			name:            "case sensitive words",
			lines:           []string{"Dog - Собака", "dog - собака"},
			expectedAdded:   2,
			expectedSkipped: 0,
			expectedVocab:   domain.Vocabulary{"Dog": "Собака", "dog": "собака"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMemoryDocumentRepository(tt.initial)
			service := NewVocabularyService(repo, testutil.NewTestLogger())

			added, skipped, err := service.AddEntries("123", tt.lines)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedAdded, added)
			assert.Equal(t, tt.expectedSkipped, skipped)
			assert.Equal(t, tt.expectedVocab, repo.Doc["123"])
			assert.Equal(t, 1, repo.Saves)
		})
	}
}

func TestVocabularyService_AddEntries_KeepsOtherUsers(t *testing.T) {
	repo := testutil.NewMemoryDocumentRepository(domain.Document{
		"456": {"Haus": "дом"},
	})
	service := NewVocabularyService(repo, testutil.NewTestLogger())

	_, _, err := service.AddEntries("123", []string{"dog - собака"})

	require.NoError(t, err)
	assert.Equal(t, domain.Vocabulary{"Haus": "дом"}, repo.Doc["456"])
	assert.Equal(t, domain.Vocabulary{"dog": "собака"}, repo.Doc["123"])
}

func TestVocabularyService_AddEntries_Errors(t *testing.T) {
	tests := []struct {
		name      string
		loadError error
		saveError error
	}{
		{
			name:      "load error",
			loadError: fmt.Errorf("permission denied"),
		},
		{
			name:      "save error",
			saveError: fmt.Errorf("disk full"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockDocumentRepository)
			if tt.loadError != nil {
				mockRepo.On("Load").Return(nil, tt.loadError)
			} else {
				mockRepo.On("Load").Return(domain.Document{}, nil)
				mockRepo.On("Save", mock.Anything).Return(tt.saveError)
			}

			service := NewVocabularyService(mockRepo, testutil.NewTestLogger())

			added, skipped, err := service.AddEntries("123", []string{"dog - собака"})

			assert.Error(t, err)
			assert.Zero(t, added)
			assert.Zero(t, skipped)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestVocabularyService_AddEntries_SavesOnce(t *testing.T) {
	mockRepo := new(testutil.MockDocumentRepository)
	mockRepo.On("Load").Return(domain.Document{}, nil).Once()
	mockRepo.On("Save", domain.Document{"123": {"dog": "собака", "cat": "кот"}}).Return(nil).Once()

	service := NewVocabularyService(mockRepo, testutil.NewTestLogger())

	added, skipped, err := service.AddEntries("123", []string{"dog - собака", "cat - кот"})

	assert.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, skipped)
	mockRepo.AssertExpectations(t)
}

func TestVocabularyService_Vocabulary(t *testing.T) {
	repo := testutil.NewMemoryDocumentRepository(
		testutil.NewTestDocument("123", domain.Vocabulary{"dog": "собака"}),
	)
	service := NewVocabularyService(repo, testutil.NewTestLogger())

	vocab, err := service.Vocabulary("123")
	require.NoError(t, err)
	assert.Equal(t, domain.Vocabulary{"dog": "собака"}, vocab)

	// Returned map is a copy
	vocab["cat"] = "кот"
	assert.Len(t, repo.Doc["123"], 1)

	unknown, err := service.Vocabulary("999")
	require.NoError(t, err)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestVocabularyService_Count(t *testing.T) {
	tests := []struct {
		name          string
		mockDoc       domain.Document
		mockError     error
		expectedCount int
		expectedError bool
	}{
		{
			name:          "user with words",
			mockDoc:       testutil.NewTestDocument("123", domain.Vocabulary{"dog": "собака", "cat": "кот"}),
			expectedCount: 2,
		},
		{
			name:          "unknown user",
			mockDoc:       domain.Document{},
			expectedCount: 0,
		},
		{
			name:          "storage error",
			mockError:     fmt.Errorf("io error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockDocumentRepository)
			if tt.mockError != nil {
				mockRepo.On("Load").Return(nil, tt.mockError)
			} else {
				mockRepo.On("Load").Return(tt.mockDoc, nil)
			}

			service := NewVocabularyService(mockRepo, testutil.NewTestLogger())

			count, err := service.Count("123")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, count)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestVocabularyService_ListPairs(t *testing.T) {
	repo := testutil.NewMemoryDocumentRepository(
		testutil.NewTestDocument("123", domain.Vocabulary{"dog": "собака", "cat": "кот", "bird": "птица"}),
	)
	service := NewVocabularyService(repo, testutil.NewTestLogger())

	pairs, err := service.ListPairs("123")

	require.NoError(t, err)
	assert.Equal(t, []domain.WordPair{
		{Word: "bird", Translation: "птица"},
		{Word: "cat", Translation: "кот"},
		{Word: "dog", Translation: "собака"},
	}, pairs)
}
