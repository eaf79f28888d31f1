package domain

import (
	"errors"
	"time"
)

// PlaceholderTranslation is offered as the wrong option when every entry
// in the vocabulary has the same translation.
const PlaceholderTranslation = "(другой перевод)"

// MinQuizWords is the smallest vocabulary a quiz can be built from
const MinQuizWords = 2

var (
	// ErrNotEnoughWords is returned when the user has fewer than MinQuizWords entries
	ErrNotEnoughWords = errors.New("not enough words for a quiz")
	// ErrNoActiveQuestion is returned when an answer doesn't match a live session
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrInvalidOption is returned for an answer index outside the presented options
	ErrInvalidOption = errors.New("invalid option index")
)

// Session holds one issued, not yet graded question
type Session struct {
	ID           string
	UserID       string
	Word         string
	Options      [2]string
	CorrectIndex int
	CreatedAt    time.Time
}

// Question returns the renderable part of the session
func (s *Session) Question() *Question {
	return &Question{
		SessionID: s.ID,
		Word:      s.Word,
		Options:   s.Options,
	}
}

// Question is what gets shown to the user
type Question struct {
	SessionID string
	Word      string
	Options   [2]string
}

// GradeResult is the outcome of answering a question
type GradeResult struct {
	Correct            bool
	Word               string
	CorrectTranslation string
}
