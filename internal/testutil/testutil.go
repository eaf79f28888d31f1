package testutil

import (
	"flashcards/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestDocument creates a document with a single user's vocabulary
func NewTestDocument(userID string, vocab domain.Vocabulary) domain.Document {
	return domain.Document{userID: vocab.Clone()}
}

// CloneDocument deep-copies doc. A nil document becomes an empty one.
func CloneDocument(doc domain.Document) domain.Document {
	out := make(domain.Document, len(doc))
	for userID, vocab := range doc {
		out[userID] = vocab.Clone()
	}
	return out
}

// SequenceIntn returns an intn func that replays values in order,
// each taken modulo n. It panics when values run out.
func SequenceIntn(values ...int) func(n int) int {
	i := 0
	return func(n int) int {
		if i >= len(values) {
			panic("testutil: SequenceIntn exhausted")
		}
		v := values[i] % n
		i++
		return v
	}
}
