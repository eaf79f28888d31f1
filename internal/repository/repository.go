package repository

import (
	"flashcards/internal/domain"
)

// DocumentRepository loads and stores the whole vocabulary document.
// Load must return an empty document, not an error, when nothing was saved yet.
type DocumentRepository interface {
	Load() (domain.Document, error)
	Save(doc domain.Document) error
}
