package testutil

import (
	"flashcards/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockDocumentRepository is a mock for DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Load() (domain.Document, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) Save(doc domain.Document) error {
	args := m.Called(doc)
	return args.Error(0)
}

// MemoryDocumentRepository keeps the document in memory.
// Saved documents are deep-copied so callers can't mutate stored state.
type MemoryDocumentRepository struct {
	Doc   domain.Document
	Saves int
}

// NewMemoryDocumentRepository creates a repository seeded with doc
func NewMemoryDocumentRepository(doc domain.Document) *MemoryDocumentRepository {
	return &MemoryDocumentRepository{Doc: CloneDocument(doc)}
}

func (m *MemoryDocumentRepository) Load() (domain.Document, error) {
	return CloneDocument(m.Doc), nil
}

func (m *MemoryDocumentRepository) Save(doc domain.Document) error {
	m.Doc = CloneDocument(doc)
	m.Saves++
	return nil
}
