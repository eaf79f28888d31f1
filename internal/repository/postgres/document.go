package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"flashcards/internal/domain"
)

// DocumentRepo implements repository.DocumentRepository.
// The whole document lives in a single JSONB row keyed by name.
type DocumentRepo struct {
	db   *sql.DB
	name string
}

// NewDocumentRepo creates a new document repository
func NewDocumentRepo(db *sql.DB, name string) *DocumentRepo {
	return &DocumentRepo{db: db, name: name}
}

// Load returns the stored document or an empty one if the row doesn't exist
func (r *DocumentRepo) Load() (domain.Document, error) {
	var body []byte
	query := `SELECT body FROM documents WHERE name = $1`
	err := r.db.QueryRow(query, r.name).Scan(&body)

	if err == sql.ErrNoRows {
		// Nothing saved yet
		return domain.Document{}, nil
	}
	if err != nil {
		return nil, err
	}

	doc := domain.Document{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode document %q: %w", r.name, err)
	}
	if doc == nil {
		doc = domain.Document{}
	}

	return doc, nil
}

// Save replaces the stored document
func (r *DocumentRepo) Save(doc domain.Document) error {
	if doc == nil {
		doc = domain.Document{}
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", r.name, err)
	}

	query := `
		INSERT INTO documents (name, body, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name)
		DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()
	`
	_, err = r.db.Exec(query, r.name, body)
	return err
}
