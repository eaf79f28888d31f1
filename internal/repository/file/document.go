package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"flashcards/internal/domain"
)

// DocumentRepo implements repository.DocumentRepository on top of a JSON file
type DocumentRepo struct {
	path string
}

// NewDocumentRepo creates a new file-backed document repository
func NewDocumentRepo(path string) *DocumentRepo {
	return &DocumentRepo{path: path}
}

// Path returns the file the document is stored in
func (r *DocumentRepo) Path() string {
	return r.path
}

// Load reads the whole document. A missing or empty file is an empty document.
func (r *DocumentRepo) Load() (domain.Document, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Document{}, nil
	}

	doc := domain.Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}

	// "null" decodes into a nil map
	if doc == nil {
		doc = domain.Document{}
	}

	return doc, nil
}

// Save replaces the file with doc. The data is written to a temp file in
// the same directory and renamed over the target.
func (r *DocumentRepo) Save(doc domain.Document) error {
	if doc == nil {
		doc = domain.Document{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	// No-op once the rename succeeded
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}

	return nil
}
