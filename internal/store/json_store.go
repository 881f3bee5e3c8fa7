package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"investment-ledger-go/internal/models"
)

// JSONStore keeps the ledger in a single pretty-printed JSON array.
type JSONStore struct {
	path string
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load reads the whole file. A missing file yields an empty collection.
func (s *JSONStore) Load() ([]models.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger %q: %w", s.path, err)
	}

	transactions := []models.Transaction{}
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode ledger %q: %w", s.path, err)
	}
	if transactions == nil {
		// a literal null document
		transactions = []models.Transaction{}
	}
	if err := checkActions(transactions); err != nil {
		return nil, fmt.Errorf("failed to decode ledger %q: %w", s.path, err)
	}
	return transactions, nil
}

// Save writes the collection to a temporary file in the same directory and
// renames it over the backing file, so readers never see a partial document.
func (s *JSONStore) Save(transactions []models.Transaction) error {
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	if err := checkActions(transactions); err != nil {
		return fmt.Errorf("refusing to save ledger: %w", err)
	}

	data, err := encode(transactions)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set ledger permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close ledger: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace ledger %q: %w", s.path, err)
	}
	return nil
}

func encode(transactions []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(transactions); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
