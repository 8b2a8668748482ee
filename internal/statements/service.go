package statements

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/auszug-dev/auszug/internal/model"
)

// Store reads and writes group CSV files in a single output directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the on-disk path of a group file.
func (s *Store) Path(group string) string {
	return filepath.Join(s.dir, group)
}

// Load reads the persisted transactions for a group. A missing file
// means no prior run and returns nil. A malformed file or one with a
// foreign schema is an error: failing the group beats silently
// replacing its history.
func (s *Store) Load(group string) ([]model.Transaction, error) {
	f, err := os.Open(s.Path(group))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", group, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", group, err)
	}
	return txns, nil
}

// Write rewrites a group file with the full transaction set.
func (s *Store) Write(group string, txns []model.Transaction) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.Create(s.Path(group))
	if err != nil {
		return fmt.Errorf("creating %s: %w", group, err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("writing %s: %w", group, err)
	}
	return nil
}
