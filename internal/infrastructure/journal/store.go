package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmittelstaedt/faxsort/internal/core/domain"
)

// DefaultMaxEntries bounds the persisted processing log.
const DefaultMaxEntries = 50

// Store persists the processing log as an ordered JSON array, newest entry
// last, capped at maxEntries (oldest dropped on write). Every append is a
// read-modify-write; callers must serialize access (single-writer, like the
// pipeline itself).
type Store struct {
	path       string
	maxEntries int
}

func NewStore(path string, maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{path: path, maxEntries: maxEntries}
}

func (s *Store) Entries() ([]domain.LogEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read journal: %w", err)
	}
	var entries []domain.LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode journal: %w", err)
	}
	return entries, nil
}

func (s *Store) Append(entry domain.LogEntry) error {
	entries, err := s.Entries()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	if len(entries) > s.maxEntries {
		entries = entries[len(entries)-s.maxEntries:]
	}
	return s.write(entries)
}

// Clear empties the journal.
func (s *Store) Clear() error {
	return s.write([]domain.LogEntry{})
}

func (s *Store) write(entries []domain.LogEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create journal dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace journal: %w", err)
	}
	return nil
}
