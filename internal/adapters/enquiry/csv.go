// Package enquiry provides enquiry store adapters.
// The CSV store is the default: a flat append-only log with a fixed header.
// The SQLite store is an optional durable alternative.
package enquiry

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"faqdesk/internal/domain/entities"
)

// Header is the fixed column order of the enquiry log.
var Header = []string{"timestamp", "original_question", "name", "email", "phone", "raw_message"}

// CSVStore appends enquiries to a delimited file, creating the file and its
// header row on first write. Appends are serialized in-process by a mutex;
// concurrent writers from other processes are not coordinated and may
// interleave at the OS append granularity.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

// NewCSVStore creates a store writing to the given file path.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Append writes one record, ensuring the target directory and header exist.
func (s *CSVStore) Append(ctx context.Context, e entities.Enquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
	}

	_, statErr := os.Stat(s.path)
	needHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening enquiry log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	row := []string{
		e.Timestamp.UTC().Format(time.RFC3339),
		e.OriginalQuestion,
		e.Name,
		e.Email,
		e.Phone,
		e.RawMessage,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing enquiry log: %w", err)
	}
	return nil
}
