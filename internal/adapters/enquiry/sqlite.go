package enquiry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"faqdesk/internal/domain/entities"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements ports.EnquiryStore with SQLite persistence, for
// deployments that want the enquiry log queryable rather than flat.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the enquiry database under dataPath.
func NewSQLiteStore(dataPath string) (*SQLiteStore, error) {
	if dataPath == "" {
		dataPath = "./data"
	}

	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataPath, "enquiries.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

// initSchema creates the enquiries table.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS enquiries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		original_question TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		raw_message TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append inserts one enquiry record.
func (s *SQLiteStore) Append(ctx context.Context, e entities.Enquiry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO enquiries (timestamp, original_question, name, email, phone, raw_message)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.Timestamp.UTC().Format(time.RFC3339),
		e.OriginalQuestion,
		e.Name,
		e.Email,
		e.Phone,
		e.RawMessage,
	)
	if err != nil {
		return fmt.Errorf("inserting enquiry: %w", err)
	}
	return nil
}

// Count returns the number of stored enquiries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM enquiries").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
