// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions, not concrete implementations;
// adapters implement them.
package ports

import (
	"context"
	"errors"
	"time"

	"faqdesk/internal/domain/entities"
)

// Failure classes for the text-generation call. Adapters wrap transport and
// API failures into one of these so callers can distinguish them with
// errors.Is; the user-visible handling (a fixed apology) is the same for all.
var (
	// ErrAuth indicates a rejected or missing credential.
	ErrAuth = errors.New("llm: authentication failed")

	// ErrRateLimited indicates the provider throttled the request.
	ErrRateLimited = errors.New("llm: rate limited")

	// ErrUnavailable indicates a network or upstream availability failure.
	ErrUnavailable = errors.New("llm: service unavailable")

	// ErrMalformedReply indicates a response that could not be interpreted.
	ErrMalformedReply = errors.New("llm: malformed reply")
)

// LLMService generates a reply from a language model given the full message
// sequence (system instruction, trailing history window, grounding note).
type LLMService interface {
	Complete(ctx context.Context, messages []entities.ChatMessage) (string, error)
}

// DocumentLoader reads the knowledge document from disk.
type DocumentLoader interface {
	Load(ctx context.Context, path string) (*entities.Document, error)

	// Stat returns the document's last-modified time without reading it.
	// Used as the index cache key.
	Stat(ctx context.Context, path string) (time.Time, error)
}

// PairParser splits a document's ordered non-empty lines into QA pairs.
// Parsing is heuristic and never fails; malformed lines are absorbed into the
// nearest open question's answer text.
type PairParser interface {
	Parse(lines []string) []entities.QAPair
}

// SimilarityIndex answers lookup queries against a fitted vector space.
// An index is immutable after build and safe for concurrent readers.
type SimilarityIndex interface {
	// Query transforms text into the index's vector space and returns the
	// arg-max cosine match. Ties resolve to the lowest index.
	Query(text string) entities.Match

	// Len returns the number of indexed pairs.
	Len() int
}

// IndexBuilder fits a vector space over QA pairs.
type IndexBuilder interface {
	Build(pairs []entities.QAPair) SimilarityIndex
}

// ContactExtractor scans free-form text for contact details.
// Best effort: absent fields come back empty, never as an error.
type ContactExtractor interface {
	Extract(text string) entities.Contact
}

// EnquiryStore appends captured enquiries. Append-only; records are never
// mutated or deleted.
type EnquiryStore interface {
	Append(ctx context.Context, e entities.Enquiry) error
}

// FileWatcher monitors the knowledge document for changes.
type FileWatcher interface {
	// Watch starts monitoring the file and emits events until ctx ends.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
