// Package loader provides the knowledge-document loading adapter.
package loader

import (
	"context"
	"io"
	"os"
	"time"

	"faqdesk/internal/domain/entities"
)

// TextLoader reads the plain-text knowledge document (.txt, .md).
type TextLoader struct{}

// NewTextLoader creates a new text document loader.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// Load reads the document and records its modification time, which keys the
// similarity index cache.
func (l *TextLoader) Load(ctx context.Context, path string) (*entities.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	return &entities.Document{
		Path:    path,
		Content: string(content),
		ModTime: info.ModTime(),
	}, nil
}

// Stat returns the document's last-modified time without reading it.
func (l *TextLoader) Stat(ctx context.Context, path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
