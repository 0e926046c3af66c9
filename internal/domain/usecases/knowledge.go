// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces only.
package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"faqdesk/internal/domain/entities"
	"faqdesk/internal/domain/ports"
)

// KnowledgeBase owns the parsed QA pairs and the fitted similarity index.
// The index is a single-entry cache keyed by document path and modification
// time: it is rebuilt atomically with a fresh parse whenever the document's
// modtime changes, and reused for the process lifetime otherwise. The cached
// index is immutable, so concurrent sessions may query it without locking;
// only rebuilds run under the mutex.
type KnowledgeBase struct {
	loader  ports.DocumentLoader
	parser  ports.PairParser
	builder ports.IndexBuilder
	path    string
	logger  *slog.Logger

	mu      sync.Mutex
	modTime time.Time
	index   ports.SimilarityIndex
	stale   bool
}

// NewKnowledgeBase creates a knowledge base over the document at path.
func NewKnowledgeBase(
	loader ports.DocumentLoader,
	parser ports.PairParser,
	builder ports.IndexBuilder,
	path string,
	logger *slog.Logger,
) *KnowledgeBase {
	return &KnowledgeBase{
		loader:  loader,
		parser:  parser,
		builder: builder,
		path:    path,
		logger:  logger,
	}
}

// Index returns the current similarity index, rebuilding it first when the
// document changed since the last build.
func (kb *KnowledgeBase) Index(ctx context.Context) (ports.SimilarityIndex, error) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	modTime, err := kb.loader.Stat(ctx, kb.path)
	if err != nil {
		return nil, fmt.Errorf("checking knowledge document: %w", err)
	}

	if kb.index != nil && !kb.stale && modTime.Equal(kb.modTime) {
		return kb.index, nil
	}
	return kb.rebuild(ctx)
}

// rebuild reloads, reparses and refits. Caller holds kb.mu.
func (kb *KnowledgeBase) rebuild(ctx context.Context) (ports.SimilarityIndex, error) {
	doc, err := kb.loader.Load(ctx, kb.path)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge document: %w", err)
	}

	pairs := kb.parser.Parse(doc.Lines())
	if len(pairs) == 0 {
		// Keep the vectorizer away from an empty vocabulary: a single
		// empty placeholder yields an index that misses every query.
		pairs = []entities.QAPair{{}}
	}

	kb.index = kb.builder.Build(pairs)
	kb.modTime = doc.ModTime
	kb.stale = false

	kb.logger.Info("knowledge index built",
		"path", kb.path,
		"pairs", len(pairs),
		"modtime", doc.ModTime)
	return kb.index, nil
}

// Invalidate marks the cached index stale; the next lookup rebuilds it even
// when the modtime granularity hides a rapid rewrite.
func (kb *KnowledgeBase) Invalidate() {
	kb.mu.Lock()
	kb.stale = true
	kb.mu.Unlock()
}

// WatchDocument invalidates the index on watcher events until ctx ends.
func (kb *KnowledgeBase) WatchDocument(ctx context.Context, watcher ports.FileWatcher) error {
	events, err := watcher.Watch(ctx, kb.path)
	if err != nil {
		return fmt.Errorf("watching knowledge document: %w", err)
	}

	go func() {
		for ev := range events {
			kb.logger.Debug("knowledge document changed", "path", ev.Path, "op", ev.Operation)
			kb.Invalidate()
		}
	}()
	return nil
}

// QuickAnswer runs the similarity lookup directly, bypassing the conversation
// flow. Quick-question buttons and the one-shot CLI use this path.
func (kb *KnowledgeBase) QuickAnswer(ctx context.Context, question string) (entities.Match, error) {
	idx, err := kb.Index(ctx)
	if err != nil {
		return entities.Match{Index: -1}, err
	}
	return idx.Query(question), nil
}
