package usecases

import (
	"context"
	"strings"
	"time"

	"faqdesk/internal/domain/entities"
	"faqdesk/internal/domain/ports"
)

type fakeLoader struct {
	content string
	mod     time.Time
	loads   int
	stats   int
	loadErr error
	statErr error
}

func (l *fakeLoader) Load(ctx context.Context, path string) (*entities.Document, error) {
	l.loads++
	if l.loadErr != nil {
		return nil, l.loadErr
	}
	return &entities.Document{Path: path, Content: l.content, ModTime: l.mod}, nil
}

func (l *fakeLoader) Stat(ctx context.Context, path string) (time.Time, error) {
	l.stats++
	if l.statErr != nil {
		return time.Time{}, l.statErr
	}
	return l.mod, nil
}

type fakeParser struct {
	pairs []entities.QAPair
}

func (p *fakeParser) Parse(lines []string) []entities.QAPair {
	return p.pairs
}

type fakeIndex struct {
	matches map[string]entities.Match
	n       int
}

func (x *fakeIndex) Query(text string) entities.Match {
	if m, ok := x.matches[text]; ok {
		return m
	}
	return entities.Match{Index: -1}
}

func (x *fakeIndex) Len() int { return x.n }

type fakeBuilder struct {
	idx       ports.SimilarityIndex
	builds    int
	lastPairs []entities.QAPair
}

func (b *fakeBuilder) Build(pairs []entities.QAPair) ports.SimilarityIndex {
	b.builds++
	b.lastPairs = pairs
	return b.idx
}

// fakeLLM replies with a fixed string, or echoes the last system message when
// echoContext is set so tests can observe the grounding note.
type fakeLLM struct {
	reply       string
	err         error
	echoContext bool
	calls       [][]entities.ChatMessage
}

func (m *fakeLLM) Complete(ctx context.Context, messages []entities.ChatMessage) (string, error) {
	m.calls = append(m.calls, messages)
	if m.err != nil {
		return "", m.err
	}
	if m.echoContext {
		for i := len(messages) - 1; i >= 0; i-- {
			if messages[i].Role == entities.RoleSystem {
				return messages[i].Content, nil
			}
		}
	}
	return m.reply, nil
}

type fakeExtractor struct {
	contact entities.Contact
}

func (e *fakeExtractor) Extract(text string) entities.Contact { return e.contact }

type fakeStore struct {
	appended []entities.Enquiry
	err      error
}

func (s *fakeStore) Append(ctx context.Context, e entities.Enquiry) error {
	if s.err != nil {
		return s.err
	}
	s.appended = append(s.appended, e)
	return nil
}

type fakeWatcher struct {
	events chan ports.FileEvent
	err    error
}

func (w *fakeWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileEvent, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.events, nil
}

func (w *fakeWatcher) Stop() error { return nil }

// matchFor builds a hit entry for a fakeIndex keyed on the trimmed question.
func matchFor(question, answer string, score float64) (string, entities.Match) {
	return strings.TrimSpace(question), entities.Match{Index: 0, Answer: answer, Score: score, Hit: true}
}
