// Package entities contains core business entities.
// These are pure domain objects with no external dependencies.
package entities

import (
	"strings"
	"sync"
	"time"
)

// Document represents the knowledge document backing the chatbot.
type Document struct {
	Path    string
	Content string
	ModTime time.Time
}

// Lines returns the document's non-empty, whitespace-trimmed lines in order.
func (d *Document) Lines() []string {
	var lines []string
	for _, raw := range strings.Split(d.Content, "\n") {
		line := strings.TrimSpace(raw)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// QAPair is one parsed question/answer unit from the knowledge document.
// Pairs are immutable after parsing; their order matches document order and
// determines the index position used for answer lookup.
type QAPair struct {
	Question string
	Answer   string
}

// Match is the result of a similarity lookup against the indexed pairs.
type Match struct {
	Index  int     // position of the best pair
	Answer string  // stored answer text, empty on a miss
	Score  float64 // cosine similarity in [0,1]
	Hit    bool    // true only when Score strictly exceeds the threshold
}

// ChatMessage represents a conversation turn.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant" or "system"
	Content string `json:"content"`
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Contact holds the fields extracted from a free-form contact message.
// Every field is optional; absent fields are empty strings, never an error.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Complete reports whether all three contact fields were captured.
func (c Contact) Complete() bool {
	return c.Name != "" && c.Email != "" && c.Phone != ""
}

// Missing lists the user-facing labels of absent fields, in fixed order.
func (c Contact) Missing() []string {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.Phone == "" {
		missing = append(missing, "contact number")
	}
	return missing
}

// Session holds one conversation's state. Sessions live in memory only and
// are lost when the process ends. The embedded mutex serializes turns:
// concurrent messages on one session are processed one at a time.
//
// Invariant: AwaitingContact is true iff PendingQuestion is non-empty.
type Session struct {
	sync.Mutex

	ID              string
	History         []ChatMessage
	AwaitingContact bool
	PendingQuestion string
	ContactAttempts int
	CreatedAt       time.Time
}

// Enquiry is a captured contact submission tied to an unanswered question.
// Records are appended to the enquiry store and never mutated.
type Enquiry struct {
	Timestamp        time.Time // always UTC
	OriginalQuestion string
	Name             string
	Email            string
	Phone            string
	RawMessage       string
}
