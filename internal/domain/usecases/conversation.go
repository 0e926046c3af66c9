package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"faqdesk/internal/domain/entities"
	"faqdesk/internal/domain/ports"
)

// Fixed conversation strings.
const (
	// Greeting opens every new session's history.
	Greeting = "Hi there! How can I help you today?"

	systemInstruction = "You are the company's smart assistant, helpful and concise."

	contactPrompt = "I couldn't find an answer to that in our knowledge base, " +
		"but our team can follow up with you directly. " +
		"Could you share your name, email and contact number?"

	apologyReply = "Sorry, I'm having trouble answering right now. Please try again in a moment."

	abandonNotice = "No problem, we'll leave it there for now. " +
		"Feel free to ask me something else."

	// historyWindow bounds the trailing turns sent to the model.
	historyWindow = 10
)

// Controller drives one conversation turn at a time. A session is either
// idle or awaiting contact details for a pending unanswered question; no
// other states exist. All failures surface to the user as fixed replies,
// never as errors.
type Controller struct {
	kb          *KnowledgeBase
	llm         ports.LLMService
	extractor   ports.ContactExtractor
	enquiries   ports.EnquiryStore
	maxAttempts int // contact-capture cap; 0 means unlimited
	logger      *slog.Logger
	now         func() time.Time
}

// NewController wires a conversation controller. maxAttempts bounds the
// contact re-prompt loop; pass 0 to keep re-prompting indefinitely.
func NewController(
	kb *KnowledgeBase,
	llm ports.LLMService,
	extractor ports.ContactExtractor,
	enquiries ports.EnquiryStore,
	maxAttempts int,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		kb:          kb,
		llm:         llm,
		extractor:   extractor,
		enquiries:   enquiries,
		maxAttempts: maxAttempts,
		logger:      logger,
		now:         time.Now,
	}
}

// Handle processes one user message, mutates the session, and returns the
// assistant reply. Both turns are appended to the session history. Concurrent
// calls on one session serialize on the session's lock.
func (c *Controller) Handle(ctx context.Context, sess *entities.Session, text string) string {
	sess.Lock()
	defer sess.Unlock()

	text = strings.TrimSpace(text)
	sess.History = append(sess.History, entities.ChatMessage{
		Role:    entities.RoleUser,
		Content: text,
	})

	var reply string
	if sess.AwaitingContact {
		reply = c.handleContact(ctx, sess, text)
	} else {
		reply = c.handleQuestion(ctx, sess, text)
	}

	sess.History = append(sess.History, entities.ChatMessage{
		Role:    entities.RoleAssistant,
		Content: reply,
	})
	return reply
}

// handleQuestion runs the similarity lookup. A hit grounds a model call; a
// miss parks the question and asks for contact details.
func (c *Controller) handleQuestion(ctx context.Context, sess *entities.Session, text string) string {
	idx, err := c.kb.Index(ctx)
	if err != nil {
		c.logger.Error("knowledge index unavailable", "error", err)
		return apologyReply
	}

	m := idx.Query(text)
	if !m.Hit {
		c.logger.Info("no match for question", "score", m.Score)
		sess.PendingQuestion = text
		sess.AwaitingContact = true
		sess.ContactAttempts = 0
		return contactPrompt
	}

	reply, err := c.llm.Complete(ctx, c.buildPrompt(sess.History, m.Answer))
	if err != nil {
		// Apology for this turn only; the conversation continues normally.
		c.logger.Warn("text generation failed", "error", err)
		return apologyReply
	}
	return reply
}

// buildPrompt assembles the grounded message sequence: system instruction,
// trailing history window, then a system note carrying the retrieved answer.
func (c *Controller) buildPrompt(history []entities.ChatMessage, context string) []entities.ChatMessage {
	messages := []entities.ChatMessage{
		{Role: entities.RoleSystem, Content: systemInstruction},
	}

	turns := history
	if len(turns) > historyWindow {
		turns = turns[len(turns)-historyWindow:]
	}
	messages = append(messages, turns...)

	if context != "" {
		messages = append(messages, entities.ChatMessage{
			Role:    entities.RoleSystem,
			Content: "Company context: " + context,
		})
	}
	return messages
}

// handleContact extracts contact fields from the reply to the contact prompt.
func (c *Controller) handleContact(ctx context.Context, sess *entities.Session, text string) string {
	contact := c.extractor.Extract(text)

	if contact.Complete() {
		enquiry := entities.Enquiry{
			Timestamp:        c.now().UTC(),
			OriginalQuestion: sess.PendingQuestion,
			Name:             contact.Name,
			Email:            contact.Email,
			Phone:            contact.Phone,
			RawMessage:       text,
		}
		if err := c.enquiries.Append(ctx, enquiry); err != nil {
			// Keep the state so the user can resend rather than lose
			// the enquiry silently.
			c.logger.Error("appending enquiry failed", "error", err)
			return apologyReply
		}

		sess.PendingQuestion = ""
		sess.AwaitingContact = false
		sess.ContactAttempts = 0
		return fmt.Sprintf("Thanks %s! Our team will reach out to you at %s or %s shortly.",
			contact.Name, contact.Email, contact.Phone)
	}

	sess.ContactAttempts++
	if c.maxAttempts > 0 && sess.ContactAttempts >= c.maxAttempts {
		sess.PendingQuestion = ""
		sess.AwaitingContact = false
		sess.ContactAttempts = 0
		return abandonNotice
	}

	return "Almost there - I still need your " + joinLabels(contact.Missing()) + "."
}

// joinLabels renders a short list as "a", "a and b" or "a, b and c".
func joinLabels(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
	}
}
