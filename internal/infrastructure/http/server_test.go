package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faqdesk/internal/adapters/contact"
	"faqdesk/internal/adapters/enquiry"
	"faqdesk/internal/adapters/index"
	"faqdesk/internal/adapters/loader"
	"faqdesk/internal/adapters/parser"
	"faqdesk/internal/domain/entities"
	"faqdesk/internal/domain/usecases"
	applog "faqdesk/internal/log"
	"faqdesk/internal/session"
)

const testDocument = `Q: What are the working hours?
A: We are open 9am-5pm on weekdays.
Q: What services do you provide?
A: Consulting and audits.
`

// stubLLM returns a canned reply over the wired-up stack.
type stubLLM struct {
	reply string
	err   error
}

func (m *stubLLM) Complete(ctx context.Context, messages []entities.ChatMessage) (string, error) {
	return m.reply, m.err
}

type serverFixture struct {
	server  *Server
	handler http.Handler
	logPath string
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	dir := t.TempDir()
	docPath := filepath.Join(dir, "knowledge.txt")
	require.NoError(t, os.WriteFile(docPath, []byte(testDocument), 0o644))

	logger := applog.NewNop()
	kb := usecases.NewKnowledgeBase(
		loader.NewTextLoader(), parser.NewQAParser(), index.NewBuilder(), docPath, logger)

	logPath := filepath.Join(dir, "enquiries.csv")
	controller := usecases.NewController(
		kb,
		&stubLLM{reply: "We are open 9am-5pm."},
		contact.NewExtractor(),
		enquiry.NewCSVStore(logPath),
		0,
		logger,
	)

	sessions := session.NewStore(usecases.Greeting)
	srv := NewServer(controller, kb, sessions, []string{"What are the working hours?"}, ":0", logger)

	return &serverFixture{server: srv, handler: srv.Handler(), logPath: logPath}
}

func (f *serverFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (f *serverFixture) createSession(t *testing.T) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody[createSessionResponse](t, w)
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestCreateSession(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodPost, "/api/sessions", nil)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody[createSessionResponse](t, w)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, usecases.Greeting, resp.Greeting)
}

func TestChat_MatchedQuestion(t *testing.T) {
	f := newServerFixture(t)
	id := f.createSession(t)

	w := f.do(t, http.MethodPost, "/api/chat", chatRequest{
		SessionID: id,
		Message:   "What are the working hours?",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[chatResponse](t, w)
	assert.Equal(t, "We are open 9am-5pm.", resp.Reply)
	assert.False(t, resp.AwaitingContact)
}

func TestChat_UnmatchedQuestionThenContactCapture(t *testing.T) {
	f := newServerFixture(t)
	id := f.createSession(t)

	w := f.do(t, http.MethodPost, "/api/chat", chatRequest{
		SessionID: id,
		Message:   "trampoline zebra lessons?",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[chatResponse](t, w)
	assert.True(t, resp.AwaitingContact)
	assert.Contains(t, resp.Reply, "contact number")

	w = f.do(t, http.MethodPost, "/api/chat", chatRequest{
		SessionID: id,
		Message:   "name: Jane Doe, jane@example.com, +14155550123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody[chatResponse](t, w)
	assert.False(t, resp.AwaitingContact)
	assert.Contains(t, resp.Reply, "Thanks Jane Doe!")

	data, err := os.ReadFile(f.logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "trampoline zebra lessons?")
	assert.Contains(t, lines[1], "jane@example.com")
}

func TestChat_Validation(t *testing.T) {
	f := newServerFixture(t)
	id := f.createSession(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing session id", chatRequest{Message: "hi"}, http.StatusBadRequest},
		{"missing message", chatRequest{SessionID: id}, http.StatusBadRequest},
		{"unknown session", chatRequest{SessionID: "nope", Message: "hi"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/api/chat", tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestChat_MalformedBody(t *testing.T) {
	f := newServerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuickQuestions(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodGet, "/api/quick-questions", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[map[string][]string](t, w)
	assert.Equal(t, []string{"What are the working hours?"}, resp["questions"])
}

func TestQuickAnswer_Hit(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodPost, "/api/quick-answer", quickAnswerRequest{
		Question: "What are the working hours?",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[quickAnswerResponse](t, w)
	assert.True(t, resp.Found)
	assert.Contains(t, resp.Answer, "9am-5pm")
	assert.Greater(t, resp.Score, index.MatchThreshold)
	assert.Empty(t, resp.Notice)
}

func TestQuickAnswer_Miss(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodPost, "/api/quick-answer", quickAnswerRequest{
		Question: "trampoline zebra lessons",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[quickAnswerResponse](t, w)
	assert.False(t, resp.Found)
	assert.Empty(t, resp.Answer)
	assert.Equal(t, NotFoundNotice, resp.Notice)
}

func TestQuickAnswer_RequiresQuestion(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodPost, "/api/quick-answer", quickAnswerRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[map[string]string](t, w)
	assert.Equal(t, "ok", resp["status"])
}

func TestIndexPage(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "faqdesk")
}

func TestUnknownRoute(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/api/chat", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
