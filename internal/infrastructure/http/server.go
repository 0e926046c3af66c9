// Package http provides the HTTP server for the chat API and UI.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"faqdesk/internal/domain/usecases"
	"faqdesk/internal/session"
)

// NotFoundNotice is shown when a quick question has no matching answer.
const NotFoundNotice = "Sorry, no matching answer found in the document."

// Request size and timeout limits.
const (
	maxBodyBytes    = 64 << 10
	readTimeout     = 15 * time.Second
	writeTimeout    = 120 * time.Second // the model call happens in-request
	shutdownTimeout = 5 * time.Second
)

// Server exposes the conversation controller and knowledge base over HTTP.
type Server struct {
	controller *usecases.Controller
	kb         *usecases.KnowledgeBase
	sessions   *session.Store
	quick      []string
	logger     *slog.Logger
	addr       string
}

// NewServer creates a new HTTP server.
func NewServer(
	controller *usecases.Controller,
	kb *usecases.KnowledgeBase,
	sessions *session.Store,
	quickQuestions []string,
	addr string,
	logger *slog.Logger,
) *Server {
	return &Server{
		controller: controller,
		kb:         kb,
		sessions:   sessions,
		quick:      quickQuestions,
		logger:     logger,
		addr:       addr,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/quick-questions", s.handleQuickQuestions)
	mux.HandleFunc("POST /api/quick-answer", s.handleQuickAnswer)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	return s.recoveryMiddleware(s.loggingMiddleware(mux))
}

// Start runs the server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("http server starting", "addr", s.addr)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// createSessionResponse is the POST /api/sessions response.
type createSessionResponse struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()

	greeting := ""
	if len(sess.History) > 0 {
		greeting = sess.History[0].Content
	}
	s.writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: sess.ID,
		Greeting:  greeting,
	})
}

// chatRequest is the POST /api/chat request body.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// chatResponse is the POST /api/chat response.
type chatResponse struct {
	Reply           string `json:"reply"`
	AwaitingContact bool   `json:"awaiting_contact"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" {
		s.writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	reply := s.controller.Handle(r.Context(), sess, req.Message)

	sess.Lock()
	awaiting := sess.AwaitingContact
	sess.Unlock()

	s.writeJSON(w, http.StatusOK, chatResponse{
		Reply:           reply,
		AwaitingContact: awaiting,
	})
}

func (s *Server) handleQuickQuestions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"questions": s.quick})
}

// quickAnswerRequest is the POST /api/quick-answer request body.
type quickAnswerRequest struct {
	Question string `json:"question"`
}

// quickAnswerResponse is the POST /api/quick-answer response.
type quickAnswerResponse struct {
	Found  bool    `json:"found"`
	Answer string  `json:"answer,omitempty"`
	Notice string  `json:"notice,omitempty"`
	Score  float64 `json:"score"`
}

// handleQuickAnswer runs the similarity lookup directly, bypassing the
// conversation and contact flow.
func (s *Server) handleQuickAnswer(w http.ResponseWriter, r *http.Request) {
	var req quickAnswerRequest
	if err := decodeJSON(r, &req); err != nil || req.Question == "" {
		s.writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	m, err := s.kb.QuickAnswer(r.Context(), req.Question)
	if err != nil {
		s.logger.Error("quick answer failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	resp := quickAnswerResponse{Found: m.Hit, Score: m.Score}
	if m.Hit {
		resp.Answer = m.Answer
	} else {
		resp.Notice = NotFoundNotice
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(dst)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding response failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered", "error", err, "path", r.URL.Path)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
