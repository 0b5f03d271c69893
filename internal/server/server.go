// Package server exposes voice selection, sessions, and letters over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mealtone/nutrivoice/internal/emotion"
	"github.com/mealtone/nutrivoice/internal/engine"
	"github.com/mealtone/nutrivoice/internal/letter"
	"github.com/mealtone/nutrivoice/internal/session"
	"github.com/mealtone/nutrivoice/internal/timeslot"
	"github.com/mealtone/nutrivoice/internal/types"
)

// TurnRecorder logs conversation turns for the letter writer. Recording is
// best-effort; a failed write never blocks a response.
type TurnRecorder interface {
	Add(ctx context.Context, turn types.Turn) error
}

// Server is the HTTP front for the selection engine.
type Server struct {
	engine     *engine.Engine
	sessions   session.Store
	letters    *letter.Writer
	recorder   TurnRecorder
	httpServer *http.Server
	logger     *slog.Logger
}

// SelectRequest is the POST /v1/voice/select body. The optional override
// fields accept the wire names of the corresponding enums.
type SelectRequest struct {
	SessionID         string `json:"session_id,omitempty"`
	CharacterID       string `json:"character_id"`
	Text              string `json:"text"`
	UserText          string `json:"user_text,omitempty"`
	IsInitialGreeting bool   `json:"is_initial_greeting,omitempty"`
	At                string `json:"at,omitempty"` // RFC3339
	TimeSlot          string `json:"time_slot,omitempty"`
	Category          string `json:"category,omitempty"`
	Context           string `json:"context,omitempty"`
}

// CreateSessionRequest is the POST /v1/sessions body.
type CreateSessionRequest struct {
	CharacterID string `json:"character_id"`
}

// CreateSessionResponse is the POST /v1/sessions response.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

// HealthResponse is the GET /healthz response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Option configures a Server.
type Option func(*Server)

// WithLetterWriter enables the letters endpoint.
func WithLetterWriter(w *letter.Writer) Option {
	return func(s *Server) { s.letters = w }
}

// WithTurnRecorder enables turn logging on select requests.
func WithTurnRecorder(r TurnRecorder) Option {
	return func(s *Server) { s.recorder = r }
}

// New creates the HTTP server.
func New(addr string, eng *engine.Engine, sessions session.Store, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		engine:   eng,
		sessions: sessions,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.healthHandler)
	mux.HandleFunc("/v1/voice/select", s.selectHandler)
	mux.HandleFunc("/v1/sessions", s.createSessionHandler)
	mux.HandleFunc("/v1/letters/", s.lettersHandler)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the underlying handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) selectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.CharacterID == "" {
		http.Error(w, "character_id required", http.StatusBadRequest)
		return
	}

	engReq := engine.Request{
		SessionID:         req.SessionID,
		CharacterID:       req.CharacterID,
		Text:              req.Text,
		UserText:          req.UserText,
		IsInitialGreeting: req.IsInitialGreeting,
	}
	if req.At != "" {
		at, err := time.Parse(time.RFC3339, req.At)
		if err != nil {
			http.Error(w, "at must be RFC3339", http.StatusBadRequest)
			return
		}
		engReq.Now = at
	}
	if req.TimeSlot != "" {
		slot := timeslot.Slot(req.TimeSlot)
		engReq.TimeSlot = &slot
	}
	if req.Category != "" {
		category := emotion.Category(req.Category)
		engReq.Category = &category
	}
	if req.Context != "" {
		role := types.Context(req.Context)
		engReq.Context = &role
	}

	result := s.engine.Select(r.Context(), engReq)
	s.recordTurns(r.Context(), req, result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.CharacterID == "" {
		http.Error(w, "character_id required", http.StatusBadRequest)
		return
	}

	progress := &session.Progress{
		SessionID:   uuid.NewString(),
		CharacterID: req.CharacterID,
	}
	if err := s.sessions.Create(r.Context(), progress); err != nil {
		s.logger.Error("failed to create session", "error", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, CreateSessionResponse{SessionID: progress.SessionID})
}

// lettersHandler serves POST /v1/letters/{characterID}, composing the
// letter for the date query parameter (default: yesterday).
func (s *Server) lettersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.letters == nil {
		http.Error(w, "Letters not configured", http.StatusServiceUnavailable)
		return
	}

	characterID := strings.TrimPrefix(r.URL.Path, "/v1/letters/")
	if characterID == "" || strings.Contains(characterID, "/") {
		http.Error(w, "character id required", http.StatusBadRequest)
		return
	}

	day := time.Now().AddDate(0, 0, -1)
	if date := r.URL.Query().Get("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		day = parsed
	}

	composed, err := s.letters.Compose(r.Context(), characterID, day)
	if err != nil {
		s.logger.Error("failed to compose letter", "character_id", characterID, "error", err)
		http.Error(w, "Failed to compose letter", http.StatusInternalServerError)
		return
	}
	if composed == nil {
		http.Error(w, "No conversations that day", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, composed)
}

func (s *Server) recordTurns(ctx context.Context, req SelectRequest, result types.Result) {
	if s.recorder == nil || req.SessionID == "" {
		return
	}
	if req.UserText != "" {
		turn := types.Turn{
			SessionID:   req.SessionID,
			CharacterID: req.CharacterID,
			Role:        "user",
			Content:     req.UserText,
		}
		if err := s.recorder.Add(ctx, turn); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("failed to record user turn", "error", err)
		}
	}
	if req.Text != "" {
		turn := types.Turn{
			SessionID:   req.SessionID,
			CharacterID: req.CharacterID,
			Role:        "character",
			Content:     req.Text,
			Category:    result.Category,
		}
		if err := s.recorder.Add(ctx, turn); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("failed to record character turn", "error", err)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
