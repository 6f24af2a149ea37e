// Package server exposes practice sessions over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/linguaflow/internal/audio"
	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/session"
)

// Handler serves the session API.
type Handler struct {
	reg *Registry
}

// NewHandler creates a Handler over reg.
func NewHandler(reg *Registry) *Handler {
	return &Handler{reg: reg}
}

// RegisterRoutes registers the API routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/levels", h.Levels)
		r.Get("/modes", h.Modes)

		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Post("/level", h.SelectLevel)
			r.Post("/mode", h.SelectMode)
			r.Post("/back", h.Back)
			r.Post("/submit", h.Submit)
			r.Post("/reset", h.Reset)
			r.Get("/audio", h.Audio)
		})
	})
}

// JSON writes a JSON response.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes an error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func (h *Handler) Levels(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, levelOptions())
}

func (h *Handler) Modes(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, modeOptions())
}

func (h *Handler) CreateSession(w http.ResponseWriter, _ *http.Request) {
	id, m := h.reg.Create()
	slog.Info("session created", "session", id)
	JSON(w, http.StatusCreated, newSessionView(id, m.Snapshot()))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, newSessionView(id, m.Snapshot()))
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if !h.reg.Delete(chi.URLParam(r, "id")) {
		Error(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type levelRequest struct {
	Level string `json:"level"`
}

func (h *Handler) SelectLevel(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	var req levelRequest
	if !decode(w, r, &req) {
		return
	}
	level, err := exercise.ParseLevel(req.Level)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	s, err := m.ChooseLevel(level)
	h.respond(w, id, s, err)
}

type modeRequest struct {
	Mode string `json:"mode"`
}

// SelectMode blocks until the exercise has been generated.
func (h *Handler) SelectMode(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	var req modeRequest
	if !decode(w, r, &req) {
		return
	}
	mode, err := exercise.ParseMode(req.Mode)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	// Remote calls run to completion even if the client goes away.
	s, err := m.ChooseMode(context.WithoutCancel(r.Context()), mode)
	h.respond(w, id, s, err)
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	s, err := m.Back()
	h.respond(w, id, s, err)
}

type submitRequest struct {
	Text string `json:"text"`
}

// Submit blocks until the text has been assessed.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	var req submitRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := m.SubmitText(context.WithoutCancel(r.Context()), req.Text)
	if err != nil && s.Err == session.MsgAssessFailed {
		slog.Error("assessment failed", "session", id, "error", err)
		JSON(w, http.StatusBadGateway, errorResponse{Error: s.Err, Session: newSessionView(id, s)})
		return
	}
	h.respond(w, id, s, err)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	id, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, newSessionView(id, m.Reset()))
}

// Audio serves the dictation clip as a WAV file.
func (h *Handler) Audio(w http.ResponseWriter, r *http.Request) {
	_, m, ok := h.machine(w, r)
	if !ok {
		return
	}
	s := m.Snapshot()
	if s.Exercise == nil || !s.Exercise.HasAudio() {
		Error(w, http.StatusNotFound, "no audio for this exercise")
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio.EncodeWAV(s.Exercise.AudioData, audio.SampleRate)); err != nil {
		slog.Error("failed to write audio", "error", err)
	}
}

func (h *Handler) machine(w http.ResponseWriter, r *http.Request) (string, *session.Machine, bool) {
	id := chi.URLParam(r, "id")
	m, ok := h.reg.Get(id)
	if !ok {
		Error(w, http.StatusNotFound, "session not found")
		return "", nil, false
	}
	return id, m, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

type errorResponse struct {
	Error   string      `json:"error"`
	Session sessionView `json:"session"`
}

// respond writes the session, or maps err to a status code. Error bodies
// carry the session so clients can redraw without a second request.
func (h *Handler) respond(w http.ResponseWriter, id string, s session.Session, err error) {
	if err == nil {
		JSON(w, http.StatusOK, newSessionView(id, s))
		return
	}

	// Short drafts and other input problems are 400.
	status := http.StatusBadRequest
	var transition *session.TransitionError
	if errors.As(err, &transition) || errors.Is(err, session.ErrStale) || errors.Is(err, session.ErrNoLevel) {
		status = http.StatusConflict
	}
	JSON(w, status, errorResponse{Error: err.Error(), Session: newSessionView(id, s)})
}
