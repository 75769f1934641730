// Package web serves the HTML transcript export and a health endpoint.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/carescene/carescene/internal/config"
	"github.com/carescene/carescene/internal/domain"
	"github.com/carescene/carescene/internal/export"
	"github.com/carescene/carescene/internal/service"
)

type Server struct {
	sessions *service.SessionService
	srv      *http.Server
}

func NewServer(cfg *config.Config, sessions *service.SessionService) *Server {
	s := &Server{sessions: sessions}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/sessions/{id}/transcript.html", s.handleTranscript)

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start runs the server until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http server shutdown", "error", err)
		}
	}()

	slog.Info("http server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if _, err := s.sessions.Get(ctx, id); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		slog.Error("load session for export", "error", err, "session_id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	turns, err := s.sessions.Transcript(ctx, id)
	if err != nil {
		slog.Error("load transcript for export", "error", err, "session_id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	renders, err := s.sessions.Renders(ctx, id)
	if err != nil {
		slog.Error("load renders for export", "error", err, "session_id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.WriteHTML(w, export.Data{
		SessionID:   id,
		Turns:       turns,
		Renders:     renders,
		GeneratedAt: time.Now(),
	}); err != nil {
		slog.Error("write transcript export", "error", err, "session_id", id)
	}
}
