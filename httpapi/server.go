// SPDX-License-Identifier: MIT

// Package httpapi exposes game slots over JSON HTTP:
//
//	POST /api/init    {size, session?, new?}  -> {grid, session?}
//	POST /api/move    {index, session?}       -> {success, message, reason}
//	GET  /api/status  ?session=               -> {temperatureMap, complete, accuracy} | {}
//	DELETE /api/session ?session=             -> 204
//
// Requests without a session id address the registry's default game.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/heatscan/game"
	"github.com/katalvlaran/heatscan/logging"
	"github.com/katalvlaran/heatscan/simulation"
)

const (
	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 1 << 16
)

// Options configures a Server.
type Options struct {
	// AllowedOrigin is echoed in Access-Control-Allow-Origin; empty disables CORS.
	AllowedOrigin string
	// DefaultSize is used by /api/init when the body omits size.
	DefaultSize int
	Logger      *slog.Logger
}

// Server serves the game API for the games in a registry.
type Server struct {
	reg  *game.Registry
	opts Options
	log  *slog.Logger

	mu         sync.Mutex
	httpServer *http.Server
	addr       string
}

// NewServer returns a server over reg.
func NewServer(reg *game.Registry, opts Options) *Server {
	return &Server{
		reg:  reg,
		opts: opts,
		log:  logging.OrDefault(opts.Logger),
	}
}

// Addr returns the address the server is listening on, or "" before
// ListenAndServe binds.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Handler returns the routed API with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/init", s.handleInit)
	mux.HandleFunc("POST /api/move", s.handleMove)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("DELETE /api/session", s.handleDeleteSession)

	return s.withLogging(s.withCORS(mux))
}

// ListenAndServe binds addr and serves until ctx is cancelled. A clean
// shutdown returns nil.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	s.mu.Lock()
	s.httpServer = srv
	s.addr = ln.Addr().String()
	s.mu.Unlock()
	s.log.Info("http api listening", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	err = srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

type initRequest struct {
	Size    *int   `json:"size"`
	Session string `json:"session,omitempty"`
	New     bool   `json:"new,omitempty"`
}

type initResponse struct {
	Grid    [][]float64 `json:"grid"`
	Session string      `json:"session,omitempty"`
}

type moveRequest struct {
	Index   int    `json:"index"`
	Session string `json:"session,omitempty"`
}

type moveResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Reason  simulation.Reason `json:"reason"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var req initRequest
	if !s.decode(w, r, &req) {
		return
	}
	size := s.opts.DefaultSize
	if req.Size != nil {
		size = *req.Size
	}

	s.log.Log(r.Context(), logging.LevelTrace, "init request",
		"size", size, "session", req.Session, "new", req.New)

	var (
		g       *game.Game
		id      string
		created uuid.UUID
		err     error
	)
	if req.New {
		if created, g, err = s.reg.Create(); err != nil {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: err.Error()})
			return
		}
		id = created.String()
	} else {
		if g, err = s.reg.Lookup(req.Session); err != nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		id = req.Session
	}

	grid, err := g.Initialize(r.Context(), size)
	if err != nil && req.New {
		s.reg.Delete(created)
	}
	switch {
	case errors.Is(err, simulation.ErrInvalidConfiguration):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case err != nil:
		s.log.Error("initialize failed", "size", size, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, initResponse{Grid: grid, Session: id})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !s.decode(w, r, &req) {
		return
	}
	g, err := s.reg.Lookup(req.Session)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	s.log.Log(r.Context(), logging.LevelTrace, "move request",
		"index", req.Index, "session", req.Session)

	res := g.ApplyMove(req.Index)
	writeJSON(w, http.StatusOK, moveResponse{
		Success: res.Accepted,
		Message: res.Reason.Message(),
		Reason:  res.Reason,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	g, err := s.reg.Lookup(r.URL.Query().Get("session"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	st, ok := g.QueryStatus()
	if !ok {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("session")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "session is required; the default game cannot be deleted"})
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil || !s.reg.Delete(id) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("session %q: %v", raw, game.ErrUnknownSession)})
		return
	}

	s.log.Info("session deleted", "session", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
