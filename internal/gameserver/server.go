// Package gameserver exposes a console over HTTP: state, screenshots, action
// execution and a websocket commentary feed.
package gameserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/tatianab/pokemon-agent/internal/agent"
	"github.com/tatianab/pokemon-agent/internal/console"
	"github.com/tatianab/pokemon-agent/internal/models"
	"github.com/tatianab/pokemon-agent/internal/protocol"
)

// Backend is the console the server drives. *agent.Local satisfies it.
type Backend interface {
	agent.Source
	agent.Sink
	Start()
	Power() (running bool, frame uint64)
}

var _ Backend = (*agent.Local)(nil)

type Server struct {
	backend Backend
	hub     *Hub
	logger  *log.Logger
}

// New returns a server over b. A nil logger uses log.Default.
func New(b Backend, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{backend: b, hub: NewHub(logger), logger: logger}
}

// Hub returns the commentary feed.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler routes the API under /api.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/screenshot", s.handleScreenshot)
	mux.HandleFunc("POST /api/execute_action", s.handleExecute)
	mux.HandleFunc("GET /api/start_game", s.handleStart)
	mux.HandleFunc("GET /api/ws", s.handleFeed)
	return mux
}

func (s *Server) status() protocol.Status {
	running, frame := s.backend.Power()
	st := protocol.Status{Status: protocol.StatusStopped, Frame: frame}
	if running {
		st.Status = protocol.StatusRunning
	}
	return st
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state, err := s.backend.State(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	frame, err := s.backend.Screenshot(r.Context())
	if errors.Is(err, console.ErrNoScreen) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(frame)
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req protocol.ExecuteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.Result{Error: "invalid request body"})
		return
	}
	action, err := models.ParseAction(req.Action)
	if err != nil {
		s.logger.Printf("warning: %v", err)
		writeJSON(w, http.StatusBadRequest, protocol.Result{Error: err.Error()})
		return
	}
	if err := s.backend.Execute(r.Context(), action, req.Commentary); err != nil {
		writeJSON(w, http.StatusInternalServerError, protocol.Result{Error: err.Error()})
		return
	}
	if req.Commentary != "" {
		s.logger.Printf("%s: %s", action, req.Commentary)
	}

	_, frame := s.backend.Power()
	if msg, err := protocol.Encode(protocol.MsgAction, protocol.ActionEvent{
		Action:     action,
		Commentary: req.Commentary,
		Frame:      frame,
	}); err == nil {
		s.hub.Broadcast(msg)
	}
	writeJSON(w, http.StatusOK, protocol.Result{Success: true})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.backend.Start()
	writeJSON(w, http.StatusOK, protocol.Result{Success: true})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	welcome := protocol.Welcome{Status: s.status()}
	if state, err := s.backend.State(r.Context()); err == nil {
		welcome.State = state
	}
	hello, err := protocol.Encode(protocol.MsgWelcome, welcome)
	if err != nil {
		hello = nil
	}
	s.hub.serve(w, r, hello)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
