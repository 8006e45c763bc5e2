// Package apiserver is the reference task backend: a JSON collection at
// /tasks and a create endpoint at /tasks/create.
package apiserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"taskboard/internal/service"
	"taskboard/internal/store"
)

// SuccessMessage is the body message of a successful create.
const SuccessMessage = "Successfully Added Operation"

// DefaultResponse is the body of create responses.
type DefaultResponse struct {
	Message string `json:"message"`
}

// Server serves a Store over HTTP.
type Server struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a server for st.
func New(st store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: st, logger: logger}
}

// Handler returns the routed handler with CORS headers on every response.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/tasks", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/tasks/create", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/tasks", preflight).Methods(http.MethodOptions)
	r.HandleFunc("/tasks/create", preflight).Methods(http.MethodOptions)

	r.MethodNotAllowedHandler = corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
	}))
	return r
}

// GET /tasks
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.All(r.Context())
	if err != nil {
		s.logger.Error("failed to list tasks", "err", err)
		http.Error(w, "Error marshaling tasks", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// POST /tasks/create
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var t service.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := t.Validate(); err != nil {
		http.Error(w, "Invalid task content", http.StatusBadRequest)
		return
	}

	if err := s.store.Add(r.Context(), t); err != nil {
		s.logger.Error("failed to store task", "err", err)
		http.Error(w, "Error storing task", http.StatusInternalServerError)
		return
	}
	s.logger.Debug("task created", "title", t.Title)

	writeJSON(w, http.StatusOK, DefaultResponse{Message: SuccessMessage})
}

func preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
