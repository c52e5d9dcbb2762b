// Package todoapitest provides an in-memory implementation of the todos REST
// contract for tests.
package todoapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/five82/todo/internal/todoapi"
)

// Route names a single endpoint of the contract.
type Route string

const (
	RouteList   Route = "GET /todos"
	RouteCreate Route = "POST /todos"
	RouteUpdate Route = "PATCH /todos/{id}"
	RouteDelete Route = "DELETE /todos/{id}"
)

// Response is a canned reply served instead of the normal handler.
type Response struct {
	Status int
	Body   string
}

// Server is a fake todos service. Items are kept in insertion order.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	items    []todoapi.TodoItem
	canned   map[Route][]Response
	requests []Request
	now      func() time.Time
}

// Request records a call received by the server.
type Request struct {
	Route Route
	ID    string
	Body  map[string]any
}

// NewServer starts a fake service. Callers should Close it.
func NewServer() *Server {
	s := &Server{
		canned: make(map[Route][]Response),
		now:    func() time.Time { return time.Now().UTC() },
	}

	r := chi.NewRouter()
	r.Route("/api/todos", func(r chi.Router) {
		r.Get("/", s.handle(RouteList, s.list))
		r.Post("/", s.handle(RouteCreate, s.create))
		r.Patch("/{id}", s.handle(RouteUpdate, s.update))
		r.Delete("/{id}", s.handle(RouteDelete, s.remove))
	})
	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL returns the service root to hand to todoapi.NewClient.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// Seed appends items as if they had been created earlier.
func (s *Server) Seed(items ...todoapi.TodoItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

// Items returns a copy of the stored items.
func (s *Server) Items() []todoapi.TodoItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]todoapi.TodoItem, len(s.items))
	copy(out, s.items)
	return out
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Respond queues a one-shot canned response for the next call to route.
func (s *Server) Respond(route Route, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canned[route] = append(s.canned[route], Response{Status: status, Body: body})
}

func (s *Server) handle(route Route, next func(w http.ResponseWriter, r *http.Request, body map[string]any)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
				return
			}
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{Route: route, ID: chi.URLParam(r, "id"), Body: body})
		queue := s.canned[route]
		var canned *Response
		if len(queue) > 0 {
			canned = &queue[0]
			s.canned[route] = queue[1:]
		}
		s.mu.Unlock()

		if canned != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(canned.Status)
			_, _ = w.Write([]byte(canned.Body))
			return
		}
		next(w, r, body)
	}
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request, _ map[string]any) {
	writeJSON(w, http.StatusOK, s.Items())
}

func (s *Server) create(w http.ResponseWriter, _ *http.Request, body map[string]any) {
	text, _ := body["text"].(string)
	if strings.TrimSpace(text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Text is required"})
		return
	}

	s.mu.Lock()
	item := todoapi.TodoItem{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: s.now().Format(time.RFC3339),
	}
	s.items = append(s.items, item)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request, body map[string]any) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Todo not found"})
		return
	}
	if text, ok := body["text"].(string); ok {
		s.items[idx].Text = text
	}
	if completed, ok := body["completed"].(bool); ok {
		s.items[idx].Completed = completed
	}
	item := s.items[idx]
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request, _ map[string]any) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Todo not found"})
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted"})
}

func (s *Server) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
