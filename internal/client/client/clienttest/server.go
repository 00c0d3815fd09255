// Package clienttest runs a scripted fake of the kiosk backend for tests.
package clienttest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/snackkiosk/internal/common"
)

// Call is one request received by the fake.
type Call struct {
	Method    string
	Path      string
	RequestID string
	Body      map[string]any
}

// Responder produces the status and JSON body for a request. A nil body
// writes nothing; a string body is written raw.
type Responder func(c Call) (int, any)

// Server is an httptest server routing the backend endpoints with gorilla/mux.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	responders map[string]Responder
	calls      []Call
}

var routes = []struct {
	method string
	path   string
}{
	{http.MethodPost, "/login"},
	{http.MethodPost, "/set_pin"},
	{http.MethodPost, "/remove_pin"},
	{http.MethodPost, "/undo_last"},
	{http.MethodPost, "/scan"},
	{http.MethodPost, "/restock"},
	{http.MethodPost, "/admin/verify"},
	{http.MethodGet, "/users"},
	{http.MethodGet, "/quick_items"},
	{http.MethodGet, "/"},
}

// New starts a fake backend and closes it when the test ends. Unscripted
// endpoints answer 501 with an empty body, except GET / which answers 200.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{responders: make(map[string]Responder)}
	r := mux.NewRouter()
	for _, rt := range routes {
		r.HandleFunc(rt.path, s.dispatch).Methods(rt.method)
	}
	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func key(method, path string) string { return method + " " + path }

// Handle scripts a dynamic response for method+path.
func (s *Server) Handle(method, path string, r Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responders[key(method, path)] = r
}

// Reply scripts a fixed response.
func (s *Server) Reply(method, path string, status int, body any) {
	s.Handle(method, path, func(Call) (int, any) { return status, body })
}

// Calls returns the requests received for path, oldest first.
func (s *Server) Calls(path string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.calls {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// CallCount is len(Calls(path)).
func (s *Server) CallCount(path string) int {
	return len(s.Calls(path))
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	c := Call{
		Method:    r.Method,
		Path:      r.URL.Path,
		RequestID: r.Header.Get(common.RequestIDHeaderName),
	}
	if b, _ := io.ReadAll(r.Body); len(b) > 0 {
		_ = json.Unmarshal(b, &c.Body)
	}

	s.mu.Lock()
	s.calls = append(s.calls, c)
	resp, ok := s.responders[key(r.Method, r.URL.Path)]
	s.mu.Unlock()

	if !ok {
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	status, body := resp(c)
	switch b := body.(type) {
	case nil:
		w.WriteHeader(status)
	case string:
		w.WriteHeader(status)
		_, _ = io.WriteString(w, b)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(b)
	}
}
