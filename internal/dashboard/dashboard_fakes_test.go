package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// testBackend is a scripted backend API for client and panel tests.
// Routes can be re-registered mid-test to change behavior.
type testBackend struct {
	t        *testing.T
	srv      *httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	calls    map[string]int
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{
		t:        t,
		handlers: make(map[string]http.HandlerFunc),
		calls:    make(map[string]int),
	}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.calls[key]++
		fn := b.handlers[key]
		b.mu.Unlock()
		if fn == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fn(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

// respond registers a route answering with an enveloped success payload
func (b *testBackend) respond(method, path string, payload any) {
	b.handleFunc(method, path, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, payload)
	})
}

// fail registers a route answering with an enveloped error
func (b *testBackend) fail(method, path string, status int, code, message string) {
	b.handleFunc(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]string{"code": code, "message": message},
		})
	})
}

func (b *testBackend) handleFunc(method, path string, fn http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[method+" "+path] = fn
}

func (b *testBackend) callCount(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method+" "+path]
}

// newClient builds a client bound to a fresh session holding the token
func (b *testBackend) newClient(token string) (*Client, *Session) {
	session := &Session{}
	if token != "" {
		session.set(token, User{})
	}
	return NewClient(b.srv.URL, session), session
}

func writeEnvelope(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    payload,
	})
}
