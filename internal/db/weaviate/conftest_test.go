package weaviate

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeWeaviate is an in-memory stand-in for the REST schema endpoints.
type fakeWeaviate struct {
	t *testing.T

	mu       sync.Mutex
	classes  map[string]map[string]any
	requests []*http.Request

	notReady     atomic.Bool
	unauthorized atomic.Bool
	rejectCreate atomic.Bool
	serverError  atomic.Bool
}

func newFakeWeaviate(t *testing.T) (*fakeWeaviate, *httptest.Server) {
	t.Helper()
	f := &fakeWeaviate{t: t, classes: make(map[string]map[string]any)}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func hostOf(srv *httptest.Server) string {
	return strings.TrimPrefix(srv.URL, "http://")
}

func (f *fakeWeaviate) lastRequest(method, pathPrefix string) *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		r := f.requests[i]
		if r.Method == method && strings.HasPrefix(r.URL.Path, pathPrefix) {
			return r
		}
	}
	return nil
}

// headerValue looks a header up ignoring key canonicalisation.
func headerValue(r *http.Request, name string) string {
	for k, v := range r.Header {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func (f *fakeWeaviate) class(name string) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classes[name]
	return c, ok
}

func (f *fakeWeaviate) putClass(name string, c map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.classes[name] = c
}

func (f *fakeWeaviate) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (f *fakeWeaviate) writeError(w http.ResponseWriter, status int, msg string) {
	f.writeJSON(w, status, map[string]any{
		"error": []map[string]string{{"message": msg}},
	})
}

func (f *fakeWeaviate) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Clone(r.Context()))
	f.mu.Unlock()

	path := r.URL.Path
	switch {
	case path == "/v1/.well-known/ready" || path == "/v1/.well-known/live":
		if f.notReady.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		return
	case path == "/v1/meta":
		f.writeJSON(w, http.StatusOK, map[string]any{"version": "1.27.0", "modules": map[string]any{}})
		return
	case path == "/v1/.well-known/openid-configuration":
		// OIDC not configured.
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if f.unauthorized.Load() {
		f.writeError(w, http.StatusUnauthorized, "anonymous access not enabled")
		return
	}
	if f.serverError.Load() {
		f.writeError(w, http.StatusInternalServerError, "raft: leadership lost")
		return
	}

	switch {
	case path == "/v1/schema" && r.Method == http.MethodGet:
		f.mu.Lock()
		classes := make([]map[string]any, 0, len(f.classes))
		for _, c := range f.classes {
			classes = append(classes, c)
		}
		f.mu.Unlock()
		f.writeJSON(w, http.StatusOK, map[string]any{"classes": classes})

	case path == "/v1/schema" && r.Method == http.MethodPost:
		var c map[string]any
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			f.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		name, _ := c["class"].(string)
		if f.rejectCreate.Load() {
			f.writeError(w, http.StatusUnprocessableEntity, "vectorizer: no module with name \"text2vec-openai\" present")
			return
		}
		if _, ok := f.class(name); ok {
			f.writeError(w, http.StatusUnprocessableEntity, "class name \""+name+"\" already exists")
			return
		}
		f.putClass(name, c)
		f.writeJSON(w, http.StatusOK, c)

	case strings.HasPrefix(path, "/v1/schema/"):
		name := strings.TrimPrefix(path, "/v1/schema/")
		switch r.Method {
		case http.MethodGet:
			c, ok := f.class(name)
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			f.writeJSON(w, http.StatusOK, c)
		case http.MethodDelete:
			f.mu.Lock()
			delete(f.classes, name)
			f.mu.Unlock()
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	default:
		f.writeJSON(w, http.StatusOK, map[string]any{})
	}
}
