package diag

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeState is a canned StateSource.
type fakeState struct {
	title, url    string
	back, forward bool
	animating     bool
	ready         bool
}

var _ StateSource = &fakeState{}

func (f *fakeState) Title() string         { return f.title }
func (f *fakeState) URL() string           { return f.url }
func (f *fakeState) History() (bool, bool) { return f.back, f.forward }
func (f *fakeState) Animating() bool       { return f.animating }
func (f *fakeState) HologramReady() bool   { return f.ready }

func TestStatusEndpoint(t *testing.T) {
	src := &fakeState{
		title:   "Example Domain",
		url:     "https://example.com",
		back:    true,
		forward: false,
		ready:   true,
	}
	s := NewServer("127.0.0.1:0", src, nil).(*server)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var doc status
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if doc.Title != src.title || doc.URL != src.url {
		t.Errorf("status = %+v, want title/url from the source", doc)
	}
	if !doc.CanGoBack || doc.CanGoForward {
		t.Errorf("history flags = %v/%v, want true/false", doc.CanGoBack, doc.CanGoForward)
	}
	if !doc.HologramReady {
		t.Error("hologramReady = false, want true")
	}
}

func TestStatusRejectsOtherMethods(t *testing.T) {
	s := NewServer("127.0.0.1:0", &fakeState{}, nil).(*server)

	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /status = %d, want 405", rec.Code)
	}
}
