package diag

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// StateSource exposes the shell state the diagnostics endpoint reports.
type StateSource interface {
	// Title returns the last page title reported by the engine.
	Title() string

	// URL returns the last page URL reported by the engine.
	URL() string

	// History returns the last back/forward availability.
	History() (bool, bool)

	// Animating reports whether the page is animating.
	Animating() bool

	// HologramReady reports whether the hologram's device resources are loaded.
	HologramReady() bool
}

// status is the JSON document served by GET /status.
type status struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	CanGoBack     bool   `json:"canGoBack"`
	CanGoForward  bool   `json:"canGoForward"`
	Animating     bool   `json:"animating"`
	HologramReady bool   `json:"hologramReady"`
}

// server is the implementation of the Server interface.
type server struct {
	src StateSource
	log *zap.Logger
	srv *http.Server
}

// Server is an opt-in local HTTP endpoint reporting live shell state. It is
// never started unless explicitly configured with an address.
type Server interface {
	// Start begins serving in a background goroutine.
	Start()

	// Close shuts the listener down.
	//
	// Returns:
	//   - error: an error if the listener fails to close
	Close() error
}

var _ Server = &server{}

// NewServer creates a diagnostics server bound to addr.
//
// Parameters:
//   - addr: the listen address, e.g. "127.0.0.1:9222"
//   - src: the state source queried per request
//   - log: the logger for request and lifecycle diagnostics
//
// Returns:
//   - Server: the configured server, not yet started
func NewServer(addr string, src StateSource, log *zap.Logger) Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &server{src: src, log: log}

	r := mux.NewRouter()
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      handlers.LoggingHandler(&zapLogWriter{log: log}, r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return s
}

func (s *server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("diagnostics server failed", zap.Error(err))
		}
	}()
	s.log.Info("diagnostics server listening", zap.String("addr", s.srv.Addr))
}

func (s *server) Close() error {
	return s.srv.Close()
}

func (s *server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	back, forward := s.src.History()
	doc := status{
		Title:         s.src.Title(),
		URL:           s.src.URL(),
		CanGoBack:     back,
		CanGoForward:  forward,
		Animating:     s.src.Animating(),
		HologramReady: s.src.HologramReady(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&doc); err != nil {
		s.log.Error("encoding status response", zap.Error(err))
	}
}

// zapLogWriter adapts the access-log stream onto the structured logger.
type zapLogWriter struct {
	log *zap.Logger
}

func (w *zapLogWriter) Write(p []byte) (int, error) {
	w.log.Debug("diag request", zap.ByteString("accessLog", p))
	return len(p), nil
}
