package shell

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/holo-go/shell/diag"
	"github.com/Carmen-Shannon/holo-go/shell/embed"
	"github.com/Carmen-Shannon/holo-go/shell/hologram"
	"github.com/Carmen-Shannon/holo-go/shell/input"
	"github.com/Carmen-Shannon/holo-go/shell/renderer"
	"github.com/Carmen-Shannon/holo-go/shell/window"
	"go.uber.org/zap"
)

// GazeSource samples the viewer's current head pose. On a headset this reads
// the tracking system; on desktop it is a fixed forward-facing pose.
type GazeSource func() *hologram.GazePose

// shell implements the Shell interface.
// Coordinates the window message loop, the render loop, and the embedded
// engine's event loop.
type shell struct {
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window window.Window
	r      renderer.Renderer
	holo   hologram.Hologram
	latch  input.Latch
	bridge embed.Bridge
	diag   diag.Server
	log    *zap.Logger

	gazeSource GazeSource
	allowNav   func(url string) bool

	// engineWake is set by the engine's wakeup callback and consumed once per
	// frame; when set, the frame runs PerformUpdates after presenting.
	engineWake atomic.Bool

	start time.Time
}

// Shell is the immersive host: it owns the window, the renderer, the
// world-locked hologram, the input latch, and (optionally) the embedded
// engine bridge, and drives them all from one frame loop.
type Shell interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Hologram returns the world-locked hologram.
	//
	// Returns:
	//   - hologram.Hologram: the hologram instance
	Hologram() hologram.Hologram

	// Run starts the render loop and blocks in the window message loop until
	// the window closes or Quit is called.
	Run()

	// Quit signals all shell goroutines to stop and shuts the shell down.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Shell = &shell{}

// The shell is its own host delegate and diagnostics source.
var (
	_ embed.HostDelegate = &shell{}
	_ diag.StateSource   = &shell{}
)

// NewShell creates the shell: window, renderer, hologram, and input latch,
// plus the engine bridge and diagnostics server when configured. The
// hologram's device-resource load is started immediately.
//
// Parameters:
//   - options: functional options for shell configuration
//
// Returns:
//   - Shell: the configured shell, ready to Run
//   - error: an error if the engine bridge fails to initialize
func NewShell(options ...ShellBuilderOption) (Shell, error) {
	cfg := newShellConfig()
	for _, opt := range options {
		opt(cfg)
	}

	s := &shell{
		quitChannel: make(chan struct{}),
		log:         cfg.log,
		gazeSource:  cfg.gazeSource,
		allowNav:    cfg.allowNav,
	}

	s.window = window.NewWindow(cfg.windowOptions...)
	s.r = renderer.NewRenderer(renderer.BackendTypeWGPU, s.window, cfg.rendererOptions...)
	s.holo = hologram.NewHologram(s.r,
		hologram.WithLogger(cfg.log),
	)
	s.latch = input.NewLatch()

	s.window.SetResizeCallback(func(width, height int) {
		s.r.Resize(width, height)
		if s.bridge != nil {
			s.bridge.SetSize(width, height)
		}
	})
	s.window.SetSelectCallback(func() {
		pose := s.gazeSource()
		if pose == nil {
			return
		}
		s.latch.Record(&input.Event{
			Timestamp: time.Now(),
			Position:  pose.Position,
			Forward:   pose.Forward,
		})
	})

	if cfg.engineURL != "" {
		bridgeOpts := append([]embed.BridgeBuilderOption{
			embed.WithURL(cfg.engineURL),
			embed.WithViewportSize(s.window.Width(), s.window.Height()),
			embed.WithDensity(s.window.ContentScale()),
			embed.WithBridgeLogger(cfg.log),
		}, cfg.bridgeOptions...)
		b, err := embed.NewBridge(s, bridgeOpts...)
		if err != nil {
			return nil, err
		}
		s.bridge = b
	}

	if cfg.diagAddr != "" {
		s.diag = diag.NewServer(cfg.diagAddr, s, cfg.log)
	}

	s.holo.CreateDeviceDependentResources()
	return s, nil
}

func (s *shell) Window() window.Window {
	return s.window
}

func (s *shell) Hologram() hologram.Hologram {
	return s.holo
}

func (s *shell) Run() {
	s.running = true
	s.start = time.Now()

	if s.diag != nil {
		s.diag.Start()
	}

	s.wg.Add(2)
	go s.handleRender()
	go s.handleQuit()

	s.window.ProcessMessages()
	s.signalQuit()
	s.wg.Wait()
	s.teardown()
}

func (s *shell) Quit() {
	s.signalQuit()
}

func (s *shell) signalQuit() {
	s.quitOnce.Do(func() {
		s.running = false
		close(s.quitChannel)
		// Unblock the message loop if it is sleeping in the event wait.
		s.window.Wake()
	})
}

// handleRender runs the frame loop in its own goroutine. Each iteration:
// drain the engine's render-thread queue, consume at most one select gesture
// (re-placing the hologram along the current gaze), advance the animation,
// draw, present, then pump the engine if it asked to be woken.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (s *shell) handleRender() {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("render goroutine recovered from panic", zap.Any("panic", r))
			s.signalQuit()
		}
	}()

	for {
		select {
		case <-s.quitChannel:
			return
		default:
			if s.bridge != nil {
				s.bridge.DrainRenderQueue()
			}

			if ev := s.latch.CheckForInput(); ev != nil {
				s.holo.PositionHologram(&hologram.GazePose{
					Position: ev.Position,
					Forward:  ev.Forward,
				})
			}

			s.holo.Update(time.Since(s.start).Seconds())

			if err := s.r.BeginFrame(); err == nil {
				s.holo.Render()
				s.r.EndFrame()
				s.r.Present()
			}

			if s.bridge != nil && s.engineWake.Swap(false) {
				s.bridge.PerformUpdates()
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed.
func (s *shell) handleQuit() {
	defer s.wg.Done()
	<-s.quitChannel
}

func (s *shell) teardown() {
	if s.diag != nil {
		if err := s.diag.Close(); err != nil {
			s.log.Error("closing diagnostics server", zap.Error(err))
		}
	}
	if s.bridge != nil {
		if err := s.bridge.Close(); err != nil {
			s.log.Error("closing engine bridge", zap.Error(err))
		}
	}
	s.holo.ReleaseDeviceDependentResources()
	if err := s.window.Close(); err != nil {
		s.log.Error("closing window", zap.Error(err))
	}
}

// HostDelegate — the engine's event sinks.

func (s *shell) OnLoadStarted() {
	s.log.Info("engine load started")
}

func (s *shell) OnLoadEnded() {
	s.log.Info("engine load ended")
}

func (s *shell) OnHistoryChanged(canGoBack, canGoForward bool) {
	s.log.Debug("engine history changed",
		zap.Bool("canGoBack", canGoBack),
		zap.Bool("canGoForward", canGoForward))
}

func (s *shell) OnShutdownComplete() {
	s.log.Info("engine shutdown complete")
	s.signalQuit()
}

func (s *shell) OnAlert(text string) {
	s.log.Warn("page alert", zap.String("text", text))
}

func (s *shell) OnTitleChanged(title string) {
	s.log.Debug("page title changed", zap.String("title", title))
}

func (s *shell) OnURLChanged(url string) {
	s.log.Debug("page url changed", zap.String("url", url))
}

func (s *shell) OnAllowNavigation(url string) bool {
	return s.allowNav(url)
}

func (s *shell) OnAnimatingChanged(animating bool) {
	s.log.Debug("page animating changed", zap.Bool("animating", animating))
}

// Flush and MakeCurrent arrive through the bridge's render-thread queue. The
// engine composites into its own surface; nothing extra is presented here.
func (s *shell) Flush() {
	s.log.Debug("engine flush")
}

func (s *shell) MakeCurrent() {
	s.log.Debug("engine make_current")
}

func (s *shell) Wakeup() {
	s.engineWake.Store(true)
	s.window.Wake()
}

// diag.StateSource — live state for the diagnostics endpoint.

func (s *shell) Title() string {
	if s.bridge == nil {
		return ""
	}
	return s.bridge.Title()
}

func (s *shell) URL() string {
	if s.bridge == nil {
		return ""
	}
	return s.bridge.URL()
}

func (s *shell) History() (bool, bool) {
	if s.bridge == nil {
		return false, false
	}
	return s.bridge.History()
}

func (s *shell) Animating() bool {
	if s.bridge == nil {
		return false
	}
	return s.bridge.Animating()
}

func (s *shell) HologramReady() bool {
	return s.holo.Ready()
}
