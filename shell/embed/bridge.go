package embed

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// renderQueueDepth bounds the number of engine requests waiting for the
// render thread. Flush and make_current are coalescing by nature, so a
// shallow queue is enough; overflow drops the request and logs.
const renderQueueDepth = 64

// bridge is the implementation of the Bridge interface.
type bridge struct {
	// mu guards the size, last-seen page state, and the closed flag.
	mu *sync.Mutex

	abi      engineABI
	delegate HostDelegate
	log      *zap.Logger

	opts InstanceOptions

	// renderQueue carries engine requests (flush, make_current) that must run
	// on the render thread. Callbacks enqueue; the frame loop drains.
	renderQueue chan func()

	width  int
	height int

	title        string
	url          string
	canGoBack    bool
	canGoForward bool
	animating    bool
	closed       bool
}

// Bridge owns exactly one live embedded-engine instance and forwards
// engine-originated events to a HostDelegate. At most one Bridge may be live
// per process: the engine's callbacks locate the instance through a global
// slot.
type Bridge interface {
	// SetSize notifies the engine of a new viewport size. No-op when the size
	// has not changed.
	//
	// Parameters:
	//   - width: the new viewport width in pixels
	//   - height: the new viewport height in pixels
	SetSize(width, height int)

	// PerformUpdates runs one iteration of the engine's event loop. Call from
	// the host loop after the delegate's Wakeup fires.
	PerformUpdates()

	// DrainRenderQueue runs every queued engine request on the caller's
	// thread. Must be called from the render thread once per frame, before
	// device state is touched.
	DrainRenderQueue()

	// Title returns the last page title reported by the engine.
	//
	// Returns:
	//   - string: the last title, or empty
	Title() string

	// URL returns the last page URL reported by the engine.
	//
	// Returns:
	//   - string: the last URL, or empty
	URL() string

	// History returns the last back/forward availability reported by the engine.
	//
	// Returns:
	//   - bool: true if backward navigation is possible
	//   - bool: true if forward navigation is possible
	History() (bool, bool)

	// Animating reports whether the engine last declared the page animating.
	//
	// Returns:
	//   - bool: true while the page animates
	Animating() bool

	// Close clears the global instance slot, then tears the engine down.
	// Safe to call multiple times.
	//
	// Returns:
	//   - error: always nil; reserved for teardown failures
	Close() error
}

var _ Bridge = &bridge{}

// NewBridge loads the engine library, registers the global instance slot, and
// initializes the engine. The slot is populated before initialization because
// callbacks may fire synchronously during init and have no other way to reach
// the instance.
//
// Parameters:
//   - delegate: the event sink the engine drives; must not be nil
//   - options: functional options to configure the engine instance
//
// Returns:
//   - Bridge: the live bridge
//   - error: an error if another instance is live, the library cannot be
//     loaded, or engine initialization fails
func NewBridge(delegate HostDelegate, options ...BridgeBuilderOption) (Bridge, error) {
	cfg := newBridgeConfig()
	for _, opt := range options {
		opt(cfg)
	}

	abi := cfg.abi
	if abi == nil {
		var err error
		abi, err = dlopenEngineABI(cfg.libraryPath)
		if err != nil {
			return nil, err
		}
	}
	return newBridge(abi, delegate, cfg)
}

// newBridge wires an already-resolved ABI. Split from NewBridge so the
// lifecycle can be driven without loading a real shared library.
func newBridge(abi engineABI, delegate HostDelegate, cfg *bridgeConfig) (*bridge, error) {
	if delegate == nil {
		return nil, fmt.Errorf("a host delegate is required")
	}

	b := &bridge{
		mu:          &sync.Mutex{},
		abi:         abi,
		delegate:    delegate,
		log:         cfg.log,
		opts:        cfg.opts,
		renderQueue: make(chan func(), renderQueueDepth),
		width:       cfg.opts.Width,
		height:      cfg.opts.Height,
	}

	if !activeBridge.CompareAndSwap(nil, b) {
		return nil, fmt.Errorf("an engine instance is already live")
	}
	if err := abi.Init(b.opts); err != nil {
		activeBridge.CompareAndSwap(b, nil)
		return nil, fmt.Errorf("initializing engine: %w", err)
	}

	b.log.Info("engine instance initialized",
		zap.String("url", b.opts.URL),
		zap.Int("width", b.opts.Width),
		zap.Int("height", b.opts.Height))
	return b, nil
}

func (b *bridge) SetSize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || (width == b.width && height == b.height) {
		return
	}
	b.width = width
	b.height = height
	b.abi.Resize(width, height)
}

func (b *bridge) PerformUpdates() {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return
	}
	b.abi.PerformUpdates()
}

func (b *bridge) DrainRenderQueue() {
	for {
		select {
		case fn := <-b.renderQueue:
			fn()
		default:
			return
		}
	}
}

func (b *bridge) Title() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title
}

func (b *bridge) URL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.url
}

func (b *bridge) History() (bool, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.canGoBack, b.canGoForward
}

func (b *bridge) Animating() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.animating
}

func (b *bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	// The slot is cleared before deinit. A callback firing after this point
	// is an engine bug; the adapters drop and log it.
	activeBridge.CompareAndSwap(b, nil)
	b.abi.Deinit()
	b.log.Info("engine instance shut down")
	return nil
}

// enqueueRender queues a request for the render thread. Drops and logs on
// overflow rather than blocking the engine thread.
func (b *bridge) enqueueRender(name string, fn func()) {
	select {
	case b.renderQueue <- fn:
	default:
		b.log.Error("render queue full, dropping engine request", zap.String("request", name))
	}
	// A queued request is useless until the loop runs, so nudge it awake.
	b.delegate.Wakeup()
}

func (b *bridge) handleLoadStarted() {
	b.delegate.OnLoadStarted()
}

func (b *bridge) handleLoadEnded() {
	b.delegate.OnLoadEnded()
}

func (b *bridge) handleHistoryChanged(canGoBack, canGoForward bool) {
	b.mu.Lock()
	b.canGoBack = canGoBack
	b.canGoForward = canGoForward
	b.mu.Unlock()
	b.delegate.OnHistoryChanged(canGoBack, canGoForward)
}

func (b *bridge) handleShutdownComplete() {
	b.delegate.OnShutdownComplete()
}

func (b *bridge) handleAlert(text string) {
	b.delegate.OnAlert(text)
}

func (b *bridge) handleTitleChanged(title string) {
	b.mu.Lock()
	b.title = title
	b.mu.Unlock()
	b.delegate.OnTitleChanged(title)
}

func (b *bridge) handleURLChanged(url string) {
	b.mu.Lock()
	b.url = url
	b.mu.Unlock()
	b.delegate.OnURLChanged(url)
}

func (b *bridge) handleAllowNavigation(url string) bool {
	return b.delegate.OnAllowNavigation(url)
}

func (b *bridge) handleAnimatingChanged(animating bool) {
	b.mu.Lock()
	b.animating = animating
	b.mu.Unlock()
	b.delegate.OnAnimatingChanged(animating)
}

func (b *bridge) handleFlush() {
	b.enqueueRender("flush", b.delegate.Flush)
}

func (b *bridge) handleMakeCurrent() {
	b.enqueueRender("make_current", b.delegate.MakeCurrent)
}

func (b *bridge) handleWakeup() {
	b.delegate.Wakeup()
}
