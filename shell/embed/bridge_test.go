package embed

import (
	"errors"
	"sync"
	"testing"
)

var errInit = errors.New("init failed")

// fakeEngine records ABI calls. An optional onInit hook simulates callbacks
// firing synchronously during engine initialization.
type fakeEngine struct {
	mu sync.Mutex

	initOpts []InstanceOptions
	resizes  [][2]int
	updates  int
	deinits  int

	onInit func()
	initErr error
}

var _ engineABI = &fakeEngine{}

func (f *fakeEngine) Init(opts InstanceOptions) error {
	f.mu.Lock()
	f.initOpts = append(f.initOpts, opts)
	f.mu.Unlock()
	if f.onInit != nil {
		f.onInit()
	}
	return f.initErr
}

func (f *fakeEngine) PerformUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
}

func (f *fakeEngine) Resize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resizes = append(f.resizes, [2]int{width, height})
}

func (f *fakeEngine) Deinit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deinits++
}

// recordingDelegate records every delegate call.
type recordingDelegate struct {
	mu sync.Mutex

	loadStarted  int
	loadEnded    int
	histories    [][2]bool
	shutdowns    int
	alerts       []string
	titles       []string
	urls         []string
	animating    []bool
	flushes      int
	makeCurrents int
	wakeups      int

	allowNav func(url string) bool
}

var _ HostDelegate = &recordingDelegate{}

func (d *recordingDelegate) OnLoadStarted() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loadStarted++
}

func (d *recordingDelegate) OnLoadEnded() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loadEnded++
}

func (d *recordingDelegate) OnHistoryChanged(canGoBack, canGoForward bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.histories = append(d.histories, [2]bool{canGoBack, canGoForward})
}

func (d *recordingDelegate) OnShutdownComplete() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shutdowns++
}

func (d *recordingDelegate) OnAlert(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, text)
}

func (d *recordingDelegate) OnTitleChanged(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.titles = append(d.titles, title)
}

func (d *recordingDelegate) OnURLChanged(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.urls = append(d.urls, url)
}

func (d *recordingDelegate) OnAllowNavigation(url string) bool {
	if d.allowNav != nil {
		return d.allowNav(url)
	}
	return true
}

func (d *recordingDelegate) OnAnimatingChanged(animating bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.animating = append(d.animating, animating)
}

func (d *recordingDelegate) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flushes++
}

func (d *recordingDelegate) MakeCurrent() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.makeCurrents++
}

func (d *recordingDelegate) Wakeup() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.wakeups++
}

// newTestBridge builds a bridge around a fake ABI. The caller must Close it
// so the global instance slot is free for the next test.
func newTestBridge(t *testing.T, abi *fakeEngine, delegate *recordingDelegate, options ...BridgeBuilderOption) *bridge {
	t.Helper()
	cfg := newBridgeConfig()
	cfg.abi = abi
	for _, opt := range options {
		opt(cfg)
	}
	b, err := newBridge(abi, delegate, cfg)
	if err != nil {
		t.Fatalf("newBridge: %v", err)
	}
	return b
}

func TestBridgeLifecycleOwnsGlobalSlot(t *testing.T) {
	abi := &fakeEngine{}
	b := newTestBridge(t, abi, &recordingDelegate{},
		WithURL("https://example.com"),
		WithViewportSize(800, 600),
	)

	if activeBridge.Load() != b {
		t.Fatal("global instance slot not set after construction")
	}

	abi.mu.Lock()
	opts := abi.initOpts
	abi.mu.Unlock()
	if len(opts) != 1 {
		t.Fatalf("Init called %d times, want 1", len(opts))
	}
	if opts[0].URL != "https://example.com" || opts[0].Width != 800 || opts[0].Height != 600 {
		t.Errorf("Init options = %+v, want url https://example.com 800x600", opts[0])
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if activeBridge.Load() != nil {
		t.Error("global instance slot not cleared after Close")
	}

	abi.mu.Lock()
	deinits := abi.deinits
	abi.mu.Unlock()
	if deinits != 1 {
		t.Errorf("Deinit called %d times, want 1", deinits)
	}
}

func TestSlotIsSetBeforeInit(t *testing.T) {
	abi := &fakeEngine{}
	// The engine fires a callback synchronously inside init; it must already
	// be able to reach the instance through the global slot.
	abi.onInit = func() {
		live := activeBridge.Load()
		if live == nil {
			t.Fatal("global instance slot empty during engine init")
		}
		live.handleTitleChanged("booting")
	}
	delegate := &recordingDelegate{}
	b := newTestBridge(t, abi, delegate)
	defer b.Close()

	delegate.mu.Lock()
	titles := delegate.titles
	delegate.mu.Unlock()
	if len(titles) != 1 || titles[0] != "booting" {
		t.Errorf("titles = %v, want [booting]", titles)
	}
	if got := b.Title(); got != "booting" {
		t.Errorf("Title() = %q, want booting", got)
	}
}

func TestSecondBridgeRejected(t *testing.T) {
	abi := &fakeEngine{}
	b := newTestBridge(t, abi, &recordingDelegate{})
	defer b.Close()

	cfg := newBridgeConfig()
	if _, err := newBridge(&fakeEngine{}, &recordingDelegate{}, cfg); err == nil {
		t.Error("second live bridge accepted, want error")
	}
}

func TestSetSizeIdempotent(t *testing.T) {
	abi := &fakeEngine{}
	b := newTestBridge(t, abi, &recordingDelegate{}, WithViewportSize(800, 600))
	defer b.Close()

	b.SetSize(1024, 768)
	b.SetSize(1024, 768)
	b.SetSize(1024, 768)

	abi.mu.Lock()
	resizes := abi.resizes
	abi.mu.Unlock()
	if len(resizes) != 1 {
		t.Fatalf("Resize called %d times, want 1", len(resizes))
	}
	if resizes[0] != [2]int{1024, 768} {
		t.Errorf("Resize args = %v, want [1024 768]", resizes[0])
	}

	// Only genuine size changes reach the engine.
	b.SetSize(800, 600)
	b.SetSize(1024, 768)
	abi.mu.Lock()
	count := len(abi.resizes)
	abi.mu.Unlock()
	if count != 3 {
		t.Errorf("Resize called %d times after real changes, want 3", count)
	}
}

func TestCallbackForwarding(t *testing.T) {
	abi := &fakeEngine{}
	delegate := &recordingDelegate{}
	b := newTestBridge(t, abi, delegate)
	defer b.Close()

	b.handleLoadStarted()
	b.handleLoadEnded()
	b.handleHistoryChanged(true, false)
	b.handleAlert("hi")
	b.handleURLChanged("https://example.com/next")
	b.handleAnimatingChanged(true)
	b.handleShutdownComplete()

	delegate.mu.Lock()
	defer delegate.mu.Unlock()
	if delegate.loadStarted != 1 || delegate.loadEnded != 1 || delegate.shutdowns != 1 {
		t.Errorf("load/shutdown counts = %d/%d/%d, want 1/1/1",
			delegate.loadStarted, delegate.loadEnded, delegate.shutdowns)
	}
	if len(delegate.histories) != 1 || delegate.histories[0] != [2]bool{true, false} {
		t.Errorf("histories = %v, want [[true false]]", delegate.histories)
	}
	if len(delegate.alerts) != 1 || delegate.alerts[0] != "hi" {
		t.Errorf("alerts = %v, want [hi]", delegate.alerts)
	}
	if len(delegate.urls) != 1 || delegate.urls[0] != "https://example.com/next" {
		t.Errorf("urls = %v, want the forwarded url", delegate.urls)
	}

	back, forward := b.History()
	if !back || forward {
		t.Errorf("History() = %v, %v, want true, false", back, forward)
	}
	if got := b.URL(); got != "https://example.com/next" {
		t.Errorf("URL() = %q, want the last reported url", got)
	}
	if !b.Animating() {
		t.Error("Animating() = false, want true")
	}
}

func TestAllowNavigationReturnsDelegateDecision(t *testing.T) {
	abi := &fakeEngine{}
	delegate := &recordingDelegate{
		allowNav: func(url string) bool { return url == "https://example.com/ok" },
	}
	b := newTestBridge(t, abi, delegate)
	defer b.Close()

	if !b.handleAllowNavigation("https://example.com/ok") {
		t.Error("navigation to allowed url blocked")
	}
	if b.handleAllowNavigation("https://example.com/blocked") {
		t.Error("navigation to blocked url allowed")
	}
}

func TestFlushAndMakeCurrentRunOnDrain(t *testing.T) {
	abi := &fakeEngine{}
	delegate := &recordingDelegate{}
	b := newTestBridge(t, abi, delegate)
	defer b.Close()

	b.handleFlush()
	b.handleMakeCurrent()
	b.handleFlush()

	delegate.mu.Lock()
	flushes, makeCurrents, wakeups := delegate.flushes, delegate.makeCurrents, delegate.wakeups
	delegate.mu.Unlock()
	if flushes != 0 || makeCurrents != 0 {
		t.Fatalf("delegate ran before drain: flushes=%d makeCurrents=%d", flushes, makeCurrents)
	}
	if wakeups != 3 {
		t.Errorf("wakeups = %d, want 3 (one per queued request)", wakeups)
	}

	b.DrainRenderQueue()
	delegate.mu.Lock()
	flushes, makeCurrents = delegate.flushes, delegate.makeCurrents
	delegate.mu.Unlock()
	if flushes != 2 || makeCurrents != 1 {
		t.Errorf("after drain: flushes=%d makeCurrents=%d, want 2 and 1", flushes, makeCurrents)
	}

	// The queue is empty once drained.
	b.DrainRenderQueue()
	delegate.mu.Lock()
	flushes = delegate.flushes
	delegate.mu.Unlock()
	if flushes != 2 {
		t.Errorf("drain on empty queue reran requests: flushes=%d", flushes)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	abi := &fakeEngine{}
	b := newTestBridge(t, abi, &recordingDelegate{})

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	abi.mu.Lock()
	deinits := abi.deinits
	abi.mu.Unlock()
	if deinits != 1 {
		t.Errorf("Deinit called %d times, want 1", deinits)
	}

	// Operations after close are dropped.
	b.SetSize(9999, 9999)
	b.PerformUpdates()
	abi.mu.Lock()
	resizes, updates := len(abi.resizes), abi.updates
	abi.mu.Unlock()
	if resizes != 0 || updates != 0 {
		t.Errorf("closed bridge reached the engine: resizes=%d updates=%d", resizes, updates)
	}
}

func TestInitFailureClearsSlot(t *testing.T) {
	abi := &fakeEngine{initErr: errInit}
	cfg := newBridgeConfig()
	if _, err := newBridge(abi, &recordingDelegate{}, cfg); err == nil {
		t.Fatal("newBridge succeeded with failing init")
	}
	if activeBridge.Load() != nil {
		t.Error("global instance slot left set after failed init")
	}
}
