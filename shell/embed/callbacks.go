package embed

import (
	"sync"
	"sync/atomic"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"
)

// activeBridge is the process-wide engine-instance slot. The engine's C
// callbacks carry no user-data pointer, so the adapters below have no other
// way to reach the live bridge. Set before the engine's init entry point is
// called (callbacks may fire during init) and cleared before deinit.
var activeBridge atomic.Pointer[bridge]

// activeBridgeFor returns the live bridge for a callback, or nil after
// logging. A callback arriving while the slot is empty is an engine bug and
// is dropped, not handled.
func activeBridgeFor(name string) *bridge {
	b := activeBridge.Load()
	if b == nil {
		zap.L().Error("engine callback fired with no live instance", zap.String("callback", name))
	}
	return b
}

// Callback pointers are created once per process. purego callbacks are a
// scarce resource and the adapters below never change.
var (
	callbackOnce  sync.Once
	callbackTable cCallbackTable
	wakeupPtr     uintptr
)

func initCallbacks() {
	callbackOnce.Do(func() {
		callbackTable = cCallbackTable{
			onLoadStarted: purego.NewCallback(func() {
				if b := activeBridgeFor("on_load_started"); b != nil {
					b.handleLoadStarted()
				}
			}),
			onLoadEnded: purego.NewCallback(func() {
				if b := activeBridgeFor("on_load_ended"); b != nil {
					b.handleLoadEnded()
				}
			}),
			onHistoryChanged: purego.NewCallback(func(canGoBack, canGoForward uintptr) {
				if b := activeBridgeFor("on_history_changed"); b != nil {
					b.handleHistoryChanged(canGoBack != 0, canGoForward != 0)
				}
			}),
			onShutdownComplete: purego.NewCallback(func() {
				if b := activeBridgeFor("on_shutdown_complete"); b != nil {
					b.handleShutdownComplete()
				}
			}),
			onAlert: purego.NewCallback(func(text uintptr) {
				if b := activeBridgeFor("on_alert"); b != nil {
					b.handleAlert(goString(text))
				}
			}),
			onTitleChanged: purego.NewCallback(func(title uintptr) {
				if b := activeBridgeFor("on_title_changed"); b != nil {
					b.handleTitleChanged(goString(title))
				}
			}),
			onURLChanged: purego.NewCallback(func(url uintptr) {
				if b := activeBridgeFor("on_url_changed"); b != nil {
					b.handleURLChanged(goString(url))
				}
			}),
			flush: purego.NewCallback(func() {
				if b := activeBridgeFor("flush"); b != nil {
					b.handleFlush()
				}
			}),
			makeCurrent: purego.NewCallback(func() {
				if b := activeBridgeFor("make_current"); b != nil {
					b.handleMakeCurrent()
				}
			}),
			onAllowNavigation: purego.NewCallback(func(url uintptr) uintptr {
				b := activeBridgeFor("on_allow_navigation")
				if b == nil {
					return 0
				}
				if b.handleAllowNavigation(goString(url)) {
					return 1
				}
				return 0
			}),
			onAnimatingChanged: purego.NewCallback(func(animating uintptr) {
				if b := activeBridgeFor("on_animating_changed"); b != nil {
					b.handleAnimatingChanged(animating != 0)
				}
			}),
		}
		wakeupPtr = purego.NewCallback(func() {
			if b := activeBridgeFor("wakeup"); b != nil {
				b.handleWakeup()
			}
		})
	})
}

// newCallbackTable returns the shared callback table for the engine's init
// entry point.
func newCallbackTable() *cCallbackTable {
	initCallbacks()
	return &callbackTable
}

// wakeupCallbackPtr returns the wakeup function pointer passed separately to
// the engine's init entry point.
func wakeupCallbackPtr() uintptr {
	initCallbacks()
	return wakeupPtr
}
