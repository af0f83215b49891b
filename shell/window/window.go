package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling for the host shell.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetSelectCallback sets the callback for the "select" gesture. On desktop the
	// gesture is mapped to left mouse press and the space key; on a headset it maps
	// to the controller trigger.
	//
	// Parameters:
	//   - callback: function invoked once per select gesture
	SetSelectCallback(callback func())

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	// The loop sleeps in the platform event wait; use Wake to force an iteration.
	ProcessMessages()

	// Wake posts an empty event to the message loop so it runs another iteration
	// promptly. Safe to call from any goroutine; never blocks. This is the
	// scheduling hint the embedded engine's wakeup callback relies on.
	Wake()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// ContentScale returns the window's content scale (pixel density) factor.
	//
	// Returns:
	//   - float32: the content scale, 1.0 on standard-DPI displays
	ContentScale() float32
}

// shellWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type shellWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	// onSelect is called once per select gesture.
	onSelect func()
}

var _ Window = &shellWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &shellWindow{
		title:  "Immersive Shell",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *shellWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *shellWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *shellWindow) SetSelectCallback(callback func()) {
	w.onSelect = callback
}

func (w *shellWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *shellWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *shellWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *shellWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *shellWindow) Wake() {
	platformWake()
}

func (w *shellWindow) Width() int {
	return w.width
}

func (w *shellWindow) Height() int {
	return w.height
}

func (w *shellWindow) ContentScale() float32 {
	return platformContentScale(w)
}
