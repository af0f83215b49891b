package embed

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// defaultLibraryName is the shared object exposing the engine's embedding
// entry points.
const defaultLibraryName = "libsimpleservo.so"

// InstanceOptions is the option record handed to the engine's initialization
// entry point.
type InstanceOptions struct {
	URL                  string
	Width                int
	Height               int
	Density              float32
	SubpixelAntialiasing bool
	VRPointer            uintptr
}

// engineABI abstracts the engine's C embedding surface so the bridge can be
// exercised without loading the real shared library.
type engineABI interface {
	// Init calls the engine's initialization entry point. Callbacks may fire
	// synchronously before Init returns.
	Init(opts InstanceOptions) error

	// PerformUpdates runs one iteration of the engine's internal event loop.
	PerformUpdates()

	// Resize notifies the engine of a new viewport size in pixels.
	Resize(width, height int)

	// Deinit tears the engine instance down.
	Deinit()
}

// cInstanceOptions mirrors the engine's C options struct. Field order and
// padding must match the ABI exactly.
type cInstanceOptions struct {
	url                  *byte
	width                int32
	height               int32
	density              float32
	subpixelAntialiasing uint8
	_                    [3]byte
	vrPointer            uintptr
}

// cCallbackTable mirrors the engine's C callback table: one function pointer
// per event kind, in ABI order.
type cCallbackTable struct {
	onLoadStarted      uintptr
	onLoadEnded        uintptr
	onHistoryChanged   uintptr
	onShutdownComplete uintptr
	onAlert            uintptr
	onTitleChanged     uintptr
	onURLChanged       uintptr
	flush              uintptr
	makeCurrent        uintptr
	onAllowNavigation  uintptr
	onAnimatingChanged uintptr
}

// dlopenEngine is the purego-backed engineABI implementation.
type dlopenEngine struct {
	initWithEGL    func(opts unsafe.Pointer, wakeup uintptr, callbacks unsafe.Pointer) int32
	performUpdates func()
	resize         func(width, height int32)
	deinit         func()
}

var _ engineABI = &dlopenEngine{}

// dlopenEngineABI loads the engine shared library and resolves its embedding
// entry points.
//
// Parameters:
//   - libraryPath: path or soname of the engine library; empty uses the default
//
// Returns:
//   - engineABI: the resolved ABI
//   - error: an error if the library or a symbol cannot be resolved
func dlopenEngineABI(libraryPath string) (engineABI, error) {
	if libraryPath == "" {
		libraryPath = defaultLibraryName
	}
	lib, err := purego.Dlopen(libraryPath, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("loading engine library %q: %w", libraryPath, err)
	}

	e := &dlopenEngine{}
	purego.RegisterLibFunc(&e.initWithEGL, lib, "init_with_egl")
	purego.RegisterLibFunc(&e.performUpdates, lib, "perform_updates")
	purego.RegisterLibFunc(&e.resize, lib, "resize")
	purego.RegisterLibFunc(&e.deinit, lib, "deinit")
	return e, nil
}

func (e *dlopenEngine) Init(opts InstanceOptions) error {
	urlBytes := append([]byte(opts.URL), 0)
	subpixel := uint8(0)
	if opts.SubpixelAntialiasing {
		subpixel = 1
	}
	cOpts := cInstanceOptions{
		url:                  &urlBytes[0],
		width:                int32(opts.Width),
		height:               int32(opts.Height),
		density:              opts.Density,
		subpixelAntialiasing: subpixel,
		vrPointer:            opts.VRPointer,
	}
	table := newCallbackTable()

	rc := e.initWithEGL(unsafe.Pointer(&cOpts), wakeupCallbackPtr(), unsafe.Pointer(table))
	runtime.KeepAlive(urlBytes)
	runtime.KeepAlive(&cOpts)
	runtime.KeepAlive(table)
	if rc != 0 {
		return fmt.Errorf("engine initialization failed with code %d", rc)
	}
	return nil
}

func (e *dlopenEngine) PerformUpdates() {
	e.performUpdates()
}

func (e *dlopenEngine) Resize(width, height int) {
	e.resize(int32(width), int32(height))
}

func (e *dlopenEngine) Deinit() {
	e.deinit()
}

// goString converts a NUL-terminated UTF-8 C string into a Go string.
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Pointer(ptr + uintptr(n))) != 0 {
		n++
	}
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i] = *(*byte)(unsafe.Pointer(ptr + uintptr(i)))
	}
	return string(buf)
}
