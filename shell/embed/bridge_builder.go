package embed

import "go.uber.org/zap"

// bridgeConfig collects construction-time settings for a Bridge.
type bridgeConfig struct {
	opts        InstanceOptions
	libraryPath string
	log         *zap.Logger

	// abi overrides the dlopen-backed ABI. Used by lifecycle tests.
	abi engineABI
}

func newBridgeConfig() *bridgeConfig {
	return &bridgeConfig{
		opts: InstanceOptions{
			URL:     "about:blank",
			Width:   1280,
			Height:  720,
			Density: 1.0,
		},
		log: zap.NewNop(),
	}
}

type BridgeBuilderOption func(*bridgeConfig)

// WithURL sets the initial URL the engine loads.
//
// Parameters:
//   - url: the initial URL
//
// Returns:
//   - BridgeBuilderOption: the option to apply to the bridge
func WithURL(url string) BridgeBuilderOption {
	return func(c *bridgeConfig) {
		if url != "" {
			c.opts.URL = url
		}
	}
}

// WithViewportSize sets the initial viewport size in pixels.
//
// Parameters:
//   - width: the viewport width in pixels
//   - height: the viewport height in pixels
//
// Returns:
//   - BridgeBuilderOption: the option to apply to the bridge
func WithViewportSize(width, height int) BridgeBuilderOption {
	return func(c *bridgeConfig) {
		if width > 0 && height > 0 {
			c.opts.Width = width
			c.opts.Height = height
		}
	}
}

// WithDensity sets the pixel density reported to the engine.
//
// Parameters:
//   - density: the device pixel ratio
//
// Returns:
//   - BridgeBuilderOption: the option to apply to the bridge
func WithDensity(density float32) BridgeBuilderOption {
	return func(c *bridgeConfig) {
		if density > 0 {
			c.opts.Density = density
		}
	}
}

// WithSubpixelAntialiasing enables subpixel text antialiasing in the engine.
//
// Returns:
//   - BridgeBuilderOption: the option to apply to the bridge
func WithSubpixelAntialiasing() BridgeBuilderOption {
	return func(c *bridgeConfig) {
		c.opts.SubpixelAntialiasing = true
	}
}

// WithVRPointer passes an opaque VR compositor handle to the engine.
//
// Parameters:
//   - ptr: the handle, or 0 for none
//
// Returns:
//   - BridgeBuilderOption: the option to apply to the bridge
func WithVRPointer(ptr uintptr) BridgeBuilderOption {
	return func(c *bridgeConfig) {
		c.opts.VRPointer = ptr
	}
}

// WithLibraryPath overrides the engine shared-library path.
//
// Parameters:
//   - path: path or soname of the engine library
//
// Returns:
//   - BridgeBuilderOption: the option to apply to the bridge
func WithLibraryPath(path string) BridgeBuilderOption {
	return func(c *bridgeConfig) {
		if path != "" {
			c.libraryPath = path
		}
	}
}

// WithBridgeLogger sets the logger for bridge lifecycle diagnostics.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - BridgeBuilderOption: the option to apply to the bridge
func WithBridgeLogger(log *zap.Logger) BridgeBuilderOption {
	return func(c *bridgeConfig) {
		if log != nil {
			c.log = log
		}
	}
}
