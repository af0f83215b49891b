package shell

import (
	"github.com/Carmen-Shannon/holo-go/shell/embed"
	"github.com/Carmen-Shannon/holo-go/shell/hologram"
	"github.com/Carmen-Shannon/holo-go/shell/renderer"
	"github.com/Carmen-Shannon/holo-go/shell/window"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// shellConfig collects construction-time settings for a Shell.
type shellConfig struct {
	windowOptions   []window.WindowBuilderOption
	rendererOptions []renderer.RendererBuilderOption
	bridgeOptions   []embed.BridgeBuilderOption

	engineURL string
	diagAddr  string
	log       *zap.Logger

	gazeSource GazeSource
	allowNav   func(url string) bool
}

func newShellConfig() *shellConfig {
	return &shellConfig{
		log: zap.NewNop(),
		// Desktop default: the viewer faces -Z from the origin.
		gazeSource: func() *hologram.GazePose {
			return &hologram.GazePose{
				Position: mgl32.Vec3{0, 0, 0},
				Forward:  mgl32.Vec3{0, 0, -1},
			}
		},
		allowNav: func(string) bool { return true },
	}
}

type ShellBuilderOption func(*shellConfig)

// WithWindowOptions forwards options to the shell's window.
//
// Parameters:
//   - options: window options to apply
//
// Returns:
//   - ShellBuilderOption: the option to apply to the shell
func WithWindowOptions(options ...window.WindowBuilderOption) ShellBuilderOption {
	return func(c *shellConfig) {
		c.windowOptions = append(c.windowOptions, options...)
	}
}

// WithRendererOptions forwards options to the shell's renderer.
//
// Parameters:
//   - options: renderer options to apply
//
// Returns:
//   - ShellBuilderOption: the option to apply to the shell
func WithRendererOptions(options ...renderer.RendererBuilderOption) ShellBuilderOption {
	return func(c *shellConfig) {
		c.rendererOptions = append(c.rendererOptions, options...)
	}
}

// WithEngine enables the embedded engine, loading the given URL at startup.
// Without this option the shell runs the hologram alone.
//
// Parameters:
//   - url: the initial URL
//   - options: additional bridge options
//
// Returns:
//   - ShellBuilderOption: the option to apply to the shell
func WithEngine(url string, options ...embed.BridgeBuilderOption) ShellBuilderOption {
	return func(c *shellConfig) {
		c.engineURL = url
		c.bridgeOptions = append(c.bridgeOptions, options...)
	}
}

// WithDiagAddr enables the local diagnostics endpoint on the given address.
//
// Parameters:
//   - addr: the listen address, e.g. "127.0.0.1:9222"
//
// Returns:
//   - ShellBuilderOption: the option to apply to the shell
func WithDiagAddr(addr string) ShellBuilderOption {
	return func(c *shellConfig) {
		c.diagAddr = addr
	}
}

// WithLogger sets the logger used across the shell's components.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - ShellBuilderOption: the option to apply to the shell
func WithLogger(log *zap.Logger) ShellBuilderOption {
	return func(c *shellConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithGazeSource sets the head-pose sampler used for gesture placement.
//
// Parameters:
//   - source: the pose sampler; ignored when nil
//
// Returns:
//   - ShellBuilderOption: the option to apply to the shell
func WithGazeSource(source GazeSource) ShellBuilderOption {
	return func(c *shellConfig) {
		if source != nil {
			c.gazeSource = source
		}
	}
}

// WithNavigationPolicy sets the synchronous navigation filter. The default
// allows every navigation.
//
// Parameters:
//   - policy: returns true to allow navigating to url
//
// Returns:
//   - ShellBuilderOption: the option to apply to the shell
func WithNavigationPolicy(policy func(url string) bool) ShellBuilderOption {
	return func(c *shellConfig) {
		if policy != nil {
			c.allowNav = policy
		}
	}
}
