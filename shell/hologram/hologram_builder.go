package hologram

import "go.uber.org/zap"

type HologramBuilderOption func(*hologram)

// WithAnimator sets the animator driving the hologram's per-frame transform.
//
// Parameters:
//   - anim: the animator to use
//
// Returns:
//   - HologramBuilderOption: the option to apply to the hologram
func WithAnimator(anim Animator) HologramBuilderOption {
	return func(h *hologram) {
		if anim != nil {
			h.anim = anim
		}
	}
}

// WithLogger sets the logger used for load and draw diagnostics.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - HologramBuilderOption: the option to apply to the hologram
func WithLogger(log *zap.Logger) HologramBuilderOption {
	return func(h *hologram) {
		if log != nil {
			h.log = log
		}
	}
}
