package hologram

// AnimatorBuilderOption is a functional option for configuring an animator.
// Use the With* functions to create options.
type AnimatorBuilderOption func(a *animator)

// WithRotationRate sets the hologram's rotation rate around the vertical axis.
// Values <= 0 are ignored (the default 45°/s is kept).
//
// Parameters:
//   - degreesPerSecond: rotation rate in degrees per second
//
// Returns:
//   - AnimatorBuilderOption: option function to apply
func WithRotationRate(degreesPerSecond float64) AnimatorBuilderOption {
	return func(a *animator) {
		if degreesPerSecond > 0 {
			a.degreesPerSecond = degreesPerSecond
		}
	}
}

// WithPlacementDistance sets how far in front of the head the hologram is
// placed when re-positioned from a gaze pose. Values <= 0 are ignored.
//
// Parameters:
//   - meters: placement distance in meters
//
// Returns:
//   - AnimatorBuilderOption: option function to apply
func WithPlacementDistance(meters float32) AnimatorBuilderOption {
	return func(a *animator) {
		if meters > 0 {
			a.placementDistance = meters
		}
	}
}
