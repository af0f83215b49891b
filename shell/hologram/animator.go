package hologram

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GazePose is the position and forward direction of the viewer's head at a
// sampling instant. It is the source of world placement for the hologram; the
// spatial-tracking subsystem that produces it is not part of this package.
type GazePose struct {
	// Position is the head position in world space, in meters.
	Position mgl32.Vec3

	// Forward is the normalized head forward direction.
	Forward mgl32.Vec3
}

// animator is the implementation of the Animator interface.
type animator struct {
	// degreesPerSecond is the hologram's rotation rate around the vertical axis.
	degreesPerSecond float64

	// placementDistance is how far in front of the head the hologram is placed, in meters.
	placementDistance float32

	// position is the hologram's current world position. Owned exclusively by the
	// render loop: written by PositionFromGaze, read by FrameTransform.
	position mgl32.Vec3
}

// Animator derives the hologram's per-frame transform from elapsed time and the
// last known gaze. All methods must be called from the render loop; the animator
// performs no synchronization of its own.
type Animator interface {
	// Angle returns the rotation angle for the given elapsed time. The angle is
	// always within [0, 2π) and is continuous in elapsed time except for the
	// intentional wraparound at 2π.
	//
	// Parameters:
	//   - elapsedSeconds: total elapsed time since the shell started
	//
	// Returns:
	//   - float64: the rotation angle in radians, within [0, 2π)
	Angle(elapsedSeconds float64) float64

	// PositionFromGaze re-places the hologram in front of the viewer: world
	// position = head position + placement distance along the head's forward
	// direction. No-op when pose is nil (the hologram keeps its last position).
	//
	// Parameters:
	//   - pose: the sampled gaze pose, or nil if no pose is available
	PositionFromGaze(pose *GazePose)

	// Position returns the hologram's current world position.
	//
	// Returns:
	//   - mgl32.Vec3: the world position in meters
	Position() mgl32.Vec3

	// FrameTransform composes the per-frame model matrix: rotation by the negated
	// angle (left-handed spin) followed by translation to the current position,
	// transposed for row-major shader upload.
	//
	// Parameters:
	//   - elapsedSeconds: total elapsed time since the shell started
	//
	// Returns:
	//   - mgl32.Mat4: the transposed model matrix, ready for upload
	FrameTransform(elapsedSeconds float64) mgl32.Mat4
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator with the specified options.
// Defaults: 45°/s rotation rate, 2.0 m placement distance, hologram placed
// 2.0 m straight ahead of the origin.
//
// Parameters:
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the configured animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{
		degreesPerSecond:  45.0,
		placementDistance: 2.0,
	}
	for _, opt := range options {
		opt(a)
	}
	a.position = mgl32.Vec3{0, 0, -a.placementDistance}
	return a
}

func (a *animator) Angle(elapsedSeconds float64) float64 {
	radians := elapsedSeconds * a.degreesPerSecond * math.Pi / 180.0
	angle := math.Mod(radians, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

func (a *animator) PositionFromGaze(pose *GazePose) {
	if pose == nil {
		return
	}
	a.position = pose.Position.Add(pose.Forward.Mul(a.placementDistance))
}

func (a *animator) Position() mgl32.Vec3 {
	return a.position
}

func (a *animator) FrameTransform(elapsedSeconds float64) mgl32.Mat4 {
	rotation := mgl32.HomogRotate3DY(float32(-a.Angle(elapsedSeconds)))
	translation := mgl32.Translate3D(a.position.X(), a.position.Y(), a.position.Z())
	return translation.Mul4(rotation).Transpose()
}
