package hologram

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAngleStaysWithinRange(t *testing.T) {
	a := NewAnimator()
	for _, elapsed := range []float64{0, 0.5, 1, 7.9, 8, 8.1, 100, 1e6} {
		angle := a.Angle(elapsed)
		if angle < 0 || angle >= 2*math.Pi {
			t.Errorf("Angle(%v) = %v, want within [0, 2π)", elapsed, angle)
		}
	}
}

func TestAngleRate(t *testing.T) {
	a := NewAnimator()
	// 45°/s means a full revolution every 8 seconds.
	got := a.Angle(2.0)
	want := math.Pi / 2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Angle(2.0) = %v, want %v", got, want)
	}
	if got := a.Angle(8.0); math.Abs(got) > 1e-9 {
		t.Errorf("Angle(8.0) = %v, want 0 after a full revolution", got)
	}
}

func TestAngleContinuity(t *testing.T) {
	a := NewAnimator()
	const step = 1.0 / 120.0
	prev := a.Angle(0)
	for elapsed := step; elapsed < 20; elapsed += step {
		cur := a.Angle(elapsed)
		delta := cur - prev
		if delta < 0 {
			delta += 2 * math.Pi
		}
		// Per-step advance at 45°/s and 120 Hz is ~0.0065 rad.
		if delta > 0.01 {
			t.Fatalf("angle jumped by %v between %v and %v", delta, elapsed-step, elapsed)
		}
		prev = cur
	}
}

func TestAngleCustomRate(t *testing.T) {
	a := NewAnimator(WithRotationRate(90))
	got := a.Angle(1.0)
	want := math.Pi / 2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Angle(1.0) at 90°/s = %v, want %v", got, want)
	}
}

func TestPositionFromGaze(t *testing.T) {
	a := NewAnimator()
	a.PositionFromGaze(&GazePose{
		Position: mgl32.Vec3{1, 2, 3},
		Forward:  mgl32.Vec3{0, 0, -1},
	})
	want := mgl32.Vec3{1, 2, 1}
	if got := a.Position(); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestPositionFromGazeNilKeepsLastPosition(t *testing.T) {
	a := NewAnimator()
	a.PositionFromGaze(&GazePose{
		Position: mgl32.Vec3{0, 1, 0},
		Forward:  mgl32.Vec3{1, 0, 0},
	})
	before := a.Position()
	a.PositionFromGaze(nil)
	if got := a.Position(); got != before {
		t.Errorf("Position() after nil pose = %v, want %v", got, before)
	}
}

func TestDefaultPlacement(t *testing.T) {
	a := NewAnimator()
	want := mgl32.Vec3{0, 0, -2}
	if got := a.Position(); got != want {
		t.Errorf("default Position() = %v, want %v", got, want)
	}
}

func TestFrameTransformCarriesPosition(t *testing.T) {
	a := NewAnimator()
	a.PositionFromGaze(&GazePose{
		Position: mgl32.Vec3{0, 1.5, 0},
		Forward:  mgl32.Vec3{0, 0, -1},
	})

	// The matrix is transposed for upload, so the translation lives in the
	// bottom row of the untransposed form, i.e. the last column here.
	m := a.FrameTransform(0).Transpose()
	got := mgl32.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}
	want := mgl32.Vec3{0, 1.5, -2}
	if got != want {
		t.Errorf("translation column = %v, want %v", got, want)
	}
}

func TestFrameTransformRotatesUnitX(t *testing.T) {
	a := NewAnimator(WithPlacementDistance(1))
	a.PositionFromGaze(&GazePose{Forward: mgl32.Vec3{0, 0, 0}})

	// Quarter revolution: at 45°/s that is 2 seconds. The spin is negated yaw.
	m := a.FrameTransform(2.0).Transpose()
	v := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	want := mgl32.HomogRotate3DY(float32(-math.Pi / 2)).Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	for i := 0; i < 3; i++ {
		if math.Abs(float64(v[i]-want[i])) > 1e-5 {
			t.Fatalf("rotated X axis = %v, want %v", v, want)
		}
	}
}
