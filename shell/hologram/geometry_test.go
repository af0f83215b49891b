package hologram

import "testing"

func TestCubeVertices(t *testing.T) {
	vertices := CubeVertices()
	if len(vertices) != 8 {
		t.Fatalf("len(CubeVertices()) = %d, want 8", len(vertices))
	}

	seen := make(map[[3]float32]bool, 8)
	for _, v := range vertices {
		if seen[v.Position] {
			t.Errorf("duplicate vertex position %v", v.Position)
		}
		seen[v.Position] = true

		for axis, p := range v.Position {
			if p != cubeHalfExtent && p != -cubeHalfExtent {
				t.Errorf("vertex %v axis %d = %v, want ±%v", v.Position, axis, p, cubeHalfExtent)
			}
		}
	}
}

func TestCubeIndices(t *testing.T) {
	indices := CubeIndices()
	if len(indices) != 36 {
		t.Fatalf("len(CubeIndices()) = %d, want 36", len(indices))
	}

	for i, idx := range indices {
		if idx > 7 {
			t.Errorf("index %d = %d, out of vertex range [0,7]", i, idx)
		}
	}

	// 12 triangles, each with three distinct corners.
	for tri := 0; tri < len(indices); tri += 3 {
		a, b, c := indices[tri], indices[tri+1], indices[tri+2]
		if a == b || b == c || a == c {
			t.Errorf("degenerate triangle at %d: %d %d %d", tri/3, a, b, c)
		}
	}
}

func TestCubeIndicesTouchEveryVertex(t *testing.T) {
	used := make(map[uint16]bool)
	for _, idx := range CubeIndices() {
		used[idx] = true
	}
	for v := uint16(0); v < 8; v++ {
		if !used[v] {
			t.Errorf("vertex %d never referenced by an index", v)
		}
	}
}

func TestGPUVertexSize(t *testing.T) {
	v := GPUVertex{}
	if got := v.Size(); got != 24 {
		t.Errorf("GPUVertex.Size() = %d, want 24", got)
	}
}

func TestVertexBufferLayout(t *testing.T) {
	layout := VertexBufferLayout()
	if layout.ArrayStride != 24 {
		t.Errorf("ArrayStride = %d, want 24", layout.ArrayStride)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("len(Attributes) = %d, want 2", len(layout.Attributes))
	}
	if layout.Attributes[0].Offset != 0 || layout.Attributes[1].Offset != 12 {
		t.Errorf("attribute offsets = %d, %d, want 0, 12",
			layout.Attributes[0].Offset, layout.Attributes[1].Offset)
	}
}
