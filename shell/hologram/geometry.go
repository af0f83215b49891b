package hologram

// The hologram's geometry is a fixed unit cube: 8 vertices colored by their
// corner position and 36 unsigned 16-bit indices forming 12 clockwise-wound
// triangles (2 per face). Created once per device lifetime.

// cubeHalfExtent is half the cube's edge length in meters (a 20 cm cube).
const cubeHalfExtent = 0.1

// CubeVertices returns the fixed cube vertex data: one {position, color} entry
// per corner, with the corner's RGB color derived from its position sign.
//
// Returns:
//   - []GPUVertex: the 8 cube vertices
func CubeVertices() []GPUVertex {
	h := float32(cubeHalfExtent)
	return []GPUVertex{
		{Position: [3]float32{-h, -h, -h}, Color: [3]float32{0, 0, 0}},
		{Position: [3]float32{-h, -h, h}, Color: [3]float32{0, 0, 1}},
		{Position: [3]float32{-h, h, -h}, Color: [3]float32{0, 1, 0}},
		{Position: [3]float32{-h, h, h}, Color: [3]float32{0, 1, 1}},
		{Position: [3]float32{h, -h, -h}, Color: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, -h, h}, Color: [3]float32{1, 0, 1}},
		{Position: [3]float32{h, h, -h}, Color: [3]float32{1, 1, 0}},
		{Position: [3]float32{h, h, h}, Color: [3]float32{1, 1, 1}},
	}
}

// CubeIndices returns the fixed cube index data: 36 indices forming 12
// clockwise-wound triangles, 2 per face.
//
// Returns:
//   - []uint16: the 36 cube indices
func CubeIndices() []uint16 {
	return []uint16{
		2, 1, 0, // -x
		2, 3, 1,
		6, 4, 5, // +x
		6, 5, 7,
		0, 1, 5, // -y
		0, 5, 4,
		2, 6, 7, // +y
		2, 7, 3,
		0, 4, 6, // -z
		0, 6, 2,
		1, 3, 7, // +z
		1, 7, 5,
	}
}
