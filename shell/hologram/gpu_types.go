package hologram

import (
	_ "embed"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// VprtVertexShaderSource is the WGSL vertex shader used when the device can
// broadcast a draw to every stereo view from the vertex stage.
//
//go:embed assets/VprtVertexShader.wgsl
var VprtVertexShaderSource string

// VertexShaderSource is the WGSL vertex shader used on the non-broadcast path,
// paired with ViewRouteShaderSource.
//
//go:embed assets/VertexShader.wgsl
var VertexShaderSource string

// ViewRouteShaderSource is the pass-through view-routing stage loaded only on
// the non-broadcast path. Its only job is to route each invocation to the
// correct stereo view.
//
//go:embed assets/ViewRouteShader.wgsl
var ViewRouteShaderSource string

// PixelShaderSource is the WGSL fragment shader for the hologram.
//
//go:embed assets/PixelShader.wgsl
var PixelShaderSource string

// GPUVertex is the GPU-aligned representation of a single hologram vertex.
// Matches the WGSL VertexInput struct layout exactly: a 3-float position at
// offset 0 and a 3-float color at offset 12. Size: 24 bytes, no padding.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Color    [3]float32 // offset 12: per-vertex RGB color (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// VertexBufferLayout returns the wgpu vertex buffer layout matching GPUVertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout with position and color attributes
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(unsafe.Sizeof(GPUVertex{})),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}
