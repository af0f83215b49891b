package pipeline

import (
	"github.com/Carmen-Shannon/holo-go/shell/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option for configuring a pipeline.
// Use the With* functions to create options.
type PipelineBuilderOption func(p *pipeline)

// WithShader attaches a shader to the pipeline at the shader's declared stage.
// Attaching a second shader for the same stage replaces the first.
//
// Parameters:
//   - s: the shader to attach
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.shaders[s.Stage()] = s
	}
}

// WithVertexLayouts sets the vertex buffer layouts consumed by the vertex stage.
//
// Parameters:
//   - layouts: the vertex buffer layouts
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexLayouts = layouts
	}
}

// WithTopology sets the primitive topology used for draw calls.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithCullMode sets the face culling mode.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithFrontFace sets the winding order considered front-facing.
//
// Parameters:
//   - face: the front face winding order
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithFrontFace(face wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = face
	}
}
