package pipeline

import (
	"github.com/Carmen-Shannon/holo-go/shell/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// pipelineKey is the unique identifier used for pipeline caching and lookups.
	pipelineKey string

	// shaders holds the shaders attached to this pipeline, keyed by stage.
	shaders map[shader.Stage]shader.Shader

	// vertexLayouts describe the vertex buffer layouts consumed by the vertex stage.
	vertexLayouts []wgpu.VertexBufferLayout

	// topology is the primitive topology used for draw calls.
	topology wgpu.PrimitiveTopology

	// cullMode controls back/front-face culling.
	cullMode wgpu.CullMode

	// frontFace declares the winding order considered front-facing.
	frontFace wgpu.FrontFace

	// bindGroupLayouts are the bind group layouts the pipeline layout is built
	// from, in group order. Typically taken from an initialized BindGroupProvider.
	bindGroupLayouts []*wgpu.BindGroupLayout

	// renderPipeline is the created GPU pipeline object, set by the backend.
	renderPipeline *wgpu.RenderPipeline
}

// Pipeline defines the interface for a render pipeline descriptor. It carries the
// shaders and fixed-function state needed by the backend to create the GPU pipeline
// object, and the created object once registration completes.
type Pipeline interface {
	// PipelineKey retrieves the unique identifier for this pipeline.
	//
	// Returns:
	//   - string: the pipeline's unique key
	PipelineKey() string

	// Shader retrieves the shader attached at the specified stage, or nil if not set.
	//
	// Parameters:
	//   - stage: the stage to retrieve (vertex, fragment, or view-route)
	//
	// Returns:
	//   - shader.Shader: the shader at the stage, or nil
	Shader(stage shader.Stage) shader.Shader

	// VertexLayouts retrieves the vertex buffer layouts consumed by the vertex stage.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// Topology retrieves the primitive topology used for draw calls.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology
	Topology() wgpu.PrimitiveTopology

	// CullMode retrieves the face culling mode.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// FrontFace retrieves the winding order considered front-facing.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order
	FrontFace() wgpu.FrontFace

	// BindGroupLayouts retrieves the bind group layouts the pipeline layout is
	// built from, in group order.
	//
	// Returns:
	//   - []*wgpu.BindGroupLayout: the bind group layouts
	BindGroupLayouts() []*wgpu.BindGroupLayout

	// SetBindGroupLayouts stores the bind group layouts the pipeline layout is
	// built from. Must be called before the pipeline is registered with a backend.
	//
	// Parameters:
	//   - layouts: the bind group layouts in group order
	SetBindGroupLayouts(layouts ...*wgpu.BindGroupLayout)

	// RenderPipeline retrieves the created GPU pipeline object, or nil if the
	// pipeline has not been registered with a backend yet.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the GPU pipeline object, or nil
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the created GPU pipeline object.
	// Called by the renderer backend after pipeline creation.
	//
	// Parameters:
	//   - rp: the created wgpu render pipeline
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// Release releases the GPU pipeline object, if any, and clears the handle.
	// Safe to call multiple times.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new Pipeline with the specified key and options.
// Defaults: triangle-list topology, back-face culling, clockwise front faces
// (matching the fixed cube geometry's winding).
//
// Parameters:
//   - pipelineKey: the unique identifier for the pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey: pipelineKey,
		shaders:     make(map[shader.Stage]shader.Shader),
		topology:    wgpu.PrimitiveTopologyTriangleList,
		cullMode:    wgpu.CullModeBack,
		frontFace:   wgpu.FrontFaceCW,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(stage shader.Stage) shader.Shader {
	return p.shaders[stage]
}

func (p *pipeline) VertexLayouts() []wgpu.VertexBufferLayout {
	return p.vertexLayouts
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) BindGroupLayouts() []*wgpu.BindGroupLayout {
	return p.bindGroupLayouts
}

func (p *pipeline) SetBindGroupLayouts(layouts ...*wgpu.BindGroupLayout) {
	p.bindGroupLayouts = layouts
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
