package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/holo-go/shell/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestDefaults(t *testing.T) {
	p := NewPipeline("Hologram/1")
	if p.PipelineKey() != "Hologram/1" {
		t.Errorf("PipelineKey() = %q, want Hologram/1", p.PipelineKey())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Errorf("Topology() = %v, want triangle list", p.Topology())
	}
	if p.CullMode() != wgpu.CullModeBack {
		t.Errorf("CullMode() = %v, want back-face culling", p.CullMode())
	}
	if p.FrontFace() != wgpu.FrontFaceCW {
		t.Errorf("FrontFace() = %v, want clockwise winding", p.FrontFace())
	}
	if p.RenderPipeline() != nil {
		t.Error("RenderPipeline() non-nil before registration")
	}
}

func TestShadersKeyedByStage(t *testing.T) {
	vs := shader.NewShader("vs", "", shader.StageVertex)
	fs := shader.NewShader("fs", "", shader.StageFragment)
	route := shader.NewShader("route", "", shader.StageViewRoute)
	p := NewPipeline("test",
		WithShader(vs),
		WithShader(fs),
		WithShader(route),
	)

	if got := p.Shader(shader.StageVertex); got != vs {
		t.Errorf("Shader(StageVertex) = %v, want the vertex shader", got)
	}
	if got := p.Shader(shader.StageFragment); got != fs {
		t.Errorf("Shader(StageFragment) = %v, want the fragment shader", got)
	}
	if got := p.Shader(shader.StageViewRoute); got != route {
		t.Errorf("Shader(StageViewRoute) = %v, want the routing shader", got)
	}
}

func TestMissingStageIsNil(t *testing.T) {
	p := NewPipeline("test")
	if got := p.Shader(shader.StageViewRoute); got != nil {
		t.Errorf("Shader(StageViewRoute) = %v, want nil when never attached", got)
	}
}

func TestVertexLayouts(t *testing.T) {
	layout := wgpu.VertexBufferLayout{ArrayStride: 24}
	p := NewPipeline("test", WithVertexLayouts(layout))
	layouts := p.VertexLayouts()
	if len(layouts) != 1 || layouts[0].ArrayStride != 24 {
		t.Errorf("VertexLayouts() = %v, want one layout with stride 24", layouts)
	}
}

func TestReleaseWithoutGPUPipeline(t *testing.T) {
	p := NewPipeline("test")
	p.Release()
	p.Release()
}
