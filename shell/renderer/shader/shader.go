package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Stage identifies which pipeline stage a shader occupies.
type Stage int

const (
	// StageVertex is the vertex shader stage, used for vertex processing in render pipelines.
	StageVertex Stage = iota

	// StageFragment is the fragment shader stage, paired with a vertex shader.
	StageFragment

	// StageViewRoute is the pass-through view-routing stage. It is only present on
	// devices that cannot broadcast a draw to multiple render-target array slices
	// from the vertex stage; its only job is to route each invocation to the
	// correct stereo view slice.
	StageViewRoute
)

// shader is the implementation of the Shader interface.
// It holds the persistent shader data required for pipeline creation.
type shader struct {
	key        string
	source     string
	stage      Stage
	entryPoint string

	module *wgpu.ShaderModule
}

// Shader defines the interface for a loaded WGSL shader. It exposes the shader's
// unique key, source code, stage, entry point, and the compiled GPU module handle
// once the backend has created it.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// Stage retrieves the pipeline stage this shader occupies.
	//
	// Returns:
	//   - Stage: the shader stage (vertex, fragment, or view-route)
	Stage() Stage

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Module retrieves the compiled GPU shader module, or nil if the backend has
	// not compiled this shader yet.
	//
	// Returns:
	//   - *wgpu.ShaderModule: the compiled module handle, or nil
	Module() *wgpu.ShaderModule

	// SetModule stores the compiled GPU shader module on the shader.
	// Called by the renderer backend after module creation.
	//
	// Parameters:
	//   - module: the compiled wgpu shader module
	SetModule(module *wgpu.ShaderModule)

	// Release releases the compiled GPU module, if any, and clears the handle.
	// Safe to call multiple times.
	Release()
}

var _ Shader = &shader{}

// NewShader creates a new Shader with the specified key, source, and stage.
// Applies default values first, then each option in order.
//
// Parameters:
//   - key: the unique identifier for this shader
//   - source: the WGSL source code
//   - stage: the pipeline stage this shader occupies
//   - options: functional options to configure the shader
//
// Returns:
//   - Shader: the configured shader (not yet compiled)
func NewShader(key, source string, stage Stage, options ...ShaderBuilderOption) Shader {
	s := &shader{
		key:    key,
		source: source,
		stage:  stage,
	}

	switch stage {
	case StageFragment:
		s.entryPoint = "fs_main"
	default:
		s.entryPoint = "vs_main"
	}

	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Stage() Stage {
	return s.stage
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Module() *wgpu.ShaderModule {
	return s.module
}

func (s *shader) SetModule(module *wgpu.ShaderModule) {
	s.module = module
}

func (s *shader) Release() {
	if s.module != nil {
		s.module.Release()
		s.module = nil
	}
}
