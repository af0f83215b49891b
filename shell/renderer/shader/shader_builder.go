package shader

// ShaderBuilderOption is a functional option for configuring a shader.
// Use the With* functions to create options.
type ShaderBuilderOption func(s *shader)

// WithEntryPoint overrides the default entry point name for the shader stage.
//
// Parameters:
//   - entryPoint: the entry point function name in the WGSL source
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithEntryPoint(entryPoint string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = entryPoint
	}
}
