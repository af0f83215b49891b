package shader

import "testing"

func TestDefaultEntryPoints(t *testing.T) {
	cases := []struct {
		stage Stage
		want  string
	}{
		{StageVertex, "vs_main"},
		{StageFragment, "fs_main"},
		{StageViewRoute, "vs_main"},
	}
	for _, c := range cases {
		s := NewShader("test", "// wgsl", c.stage)
		if got := s.EntryPoint(); got != c.want {
			t.Errorf("stage %v entry point = %q, want %q", c.stage, got, c.want)
		}
	}
}

func TestWithEntryPointOverride(t *testing.T) {
	s := NewShader("test", "// wgsl", StageVertex, WithEntryPoint("main"))
	if got := s.EntryPoint(); got != "main" {
		t.Errorf("entry point = %q, want main", got)
	}
}

func TestAccessors(t *testing.T) {
	s := NewShader("CubeVS", "fn vs_main() {}", StageVertex)
	if s.Key() != "CubeVS" {
		t.Errorf("Key() = %q, want CubeVS", s.Key())
	}
	if s.Source() != "fn vs_main() {}" {
		t.Errorf("Source() = %q", s.Source())
	}
	if s.Stage() != StageVertex {
		t.Errorf("Stage() = %v, want StageVertex", s.Stage())
	}
	if s.Module() != nil {
		t.Error("Module() non-nil before compilation")
	}
}

func TestReleaseWithoutModule(t *testing.T) {
	s := NewShader("test", "", StageFragment)
	// Must tolerate release before (and after) compilation.
	s.Release()
	s.Release()
}
