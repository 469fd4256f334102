package parser

import (
	"context"
	"testing"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	mock := &MockParser{Result: &ParseResult{}}

	r.Register("mock", func(Options) Parser { return mock })

	if r.Get("mock") == nil {
		t.Fatal("expected to retrieve registered factory")
	}
	if r.Get("unknown") != nil {
		t.Error("expected nil for unknown type")
	}

	p, err := r.New("mock", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != mock {
		t.Error("expected New to return the factory's parser")
	}

	if _, err := r.New("unknown", Options{}); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestDefaultRegistry_Types(t *testing.T) {
	r := DefaultRegistry()
	types := r.Types()

	if len(types) != 2 {
		t.Fatalf("expected 2 registered types, got %v", types)
	}
	if types[0] != ProjectTypeMSBuild || types[1] != ProjectTypeSarif {
		t.Errorf("expected sorted [msbuild sarif], got %v", types)
	}
}

func TestDefaultRegistry_PassesOptions(t *testing.T) {
	r := DefaultRegistry()
	p, err := r.New(ProjectTypeMSBuild, Options{BaseDir: "/repo", OnMismatch: MismatchSkip})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := p.Parse(context.Background(), []byte("Build succeeded.\n"))
	if err != nil {
		t.Fatalf("expected skip policy to be applied, got error: %v", err)
	}
	if res.Skipped != 1 {
		t.Errorf("expected 1 skipped line, got %d", res.Skipped)
	}

	mb, ok := p.(*MSBuildParser)
	if !ok {
		t.Fatalf("expected *MSBuildParser, got %T", p)
	}
	if mb.baseDir != "/repo" {
		t.Errorf("expected base dir /repo, got %q", mb.baseDir)
	}
}

func TestMockParser(t *testing.T) {
	m := &MockParser{Err: ErrStructureMismatch}
	if _, err := m.Parse(context.Background(), nil); err != ErrStructureMismatch {
		t.Errorf("expected configured error, got %v", err)
	}
}
