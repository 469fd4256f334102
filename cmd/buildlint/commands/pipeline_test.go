package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/irahardianto/buildlint/internal/engine/config"
	"github.com/irahardianto/buildlint/internal/engine/parser"
)

func TestFilterSkippedLogs_NoFilters(t *testing.T) {
	logs := []config.LogEntry{{Name: "build"}, {Name: "tests"}, {Name: "analyzers"}}

	result := filterSkippedLogs(logs, nil)
	if len(result) != 3 {
		t.Errorf("expected 3 logs (no filter), got %d", len(result))
	}
}

func TestFilterSkippedLogs_SkipByName(t *testing.T) {
	logs := []config.LogEntry{{Name: "build"}, {Name: "tests"}, {Name: "analyzers"}}

	result := filterSkippedLogs(logs, []string{"build", "tests"})
	if len(result) != 1 {
		t.Fatalf("expected 1 log, got %d", len(result))
	}
	if result[0].Name != "analyzers" {
		t.Errorf("expected 'analyzers' to remain, got %q", result[0].Name)
	}
}

func TestFilterSkippedLogs_UnknownName(t *testing.T) {
	logs := []config.LogEntry{{Name: "build"}}

	result := filterSkippedLogs(logs, []string{"nonexistent"})
	if len(result) != 1 {
		t.Errorf("expected unknown skip names to be ignored, got %d logs", len(result))
	}
}

func TestBuildJob(t *testing.T) {
	nonBlocking := false
	entry := config.LogEntry{
		Name:        "build",
		Path:        "artifacts/build.log",
		Type:        "msbuild",
		BaseDir:     "src",
		OnMismatch:  "skip",
		Blocking:    &nonBlocking,
		Except:      []string{"obj/**"},
		MinSeverity: "warning",
		DropInvalid: true,
	}

	job, err := BuildJob(entry, parser.DefaultRegistry(), "/repo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.Name != "build" || job.Type != parser.ProjectTypeMSBuild {
		t.Errorf("unexpected job identity %+v", job)
	}
	if job.Path != filepath.Join("/repo", "artifacts/build.log") {
		t.Errorf("unexpected path %q", job.Path)
	}
	if job.Blocking {
		t.Error("expected non-blocking job")
	}
	if job.Filter.MinSeverity != parser.SeverityWarning || !job.Filter.DropInvalid || len(job.Filter.Except) != 1 {
		t.Errorf("unexpected filter %+v", job.Filter)
	}

	mb, ok := job.Parser.(*parser.MSBuildParser)
	if !ok {
		t.Fatalf("expected *parser.MSBuildParser, got %T", job.Parser)
	}
	item, ok := mb.ParseLine(`/repo/src/App/Program.cs(1,1): warning CS0168: unused [/repo/src/App/App.csproj]`)
	if !ok || item.Source != "App/Program.cs" {
		t.Errorf("expected source relative to src base dir, got %+v", item)
	}
}

func TestBuildJob_UnknownType(t *testing.T) {
	_, err := BuildJob(config.LogEntry{Name: "x", Path: "x.log", Type: "gcc"}, parser.DefaultRegistry(), "/repo")
	if err == nil || !strings.Contains(err.Error(), `log "x"`) {
		t.Errorf("expected error naming the log, got %v", err)
	}
}

func TestResolveBaseDir(t *testing.T) {
	orig := getwd
	getwd = func() (string, error) { return "/home/ci/repo", nil }
	t.Cleanup(func() { getwd = orig })

	tests := []struct {
		in   string
		want string
	}{
		{"", "/home/ci/repo"},
		{"src", "/home/ci/repo/src"},
		{"../other", "/home/ci/other"},
		{"/abs/dir", "/abs/dir"},
		{`C:\work`, `C:\work`},
	}

	for _, tt := range tests {
		got, err := resolveBaseDir(tt.in)
		if err != nil {
			t.Fatalf("resolveBaseDir(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("resolveBaseDir(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOSLogReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.log")
	if err := os.WriteFile(path, []byte("content"), 0o600); err != nil {
		t.Fatalf("writing log: %v", err)
	}

	data, err := (&osLogReader{}).ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestOSLogReader_StdinReadOnce(t *testing.T) {
	r := &osLogReader{stdin: strings.NewReader("from stdin")}

	for i := 0; i < 2; i++ {
		data, err := r.ReadFile("-")
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if string(data) != "from stdin" {
			t.Errorf("read %d: unexpected content %q", i, data)
		}
	}
}

func TestOSLogReader_NoStdin(t *testing.T) {
	if _, err := (&osLogReader{}).ReadFile("-"); err == nil {
		t.Error("expected error without stdin")
	}
}
