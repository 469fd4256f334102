package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestSmoke_InitAndCheck verifies the init → check lifecycle in a real directory.
func TestSmoke_InitAndCheck(t *testing.T) {
	tmpDir := t.TempDir()

	// Create a marker file for project detection.
	if err := os.WriteFile(filepath.Join(tmpDir, "Shop.sln"), []byte("\n"), 0o644); err != nil {
		t.Fatalf("writing Shop.sln: %v", err)
	}

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting cwd: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir to tmpDir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	// 1. Run init.
	rootCmd.SetArgs([]string{"init", "--format", "cli"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	configPath := filepath.Join(tmpDir, ".buildlint", "logs.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("reading logs.yaml: %v", err)
	}
	if !strings.Contains(string(data), "type: msbuild") {
		t.Errorf("expected msbuild log in generated config, got:\n%s", data)
	}

	// 2. Capture a warnings-only build log where the config expects it.
	logDir := filepath.Join(tmpDir, "artifacts")
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		t.Fatalf("creating artifacts dir: %v", err)
	}
	build := "src/Program.cs(3,13): warning CS0168: The variable 'ex' is declared but never used [" +
		filepath.Join(tmpDir, "Shop.csproj") + "]\n" +
		"\n" +
		"Build succeeded.\n"
	if err := os.WriteFile(filepath.Join(logDir, "build.log"), []byte(build), 0o644); err != nil {
		t.Fatalf("writing build.log: %v", err)
	}

	// 3. Run check; warnings alone pass.
	out.Reset()
	rootCmd.SetArgs([]string{"check", "--format", "json", "--config", configPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("check command failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), `"rule_id": "CS0168"`) {
		t.Errorf("expected CS0168 in JSON report, got:\n%s", out.String())
	}

	// 4. Run init again; existing config is kept.
	out.Reset()
	rootCmd.SetArgs([]string{"init", "--format", "cli"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("expected existing config message, got %q", out.String())
	}
}
