package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/irahardianto/buildlint/internal/engine/parser"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

func sampleReport() Report {
	return Report{
		Passed:     false,
		DurationMs: 1200,
		Logs: []LogResult{
			{
				Name:       "build",
				Path:       "artifacts/build.log",
				Type:       "msbuild",
				Passed:     false,
				Blocking:   true,
				DurationMs: 40,
				Filtered:   3,
				Items: []parser.LintItem{
					{
						RuleID:   "CS8602",
						Log:      `C:\proj\src\a.cs(42,10): error CS8602: Dereference of a possibly null reference. [C:\proj\a.csproj]`,
						Line:     42,
						Column:   10,
						Message:  "CS8602: Dereference of a possibly null reference.",
						Source:   "src/a.cs",
						Severity: parser.SeverityError,
						Valid:    true,
						Type:     parser.ProjectTypeMSBuild,
					},
					{
						RuleID:   "MSB3277",
						Message:  "MSB3277: Found conflicts between different versions.",
						Source:   "C:/sdk/Microsoft.Common.targets",
						Severity: parser.SeverityWarning,
						Valid:    false,
						Type:     parser.ProjectTypeMSBuild,
					},
				},
			},
			{
				Name:         "tests",
				Path:         "artifacts/test.log",
				Type:         "msbuild",
				Passed:       false,
				Blocking:     true,
				DurationMs:   5,
				ParseError:   "msbuild parser: log structure doesn't match at line 1",
				MismatchLine: "Build succeeded.",
			},
			{
				Name:     "analyzers",
				Path:     "artifacts/analyzers.sarif",
				Type:     "sarif",
				Passed:   true,
				Blocking: false,
			},
		},
	}
}

// --- JSON Formatter Tests ---

func TestJSONFormatter_ValidJSON(t *testing.T) {
	output := NewJSONFormatter().Format(sampleReport())

	var parsed Report
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\nOutput:\n%s", err, output)
	}

	if parsed.Passed {
		t.Error("expected Passed=false")
	}
	if parsed.DurationMs != 1200 {
		t.Errorf("expected DurationMs=1200, got %d", parsed.DurationMs)
	}
	if len(parsed.Logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(parsed.Logs))
	}
	if parsed.Logs[0].Items[0] != sampleReport().Logs[0].Items[0] {
		t.Errorf("expected item to round-trip, got %+v", parsed.Logs[0].Items[0])
	}
}

func TestJSONFormatter_ItemFields(t *testing.T) {
	output := NewJSONFormatter().Format(sampleReport())

	for _, want := range []string{
		`"rule_id": "CS8602"`,
		`"source": "src/a.cs"`,
		`"severity": "error"`,
		`"valid": false`,
		`"type": "msbuild"`,
		`"mismatch_line": "Build succeeded."`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected JSON to contain %s", want)
		}
	}
}

func TestJSONFormatter_EmptyLogs(t *testing.T) {
	output := NewJSONFormatter().Format(Report{Passed: true, DurationMs: 50})

	if !strings.Contains(output, `"passed": true`) {
		t.Error("expected passed=true in output")
	}
}

// --- CLI Formatter Tests ---

func TestCLIFormatter_ContainsLogNames(t *testing.T) {
	output := NewCLIFormatter(false, false).Format(sampleReport())

	for _, name := range []string{"build", "tests", "analyzers"} {
		if !strings.Contains(output, name) {
			t.Errorf("expected output to contain log name %q", name)
		}
	}
}

func TestCLIFormatter_Icons(t *testing.T) {
	output := NewCLIFormatter(false, false).Format(sampleReport())

	for _, icon := range []string{"✅", "❌", "💥", "⚠️"} {
		if !strings.Contains(output, icon) {
			t.Errorf("expected output to contain %s icon", icon)
		}
	}
}

func TestCLIFormatter_ItemDetails(t *testing.T) {
	output := NewCLIFormatter(false, false).Format(sampleReport())

	if !strings.Contains(output, "src/a.cs:42:10") {
		t.Error("expected output to contain source:line:col location")
	}
	if !strings.Contains(output, "Dereference of a possibly null reference.") {
		t.Error("expected output to contain message")
	}
	if !strings.Contains(output, "💡 "+parser.HintFor("CS8602")) {
		t.Error("expected output to contain hint")
	}
	if !strings.Contains(output, "(unresolved)") {
		t.Error("expected unresolved marker for invalid item")
	}
	if !strings.Contains(output, "1 error(s), 1 warning(s)") {
		t.Error("expected per-log severity counts")
	}
}

func TestCLIFormatter_ParseError(t *testing.T) {
	output := NewCLIFormatter(false, false).Format(sampleReport())

	if !strings.Contains(output, "log structure doesn't match at line 1") {
		t.Error("expected parse error in output")
	}
	if !strings.Contains(output, "Build succeeded.") {
		t.Error("expected offending line in output")
	}
}

func TestCLIFormatter_NoColorMode(t *testing.T) {
	output := NewCLIFormatter(false, false).Format(sampleReport())

	if strings.Contains(output, "\033[") {
		t.Error("expected no ANSI escape codes in no-color mode")
	}
}

func TestCLIFormatter_ColorMode(t *testing.T) {
	output := NewCLIFormatter(true, false).Format(sampleReport())

	if !strings.Contains(output, "\033[") {
		t.Error("expected ANSI escape codes in color mode")
	}
}

func TestCLIFormatter_VerboseMode(t *testing.T) {
	report := sampleReport()
	rawLine := report.Logs[0].Items[0].Log

	quiet := NewCLIFormatter(false, false).Format(report)
	if strings.Contains(quiet, rawLine) {
		t.Error("expected no raw line in non-verbose mode")
	}
	if strings.Contains(quiet, "item(s) filtered") {
		t.Error("expected no filter summary in non-verbose mode")
	}

	verbose := NewCLIFormatter(false, true).Format(report)
	if !strings.Contains(verbose, rawLine) {
		t.Error("expected raw line in verbose mode")
	}
	if !strings.Contains(verbose, "3 item(s) filtered") {
		t.Error("expected filter summary in verbose mode")
	}
}

func TestCLIFormatter_Passed(t *testing.T) {
	output := NewCLIFormatter(false, false).Format(Report{Passed: true, DurationMs: 7})
	if !strings.Contains(output, "passed in 7ms") {
		t.Errorf("expected passed header, got %q", output)
	}
}

// --- SARIF Formatter Tests ---

func TestSarifFormatter_ValidSarif(t *testing.T) {
	output := NewSarifFormatter().Format(sampleReport())

	report, err := sarif.FromString(output)
	if err != nil {
		t.Fatalf("output is not valid SARIF: %v\nOutput:\n%s", err, output)
	}
	if len(report.Runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(report.Runs))
	}

	run := report.Runs[0]
	if run.Tool.Driver.Name != "buildlint/build" {
		t.Errorf("unexpected driver name %q", run.Tool.Driver.Name)
	}
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}

	first := run.Results[0]
	if first.Level == nil || *first.Level != "error" {
		t.Errorf("expected level error, got %v", first.Level)
	}
	loc := first.Locations[0].PhysicalLocation
	if *loc.ArtifactLocation.URI != "src/a.cs" {
		t.Errorf("expected uri src/a.cs, got %q", *loc.ArtifactLocation.URI)
	}
	if *loc.Region.StartLine != 42 || *loc.Region.StartColumn != 10 {
		t.Errorf("expected region 42:10, got %d:%d", *loc.Region.StartLine, *loc.Region.StartColumn)
	}
}

func TestSarifFormatter_RoundTripsThroughParser(t *testing.T) {
	output := NewSarifFormatter().Format(sampleReport())

	res, err := parser.NewSarifParser("/repo").Parse(t.Context(), []byte(output))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(res.Items))
	}
	if res.Items[0].Source != "src/a.cs" || res.Items[0].Severity != parser.SeverityError {
		t.Errorf("unexpected item %+v", res.Items[0])
	}
	if res.Items[1].Severity != parser.SeverityWarning {
		t.Errorf("expected warning, got %q", res.Items[1].Severity)
	}
}

func TestSarifLevel(t *testing.T) {
	tests := map[parser.Severity]string{
		parser.SeverityError:   "error",
		parser.SeverityWarning: "warning",
		parser.SeverityInfo:    "note",
		parser.SeverityUnknown: "none",
	}
	for sev, want := range tests {
		if got := sarifLevel(sev); got != want {
			t.Errorf("sarifLevel(%q) = %q, want %q", sev, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	if _, ok := New("json", false, false).(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter for json")
	}
	if _, ok := New("sarif", false, false).(*SarifFormatter); !ok {
		t.Error("expected SarifFormatter for sarif")
	}
	if _, ok := New("cli", false, false).(*CLIFormatter); !ok {
		t.Error("expected CLIFormatter for cli")
	}
}

func TestCountItems(t *testing.T) {
	c := CountItems(sampleReport().Logs[0].Items)
	if c.Errors != 1 || c.Warnings != 1 || c.Infos != 0 || c.Unknown != 0 {
		t.Errorf("unexpected counts %+v", c)
	}
}
