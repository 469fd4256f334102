// Package formatter handles formatting parse reports for CLI, JSON and SARIF output.
package formatter

import (
	"github.com/irahardianto/buildlint/internal/engine/parser"
)

// LogResult holds the result of parsing a single build log.
type LogResult struct {
	Name       string            `json:"name"`
	Path       string            `json:"path"`
	Type       string            `json:"type"`
	Passed     bool              `json:"passed"`
	Blocking   bool              `json:"blocking"`
	DurationMs int64             `json:"duration_ms"`
	Items      []parser.LintItem `json:"items,omitempty"`
	// Filtered counts items dropped by the log's filter rules.
	Filtered int `json:"filtered,omitempty"`
	// SkippedLines counts non-diagnostic lines dropped under the skip policy.
	SkippedLines int    `json:"skipped_lines,omitempty"`
	ParseError   string `json:"parse_error,omitempty"`
	// MismatchLine is the raw line that aborted the parse, if any.
	MismatchLine string `json:"mismatch_line,omitempty"`
}

// Report holds the aggregated result of all logs in a run.
type Report struct {
	Passed     bool        `json:"passed"`
	DurationMs int64       `json:"duration_ms"`
	Logs       []LogResult `json:"logs"`
}

// Formatter formats a Report into a human-readable or machine-readable string.
type Formatter interface {
	Format(report Report) string
}

// Counts tallies items by severity.
type Counts struct {
	Errors   int
	Warnings int
	Infos    int
	Unknown  int
}

// CountItems tallies the severities of items.
func CountItems(items []parser.LintItem) Counts {
	var c Counts
	for _, item := range items {
		switch item.Severity {
		case parser.SeverityError:
			c.Errors++
		case parser.SeverityWarning:
			c.Warnings++
		case parser.SeverityInfo:
			c.Infos++
		default:
			c.Unknown++
		}
	}
	return c
}

// New returns the formatter for the named output format.
// Unknown names fall back to the CLI formatter.
func New(format string, color, verbose bool) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	case "sarif":
		return NewSarifFormatter()
	default:
		return NewCLIFormatter(color, verbose)
	}
}
