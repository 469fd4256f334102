package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/irahardianto/buildlint/internal/engine/parser"
)

// CLIFormatter outputs a Report as a human-readable CLI report.
type CLIFormatter struct {
	Color   bool
	Verbose bool
}

// NewCLIFormatter creates a new CLIFormatter.
func NewCLIFormatter(color, verbose bool) *CLIFormatter {
	return &CLIFormatter{Color: color, Verbose: verbose}
}

// Format returns a formatted CLI report.
func (f *CLIFormatter) Format(report Report) string {
	var b strings.Builder

	// Header
	icon := f.colorize("✅", color.FgGreen)
	status := "passed"
	if !report.Passed {
		icon = f.colorize("❌", color.FgRed)
		status = "failed"
	}
	fmt.Fprintf(&b, "\n%s %s — %s in %dms\n\n",
		icon,
		f.colorize("buildlint", color.Bold),
		status,
		report.DurationMs)

	for _, l := range report.Logs {
		c := CountItems(l.Items)
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			f.logIcon(l),
			f.colorize(l.Name, color.Bold),
			f.colorize(fmt.Sprintf("(%s)", l.Type), color.Faint),
			f.colorize(fmt.Sprintf("%d error(s), %d warning(s) · %dms", c.Errors, c.Warnings, l.DurationMs), color.Faint))

		if l.ParseError != "" {
			fmt.Fprintf(&b, "    💥 %s\n", f.colorize(l.ParseError, color.FgRed))
			if l.MismatchLine != "" {
				fmt.Fprintf(&b, "       %s %s\n", f.colorize("line:", color.Faint), l.MismatchLine)
			}
		}

		for _, item := range l.Items {
			f.writeItem(&b, item)
		}

		if f.Verbose && (l.Filtered > 0 || l.SkippedLines > 0) {
			fmt.Fprintf(&b, "    %s\n", f.colorize(
				fmt.Sprintf("%d item(s) filtered, %d non-diagnostic line(s) skipped", l.Filtered, l.SkippedLines),
				color.Faint))
		}
	}

	return b.String()
}

func (f *CLIFormatter) writeItem(b *strings.Builder, item parser.LintItem) {
	// Location
	loc := ""
	if item.Source != "" {
		loc = item.Source
		if item.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, item.Line)
			if item.Column > 0 {
				loc = fmt.Sprintf("%s:%d", loc, item.Column)
			}
		}
		loc = f.colorize(loc, color.FgCyan) + " "
	}
	if !item.Valid {
		loc += f.colorize("(unresolved)", color.Faint) + " "
	}

	sevIcon := "ℹ️"
	sevColor := color.Faint
	switch item.Severity {
	case parser.SeverityError:
		sevIcon = "❌"
		sevColor = color.FgRed
	case parser.SeverityWarning:
		sevIcon = "⚠️"
		sevColor = color.FgYellow
	case parser.SeverityUnknown:
		sevIcon = "❔"
	}

	fmt.Fprintf(b, "    %s %s%s\n", sevIcon, loc, f.colorize(item.Message, sevColor))

	if hint := parser.HintFor(item.RuleID); hint != "" {
		fmt.Fprintf(b, "      💡 %s\n", hint)
	}

	if f.Verbose && item.Log != "" {
		fmt.Fprintf(b, "      %s\n", f.colorize(item.Log, color.Faint))
	}
}

func (f *CLIFormatter) logIcon(l LogResult) string {
	if l.ParseError != "" {
		return "💥"
	}
	if l.Passed {
		return f.colorize("✅", color.FgGreen)
	}
	if !l.Blocking {
		return f.colorize("⚠️", color.FgYellow)
	}
	return f.colorize("❌", color.FgRed)
}

// colorize wraps s in the given attribute. Colors are forced on or off
// according to f.Color, independent of whether stdout is a terminal.
func (f *CLIFormatter) colorize(s string, attr color.Attribute) string {
	c := color.New(attr)
	if f.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}
