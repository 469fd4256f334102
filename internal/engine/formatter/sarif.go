package formatter

import (
	"encoding/json"

	"github.com/irahardianto/buildlint/internal/engine/parser"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

const toolURI = "https://github.com/irahardianto/buildlint"

// SarifFormatter outputs a Report as a SARIF v2.1.0 log with one run per build log.
type SarifFormatter struct{}

// NewSarifFormatter creates a new SarifFormatter.
func NewSarifFormatter() *SarifFormatter {
	return &SarifFormatter{}
}

// Format returns the Report as an indented SARIF document.
func (f *SarifFormatter) Format(report Report) string {
	out, err := sarif.New(sarif.Version210)
	if err != nil {
		return `{"error": "failed to create SARIF report"}`
	}

	for _, l := range report.Logs {
		run := sarif.NewRunWithInformationURI("buildlint/"+l.Name, toolURI)

		seen := make(map[string]bool)
		for _, item := range l.Items {
			if item.RuleID != "" && !seen[item.RuleID] {
				seen[item.RuleID] = true
				rule := run.AddRule(item.RuleID)
				if hint := parser.HintFor(item.RuleID); hint != "" {
					rule.WithHelp(sarif.NewMultiformatMessageString(hint))
				}
			}

			result := run.CreateResultForRule(item.RuleID).
				WithLevel(sarifLevel(item.Severity)).
				WithMessage(sarif.NewTextMessage(item.Message))

			if item.Source != "" {
				region := sarif.NewRegion()
				if item.Line > 0 {
					region.WithStartLine(item.Line)
				}
				if item.Column > 0 {
					region.WithStartColumn(item.Column)
				}
				loc := sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewSimpleArtifactLocation(item.Source)).
					WithRegion(region)
				result.AddLocation(sarif.NewLocationWithPhysicalLocation(loc))
			}
		}

		out.AddRun(run)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return `{"error": "failed to marshal SARIF report"}`
	}
	return string(data) + "\n"
}

// sarifLevel maps a Severity to a SARIF result level.
func sarifLevel(s parser.Severity) string {
	switch s {
	case parser.SeverityError:
		return "error"
	case parser.SeverityWarning:
		return "warning"
	case parser.SeverityInfo:
		return "note"
	default:
		return "none"
	}
}
