package parser

import "strings"

// Severity is the canonical importance level of a LintItem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityUnknown Severity = "unknown"
)

// dotnetSeverities maps the severity words emitted by MSBuild and the
// .NET compilers. Keys are matched case-sensitively, as emitted.
var dotnetSeverities = map[string]Severity{
	"error":   SeverityError,
	"warning": SeverityWarning,
	"info":    SeverityInfo,
}

// MapDotnetSeverity maps an MSBuild severity word to a Severity.
// Unrecognized words map to SeverityUnknown.
func MapDotnetSeverity(word string) Severity {
	if s, ok := dotnetSeverities[word]; ok {
		return s
	}
	return SeverityUnknown
}

// MapSarifLevel maps a SARIF result level to a Severity.
// A missing level defaults to warning, per SARIF 2.1.0 section 3.27.10.
func MapSarifLevel(level string) Severity {
	switch strings.ToLower(level) {
	case "", "warning":
		return SeverityWarning
	case "error":
		return SeverityError
	case "note", "none":
		return SeverityInfo
	default:
		return SeverityUnknown
	}
}

// Rank orders severities: error > warning > info > unknown.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// ParseSeverity validates a configured severity name.
func ParseSeverity(name string) (Severity, bool) {
	switch s := Severity(name); s {
	case SeverityError, SeverityWarning, SeverityInfo, SeverityUnknown:
		return s, true
	default:
		return "", false
	}
}
