package parser

import (
	"context"
	"regexp"
	"strings"
)

// msbuildLinePattern matches one MSBuild / dotnet build diagnostic:
//
//	<file>[(<line>,<column>)] : <severity> <code>: <message>[ [<project>]]
//
// The file group accepts drive letters, separators, spaces, parentheses and
// dots but no comma, so a "(line,column)" suffix is never swallowed by it.
var msbuildLinePattern = regexp.MustCompile(
	`^(?P<file>[\\/\w.:_ ()-]+)(?:\((?P<line>\d+),(?P<column>\d+)\))? ?: (?P<severity>\w+) (?P<code>\w+): (?P<message>[^\[]+)(?:\[(?P<project>.+)\])?$`,
)

var (
	groupFile     = msbuildLinePattern.SubexpIndex("file")
	groupLine     = msbuildLinePattern.SubexpIndex("line")
	groupColumn   = msbuildLinePattern.SubexpIndex("column")
	groupSeverity = msbuildLinePattern.SubexpIndex("severity")
	groupCode     = msbuildLinePattern.SubexpIndex("code")
	groupMessage  = msbuildLinePattern.SubexpIndex("message")
	groupProject  = msbuildLinePattern.SubexpIndex("project")
)

// msbuildFields holds the raw captures of one matched line.
type msbuildFields struct {
	File     string
	Line     string
	Column   string
	Severity string
	Code     string
	Message  string
	Project  string
}

func matchMSBuildLine(line string) (msbuildFields, bool) {
	m := msbuildLinePattern.FindStringSubmatch(line)
	if m == nil {
		return msbuildFields{}, false
	}
	return msbuildFields{
		File:     m[groupFile],
		Line:     m[groupLine],
		Column:   m[groupColumn],
		Severity: m[groupSeverity],
		Code:     m[groupCode],
		Message:  m[groupMessage],
		Project:  m[groupProject],
	}, true
}

// MSBuildParser parses the console output of MSBuild and dotnet build.
type MSBuildParser struct {
	baseDir string
	policy  MismatchPolicy
}

// MSBuildOption configures an MSBuildParser.
type MSBuildOption func(*MSBuildParser)

// WithMismatchPolicy sets the policy for lines that are not diagnostics.
// An empty policy keeps the default, MismatchAbort.
func WithMismatchPolicy(policy MismatchPolicy) MSBuildOption {
	return func(p *MSBuildParser) {
		if policy != "" {
			p.policy = policy
		}
	}
}

// NewMSBuildParser creates a parser that makes sources relative to baseDir.
func NewMSBuildParser(baseDir string, opts ...MSBuildOption) *MSBuildParser {
	p := &MSBuildParser{
		baseDir: baseDir,
		policy:  MismatchAbort,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse implements the Parser interface.
//
// Blank lines are ignored. Any other line that does not match the
// diagnostic shape either aborts the parse with a *MismatchError or is
// counted in ParseResult.Skipped, depending on the mismatch policy.
// The parser itself does not log; callers report the offending line.
func (p *MSBuildParser) Parse(_ context.Context, content []byte) (*ParseResult, error) {
	result := &ParseResult{}

	for i, line := range SplitLines(string(content)) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		item, ok := p.ParseLine(line)
		if !ok {
			if p.policy == MismatchSkip {
				result.Skipped++
				continue
			}
			return nil, &MismatchError{
				Parser:     string(ProjectTypeMSBuild),
				LineNumber: i + 1,
				Line:       line,
			}
		}
		result.Items = append(result.Items, item)
	}

	return result, nil
}

// ParseLine converts a single line into a LintItem. It reports false if
// the line does not have the shape of an MSBuild diagnostic.
func (p *MSBuildParser) ParseLine(line string) (LintItem, bool) {
	f, ok := matchMSBuildLine(line)
	if !ok {
		return LintItem{}, false
	}

	fullPath := ResolveProjectPath(strings.TrimSpace(f.Project), strings.TrimSpace(f.File))
	source, valid := RelativePath(p.baseDir, fullPath)
	if !valid {
		source = fullPath
	}

	return LintItem{
		RuleID:   f.Code,
		Log:      line,
		Line:     ParseNumber(f.Line),
		Column:   ParseNumber(f.Column),
		Message:  strings.TrimSpace(f.Code) + ": " + strings.TrimSpace(f.Message),
		Source:   source,
		Severity: MapDotnetSeverity(f.Severity),
		Valid:    valid,
		Type:     ProjectTypeMSBuild,
	}, true
}
