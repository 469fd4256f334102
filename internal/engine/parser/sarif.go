package parser

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"
)

// SarifParser parses SARIF v2.1.0 JSON reports.
type SarifParser struct {
	baseDir string
}

// NewSarifParser creates a SarifParser that makes artifact URIs relative to baseDir.
func NewSarifParser(baseDir string) *SarifParser {
	return &SarifParser{baseDir: baseDir}
}

// Parse implements the Parser interface. Empty input yields no items.
func (p *SarifParser) Parse(_ context.Context, content []byte) (*ParseResult, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return &ParseResult{}, nil
	}

	report, err := sarif.FromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("parsing SARIF JSON: %w", err)
	}

	result := &ParseResult{}
	for _, run := range report.Runs {
		for _, r := range run.Results {
			result.Items = append(result.Items, p.toLintItem(r))
		}
	}
	return result, nil
}

func (p *SarifParser) toLintItem(r *sarif.Result) LintItem {
	level := ""
	if r.Level != nil {
		level = *r.Level
	}

	ruleID := ""
	if r.RuleID != nil {
		ruleID = *r.RuleID
	}

	msg := ""
	if r.Message.Text != nil {
		msg = strings.TrimSpace(*r.Message.Text)
	}
	if ruleID != "" {
		msg = ruleID + ": " + msg
	}

	uri := ""
	line, col := NoPosition, NoPosition
	if len(r.Locations) > 0 && r.Locations[0].PhysicalLocation != nil {
		loc := r.Locations[0].PhysicalLocation
		if loc.ArtifactLocation != nil && loc.ArtifactLocation.URI != nil {
			uri = *loc.ArtifactLocation.URI
		}
		if loc.Region != nil {
			if loc.Region.StartLine != nil {
				line = *loc.Region.StartLine
			}
			if loc.Region.StartColumn != nil {
				col = *loc.Region.StartColumn
			}
		}
	}

	fullPath := p.resolveURI(uri)
	source, valid := RelativePath(p.baseDir, fullPath)
	if !valid {
		source = fullPath
	}

	return LintItem{
		RuleID:   ruleID,
		Line:     line,
		Column:   col,
		Message:  msg,
		Source:   source,
		Severity: MapSarifLevel(level),
		Valid:    valid,
		Type:     ProjectTypeSarif,
	}
}

// resolveURI turns an artifact URI into a canonical path. file:// URIs are
// decoded; relative URIs are taken relative to the base directory.
func (p *SarifParser) resolveURI(uri string) string {
	if uri == "" {
		return ""
	}
	if u, err := url.Parse(uri); err == nil && u.Scheme == "file" {
		uri = strings.TrimPrefix(u.Path, "/")
		if !IsAbsPath(uri) {
			uri = "/" + uri
		}
	} else if unescaped, err := url.PathUnescape(uri); err == nil {
		uri = unescaped
	}
	if IsAbsPath(uri) || p.baseDir == "" {
		return CanonicalPath(uri)
	}
	return CanonicalPath(p.baseDir + "/" + uri)
}
