// Package filter narrows parsed lint items down to the ones a log reports.
package filter

import (
	"path"
	"strings"

	"github.com/irahardianto/buildlint/internal/engine/parser"
)

// Rules selects lint items by source path and severity.
//
//   - If Only is set, an item is kept only if its source matches a pattern.
//   - Items whose source matches an Except pattern are dropped.
//   - Items ranked below MinSeverity are dropped; empty keeps all.
//   - DropInvalid drops items whose source could not be resolved.
//   - If Changed is non-nil, an item is kept only if its source is a key.
//
// Patterns use path.Match glob syntax (e.g., "*.cs", "src/*/Program.cs"),
// tested against both the full source and its base name. A pattern ending
// in "/**" matches everything under that directory.
type Rules struct {
	Only        []string
	Except      []string
	MinSeverity parser.Severity
	DropInvalid bool
	Changed     map[string]bool
}

// IsZero reports whether r keeps every item.
func (r Rules) IsZero() bool {
	return len(r.Only) == 0 && len(r.Except) == 0 && r.MinSeverity == "" && !r.DropInvalid && r.Changed == nil
}

// Keep reports whether a single item passes the rules.
func (r Rules) Keep(item parser.LintItem) bool {
	if r.DropInvalid && !item.Valid {
		return false
	}
	if r.MinSeverity != "" && item.Severity.Rank() < r.MinSeverity.Rank() {
		return false
	}
	if r.Changed != nil && !r.Changed[item.Source] {
		return false
	}
	if len(r.Except) > 0 && matchesPattern(item.Source, r.Except) {
		return false
	}
	if len(r.Only) > 0 && !matchesPattern(item.Source, r.Only) {
		return false
	}
	return true
}

// Apply returns the items that pass the rules, in their original order.
// The input slice is not modified.
func Apply(items []parser.LintItem, r Rules) []parser.LintItem {
	if r.IsZero() {
		return items
	}

	var result []parser.LintItem
	for _, item := range items {
		if r.Keep(item) {
			result = append(result, item)
		}
	}
	return result
}

// matchesPattern returns true if the source matches any of the given glob patterns.
// An empty source never matches.
func matchesPattern(source string, patterns []string) bool {
	if source == "" {
		return false
	}
	base := path.Base(source)
	for _, p := range patterns {
		if dir, ok := strings.CutSuffix(p, "/**"); ok {
			if strings.HasPrefix(source, dir+"/") {
				return true
			}
			continue
		}
		if matched, _ := path.Match(p, source); matched {
			return true
		}
		// Match against base name (e.g., "*.cs" should match "src/Program.cs").
		if matched, _ := path.Match(p, base); matched {
			return true
		}
	}
	return false
}
