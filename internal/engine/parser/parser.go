// Package parser turns raw build-tool output into normalized lint items.
package parser

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// ProjectType identifies the diagnostic-format family that produced a LintItem.
type ProjectType string

const (
	ProjectTypeMSBuild ProjectType = "msbuild"
	ProjectTypeSarif   ProjectType = "sarif"
)

// NoPosition is the Line/Column value used when the tool reported no position.
const NoPosition = 0

// LintItem is a single diagnostic found in a tool's output.
//
// Line and Column are 1-based. A position the tool did not report is
// NoPosition, and JSON output omits it: a missing "line" or "column" key
// means "no position", never line or column zero.
type LintItem struct {
	RuleID   string      `json:"rule_id"`
	Log      string      `json:"log,omitempty"` // original, unmodified line
	Line     int         `json:"line,omitempty"`
	Column   int         `json:"column,omitempty"`
	Message  string      `json:"message"`
	Source   string      `json:"source"`
	Severity Severity    `json:"severity"`
	Valid    bool        `json:"valid"` // Source was resolved under the base directory
	Type     ProjectType `json:"type"`
}

// ParseResult holds the outcome of parsing one log.
type ParseResult struct {
	Items []LintItem
	// Skipped counts non-blank lines dropped under MismatchSkip.
	Skipped int
}

// Parser parses raw tool output into lint items.
type Parser interface {
	Parse(ctx context.Context, content []byte) (*ParseResult, error)
}

// Options configures a parser instance.
type Options struct {
	// BaseDir is the directory sources are made relative to.
	BaseDir    string
	OnMismatch MismatchPolicy
}

// Factory builds a Parser for the given options.
type Factory func(opts Options) Parser

// Registry manages available parser factories.
type Registry struct {
	factories map[ProjectType]Factory
	mu        sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[ProjectType]Factory),
	}
}

// DefaultRegistry returns a Registry with every built-in parser registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ProjectTypeMSBuild, func(opts Options) Parser {
		return NewMSBuildParser(opts.BaseDir, WithMismatchPolicy(opts.OnMismatch))
	})
	r.Register(ProjectTypeSarif, func(opts Options) Parser {
		return NewSarifParser(opts.BaseDir)
	})
	return r
}

// Register adds a parser factory to the registry.
func (r *Registry) Register(t ProjectType, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[t] = f
}

// Get returns the factory for t. Returns nil if not found.
func (r *Registry) Get(t ProjectType) Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.factories[t]
}

// New builds a parser for t, or returns an error if t is not registered.
func (r *Registry) New(t ProjectType, opts Options) (Parser, error) {
	f := r.Get(t)
	if f == nil {
		return nil, fmt.Errorf("unknown log type %q (valid: %v)", t, r.Types())
	}
	return f(opts), nil
}

// Types returns the registered project types in sorted order.
func (r *Registry) Types() []ProjectType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]ProjectType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
