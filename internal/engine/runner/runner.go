// Package runner provides the parallel execution engine for parsing build logs.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/irahardianto/buildlint/internal/engine/filter"
	"github.com/irahardianto/buildlint/internal/engine/formatter"
	"github.com/irahardianto/buildlint/internal/engine/parser"
	"github.com/irahardianto/buildlint/internal/platform/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of logs parsed at once.
const DefaultConcurrency = 4

// LogReader abstracts reading log content for testability.
type LogReader interface {
	ReadFile(name string) ([]byte, error)
}

// Job describes one log to parse.
type Job struct {
	Name     string
	Path     string
	Type     parser.ProjectType
	Blocking bool
	Parser   parser.Parser
	Filter   filter.Rules
}

// Engine orchestrates parallel log parsing.
type Engine struct {
	Reader LogReader
	// Concurrency bounds parallel jobs; values below 1 use DefaultConcurrency.
	Concurrency int
	// Progress is an optional progress tracker. If nil, no progress output is produced.
	Progress *Progress
}

// NewEngine creates a new execution engine reading logs through r.
func NewEngine(r LogReader, concurrency int) *Engine {
	return &Engine{Reader: r, Concurrency: concurrency}
}

// RunAll parses all jobs in parallel and collects results in job order.
// A failing log never stops the others; its failure is recorded in its
// LogResult. An error is returned only if ctx is cancelled.
func (e *Engine) RunAll(ctx context.Context, jobs []Job) (*formatter.Report, error) {
	log := logger.FromContext(ctx)
	log.Info("Engine.RunAll started", "logs", len(jobs))
	start := time.Now()

	if len(jobs) == 0 {
		return &formatter.Report{Passed: true}, nil
	}

	limit := e.Concurrency
	if limit < 1 {
		limit = DefaultConcurrency
	}

	if e.Progress != nil {
		e.Progress.Begin(len(jobs))
		defer e.Progress.Finish()
	}

	results := make([]formatter.LogResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, len(jobs)))

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if e.Progress != nil {
				e.Progress.OnStart(job.Name)
			}

			results[i] = e.runJob(gctx, job)

			if e.Progress != nil {
				r := results[i]
				e.Progress.OnComplete(r.Name, r.Passed, r.ParseError != "", len(r.Items), time.Duration(r.DurationMs)*time.Millisecond)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parsing logs: %w", err)
	}

	report := &formatter.Report{
		Passed: true,
		Logs:   results,
	}
	for _, r := range results {
		// A run fails if any blocking log failed to parse or reported errors.
		if r.Blocking && !r.Passed {
			report.Passed = false
		}
	}
	report.DurationMs = time.Since(start).Milliseconds()

	log.Info("Engine.RunAll completed", "passed", report.Passed, "duration_ms", report.DurationMs)
	return report, nil
}

// runJob reads, parses and filters a single log.
func (e *Engine) runJob(ctx context.Context, job Job) formatter.LogResult {
	log := logger.FromContext(ctx).With("log_name", job.Name, "path", job.Path)
	start := time.Now()

	result := formatter.LogResult{
		Name:     job.Name,
		Path:     job.Path,
		Type:     string(job.Type),
		Blocking: job.Blocking,
	}

	content, err := e.Reader.ReadFile(job.Path)
	if err != nil {
		log.Error("reading log failed", "error", err)
		result.ParseError = fmt.Sprintf("reading log: %v", err)
		result.DurationMs = time.Since(start).Milliseconds()
		return result
	}

	parsed, err := job.Parser.Parse(ctx, content)
	if err != nil {
		var mErr *parser.MismatchError
		if errors.As(err, &mErr) {
			log.Error("log structure doesn't match", "log", mErr.Line, "line_number", mErr.LineNumber)
			result.MismatchLine = mErr.Line
		} else {
			log.Error("parsing log failed", "error", err)
		}
		result.ParseError = err.Error()
		result.DurationMs = time.Since(start).Milliseconds()
		return result
	}

	result.Items = filter.Apply(parsed.Items, job.Filter)
	result.Filtered = len(parsed.Items) - len(result.Items)
	result.SkippedLines = parsed.Skipped
	result.Passed = formatter.CountItems(result.Items).Errors == 0
	result.DurationMs = time.Since(start).Milliseconds()

	log.Debug("log parsed", "items", len(result.Items), "filtered", result.Filtered, "skipped_lines", result.SkippedLines)
	return result
}
