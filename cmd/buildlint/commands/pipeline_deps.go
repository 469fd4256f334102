package commands

import (
	"context"

	"github.com/irahardianto/buildlint/internal/engine/formatter"
	"github.com/irahardianto/buildlint/internal/engine/runner"
)

// LogRunner abstracts parallel parsing of build logs.
type LogRunner interface {
	RunAll(ctx context.Context, jobs []runner.Job) (*formatter.Report, error)
}
