package runner

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Progress tracks and renders log parsing status to an io.Writer (typically stderr).
// Output is suppressed for machine-readable formats to avoid corrupting them.
type Progress struct {
	w          io.Writer
	suppressed bool
	mu         sync.Mutex
	total      int
	results    []logStatus
}

type logStatus struct {
	name     string
	passed   bool
	failed   bool // parse or read failure
	items    int
	duration time.Duration
}

// NewProgress creates a new progress tracker writing to w.
// If suppressed is true, no output is produced.
func NewProgress(w io.Writer, suppressed bool) *Progress {
	return &Progress{
		w:          w,
		suppressed: suppressed,
	}
}

// Begin announces how many logs are about to be parsed.
func (p *Progress) Begin(totalLogs int) {
	if p.suppressed || totalLogs == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = totalLogs
	p.results = p.results[:0]
	fmt.Fprintf(p.w, "⏳ Parsing %d log(s)...\n", totalLogs)
}

// OnStart is called when a log begins parsing.
func (p *Progress) OnStart(name string) {
	if p.suppressed {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "  ⏳ %s\n", name)
}

// OnComplete is called when a log finishes parsing.
func (p *Progress) OnComplete(name string, passed, failed bool, items int, dur time.Duration) {
	if p.suppressed {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.results = append(p.results, logStatus{
		name:     name,
		passed:   passed,
		failed:   failed,
		items:    items,
		duration: dur,
	})

	icon := "✅"
	if failed {
		icon = "💥"
	} else if !passed {
		icon = "❌"
	}

	fmt.Fprintf(p.w, "  %s %s  %d item(s)  %s\n", icon, name, items, formatDuration(dur))
}

// Finish prints a summary line. If the run stopped before every announced
// log completed, the summary says how far it got.
func (p *Progress) Finish() {
	if p.suppressed {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	passed, withErrors, failed := 0, 0, 0
	for _, r := range p.results {
		switch {
		case r.failed:
			failed++
		case !r.passed:
			withErrors++
		default:
			passed++
		}
	}

	fmt.Fprintf(p.w, "\n")
	if len(p.results) < p.total {
		fmt.Fprintf(p.w, "⛔ Stopped after %d of %d log(s): %d clean, %d with errors, %d unparseable\n",
			len(p.results), p.total, passed, withErrors, failed)
		return
	}
	if withErrors == 0 && failed == 0 {
		fmt.Fprintf(p.w, "✅ All %d log(s) clean\n", passed)
	} else {
		fmt.Fprintf(p.w, "Results: %d clean, %d with errors, %d unparseable\n", passed, withErrors, failed)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
