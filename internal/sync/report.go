package sync

import (
	"time"

	"github.com/google/uuid"
	"github.com/lodehq/lode/internal/logger"
	"github.com/lodehq/lode/internal/printer"
)

// Success is one installed update.
type Success struct {
	ID      string
	Name    string
	Version string
	File    string

	// Unverified marks installs the registry supplied no digest for.
	Unverified bool
}

type Failure struct {
	ID     string
	Reason string
}

type Skip struct {
	ID     string
	Reason string
}

// Report aggregates one sync run. It is built incrementally during the run
// and read-only afterwards; it is never persisted.
type Report struct {
	RunID      string
	Started    time.Time
	Elapsed    time.Duration
	BackupPath string

	Successes []Success
	Failures  []Failure
	Skips     []Skip
}

func NewReport() *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
}

func (r *Report) RecordSuccess(s Success) { r.Successes = append(r.Successes, s) }

func (r *Report) RecordFailure(id, reason string) {
	r.Failures = append(r.Failures, Failure{ID: id, Reason: reason})
}

func (r *Report) RecordSkip(id, reason string) {
	r.Skips = append(r.Skips, Skip{ID: id, Reason: reason})
}

// Print renders the per-entry table and the final counts. A run with zero
// successes and zero failures is a valid outcome and still gets a summary.
func (r *Report) Print() {
	p := printer.NewColorPrinter()

	table := logger.CreateTable([]string{"Mod", "Result", "Detail"})
	for _, s := range r.Successes {
		detail := s.Version + " → " + s.File
		if s.Unverified {
			detail += " " + p.Warning("(unverified)")
		}
		_ = table.Append([]string{s.Name, p.Success("updated"), detail})
	}
	for _, f := range r.Failures {
		_ = table.Append([]string{f.ID, p.Error("failed"), f.Reason})
	}
	for _, s := range r.Skips {
		_ = table.Append([]string{s.ID, p.Warning("skipped"), s.Reason})
	}
	if err := table.Render(); err != nil {
		logger.LogError("Error rendering report: %v", err)
	}

	logger.Info("Sync run %s finished in %s: %d updated, %d failed, %d skipped",
		r.RunID, r.Elapsed.Round(time.Millisecond),
		len(r.Successes), len(r.Failures), len(r.Skips))
}
