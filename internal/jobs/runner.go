package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"

	"duit/internal/scheduler"
)

// Runner is a scheduled job: triggered with no input, reports a run summary.
// Per-user failures are absorbed into the summary; a returned error means
// the run itself could not proceed (gateway unreachable).
type Runner interface {
	Name() string
	Run(ctx context.Context) (RunSummary, error)
}

// RunSummary aggregates counts for one job run.
type RunSummary struct {
	Owners  int // owners considered by the run
	Sent    int // notifications dispatched
	Skipped int // owners skipped (no tokens, nothing to report)
	Created int // transactions materialized (recurring job only)
	Errors  int // per-owner or per-rule failures
}

func (s RunSummary) String() string {
	return fmt.Sprintf("owners=%d sent=%d skipped=%d created=%d errors=%d",
		s.Owners, s.Sent, s.Skipped, s.Created, s.Errors)
}

// Collector is a synchronized RunSummary accumulator, safe to share across
// the worker pool's concurrent per-owner jobs.
type Collector struct {
	mu sync.Mutex
	s  RunSummary
}

func (c *Collector) AddSent() {
	c.mu.Lock()
	c.s.Sent++
	c.mu.Unlock()
}

func (c *Collector) AddSkipped() {
	c.mu.Lock()
	c.s.Skipped++
	c.mu.Unlock()
}

func (c *Collector) AddError() {
	c.mu.Lock()
	c.s.Errors++
	c.mu.Unlock()
}

// Summary returns a copy of the accumulated counts.
func (c *Collector) Summary() RunSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}

// AsEntry wraps a Runner into a scheduler entry that logs the run summary.
func AsEntry(r Runner, at scheduler.ScheduleTime, dayOfMonth int) scheduler.Entry {
	return scheduler.Entry{
		Name:       r.Name(),
		At:         at,
		DayOfMonth: dayOfMonth,
		Run: func(ctx context.Context) error {
			summary, err := r.Run(ctx)
			if err != nil {
				return err
			}
			log.Printf("Job %s summary: %s", r.Name(), summary)
			return nil
		},
	}
}
