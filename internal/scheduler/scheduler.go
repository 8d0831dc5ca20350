package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ScheduleTime represents a time of day when an entry should fire.
type ScheduleTime struct {
	Hour   int
	Minute int
}

// String returns the time in HH:MM format.
func (st ScheduleTime) String() string {
	return fmt.Sprintf("%02d:%02d", st.Hour, st.Minute)
}

// ParseScheduleTime parses a time string in HH:MM format.
func ParseScheduleTime(s string) (ScheduleTime, error) {
	var hour, minute int
	_, err := fmt.Sscanf(s, "%d:%d", &hour, &minute)
	if err != nil {
		return ScheduleTime{}, fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	if hour < 0 || hour > 23 {
		return ScheduleTime{}, fmt.Errorf("invalid hour: %d (must be 0-23)", hour)
	}
	if minute < 0 || minute > 59 {
		return ScheduleTime{}, fmt.Errorf("invalid minute: %d (must be 0-59)", minute)
	}

	return ScheduleTime{Hour: hour, Minute: minute}, nil
}

// Entry binds a named job to its daily trigger time. DayOfMonth restricts
// the entry to a single day each month; zero fires every day.
type Entry struct {
	Name       string
	At         ScheduleTime
	DayOfMonth int
	Run        func(ctx context.Context) error
}

// Scheduler fires entries at their configured times of day, evaluated in a
// single fixed time zone. Each triggered run gets its own bounded context;
// entry failures are logged and never stop the loop.
type Scheduler struct {
	entries    []Entry
	loc        *time.Location
	runTimeout time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	lastRun map[string]string
}

// New creates a scheduler for the given entries. runTimeout bounds every
// triggered run; zero applies a 5 minute default.
func New(entries []Entry, loc *time.Location, runTimeout time.Duration) *Scheduler {
	if runTimeout <= 0 {
		runTimeout = 5 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())

	for _, e := range entries {
		if e.DayOfMonth != 0 {
			log.Printf("Scheduler: %s at %s on day %d (%s)", e.Name, e.At, e.DayOfMonth, loc)
		} else {
			log.Printf("Scheduler: %s at %s daily (%s)", e.Name, e.At, loc)
		}
	}

	return &Scheduler{
		entries:    entries,
		loc:        loc,
		runTimeout: runTimeout,
		ctx:        ctx,
		cancel:     cancel,
		lastRun:    make(map[string]string),
	}
}

// Start launches the scheduling loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.loop()
	log.Println("Scheduler started")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	log.Printf("Scheduler loop started, checking every minute in %s", s.loc)

	for {
		select {
		case <-s.ctx.Done():
			log.Println("Scheduler loop: context cancelled, shutting down")
			return

		case now := <-ticker.C:
			local := now.In(s.loc)
			for _, e := range s.entries {
				if s.due(e, local) {
					s.wg.Add(1)
					go func(e Entry) {
						defer s.wg.Done()
						s.runEntry(e)
					}(e)
				}
			}
		}
	}
}

// due checks whether the entry should fire at the given local time. The
// per-entry dedup key prevents a double fire within the same minute.
func (s *Scheduler) due(e Entry, now time.Time) bool {
	if e.DayOfMonth != 0 && now.Day() != e.DayOfMonth {
		return false
	}
	if now.Hour() != e.At.Hour || now.Minute() != e.At.Minute {
		return false
	}

	key := now.Format("2006-01-02 15:04")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRun[e.Name] == key {
		return false
	}
	s.lastRun[e.Name] = key
	return true
}

func (s *Scheduler) runEntry(e Entry) {
	runID := uuid.NewString()[:8]
	log.Printf("Scheduler: run %s starting job %s", runID, e.Name)

	ctx, cancel := context.WithTimeout(s.ctx, s.runTimeout)
	defer cancel()

	start := time.Now()
	if err := e.Run(ctx); err != nil {
		log.Printf("Scheduler: run %s job %s failed after %v: %v", runID, e.Name, time.Since(start), err)
		return
	}
	log.Printf("Scheduler: run %s job %s completed in %v", runID, e.Name, time.Since(start))
}

// TriggerAll runs every entry immediately, ignoring schedule times. Used for
// run-on-startup.
func (s *Scheduler) TriggerAll() {
	log.Println("Scheduler: manual trigger of all entries")
	for _, e := range s.entries {
		s.wg.Add(1)
		go func(e Entry) {
			defer s.wg.Done()
			s.runEntry(e)
		}(e)
	}
}

// Shutdown stops the loop and waits for in-flight runs up to the timeout.
func (s *Scheduler) Shutdown(timeout time.Duration) {
	log.Println("Scheduler: initiating graceful shutdown...")

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Scheduler: shutdown complete")
	case <-time.After(timeout):
		log.Println("Scheduler: timeout waiting for in-flight runs")
	}
}
