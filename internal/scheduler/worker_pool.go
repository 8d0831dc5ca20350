package scheduler

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	jobTracer      = otel.Tracer("duit/scheduler")
	jobMeter       = otel.Meter("duit/scheduler")
	jobDuration, _ = jobMeter.Float64Histogram("scheduler.job.duration", metric.WithDescription("Per-owner job execution duration in seconds"), metric.WithUnit("s"))
	jobTotal, _    = jobMeter.Int64Counter("scheduler.job.total", metric.WithDescription("Total per-owner jobs executed by status"))
)

// WorkerPool processes a batch of per-owner jobs with bounded concurrency.
// The pool holds no state between runs: Process spins up the workers, drains
// the batch and reports the outcome.
type WorkerPool struct {
	workerCount int
	jobDelay    time.Duration
	jobTimeout  time.Duration
}

// NewWorkerPool creates a worker pool.
// workerCount: number of concurrent workers.
// jobDelay: optional pause between jobs on each worker (rate limiting).
// jobTimeout: deadline applied to every individual job.
func NewWorkerPool(workerCount int, jobDelay, jobTimeout time.Duration) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if jobTimeout <= 0 {
		jobTimeout = 120 * time.Second
	}
	return &WorkerPool{
		workerCount: workerCount,
		jobDelay:    jobDelay,
		jobTimeout:  jobTimeout,
	}
}

// Process runs every job in the batch and returns how many succeeded and
// failed. If the run's context expires mid-batch, the jobs not yet handed to
// a worker are left for the next scheduled run and reported in the log.
func (wp *WorkerPool) Process(ctx context.Context, jobs []Job) (succeeded, failed int) {
	if len(jobs) == 0 {
		return 0, 0
	}

	workers := wp.workerCount
	if workers > len(jobs) {
		workers = len(jobs)
	}

	queue := make(chan Job)
	var ok, errs int64
	var wg sync.WaitGroup

	for i := 1; i <= workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for job := range queue {
				if wp.processJob(ctx, id, job) {
					atomic.AddInt64(&ok, 1)
				} else {
					atomic.AddInt64(&errs, 1)
				}

				if wp.jobDelay > 0 {
					select {
					case <-time.After(wp.jobDelay):
					case <-ctx.Done():
					}
				}
			}
		}(i)
	}

submit:
	for i, job := range jobs {
		select {
		case queue <- job:
		case <-ctx.Done():
			log.Printf("Worker pool: run deadline reached, %d of %d jobs not processed", len(jobs)-i, len(jobs))
			break submit
		}
	}
	close(queue)
	wg.Wait()

	return int(ok), int(errs)
}

// processJob executes a single job with timeout, logging and telemetry.
func (wp *WorkerPool) processJob(ctx context.Context, workerID int, job Job) bool {
	jobCtx, cancel := context.WithTimeout(ctx, wp.jobTimeout)
	defer cancel()

	jobCtx, span := jobTracer.Start(jobCtx, "job.execute",
		trace.WithAttributes(
			attribute.Int("worker.id", workerID),
			attribute.String("job.description", job.Description()),
			attribute.String("job.owner_id", job.OwnerID()),
		),
	)
	defer span.End()

	start := time.Now()

	if err := job.Execute(jobCtx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		jobTotal.Add(jobCtx, 1, metric.WithAttributes(attribute.String("status", "error")))
		jobDuration.Record(jobCtx, time.Since(start).Seconds())
		log.Printf("Worker %d: %s for user %s failed: %v",
			workerID, job.Description(), job.OwnerID(), err)
		return false
	}

	jobTotal.Add(jobCtx, 1, metric.WithAttributes(attribute.String("status", "success")))
	jobDuration.Record(jobCtx, time.Since(start).Seconds())
	return true
}
