package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sopforge/sopforge/internal/config"
	"github.com/sopforge/sopforge/internal/outline"
)

// Orchestrator manages the batch render pipeline.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	dec      outline.Decomposer
	log      *slog.Logger
	cfg      config.Config
	template string

	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Serializes queue sends against close during shutdown.
	mu     sync.Mutex
	closed bool
}

// NewOrchestrator creates the pipeline; call Start to launch workers.
// template overrides the built-in markdown template text when non-empty.
func NewOrchestrator(cfg config.Config, dec outline.Decomposer, log *slog.Logger, template string) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		dec:      dec,
		log:      log,
		cfg:      cfg,
		template: template,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.dec, o.log, o.cfg.OutputDir, o.template)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.queue)
	}
	o.mu.Unlock()
	o.wg.Wait()
}

// Submit queues a new job for processing. After Stop it fails the job
// instead of panicking on the closed queue.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		job.SetStatus(StatusFailed, "shutdown")
		return fmt.Errorf("pipeline is shut down")
	}
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}
