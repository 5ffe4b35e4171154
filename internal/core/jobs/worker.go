package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/petmanager/petmanager-be/internal/shared/utils"
)

// Worker polls a queue and dispatches jobs to registered handlers
type Worker struct {
	queue    *Queue
	config   WorkerConfig
	handlers map[string]JobHandler

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewWorker creates a new worker for the given queue
func NewWorker(queue *Queue, config WorkerConfig) *Worker {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}

	return &Worker{
		queue:    queue,
		config:   config,
		handlers: make(map[string]JobHandler),
	}
}

// RegisterHandler registers a handler for a job type
func (w *Worker) RegisterHandler(handler JobHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[handler.GetType()] = handler
}

// Start begins polling the queue. It returns immediately; processing happens
// on background goroutines until Stop is called.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.started = true
	w.mu.Unlock()

	utils.LogInfo("🚀 Job worker started", map[string]interface{}{
		"queue":       w.config.Queue,
		"concurrency": w.config.Concurrency,
	})

	for i := 0; i < w.config.Concurrency; i++ {
		w.wg.Add(1)
		go w.run(ctx)
	}
}

// Stop stops the worker and waits for in-flight jobs to finish
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.started = false
	w.mu.Unlock()

	w.wg.Wait()
	utils.LogInfo("Job worker stopped", map[string]interface{}{"queue": w.config.Queue})
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Worker) poll(ctx context.Context) {
	job, err := w.queue.Dequeue(ctx, w.config.Queue)
	if err != nil {
		utils.LogError("❌ Failed to dequeue job", err, map[string]interface{}{"queue": w.config.Queue})
		return
	}
	if job == nil {
		return // Queue is empty
	}

	w.process(ctx, job)
}

func (w *Worker) process(ctx context.Context, job *Job) {
	w.mu.Lock()
	handler, ok := w.handlers[job.Type]
	w.mu.Unlock()

	if !ok {
		err := fmt.Errorf("no handler registered for job type %q", job.Type)
		utils.LogError("❌ Unhandled job type", err, map[string]interface{}{"job_id": job.ID})
		if markErr := w.queue.MarkFailed(ctx, job.ID, err); markErr != nil {
			utils.LogError("❌ Failed to mark job as failed", markErr, nil)
		}
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	if err := handler.Handle(jobCtx, job); err != nil {
		utils.LogError("❌ Job failed", err, map[string]interface{}{
			"job_id":      job.ID,
			"type":        job.Type,
			"attempt":     job.Attempts,
			"max_retries": job.MaxRetries,
		})
		if markErr := w.queue.MarkFailed(ctx, job.ID, err); markErr != nil {
			utils.LogError("❌ Failed to mark job as failed", markErr, nil)
		}
		return
	}

	if err := w.queue.MarkCompleted(ctx, job.ID); err != nil {
		utils.LogError("❌ Failed to mark job as completed", err, nil)
	}
}
