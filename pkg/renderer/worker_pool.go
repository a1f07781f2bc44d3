package renderer

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/df07/go-pathtracer/pkg/log"
)

// ErrPoolStopped is returned when a job is submitted to a pool that was
// never started or has been stopped.
var ErrPoolStopped = errors.New("renderer: worker pool not running")

// RenderJob is one complete render handed to the worker pool
type RenderJob struct {
	ID        int
	Raytracer *Raytracer
	Sink      PixelSink
}

// RenderResult contains the outcome of a RenderJob
type RenderResult struct {
	ID    int
	Stats RenderStats
	Err   error
}

type renderTask struct {
	ctx    context.Context
	job    RenderJob
	result chan RenderResult
}

// WorkerPool runs whole renders on a fixed number of goroutines. Each render
// is still traced on a single goroutine; the pool only bounds how many run at once.
type WorkerPool struct {
	taskQueue  chan renderTask
	numWorkers int
	wg         sync.WaitGroup
	logger     log.Logger

	mu      sync.RWMutex
	started bool
	stopped bool
}

// NewWorkerPool creates a worker pool with the specified number of workers
// and room for queueSize waiting jobs.
func NewWorkerPool(numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueSize < 0 {
		queueSize = 0
	}

	return &WorkerPool{
		taskQueue:  make(chan renderTask, queueSize),
		numWorkers: numWorkers,
		logger:     log.New("worker-pool"),
	}
}

// Start begins all workers. Calling Start more than once has no effect.
func (wp *WorkerPool) Start() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.started || wp.stopped {
		return
	}
	wp.started = true

	for id := 0; id < wp.numWorkers; id++ {
		wp.wg.Add(1)
		go wp.run(id)
	}
	wp.logger.Infof("started %d render workers", wp.numWorkers)
}

// Stop drains queued jobs and waits for the workers to exit
func (wp *WorkerPool) Stop() {
	wp.mu.Lock()
	if wp.stopped {
		wp.mu.Unlock()
		return
	}
	wp.stopped = true
	close(wp.taskQueue)
	wp.mu.Unlock()

	wp.wg.Wait()
}

// Submit queues job and blocks until it finishes or ctx is done. The render
// itself observes ctx, so cancelling also stops an in-flight job at the next row.
func (wp *WorkerPool) Submit(ctx context.Context, job RenderJob) RenderResult {
	if err := ctx.Err(); err != nil {
		return RenderResult{ID: job.ID, Err: err}
	}
	task := renderTask{ctx: ctx, job: job, result: make(chan RenderResult, 1)}

	// A started pool drains the queue until Stop closes it
	wp.mu.RLock()
	if !wp.started || wp.stopped {
		wp.mu.RUnlock()
		return RenderResult{ID: job.ID, Err: ErrPoolStopped}
	}
	select {
	case wp.taskQueue <- task:
	case <-ctx.Done():
		wp.mu.RUnlock()
		return RenderResult{ID: job.ID, Err: ctx.Err()}
	}
	wp.mu.RUnlock()

	select {
	case result := <-task.result:
		return result
	case <-ctx.Done():
		return RenderResult{ID: job.ID, Err: ctx.Err()}
	}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) run(id int) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.logger.Debugf("worker %d: job %d", id, task.job.ID)
		stats, err := task.job.Raytracer.RenderContext(task.ctx, task.job.Sink)
		task.result <- RenderResult{ID: task.job.ID, Stats: stats, Err: err}
	}
}
