package worker

import (
	"context"
	"sync"

	"github.com/odenysenko/postlens/internal/model"
)

// DatasetLoader loads one dataset file into canonical posts.
type DatasetLoader interface {
	LoadDataset(ctx context.Context, file string) ([]model.Post, error)
}

// LoadResult is the outcome of loading one dataset file.
type LoadResult struct {
	File  string
	Posts []model.Post
	Err   error
}

// Pool runs dataset loads concurrently. File reads are independent, so jobs
// have no ordering dependency between them; callers that need deterministic
// output reassemble results by file (see BatchLoader).
type Pool struct {
	loader         DatasetLoader
	workers        int
	jobQueue       chan string
	results        chan LoadResult
	wg             sync.WaitGroup
	ctx            context.Context
	cancelFunc     context.CancelFunc
	closeQueueOnce sync.Once
	closeOnce      sync.Once
}

// NewPool creates a pool with the given number of workers.
func NewPool(loader DatasetLoader, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		loader:     loader,
		workers:    workers,
		jobQueue:   make(chan string, workers*2),
		results:    make(chan LoadResult, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case file, ok := <-p.jobQueue:
			if !ok {
				return
			}
			posts, err := p.loader.LoadDataset(p.ctx, file)
			select {
			case p.results <- LoadResult{File: file, Posts: posts, Err: err}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a dataset file for loading. Submit blocks when the queue is
// full, so result draining (Wait) must run concurrently with submission once
// the job count exceeds the channel buffers.
func (p *Pool) Submit(file string) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- file:
	}
}

// Close marks submission complete. No Submit may follow Close.
func (p *Pool) Close() {
	p.closeQueueOnce.Do(func() {
		close(p.jobQueue)
	})
}

// Wait drains results until every queued load has completed and returns them
// in completion order. Close must be called (possibly from another goroutine)
// or Wait never returns.
func (p *Pool) Wait() []LoadResult {
	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []LoadResult
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown abandons in-flight loads immediately.
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
