package worker

import "context"

// BatchLoader loads a set of dataset files concurrently through a pool while
// keeping the caller's file order in the result. Deterministic order matters:
// post ids and feed ordering derive from the configured dataset order.
type BatchLoader struct {
	loader      DatasetLoader
	concurrency int
}

// NewBatchLoader creates a batch loader with the given concurrency.
func NewBatchLoader(loader DatasetLoader, concurrency int) *BatchLoader {
	return &BatchLoader{
		loader:      loader,
		concurrency: concurrency,
	}
}

// Load loads all files and returns one result per file, in input order.
func (b *BatchLoader) Load(ctx context.Context, files []string) []LoadResult {
	if len(files) == 0 {
		return nil
	}

	pool := NewPool(b.loader, b.concurrency)
	pool.Start()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	// Submission runs alongside the result drain below: with more files than
	// the pool's channel buffers, submitting everything first would wedge on
	// the full results channel.
	go func() {
		for _, file := range files {
			pool.Submit(file)
		}
		pool.Close()
	}()

	results := pool.Wait()
	close(done)

	byFile := make(map[string]LoadResult, len(results))
	for _, result := range results {
		byFile[result.File] = result
	}

	ordered := make([]LoadResult, 0, len(files))
	for _, file := range files {
		if result, ok := byFile[file]; ok {
			ordered = append(ordered, result)
			continue
		}
		// Shut down before the job ran; surface the context error.
		ordered = append(ordered, LoadResult{File: file, Err: ctx.Err()})
	}
	return ordered
}
