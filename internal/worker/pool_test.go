package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/odenysenko/postlens/internal/model"
)

// mockLoader implements DatasetLoader
type mockLoader struct {
	delay    time.Duration
	executed int32 // atomic counter
}

func (m *mockLoader) LoadDataset(ctx context.Context, file string) ([]model.Post, error) {
	atomic.AddInt32(&m.executed, 1)
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if strings.HasPrefix(file, "bad") {
		return nil, errors.New("load error")
	}
	return []model.Post{{ID: file + "-0", SourceFile: file}}, nil
}

func TestNewPool(t *testing.T) {
	p1 := NewPool(&mockLoader{}, 5)
	if p1.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p1.workers)
	}

	p2 := NewPool(&mockLoader{}, 0)
	if p2.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p2.workers)
	}

	p3 := NewPool(&mockLoader{}, -1)
	if p3.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p3.workers)
	}
}

func TestPool_LoadsAllFiles(t *testing.T) {
	loader := &mockLoader{}
	pool := NewPool(loader, 3)
	pool.Start()

	files := []string{"a.csv", "b.csv", "c.csv", "d.csv"}
	for _, file := range files {
		pool.Submit(file)
	}
	pool.Close()

	results := pool.Wait()
	if len(results) != len(files) {
		t.Fatalf("expected %d results, got %d", len(files), len(results))
	}
	if got := atomic.LoadInt32(&loader.executed); got != int32(len(files)) {
		t.Errorf("expected %d loads, got %d", len(files), got)
	}

	seen := make(map[string]bool)
	for _, result := range results {
		if result.Err != nil {
			t.Errorf("unexpected error for %s: %v", result.File, result.Err)
		}
		if len(result.Posts) != 1 {
			t.Errorf("expected 1 post for %s, got %d", result.File, len(result.Posts))
		}
		seen[result.File] = true
	}
	for _, file := range files {
		if !seen[file] {
			t.Errorf("missing result for %s", file)
		}
	}
}

func TestPool_ErrorsDoNotStopOtherJobs(t *testing.T) {
	pool := NewPool(&mockLoader{}, 2)
	pool.Start()

	pool.Submit("bad.csv")
	pool.Submit("good.csv")
	pool.Close()

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	var errCount, okCount int
	for _, result := range results {
		if result.Err != nil {
			errCount++
		} else {
			okCount++
		}
	}
	if errCount != 1 || okCount != 1 {
		t.Errorf("expected 1 error and 1 success, got %d errors, %d successes", errCount, okCount)
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(&mockLoader{delay: time.Second}, 1)
	pool.Start()
	pool.Submit("slow.csv")

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not complete in time")
	}
}

func TestBatchLoader_PreservesFileOrder(t *testing.T) {
	loader := &mockLoader{}
	batch := NewBatchLoader(loader, 4)

	files := []string{"c.csv", "a.csv", "b.csv"}
	results := batch.Load(context.Background(), files)

	if len(results) != len(files) {
		t.Fatalf("expected %d results, got %d", len(files), len(results))
	}
	for i, file := range files {
		if results[i].File != file {
			t.Errorf("result %d: file %q, want %q", i, results[i].File, file)
		}
	}
}

func TestBatchLoader_ManyFilesDoNotBlock(t *testing.T) {
	loader := &mockLoader{}
	batch := NewBatchLoader(loader, 4)

	// Far more files than the pool's channel buffers can hold at once.
	files := make([]string, 50)
	for i := range files {
		files[i] = fmt.Sprintf("file-%02d.csv", i)
	}

	done := make(chan []LoadResult, 1)
	go func() {
		done <- batch.Load(context.Background(), files)
	}()

	var results []LoadResult
	select {
	case results = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Load did not complete with a large file set")
	}

	if len(results) != len(files) {
		t.Fatalf("expected %d results, got %d", len(files), len(results))
	}
	for i, file := range files {
		if results[i].File != file {
			t.Errorf("result %d: file %q, want %q", i, results[i].File, file)
		}
		if results[i].Err != nil {
			t.Errorf("unexpected error for %s: %v", file, results[i].Err)
		}
	}
}

func TestBatchLoader_EmptyInput(t *testing.T) {
	batch := NewBatchLoader(&mockLoader{}, 2)
	if results := batch.Load(context.Background(), nil); results != nil {
		t.Errorf("expected nil results for empty input, got %v", results)
	}
}

func TestBatchLoader_CanceledContext(t *testing.T) {
	loader := &mockLoader{delay: 5 * time.Second}
	batch := NewBatchLoader(loader, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	results := batch.Load(ctx, []string{"a.csv", "b.csv"})
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("cancellation took too long: %v", elapsed)
	}

	if len(results) != 2 {
		t.Fatalf("expected a result per file, got %d", len(results))
	}
	for _, result := range results {
		if result.Err == nil {
			t.Errorf("expected error for %s after cancellation", result.File)
		}
	}
}
