package utils

import (
	"sync"
	"time"
)

// WorkerPool bounds the number of concurrently running jobs with a
// counting semaphore and optionally spaces out job starts.
type WorkerPool struct {
	rateLimitMs int
	semaphore   chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	lastStart   time.Time
}

// NewWorkerPool creates a WorkerPool with the given concurrency limit and
// minimum interval between job starts (0 disables rate limiting).
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	return &WorkerPool{
		rateLimitMs: rateLimitMs,
		semaphore:   make(chan struct{}, maxWorkers),
		lastStart:   time.Now(),
	}
}

// Submit schedules a job. It blocks while the pool is at its concurrency
// limit, so submission itself applies back-pressure.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		wp.pace()
		job()
	}()
}

// Wait blocks until every submitted job has finished.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) pace() {
	if wp.rateLimitMs <= 0 {
		return
	}

	wp.mu.Lock()
	defer wp.mu.Unlock()

	minInterval := time.Duration(wp.rateLimitMs) * time.Millisecond
	if elapsed := time.Since(wp.lastStart); elapsed < minInterval {
		time.Sleep(minInterval - elapsed)
	}
	wp.lastStart = time.Now()
}

// CodeSet is a thread-safe set of product codes, used to skip duplicate
// fetches within one availability batch.
type CodeSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewCodeSet creates an empty CodeSet.
func NewCodeSet() *CodeSet {
	return &CodeSet{seen: make(map[string]struct{})}
}

// Add returns true if the code was newly added, false if already present.
func (s *CodeSet) Add(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[code]; exists {
		return false
	}
	s.seen[code] = struct{}{}
	return true
}

// Contains returns true if the code has already been added.
func (s *CodeSet) Contains(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[code]
	return exists
}

// Size returns the number of unique codes tracked.
func (s *CodeSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
