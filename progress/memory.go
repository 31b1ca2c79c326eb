package progress

import (
	"context"
	"sync"
)

// MemoryTracker keeps job state in process memory. It is the default when
// no redis address is configured.
type MemoryTracker struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{
		jobs: make(map[string]Job),
	}
}

func (t *MemoryTracker) Update(ctx context.Context, job Job) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs[job.ID] = job
	return nil
}

func (t *MemoryTracker) Get(ctx context.Context, id string) (Job, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	job, ok := t.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}
