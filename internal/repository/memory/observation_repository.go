package memory

import (
	"context"
	"fmt"
	"sync"

	"myGreenField/domain"
)

const DefaultCapacity = 1000

// ObservationRepository keeps the most recent observations in a ring buffer.
// Safe for concurrent use.
type ObservationRepository struct {
	mu    sync.RWMutex
	buf   []domain.Observation
	next  int
	total int
}

func NewObservationRepository(capacity int) *ObservationRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ObservationRepository{buf: make([]domain.Observation, capacity)}
}

// ---- Events ----

func (r *ObservationRepository) SaveEvent(ctx context.Context, obs domain.Observation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[r.next] = obs
	r.next = (r.next + 1) % len(r.buf)
	r.total++
	return nil
}

// Recent returns up to n observations in arrival order, oldest first.
func (r *ObservationRepository) Recent(ctx context.Context, n int) ([]domain.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("invalid limit %d", n)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	size := min(r.total, len(r.buf))
	n = min(n, size)

	out := make([]domain.Observation, n)
	start := r.next - n
	if start < 0 {
		start += len(r.buf)
	}
	for i := range n {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	return out, nil
}

// Total counts every observation ever saved, including evicted ones.
func (r *ObservationRepository) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}
