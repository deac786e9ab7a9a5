package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// MemoryBucket is the single-process token bucket used when redis is not
// configured.
type MemoryBucket struct {
	mu      sync.Mutex
	buckets map[string]*bucketState
	now     func() time.Time
}

type bucketState struct {
	tokens  float64
	updated time.Time
}

func NewMemoryBucket() *MemoryBucket {
	return &MemoryBucket{buckets: make(map[string]*bucketState), now: time.Now}
}

func (m *MemoryBucket) Allow(_ context.Context, key string, rate float64, burst int) (Result, error) {
	if err := validate(key, rate, burst); err != nil {
		return Result{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	state, ok := m.buckets[key]
	if !ok {
		state = &bucketState{tokens: float64(burst), updated: now}
		m.buckets[key] = state
	} else {
		elapsed := now.Sub(state.updated).Seconds()
		if elapsed > 0 {
			state.tokens = math.Min(float64(burst), state.tokens+elapsed*rate)
		}
		state.updated = now
	}

	allowed := state.tokens >= 1
	if allowed {
		state.tokens--
	}
	m.sweep(now, rate, burst)
	return decide(allowed, state.tokens, rate, burst), nil
}

// sweep drops buckets that have refilled completely.
func (m *MemoryBucket) sweep(now time.Time, rate float64, burst int) {
	if len(m.buckets) < 1024 {
		return
	}
	idle := bucketTTL(rate, burst)
	for key, state := range m.buckets {
		if now.Sub(state.updated) > idle {
			delete(m.buckets, key)
		}
	}
}
