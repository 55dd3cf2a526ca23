package swapsim

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Rand is the randomness source behind transaction hashes and the swap
// outcome. Injectable so tests can force deterministic paths.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Sleeper injects the artificial chain delay. The production sleeper
// respects context cancellation.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand returns a time-seeded, concurrency-safe Rand.
func NewRand() Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededRand returns a Rand with a fixed seed.
func NewSeededRand(seed int64) Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NopSleeper skips delays entirely.
type NopSleeper struct{}

func (NopSleeper) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
