// Package enginepool manages a fixed-size set of TTS engine
// instances, each expensive to construct and non-reentrant, behind a
// counting semaphore that provides FIFO backpressure once every
// engine is busy.
package enginepool

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/book-expert/tts-gateway/internal/apperrors"
	"github.com/book-expert/tts-gateway/internal/synth"
)

// engineSlot pairs one engine with the mutex that enforces exclusive
// use of it while a permit holds it.
type engineSlot struct {
	engine synth.Engine
	mu     sync.Mutex
}

// Pool is a fixed-size, process-lifetime set of engines. Engines are
// never destroyed once created.
type Pool struct {
	engines []*engineSlot
	sem     *semaphore.Weighted
	size    int64

	totalRequests atomic.Uint64
	activeCount   atomic.Int64
}

// New builds a pool with one slot per engine in engines. len(engines)
// must be at least 1.
func New(engines []synth.Engine) *Pool {
	slots := make([]*engineSlot, len(engines))
	for i, e := range engines {
		slots[i] = &engineSlot{engine: e}
	}

	return &Pool{
		engines: slots,
		sem:     semaphore.NewWeighted(int64(len(engines))),
		size:    int64(len(engines)),
	}
}

// Permit is a capability object whose lifetime marks one engine as
// in-use. Release must be called exactly once, typically via defer,
// to return the engine lock and semaphore unit to the pool.
type Permit struct {
	pool *Pool
	slot *engineSlot
}

// Engine returns the engine this permit exclusively holds.
func (p *Permit) Engine() synth.Engine {
	return p.slot.engine
}

// Release returns the engine and semaphore unit to the pool and
// decrements the active-request gauge.
func (p *Permit) Release() {
	p.slot.mu.Unlock()
	p.pool.sem.Release(1)
	p.pool.activeCount.Add(-1)
}

// Acquire waits for one semaphore unit (FIFO), assigns the engine at
// total_requests mod pool size, locks that engine exclusively, and
// returns a Permit. If ctx is done before a unit becomes available,
// it returns apperrors.PoolExhausted.
func (p *Pool) Acquire(ctx context.Context) (*Permit, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, apperrors.PoolExhausted()
	}

	total := p.totalRequests.Add(1)
	slot := p.engines[total%uint64(p.size)] //nolint:gosec // size is always > 0 and small

	slot.mu.Lock()
	p.activeCount.Add(1)

	return &Permit{pool: p, slot: slot}, nil
}

// Stats is a non-blocking snapshot of pool state.
type Stats struct {
	PoolSize         int
	ActiveRequests   int64
	AvailableEngines int64
	TotalRequests    uint64
}

// Stats returns the current pool statistics.
func (p *Pool) Stats() Stats {
	active := p.activeCount.Load()

	return Stats{
		PoolSize:         int(p.size),
		ActiveRequests:   active,
		AvailableEngines: p.size - active,
		TotalRequests:    p.totalRequests.Load(),
	}
}
