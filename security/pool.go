// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eggandi/innowireless-dev-sub001/ec256"
	"github.com/jrick/bitset"
)

const (
	// DefaultPoolCapacity is the number of signing parameters a pool holds
	// when no capacity is configured.
	DefaultPoolCapacity = 10

	// DefaultRefillInterval is how often the refill loop wakes when no
	// interval is configured.
	DefaultRefillInterval = 100 * time.Millisecond
)

// PoolConfig houses the configuration for a SigningPool.
type PoolConfig struct {
	// Curve is the curve the parameters are computed for.
	Curve ec256.Curve

	// Capacity is the fixed number of entries.  Zero selects
	// DefaultPoolCapacity.
	Capacity int

	// RefillInterval is the refill loop period.  Zero selects
	// DefaultRefillInterval.
	RefillInterval time.Duration

	// Rand is the nonce source.  A nil value selects the default
	// cryptographically secure source.
	Rand io.Reader
}

// PoolStats is a snapshot of the pool counters.
type PoolStats struct {
	// Capacity is the fixed number of entries held by the pool.
	Capacity int

	// Available is the number of entries that have not been handed out.
	Available int

	// Consumed is the number of handed out entries still awaiting
	// replacement.
	Consumed int

	// Takes is the total number of parameters handed out, including fresh
	// draws.
	Takes uint64

	// FreshDraws is the number of Take calls that found every entry already
	// handed out and computed new parameters instead.
	FreshDraws uint64

	// Refills is the number of entries replaced by the refill loop.
	Refills uint64
}

// SigningPool keeps a fixed-capacity ring of precomputed signing parameters
// so nonce generation stays off the signing path.
//
// Every entry is handed out at most once.  Take walks the ring round-robin
// from the cursor and skips entries that were already issued; when all of
// them were, it computes a fresh set instead of repeating one.  The refill
// loop started by Run replaces the oldest entry whenever entries have been
// consumed.
type SigningPool struct {
	// The following fields are only written on creation.
	curve    ec256.Curve
	rand     io.Reader
	interval time.Duration

	started atomic.Bool

	// Counters.
	takes      atomic.Uint64
	freshDraws atomic.Uint64
	refills    atomic.Uint64

	// pending is a computed replacement that could not be installed yet.  It
	// is only accessed by the refill loop.
	pending *SigningParams

	// The mutex guards only index bookkeeping.  No curve arithmetic happens
	// while it is held.
	mtx      sync.Mutex
	ring     []SigningParams
	issued   bitset.Bytes
	head     int // oldest entry
	cursor   int // next entry to hand out
	consumed int // issued entries still in the ring
	closed   bool
}

// NewSigningPool creates a pool and fills every entry.  The refill loop does
// not run until Run is called.
func NewSigningPool(cfg *PoolConfig) (*SigningPool, error) {
	if cfg.Curve == nil {
		return nil, makeError(ErrOperational, "signing pool requires a curve")
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	interval := cfg.RefillInterval
	if interval <= 0 {
		interval = DefaultRefillInterval
	}

	p := &SigningPool{
		curve:    cfg.Curve,
		rand:     defaultRand(cfg.Rand),
		interval: interval,
		ring:     make([]SigningParams, capacity),
		issued:   bitset.NewBytes(capacity),
	}
	for i := range p.ring {
		params, err := ComputeSigningParameters(p.curve, p.rand)
		if err != nil {
			for j := 0; j < i; j++ {
				p.ring[j].Zero()
			}
			return nil, err
		}
		p.ring[i] = params
	}

	// The cursor starts at the most recently added entry.
	p.cursor = capacity - 1
	log.Debugf("Created %s signing pool with %d entries", p.curve.Name(),
		capacity)
	return p, nil
}

// Curve returns the curve the pool computes parameters for.
func (p *SigningPool) Curve() ec256.Curve {
	return p.curve
}

// Capacity returns the fixed number of entries in the pool.
func (p *SigningPool) Capacity() int {
	return len(p.ring)
}

// Take returns a copy of signing parameters that have never been handed out
// before.  The caller owns the copy and must use it for a single signature.
//
// This function is safe for concurrent access.
func (p *SigningPool) Take() (SigningParams, error) {
	p.mtx.Lock()
	if p.closed {
		p.mtx.Unlock()
		return SigningParams{}, makeError(ErrPoolClosed, "signing pool is "+
			"closed")
	}
	n := len(p.ring)
	for i := 0; i < n; i++ {
		idx := (p.cursor + i) % n
		if p.issued.Get(idx) {
			continue
		}
		params := p.ring[idx]
		p.issued.Set(idx)
		p.cursor = (idx + 1) % n
		p.consumed++
		p.mtx.Unlock()
		p.takes.Add(1)
		return params, nil
	}
	p.mtx.Unlock()

	// Every entry has already been handed out.
	p.freshDraws.Add(1)
	p.takes.Add(1)
	log.Debugf("Signing pool exhausted, computing fresh parameters")
	return ComputeSigningParameters(p.curve, p.rand)
}

// refill performs a single refill cycle and reports whether an entry was
// replaced.  It must only be called from the refill loop.
func (p *SigningPool) refill() bool {
	if p.pending == nil {
		params, err := ComputeSigningParameters(p.curve, p.rand)
		if err != nil {
			log.Errorf("Unable to compute signing parameters: %v", err)
			return false
		}
		p.pending = &params
	}

	p.mtx.Lock()
	if p.closed || p.consumed == 0 {
		p.mtx.Unlock()
		return false
	}
	evicted := p.ring[p.head]
	if p.issued.Get(p.head) {
		p.consumed--
	}
	p.ring[p.head] = *p.pending
	p.issued.Unset(p.head)
	p.head = (p.head + 1) % len(p.ring)
	p.mtx.Unlock()

	evicted.Zero()
	p.pending.Zero()
	p.pending = nil
	p.refills.Add(1)
	return true
}

// flush zeroes every entry and closes the pool.
func (p *SigningPool) flush() {
	p.mtx.Lock()
	p.closed = true
	for i := range p.ring {
		p.ring[i].Zero()
		p.issued.Unset(i)
	}
	p.consumed = 0
	p.mtx.Unlock()

	if p.pending != nil {
		p.pending.Zero()
		p.pending = nil
	}
}

// Run replaces consumed entries every refill interval until the context is
// cancelled, after which the pool is flushed and Take fails with
// ErrPoolClosed.  Run may only be called once.
func (p *SigningPool) Run(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return makeError(ErrOperational, "signing pool refill loop is "+
			"already running")
	}

	log.Tracef("Signing pool refill loop started (interval %v)", p.interval)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

out:
	for {
		select {
		case <-ticker.C:
			p.refill()

		case <-ctx.Done():
			break out
		}
	}

	p.flush()
	log.Trace("Signing pool refill loop stopped")
	return nil
}

// Stats returns a snapshot of the pool counters.
//
// This function is safe for concurrent access.
func (p *SigningPool) Stats() PoolStats {
	p.mtx.Lock()
	capacity := len(p.ring)
	consumed := p.consumed
	available := 0
	if !p.closed {
		for i := 0; i < capacity; i++ {
			if !p.issued.Get(i) {
				available++
			}
		}
	}
	p.mtx.Unlock()

	return PoolStats{
		Capacity:   capacity,
		Available:  available,
		Consumed:   consumed,
		Takes:      p.takes.Load(),
		FreshDraws: p.freshDraws.Load(),
		Refills:    p.refills.Load(),
	}
}
