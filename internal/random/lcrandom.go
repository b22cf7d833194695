package random

import (
	"fmt"
	"math/big"
)

// MaxLCSeed is the largest seed accepted by LCRandom31 (33 bits, covering
// the extended MS deal range).
const MaxLCSeed = 1<<33 - 1

// LCRandom31 is the Microsoft C runtime rand() generator used by the
// original FreeCell deals. Seeds in [2^31, 2^32) and [2^32, 2^33) follow the
// extended deal numbering.
type LCRandom31 struct {
	initial uint64
	seedx   uint64
	state   uint64
	origin  Origin
}

// NewLCRandom31 creates a generator for seed, which must not exceed MaxLCSeed.
func NewLCRandom31(seed uint64) (*LCRandom31, error) {
	if seed > MaxLCSeed {
		return nil, fmt.Errorf("%w: %d", ErrSeedOutOfRange, seed)
	}
	r := &LCRandom31{initial: seed, seedx: seed}
	if seed >= 1<<32 {
		r.seedx = seed - 1<<32
	}
	r.Reset()
	return r, nil
}

func (r *LCRandom31) Kind() Kind { return KindLC }

func (r *LCRandom31) step() uint64 {
	r.state = (r.state*214013 + 2531011) & 0xffffffff
	return r.state >> 16
}

// draw returns the next raw value honoring the extended seed ranges.
func (r *LCRandom31) draw() uint64 {
	if r.initial < 1<<32 {
		v := r.step() & 0x7fff
		if r.initial&0x80000000 != 0 {
			v |= 0x8000
		}
		return v
	}
	return (r.step() & 0xffff) + 1
}

// Random returns the next value scaled to [0, 1).
func (r *LCRandom31) Random() float64 {
	return float64(r.step()&0x7fff) / 32768.0
}

// RandInt returns a + draw mod (b-a+1).
func (r *LCRandom31) RandInt(a, b int) int {
	return a + int(r.draw()%uint64(b+1-a))
}

func (r *LCRandom31) Reset() { r.state = r.seedx }

func (r *LCRandom31) State() State { return State{kind: KindLC, lc: r.state} }

func (r *LCRandom31) SetState(s State) error {
	if s.kind != KindLC {
		return ErrStateMismatch
	}
	r.state = s.lc
	return nil
}

func (r *LCRandom31) InitialSeed() *big.Int { return new(big.Int).SetUint64(r.initial) }

func (r *LCRandom31) SeedString() string { return fmt.Sprintf("ms%d", r.initial) }

// SeedAsString is the five-digit form for seeds that plain numbers reach.
// Larger seeds keep the "ms" prefix so the string parses back to the same
// generator.
func (r *LCRandom31) SeedAsString() string {
	if r.initial > MaxLegacySeed {
		return r.SeedString()
	}
	return fmt.Sprintf("%05d", r.initial)
}

func (r *LCRandom31) Origin() Origin     { return r.origin }
func (r *LCRandom31) SetOrigin(o Origin) { r.origin = o }
