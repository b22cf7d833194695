package random

import (
	"fmt"
	"math/big"
)

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// MTRandom is an MT19937 generator seeded from an arbitrary-precision
// integer. Seeding and float generation match the reference Mersenne Twister
// (init_by_array over the 32-bit words of the seed, 53-bit floats), so a seed
// produces the same deal on every platform.
type MTRandom struct {
	initial *big.Int
	mt      [mtN]uint32
	index   int
	start   State
	origin  Origin
}

// NewMTRandom creates a generator for seed. Negative seeds use their
// absolute value.
func NewMTRandom(seed *big.Int) *MTRandom {
	r := &MTRandom{initial: new(big.Int).Set(seed)}
	r.seed(new(big.Int).Abs(seed))
	r.start = r.State()
	return r
}

func (r *MTRandom) initGenrand(s uint32) {
	r.mt[0] = s
	for i := 1; i < mtN; i++ {
		r.mt[i] = 1812433253*(r.mt[i-1]^(r.mt[i-1]>>30)) + uint32(i)
	}
	r.index = mtN
}

func (r *MTRandom) seed(v *big.Int) {
	// little-endian 32-bit words, at least one
	var key []uint32
	mask := big.NewInt(0xffffffff)
	x := new(big.Int).Set(v)
	for x.Sign() > 0 {
		key = append(key, uint32(new(big.Int).And(x, mask).Uint64()))
		x.Rsh(x, 32)
	}
	if len(key) == 0 {
		key = []uint32{0}
	}

	r.initGenrand(19650218)
	i, j := 1, 0
	k := max(mtN, len(key))
	for ; k > 0; k-- {
		r.mt[i] = (r.mt[i] ^ ((r.mt[i-1] ^ (r.mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			r.mt[0] = r.mt[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		r.mt[i] = (r.mt[i] ^ ((r.mt[i-1] ^ (r.mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			r.mt[0] = r.mt[mtN-1]
			i = 1
		}
	}
	r.mt[0] = 0x80000000
	r.index = mtN
}

func (r *MTRandom) uint32() uint32 {
	if r.index >= mtN {
		for kk := 0; kk < mtN; kk++ {
			y := (r.mt[kk] & mtUpperMask) | (r.mt[(kk+1)%mtN] & mtLowerMask)
			v := r.mt[(kk+mtM)%mtN] ^ (y >> 1)
			if y&1 != 0 {
				v ^= mtMatrixA
			}
			r.mt[kk] = v
		}
		r.index = 0
	}
	y := r.mt[r.index]
	r.index++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

func (r *MTRandom) Kind() Kind { return KindMT }

// Random returns a 53-bit precision float in [0, 1).
func (r *MTRandom) Random() float64 {
	a := r.uint32() >> 5
	b := r.uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// RandInt returns a + int(Random() * (b-a+1)).
func (r *MTRandom) RandInt(a, b int) int {
	return a + int(r.Random()*float64(b+1-a))
}

func (r *MTRandom) Reset() {
	// start was captured by this generator, the kind always matches
	_ = r.SetState(r.start)
}

func (r *MTRandom) State() State {
	words := make([]uint32, mtN)
	copy(words, r.mt[:])
	return State{kind: KindMT, mt: words, index: r.index}
}

func (r *MTRandom) SetState(s State) error {
	if s.kind != KindMT || len(s.mt) != mtN {
		return ErrStateMismatch
	}
	copy(r.mt[:], s.mt)
	r.index = s.index
	return nil
}

func (r *MTRandom) InitialSeed() *big.Int { return new(big.Int).Set(r.initial) }

func (r *MTRandom) SeedString() string { return r.initial.String() }

func (r *MTRandom) SeedAsString() string { return fmt.Sprintf("%020d", r.initial) }

func (r *MTRandom) Origin() Origin     { return r.origin }
func (r *MTRandom) SetOrigin(o Origin) { r.origin = o }
