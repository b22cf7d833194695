package random

import (
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"regexp"
	"strings"
)

// MaxLegacySeed is the largest plain numeric seed routed to LCRandom31.
const MaxLegacySeed = 32000

var (
	msPrefix   = regexp.MustCompile(`^ms([0-9]+)\n?$`)
	separators = regexp.MustCompile(`[\s#\-_.,]`)

	// msBit marks an "ms" seed when a seed is stored as a plain integer.
	msBit = new(big.Int).Lsh(big.NewInt(1), 1000)

	minFreshSeed = new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil)
	maxFreshSeed = new(big.Int).Exp(big.NewInt(10), big.NewInt(20), nil)
)

// Parse builds a generator from a seed string.
//
// "ms<N>" always selects LCRandom31 with seed N. Otherwise a trailing "L" is
// dropped, the string is lowercased and spaces and "#-_.," are removed; the
// remaining digits select LCRandom31 for 0..32000 and MTRandom above that.
func Parse(s string) (Random, error) {
	if m := msPrefix.FindStringSubmatch(s); m != nil {
		n, ok := new(big.Int).SetString(m[1], 10)
		if !ok || !n.IsUint64() || n.Uint64() > MaxLCSeed {
			return nil, fmt.Errorf("%w: %q", ErrSeedOutOfRange, s)
		}
		return NewLCRandom31(n.Uint64())
	}

	clean := strings.TrimSuffix(s, "L")
	clean = separators.ReplaceAllString(strings.ToLower(clean), "")
	if clean == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeed, s)
	}
	for _, c := range clean {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSeed, s)
		}
	}
	n, _ := new(big.Int).SetString(clean, 10)
	if n.Cmp(big.NewInt(MaxLegacySeed)) <= 0 {
		return NewLCRandom31(n.Uint64())
	}
	return NewMTRandom(n), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// constant seeds.
func MustParse(s string) Random {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// NewSeed returns a fresh MTRandom seeded from src with a seed in [10^16, 10^20).
func NewSeed(src *mrand.Rand) Random {
	span := new(big.Int).Sub(maxFreshSeed, minFreshSeed)
	// span exceeds 64 bits; draw it as high and low parts in base 10^16
	hi := new(big.Int).Div(span, minFreshSeed).Uint64()
	seed := new(big.Int).SetUint64(src.Uint64N(hi))
	seed.Mul(seed, minFreshSeed)
	seed.Add(seed, new(big.Int).SetUint64(src.Uint64N(minFreshSeed.Uint64())))
	seed.Add(seed, minFreshSeed)

	r := NewMTRandom(seed)
	r.SetOrigin(OriginRandom)
	return r
}

// SeedToInt encodes a seed string as a single integer. "ms" seeds set a
// marker bit far above any real seed.
func SeedToInt(s string) (*big.Int, error) {
	if m := msPrefix.FindStringSubmatch(s); m != nil {
		n, _ := new(big.Int).SetString(m[1], 10)
		return n.Or(n, msBit), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeed, s)
	}
	return n, nil
}

// IntToSeed reverses SeedToInt.
func IntToSeed(n *big.Int) string {
	if n.Bit(1000) == 1 {
		v := new(big.Int).AndNot(n, msBit)
		return "ms" + v.String()
	}
	return n.String()
}

// FromInt rebuilds a generator from a SeedToInt value.
func FromInt(n *big.Int) (Random, error) {
	return Parse(IntToSeed(n))
}
