package random

import (
	"math/big"
	mrand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draws(r Random, n, a, b int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = r.RandInt(a, b)
	}
	return out
}

func TestLCRandom31Sequence(t *testing.T) {
	r, err := NewLCRandom31(1)
	require.NoError(t, err)
	assert.Equal(t, []int{41, 7, 42, 32, 33}, draws(r, 5, 0, 51))
}

func TestLCRandom31ExtendedRanges(t *testing.T) {
	r, err := NewLCRandom31(1<<31 + 5)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 49, 43}, draws(r, 3, 0, 51))

	r, err = NewLCRandom31(1<<32 + 5)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 42, 36}, draws(r, 3, 0, 51))

	_, err = NewLCRandom31(MaxLCSeed + 1)
	assert.ErrorIs(t, err, ErrSeedOutOfRange)
}

func TestMTRandomFloats(t *testing.T) {
	r := NewMTRandom(big.NewInt(1234567))
	assert.Equal(t, 0.9631432476096223, r.Random())
	assert.Equal(t, 0.23573288372003576, r.Random())
	assert.Equal(t, 0.5814831206063004, r.Random())
}

func TestMTRandomRandInt(t *testing.T) {
	seed, _ := new(big.Int).SetString("12345678901234567890", 10)
	r := NewMTRandom(seed)
	assert.Equal(t, []int{26, 48, 33, 44, 18, 11, 24, 6, 9, 3}, draws(r, 10, 0, 51))

	r = NewMTRandom(big.NewInt(0))
	assert.Equal(t, []int{84, 75, 42, 25, 51}, draws(r, 5, 0, 99))
}

func TestResetRestoresInitialSequence(t *testing.T) {
	for _, seed := range []string{"ms24", "123456789012"} {
		r := MustParse(seed)
		first := draws(r, 20, 0, 1000)
		r.Reset()
		assert.Equal(t, first, draws(r, 20, 0, 1000), "seed %s", seed)
	}
}

func TestStateRoundTrip(t *testing.T) {
	for _, seed := range []string{"ms24", "99999999999"} {
		r := MustParse(seed)
		draws(r, 7, 0, 10)
		st := r.State()
		want := draws(r, 10, 0, 51)

		data, err := st.MarshalBinary()
		require.NoError(t, err)
		var back State
		require.NoError(t, back.UnmarshalBinary(data))
		assert.True(t, back.Equal(st))

		require.NoError(t, r.SetState(back))
		assert.Equal(t, want, draws(r, 10, 0, 51), "seed %s", seed)
	}
}

func TestSetStateRejectsOtherKind(t *testing.T) {
	lc := MustParse("ms1")
	mt := MustParse("40000")
	assert.ErrorIs(t, lc.SetState(mt.State()), ErrStateMismatch)
	assert.ErrorIs(t, mt.SetState(lc.State()), ErrStateMismatch)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		kind   Kind
		seed   string
		format string
	}{
		{"ms24", KindLC, "ms24", "00024"},
		{"ms24\n", KindLC, "ms24", "00024"},
		{"ms8589934591", KindLC, "ms8589934591", "ms8589934591"},
		{"ms40000", KindLC, "ms40000", "ms40000"},
		{"24", KindLC, "ms24", "00024"},
		{"32000", KindLC, "ms32000", "32000"},
		{"32001", KindMT, "32001", "00000000000000032001"},
		{"12 345-678_901.234,567#890L", KindMT, "12345678901234567890", "12345678901234567890"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, r.Kind())
			assert.Equal(t, tt.seed, r.SeedString())
			assert.Equal(t, tt.format, r.SeedAsString())
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "12a", "ms"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidSeed, "input %q", in)
	}
	_, err := Parse("ms8589934592")
	assert.ErrorIs(t, err, ErrSeedOutOfRange)
}

func TestSeedStringRoundTrip(t *testing.T) {
	for _, s := range []string{"ms24", "ms0", "12345678901234567890", "32001"} {
		r := MustParse(s)
		again := MustParse(r.SeedString())
		assert.Equal(t, r.Kind(), again.Kind())
		assert.Equal(t, draws(r, 10, 0, 51), draws(again, 10, 0, 51))
	}
}

func TestSeedAsStringRoundTrip(t *testing.T) {
	for _, s := range []string{"ms0", "ms24", "ms32000", "ms32001", "ms40000", "ms8589934591", "32001", "12345678901234567890"} {
		t.Run(s, func(t *testing.T) {
			r := MustParse(s)
			again, err := Parse(r.SeedAsString())
			require.NoError(t, err)
			assert.Equal(t, r.Kind(), again.Kind())
			assert.Equal(t, r.SeedString(), again.SeedString())
			assert.Equal(t, draws(r, 10, 0, 51), draws(again, 10, 0, 51))
		})
	}
}

func TestSeedIntEncoding(t *testing.T) {
	n, err := SeedToInt("ms617")
	require.NoError(t, err)
	assert.Equal(t, uint(1), n.Bit(1000))
	assert.Equal(t, "ms617", IntToSeed(n))

	n, err = SeedToInt("98765432109876543210")
	require.NoError(t, err)
	assert.Equal(t, "98765432109876543210", IntToSeed(n))

	r, err := FromInt(n)
	require.NoError(t, err)
	assert.Equal(t, KindMT, r.Kind())

	_, err = SeedToInt("not a seed")
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestNewSeedRange(t *testing.T) {
	src := mrand.New(mrand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		r := NewSeed(src)
		seed := r.InitialSeed()
		assert.True(t, seed.Cmp(minFreshSeed) >= 0)
		assert.True(t, seed.Cmp(maxFreshSeed) < 0)
		assert.Equal(t, OriginRandom, r.Origin())
	}
}

func TestShuffleDeterminism(t *testing.T) {
	deck := func() []int {
		d := make([]int, 52)
		for i := range d {
			d[i] = i
		}
		return d
	}
	a, b := deck(), deck()
	Shuffle(MustParse("31415926535"), a)
	Shuffle(MustParse("31415926535"), b)
	assert.Equal(t, a, b)
	assert.NotEqual(t, deck(), a)
	assert.ElementsMatch(t, deck(), a)
}

func TestMSRearrange(t *testing.T) {
	d := make([]int, 52)
	for i := range d {
		d[i] = i
	}
	out := MSRearrange(d)
	assert.Equal(t, []int{0, 39, 26, 13, 1, 40, 27, 14}, out[:8])
	assert.Len(t, MSRearrange([]int{1, 2, 3}), 3)
}
