package savegame

import (
	"bytes"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeSample(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	e.Int(-42)
	e.Bool(true)
	e.String("hello")
	e.Bytes([]byte{1, 2, 3})
	seed, _ := new(big.Int).SetString("-123456789012345678901234567890", 10)
	e.BigInt(seed)
	e.Ints([]int{5, -1, 0})
	e.String("EOF")
	require.NoError(t, e.Flush())
	return buf.Bytes()
}

func TestCodecRoundTrip(t *testing.T) {
	d := NewDecoder(bytes.NewReader(encodeSample(t)))

	i, err := d.Int("i")
	require.NoError(t, err)
	assert.Equal(t, -42, i)

	b, err := d.Bool("b")
	require.NoError(t, err)
	assert.True(t, b)

	s, err := d.String("s")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	p, err := d.Bytes("y")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, p)

	n, err := d.BigInt("n")
	require.NoError(t, err)
	assert.Equal(t, "-123456789012345678901234567890", n.String())

	l, err := d.Ints("l")
	require.NoError(t, err)
	assert.Equal(t, []int{5, -1, 0}, l)

	require.NoError(t, d.Expect("eof", "EOF"))
}

func TestTruncationIsDamaged(t *testing.T) {
	data := encodeSample(t)
	// every proper prefix must fail somewhere with ErrDamaged
	for cut := 0; cut < len(data); cut++ {
		d := NewDecoder(bytes.NewReader(data[:cut]))
		err := readAll(d)
		require.Error(t, err, "cut at %d", cut)
		assert.ErrorIs(t, err, ErrDamaged, "cut at %d", cut)
	}
}

func readAll(d *Decoder) error {
	if _, err := d.Int("i"); err != nil {
		return err
	}
	if _, err := d.Bool("b"); err != nil {
		return err
	}
	if _, err := d.String("s"); err != nil {
		return err
	}
	if _, err := d.Bytes("y"); err != nil {
		return err
	}
	if _, err := d.BigInt("n"); err != nil {
		return err
	}
	if _, err := d.Ints("l"); err != nil {
		return err
	}
	return d.Expect("eof", "EOF")
}

func TestWrongTagIsDamaged(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	e.String("x")
	require.NoError(t, e.Flush())

	_, err := NewDecoder(&buf).Int("moves")
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "moves", le.Field)
	assert.ErrorIs(t, err, ErrDamaged)
}

func TestOversizeLength(t *testing.T) {
	data := []byte{tagString, 0xff, 0xff, 0xff, 0xff, 0x0f}
	_, err := NewDecoder(bytes.NewReader(data)).String("comment")
	assert.ErrorIs(t, err, ErrDamaged)
}

func TestExpectSentinel(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	e.String("EOX")
	require.NoError(t, e.Flush())
	assert.ErrorIs(t, NewDecoder(&buf).Expect("eof", "EOF"), ErrDamaged)
}

func TestIntRange(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	e.Int(2000)
	require.NoError(t, e.Flush())
	_, err := NewDecoder(&buf).IntRange("ncards", 0, 1024)
	assert.ErrorIs(t, err, ErrInconsistent)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestIOErrorPassesThrough(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := NewDecoder(failingReader{boom}).Int("id")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDamaged)

	_, err = NewDecoder(failingReader{io.EOF}).Int("id")
	assert.ErrorIs(t, err, ErrDamaged)
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	NewHeader(LevelBookmark, 3, 5).Write(e)
	require.NoError(t, e.Flush())

	h, err := ReadHeader(NewDecoder(&buf))
	require.NoError(t, err)
	assert.Equal(t, Package, h.Package)
	assert.Equal(t, LevelBookmark, h.Level)
	assert.Equal(t, 3, h.GameVersion)
	assert.Equal(t, 5, h.GameID)
}

func TestHeaderRejects(t *testing.T) {
	tests := []struct {
		name  string
		write func(e *Encoder)
	}{
		{"package", func(e *Encoder) {
			h := NewHeader(0, 1, 1)
			h.Package = "Other"
			h.Write(e)
		}},
		{"old version", func(e *Encoder) {
			h := NewHeader(0, 1, 1)
			h.VersionTuple = []int{0, 9}
			h.Write(e)
		}},
		{"future version", func(e *Encoder) {
			h := NewHeader(0, 1, 1)
			h.VersionTuple = []int{VersionTuple[0] + 1, 0}
			h.Write(e)
		}},
		{"level", func(e *Encoder) { NewHeader(3, 1, 1).Write(e) }},
		{"game version", func(e *Encoder) { NewHeader(0, 0, 1).Write(e) }},
		{"id", func(e *Encoder) { NewHeader(0, 1, 0).Write(e) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := NewEncoder(&buf)
			tt.write(e)
			require.NoError(t, e.Flush())
			_, err := ReadHeader(NewDecoder(&buf))
			assert.ErrorIs(t, err, ErrIncompatible)
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "damaged save file", Describe(Damaged("x", "bad")))
	assert.Equal(t, "saved with an incompatible version", Describe(Incompatible("x", "bad")))
	assert.Equal(t, "", Describe(nil))
}
