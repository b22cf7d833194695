// Package random provides the deterministic generators that seed every deal.
//
// Two generators exist side by side. LCRandom31 reproduces the classic
// Microsoft FreeCell deals for small seeds, and MTRandom (a Mersenne Twister
// seeded from an arbitrary-precision integer) is used for everything else.
// A given seed string always yields the same card permutation.
package random

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
)

// Kind identifies the generator algorithm behind a Random.
type Kind uint8

const (
	KindLC Kind = iota + 1 // 31-bit linear congruential (MS compatible)
	KindMT                 // Mersenne Twister
)

// String returns a short name for the generator kind.
func (k Kind) String() string {
	switch k {
	case KindLC:
		return "lc31"
	case KindMT:
		return "mt19937"
	default:
		return "unknown"
	}
}

// Origin records where a seed came from.
type Origin uint8

const (
	OriginUnknown  Origin = iota
	OriginRandom          // freshly generated
	OriginPreview         // picked from a preview
	OriginSelected        // typed in by the player
	OriginNextGame        // "next game number"
)

var (
	// ErrInvalidSeed is returned when a seed string cannot be parsed.
	ErrInvalidSeed = errors.New("random: invalid seed")
	// ErrSeedOutOfRange is returned for an "ms" seed beyond the supported range.
	ErrSeedOutOfRange = errors.New("random: seed out of range")
	// ErrStateMismatch is returned when a State is applied to the wrong generator.
	ErrStateMismatch = errors.New("random: state does not belong to this generator")
)

// Random is a reproducible pseudo random generator.
type Random interface {
	Kind() Kind

	// Random returns a float in [0, 1).
	Random() float64

	// RandInt returns an integer in [a, b].
	RandInt(a, b int) int

	// Reset rewinds the generator to the state right after construction.
	Reset()

	// State captures the current position in the sequence.
	State() State

	// SetState restores a position captured with State.
	SetState(s State) error

	// InitialSeed is the numeric seed the generator was built from.
	InitialSeed() *big.Int

	// SeedString is the canonical, re-parseable seed ("ms24" or "123...").
	SeedString() string

	// SeedAsString is the fixed-width display form of the seed.
	SeedAsString() string

	Origin() Origin
	SetOrigin(o Origin)
}

// Shuffle permutes seq in place, walking from the last index down and
// swapping each slot with RandInt(0, n). The draw order is part of the
// deal contract and must not change.
func Shuffle[T any](r Random, seq []T) {
	for n := len(seq) - 1; n > 0; n-- {
		j := r.RandInt(0, n)
		seq[n], seq[j] = seq[j], seq[n]
	}
}

// MSRearrange reorders a 52 card deck from suit-major order
// (clubs, spades, hearts, diamonds) into the rank-major order used by the
// Microsoft deals (A♣ A♦ A♥ A♠ 2♣ ...). Other deck sizes are returned as is.
func MSRearrange[T any](cards []T) []T {
	if len(cards) != 52 {
		return cards
	}
	out := make([]T, 0, 52)
	for i := 0; i < 13; i++ {
		for _, j := range [4]int{0, 39, 26, 13} {
			out = append(out, cards[i+j])
		}
	}
	return out
}

// State is an immutable copy of a generator position. The zero value is
// not a valid state.
type State struct {
	kind  Kind
	lc    uint64
	mt    []uint32
	index int
}

// Kind reports which generator produced the state.
func (s State) Kind() Kind { return s.kind }

// IsZero reports whether the state was never captured.
func (s State) IsZero() bool { return s.kind == 0 }

// Equal reports whether two states describe the same generator position.
func (s State) Equal(o State) bool {
	if s.kind != o.kind || s.lc != o.lc || s.index != o.index || len(s.mt) != len(o.mt) {
		return false
	}
	for i := range s.mt {
		if s.mt[i] != o.mt[i] {
			return false
		}
	}
	return true
}

// MarshalBinary encodes the state for save files.
func (s State) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(byte(s.kind))
	switch s.kind {
	case KindLC:
		buf.Write(binary.AppendUvarint(nil, s.lc))
	case KindMT:
		buf.Write(binary.AppendUvarint(nil, uint64(s.index)))
		for _, w := range s.mt {
			_ = binary.Write(&buf, binary.LittleEndian, w)
		}
	default:
		return nil, fmt.Errorf("random: cannot marshal state of kind %d", s.kind)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a state written by MarshalBinary.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("random: empty state")
	}
	r := bytes.NewReader(data[1:])
	switch Kind(data[0]) {
	case KindLC:
		v, err := binary.ReadUvarint(r)
		if err != nil {
			return fmt.Errorf("random: bad lc state: %w", err)
		}
		*s = State{kind: KindLC, lc: v}
	case KindMT:
		idx, err := binary.ReadUvarint(r)
		if err != nil || idx > mtN {
			return fmt.Errorf("random: bad mt state index")
		}
		words := make([]uint32, mtN)
		if err := binary.Read(r, binary.LittleEndian, words); err != nil {
			return fmt.Errorf("random: bad mt state: %w", err)
		}
		*s = State{kind: KindMT, mt: words, index: int(idx)}
	default:
		return fmt.Errorf("random: unknown state kind %d", data[0])
	}
	if r.Len() != 0 {
		return fmt.Errorf("random: trailing bytes in state")
	}
	return nil
}
