package savegame

import (
	"errors"
	"fmt"
)

var (
	// ErrDamaged means the stream is malformed or truncated.
	ErrDamaged = errors.New("savegame: damaged save file")
	// ErrInconsistent means the stream decoded but describes an impossible game.
	ErrInconsistent = errors.New("savegame: inconsistent save file")
	// ErrIncompatible means the file was written by an incompatible version.
	ErrIncompatible = errors.New("savegame: incompatible save file")
)

// LoadError reports the field at which decoding failed. Err is one of the
// sentinel errors above or an underlying I/O error.
type LoadError struct {
	Field string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("savegame: field %q: %v", e.Field, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func classify(field string, kind error, format string, args ...any) error {
	return &LoadError{Field: field, Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))}
}

// Damaged returns a LoadError classified as ErrDamaged.
func Damaged(field, format string, args ...any) error {
	return classify(field, ErrDamaged, format, args...)
}

// Inconsistent returns a LoadError classified as ErrInconsistent.
func Inconsistent(field, format string, args ...any) error {
	return classify(field, ErrInconsistent, format, args...)
}

// Incompatible returns a LoadError classified as ErrIncompatible.
func Incompatible(field, format string, args ...any) error {
	return classify(field, ErrIncompatible, format, args...)
}

// Describe maps a load error to a message suitable for the player.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIncompatible):
		return "saved with an incompatible version"
	case errors.Is(err, ErrInconsistent):
		return "save file does not describe a valid game"
	case errors.Is(err, ErrDamaged):
		return "damaged save file"
	default:
		return err.Error()
	}
}
