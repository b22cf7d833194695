package savegame

import (
	"fmt"
	"strconv"
	"strings"
)

// Package is the product name stamped into every save file.
const Package = "Patience"

// Bookmark levels.
const (
	LevelSave      = 0 // full save with statistics
	LevelBookmark  = 1 // player bookmark without statistics update
	LevelUndoPoint = 2 // in-memory snapshot, keeps the live statistics
)

// VersionTuple is the format version written by this build.
var VersionTuple = []int{1, 2}

// minVersionTuple is the oldest format this build reads.
var minVersionTuple = []int{1, 0}

// Version formats VersionTuple as a dotted string.
func Version() string {
	parts := make([]string, len(VersionTuple))
	for i, v := range VersionTuple {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// Header is the fixed prefix of every save stream.
type Header struct {
	Package      string
	Version      string
	VersionTuple []int
	Level        int
	GameVersion  int
	GameID       int
}

// NewHeader returns a header for the current build.
func NewHeader(level, gameVersion, gameID int) Header {
	return Header{
		Package:      Package,
		Version:      Version(),
		VersionTuple: append([]int(nil), VersionTuple...),
		Level:        level,
		GameVersion:  gameVersion,
		GameID:       gameID,
	}
}

// Write encodes the header.
func (h Header) Write(e *Encoder) {
	e.String(h.Package)
	e.String(h.Version)
	e.Ints(h.VersionTuple)
	e.Int(h.Level)
	e.Int(h.GameVersion)
	e.Int(h.GameID)
}

// compareVersion orders version tuples lexicographically.
func compareVersion(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

// ReadHeader decodes and validates a header. A foreign package, a version
// outside the readable range or a bad level fail with ErrIncompatible.
func ReadHeader(d *Decoder) (Header, error) {
	var h Header
	var err error

	if h.Package, err = d.String("package"); err != nil {
		return h, err
	}
	if h.Package != Package {
		return h, Incompatible("package", "not a %s save file (%q)", Package, h.Package)
	}
	if h.Version, err = d.String("version"); err != nil {
		return h, err
	}
	if h.VersionTuple, err = d.Ints("version_tuple"); err != nil {
		return h, err
	}
	if compareVersion(h.VersionTuple, minVersionTuple) < 0 {
		return h, Incompatible("version_tuple", "version %s is too old", h.Version)
	}
	if len(h.VersionTuple) == 0 || h.VersionTuple[0] > VersionTuple[0] {
		return h, Incompatible("version_tuple", "version %s is newer than %s", h.Version, Version())
	}
	if h.Level, err = d.Int("bookmark"); err != nil {
		return h, err
	}
	if h.Level < LevelSave || h.Level > LevelUndoPoint {
		return h, Incompatible("bookmark", "unknown bookmark level %d", h.Level)
	}
	if h.GameVersion, err = d.Int("game_version"); err != nil {
		return h, err
	}
	if h.GameVersion <= 0 {
		return h, Incompatible("game_version", "bad game version %d", h.GameVersion)
	}
	if h.GameID, err = d.Int("id"); err != nil {
		return h, err
	}
	if h.GameID <= 0 {
		return h, Incompatible("id", "bad game id %d", h.GameID)
	}
	return h, nil
}

// String summarizes the header for display.
func (h Header) String() string {
	return fmt.Sprintf("%s %s, game %d (rules v%d), level %d", h.Package, h.Version, h.GameID, h.GameVersion, h.Level)
}
