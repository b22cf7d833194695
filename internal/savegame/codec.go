// Package savegame implements the typed field stream used by save files and
// bookmarks.
//
// Every value is written as a one-byte type tag followed by its payload.
// Fields have no names on the wire; reader and writer must agree on the
// order. The decoder is strict: a wrong tag, an oversize length or a short
// read fails with ErrDamaged instead of producing a partial value.
package savegame

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const (
	tagInt    byte = 'i'
	tagBool   byte = 'b'
	tagString byte = 's'
	tagBytes  byte = 'y'
	tagBigInt byte = 'n'
	tagInts   byte = 'l'
)

// MaxLength bounds strings, byte blobs and int lists.
const MaxLength = 1 << 24

// Encoder writes fields to a stream. The first write error sticks and is
// reported by Flush.
type Encoder struct {
	w   *bufio.Writer
	err error
	buf [binary.MaxVarintLen64]byte
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

func (e *Encoder) write(p []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(p)
}

func (e *Encoder) tag(t byte) {
	if e.err != nil {
		return
	}
	e.err = e.w.WriteByte(t)
}

func (e *Encoder) varint(v int64) {
	n := binary.PutVarint(e.buf[:], v)
	e.write(e.buf[:n])
}

func (e *Encoder) uvarint(v uint64) {
	n := binary.PutUvarint(e.buf[:], v)
	e.write(e.buf[:n])
}

// Int writes a signed integer.
func (e *Encoder) Int(v int) {
	e.tag(tagInt)
	e.varint(int64(v))
}

// Bool writes a boolean.
func (e *Encoder) Bool(v bool) {
	e.tag(tagBool)
	if v {
		e.write([]byte{1})
	} else {
		e.write([]byte{0})
	}
}

// String writes a length-prefixed string.
func (e *Encoder) String(s string) {
	e.tag(tagString)
	e.uvarint(uint64(len(s)))
	e.write([]byte(s))
}

// Bytes writes a length-prefixed blob.
func (e *Encoder) Bytes(p []byte) {
	e.tag(tagBytes)
	e.uvarint(uint64(len(p)))
	e.write(p)
}

// BigInt writes an arbitrary-precision integer.
func (e *Encoder) BigInt(v *big.Int) {
	e.tag(tagBigInt)
	if v.Sign() < 0 {
		e.write([]byte{1})
	} else {
		e.write([]byte{0})
	}
	mag := v.Bytes()
	e.uvarint(uint64(len(mag)))
	e.write(mag)
}

// Ints writes a list of signed integers.
func (e *Encoder) Ints(vs []int) {
	e.tag(tagInts)
	e.uvarint(uint64(len(vs)))
	for _, v := range vs {
		e.varint(int64(v))
	}
}

// Flush writes buffered data and returns the first error seen.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

// Decoder reads fields written by an Encoder. Every read names the field it
// expects so failures can be located.
type Decoder struct {
	src *sourceReader
	r   *bufio.Reader
}

// sourceReader remembers the first real I/O failure so it can be told
// apart from malformed data.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF && s.err == nil {
		s.err = err
	}
	return n, err
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	src := &sourceReader{r: r}
	return &Decoder{src: src, r: bufio.NewReader(src)}
}

// wrap passes I/O errors through and classifies everything else, short
// reads included, as ErrDamaged.
func (d *Decoder) wrap(field string, err error) error {
	if d.src.err != nil {
		return &LoadError{Field: field, Err: d.src.err}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return Damaged(field, "unexpected end of data")
	}
	return Damaged(field, "%v", err)
}

func (d *Decoder) expect(field string, want byte) error {
	got, err := d.r.ReadByte()
	if err != nil {
		return d.wrap(field, err)
	}
	if got != want {
		return Damaged(field, "expected %s, found %s", tagName(want), tagName(got))
	}
	return nil
}

func (d *Decoder) length(field string) (int, error) {
	n, err := binary.ReadUvarint(d.r)
	if err != nil {
		return 0, d.wrap(field, err)
	}
	if n > MaxLength {
		return 0, Damaged(field, "length %d too large", n)
	}
	return int(n), nil
}

func (d *Decoder) varint(field string) (int, error) {
	v, err := binary.ReadVarint(d.r)
	if err != nil {
		return 0, d.wrap(field, err)
	}
	if int64(int(v)) != v {
		return 0, Damaged(field, "integer %d overflows", v)
	}
	return int(v), nil
}

func (d *Decoder) blob(field string) ([]byte, error) {
	n, err := d.length(field)
	if err != nil {
		return nil, err
	}
	p := make([]byte, n)
	if _, err := io.ReadFull(d.r, p); err != nil {
		return nil, d.wrap(field, err)
	}
	return p, nil
}

// Int reads a signed integer.
func (d *Decoder) Int(field string) (int, error) {
	if err := d.expect(field, tagInt); err != nil {
		return 0, err
	}
	return d.varint(field)
}

// IntRange reads an integer and checks lo <= v <= hi, failing with
// ErrInconsistent otherwise.
func (d *Decoder) IntRange(field string, lo, hi int) (int, error) {
	v, err := d.Int(field)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, Inconsistent(field, "%d not in [%d, %d]", v, lo, hi)
	}
	return v, nil
}

// Bool reads a boolean.
func (d *Decoder) Bool(field string) (bool, error) {
	if err := d.expect(field, tagBool); err != nil {
		return false, err
	}
	b, err := d.r.ReadByte()
	if err != nil {
		return false, d.wrap(field, err)
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, Damaged(field, "bad boolean %d", b)
}

// String reads a string.
func (d *Decoder) String(field string) (string, error) {
	if err := d.expect(field, tagString); err != nil {
		return "", err
	}
	p, err := d.blob(field)
	return string(p), err
}

// Bytes reads a blob.
func (d *Decoder) Bytes(field string) ([]byte, error) {
	if err := d.expect(field, tagBytes); err != nil {
		return nil, err
	}
	return d.blob(field)
}

// BigInt reads an arbitrary-precision integer.
func (d *Decoder) BigInt(field string) (*big.Int, error) {
	if err := d.expect(field, tagBigInt); err != nil {
		return nil, err
	}
	sign, err := d.r.ReadByte()
	if err != nil {
		return nil, d.wrap(field, err)
	}
	if sign > 1 {
		return nil, Damaged(field, "bad sign %d", sign)
	}
	mag, err := d.blob(field)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(mag)
	if sign == 1 {
		v.Neg(v)
	}
	return v, nil
}

// Ints reads a list of signed integers.
func (d *Decoder) Ints(field string) ([]int, error) {
	if err := d.expect(field, tagInts); err != nil {
		return nil, err
	}
	n, err := d.length(field)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, min(n, 1024))
	for i := 0; i < n; i++ {
		v, err := d.varint(field)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Expect reads a string and fails with ErrDamaged unless it equals want.
// Used for sentinels such as the end marker.
func (d *Decoder) Expect(field, want string) error {
	s, err := d.String(field)
	if err != nil {
		return err
	}
	if s != want {
		return Damaged(field, "expected %q, found %q", want, s)
	}
	return nil
}

func tagName(t byte) string {
	switch t {
	case tagInt:
		return "int"
	case tagBool:
		return "bool"
	case tagString:
		return "string"
	case tagBytes:
		return "bytes"
	case tagBigInt:
		return "bigint"
	case tagInts:
		return "ints"
	}
	return fmt.Sprintf("0x%02x", t)
}
