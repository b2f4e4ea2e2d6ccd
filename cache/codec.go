// SPDX-License-Identifier: MIT

package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Codec converts values of one dataset kind to and from bytes. Kind is written
// into every blob and checked on read, so a blob decoded with the wrong codec
// is reported as corrupt instead of silently misread.
type Codec[T any] interface {
	Kind() string
	Encode(v T) ([]byte, error)
	Decode(data []byte) (T, error)
}

var errShortPayload = errors.New("payload truncated")

// Float64s encodes []float64 as a count followed by IEEE-754 bits.
type Float64s struct{}

// Kind implements Codec.
func (Float64s) Kind() string { return "float64s" }

// Encode implements Codec.
func (Float64s) Encode(v []float64) ([]byte, error) {
	return AppendFloat64s(make([]byte, 0, binary.MaxVarintLen64+8*len(v)), v), nil
}

// Decode implements Codec.
func (Float64s) Decode(data []byte) ([]float64, error) {
	r := Reader{buf: data}
	out := r.Float64s()

	return out, r.Done()
}

// Ints encodes []int as a count followed by zig-zag varints.
type Ints struct{}

// Kind implements Codec.
func (Ints) Kind() string { return "ints" }

// Encode implements Codec.
func (Ints) Encode(v []int) ([]byte, error) { return AppendInts(nil, v), nil }

// Decode implements Codec.
func (Ints) Decode(data []byte) ([]int, error) {
	r := Reader{buf: data}
	out := r.Ints()

	return out, r.Done()
}

// IntSlices encodes [][]int, one Ints record per element.
type IntSlices struct{}

// Kind implements Codec.
func (IntSlices) Kind() string { return "int_slices" }

// Encode implements Codec.
func (IntSlices) Encode(v [][]int) ([]byte, error) {
	out := binary.AppendUvarint(nil, uint64(len(v)))
	for _, row := range v {
		out = AppendInts(out, row)
	}

	return out, nil
}

// Decode implements Codec.
func (IntSlices) Decode(data []byte) ([][]int, error) {
	r := Reader{buf: data}
	n := r.Len(1)
	out := make([][]int, n)
	for i := range out {
		out[i] = r.Ints()
	}

	return out, r.Done()
}

// AppendInts appends a count and zig-zag varints to dst.
func AppendInts(dst []byte, v []int) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(v)))
	for _, x := range v {
		dst = binary.AppendVarint(dst, int64(x))
	}

	return dst
}

// AppendFloat64s appends a count and little-endian IEEE-754 bits to dst.
func AppendFloat64s(dst []byte, v []float64) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(v)))
	for _, x := range v {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(x))
	}

	return dst
}

// AppendBytes appends a length-prefixed byte string to dst.
func AppendBytes(dst, b []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(b)))

	return append(dst, b...)
}

// Reader decodes the primitives written by the codecs in this package. The
// first failure is sticky; check Done (or Err) once at the end.
type Reader struct {
	buf []byte
	err error
}

// NewReader returns a Reader over data.
func NewReader(data []byte) *Reader { return &Reader{buf: data} }

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
	r.buf = nil
}

// Uvarint reads an unsigned varint.
func (r *Reader) Uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf)
	if n <= 0 {
		r.fail(errShortPayload)
		return 0
	}
	r.buf = r.buf[n:]

	return v
}

// Varint reads a zig-zag varint.
func (r *Reader) Varint() int64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Varint(r.buf)
	if n <= 0 {
		r.fail(errShortPayload)
		return 0
	}
	r.buf = r.buf[n:]

	return v
}

// Len reads an element count and rejects counts that cannot fit in the
// remaining bytes at minSize bytes per element.
func (r *Reader) Len(minSize int) int {
	n := r.Uvarint()
	if r.err != nil {
		return 0
	}
	if minSize > 0 && n > uint64(len(r.buf)/minSize) {
		r.fail(fmt.Errorf("count %d exceeds payload: %w", n, errShortPayload))
		return 0
	}

	return int(n)
}

func (r *Reader) uint64() uint64 {
	if r.err != nil {
		return 0
	}
	if len(r.buf) < 8 {
		r.fail(errShortPayload)
		return 0
	}
	v := binary.LittleEndian.Uint64(r.buf)
	r.buf = r.buf[8:]

	return v
}

// Float64 reads 8 little-endian bytes as a float64.
func (r *Reader) Float64() float64 { return math.Float64frombits(r.uint64()) }

// Ints reads a record written by AppendInts.
func (r *Reader) Ints() []int {
	n := r.Len(1)
	out := make([]int, n)
	for i := range out {
		out[i] = int(r.Varint())
	}

	return out
}

// Float64s reads a record written by AppendFloat64s.
func (r *Reader) Float64s() []float64 {
	n := r.Len(8)
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Float64()
	}

	return out
}

// Bytes reads a record written by AppendBytes. The result aliases the input.
func (r *Reader) Bytes() []byte {
	n := r.Len(1)
	if r.err != nil {
		return nil
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]

	return b
}

// Err returns the first decoding error.
func (r *Reader) Err() error { return r.err }

// Done returns the first decoding error, or an error if bytes remain.
func (r *Reader) Done() error {
	if r.err != nil {
		return r.err
	}
	if len(r.buf) != 0 {
		return fmt.Errorf("%d trailing bytes", len(r.buf))
	}

	return nil
}
