// Package varint implements the unsigned variable-length integer encoding
// used by the on-disk cache formats.
//
// Values are encoded little-endian in base-128 groups: each byte carries
// 7 value bits, and the high bit marks a continuation. Only unsigned values
// are needed; ids and counts are never negative.
package varint

import (
	"errors"
	"io"
)

// MaxLen is the maximum number of bytes an encoded uint64 occupies.
const MaxLen = 10

var (
	// ErrTruncated is returned when the input ends before a terminating
	// byte (high bit clear) was read.
	ErrTruncated = errors.New("varint: truncated input")

	// ErrOverflow is returned when the encoded value does not fit in 64 bits.
	ErrOverflow = errors.New("varint: value overflows uint64")
)

// Append appends the encoding of v to dst and returns the extended slice.
func Append(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Encode returns the encoding of v as a fresh slice.
func Encode(v uint64) []byte {
	return Append(make([]byte, 0, MaxLen), v)
}

// Decode reads one value from the start of buf.
// It returns the value and the number of bytes consumed.
func Decode(buf []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, b := range buf {
		if i == MaxLen || (i == MaxLen-1 && b > 1) {
			return 0, 0, ErrOverflow
		}
		if b < 0x80 {
			return v | uint64(b)<<shift, i + 1, nil
		}
		v |= uint64(b&0x7f) << shift
		shift += 7
	}
	return 0, 0, ErrTruncated
}

// Read reads one value from r.
// An EOF before the terminating byte is reported as ErrTruncated.
func Read(r io.ByteReader) (uint64, error) {
	var v uint64
	var shift uint
	for i := 0; ; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, ErrTruncated
			}
			return 0, err
		}
		if i == MaxLen || (i == MaxLen-1 && b > 1) {
			return 0, ErrOverflow
		}
		if b < 0x80 {
			return v | uint64(b)<<shift, nil
		}
		v |= uint64(b&0x7f) << shift
		shift += 7
	}
}
