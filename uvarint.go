// Copyright © 2018-2026 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package u7

import "github.com/pkg/errors"

// MaxEncodedLen is the maximum length of an encoded Int.
const MaxEncodedLen = 5

// ErrTruncated means the data ends before the byte with the continuation bit cleared.
var ErrTruncated = errors.New("u7: truncated data")

// ErrOverflow means the encoded value does not fit in 32 bits.
var ErrOverflow = errors.New("u7: value overflows 32 bits")

// EncodedLen returns the number of bytes needed to encode v, 1-5.
func EncodedLen(v Int) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	default:
		return 5
	}
}

// PutInt encodes v into buf and returns the number of bytes written.
// It panics if buf is too small, see EncodedLen.
func PutInt(buf []byte, v Int) int {
	i := 0
	for v >= 0x80 {
		buf[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	buf[i] = byte(v)
	return i + 1
}

// AppendInt appends the encoding of v to dst and returns the extended slice.
func AppendInt(dst []byte, v Int) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Encode returns the minimal encoding of v, 1-5 bytes.
func Encode(v Int) []byte {
	buf := make([]byte, EncodedLen(v))
	PutInt(buf, v)
	return buf
}

// Decode decodes an Int from the beginning of buf, and returns the value
// and the number of bytes consumed. Bytes after the terminating one are
// not touched, so callers could continue parsing at buf[n:].
//
// The 5th byte carries the bits 28-31 only, any other bit set in it,
// including the continuation bit, results in ErrOverflow.
func Decode(buf []byte) (v Int, n int, err error) {
	var x uint32
	var shift uint
	for i, b := range buf {
		if i == MaxEncodedLen-1 && b > 0x0f {
			return 0, 0, ErrOverflow
		}
		x |= uint32(b&0x7f) << shift
		if b < 0x80 {
			return Int(x), i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrTruncated
}

// DecodeAll decodes a concatenation of encoded Ints.
func DecodeAll(buf []byte) ([]Int, error) {
	vs := make([]Int, 0, len(buf))
	var offset int
	for offset < len(buf) {
		v, n, err := Decode(buf[offset:])
		if err != nil {
			return nil, errors.Wrapf(err, "offset %d", offset)
		}
		vs = append(vs, v)
		offset += n
	}
	return vs, nil
}
