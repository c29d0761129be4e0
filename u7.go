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

// Package u7 implements the 7-bit variable-length encoding of unsigned
// 32-bit integers, as used by MIDI variable-length quantities and .NET's
// Write7BitEncodedInt. Every encoded byte carries 7 payload bits, low bits
// first, and the high bit (0x80) is set on all bytes but the last one.
package u7

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Int is an unsigned 32-bit integer that is (de)serialized with
// the 7-bit encoding.
//
// Int is a defined type of uint32, so arithmetic, bitwise and comparison
// operators are the native ones: results wrap around on overflow, and
// division or remainder by zero panics with a run-time error.
type Int uint32

// MaxInt is the largest value of Int.
const MaxInt Int = math.MaxUint32

// ErrInvalidInt means the text is not a decimal unsigned 32-bit integer.
var ErrInvalidInt = errors.New("u7: invalid unsigned 32-bit integer")

// New wraps a uint32.
func New(v uint32) Int {
	return Int(v)
}

// Uint32 returns the magnitude.
func (v Int) Uint32() uint32 {
	return uint32(v)
}

// Neg returns the two's-complement negation, i.e., 2^32 - v for v > 0.
func (v Int) Neg() Int {
	return ^v + 1
}

// EncodedLen returns the number of bytes of the encoding of v.
func (v Int) EncodedLen() int {
	return EncodedLen(v)
}

// Bytes returns the encoding of v.
func (v Int) Bytes() []byte {
	return Encode(v)
}

func (v Int) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// ParseInt parses a decimal text.
func ParseInt(s string) (Int, error) {
	x, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidInt, "%q", s)
	}
	return Int(x), nil
}
