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

import (
	"encoding"
	"io"

	"github.com/pkg/errors"
)

// ErrTrailingBytes means there are bytes left after decoding a single Int.
var ErrTrailingBytes = errors.New("u7: trailing bytes after encoded value")

// Field is what a binary serialization framework needs from a field type:
// writing itself to a byte sink and reading itself from a byte source.
// *Int implements it.
type Field interface {
	io.WriterTo
	io.ReaderFrom
}

var (
	_ Field                      = (*Int)(nil)
	_ io.WriterTo                = Int(0)
	_ encoding.BinaryMarshaler   = Int(0)
	_ encoding.BinaryUnmarshaler = (*Int)(nil)
)

// WriteInt writes the encoding of v to w, and returns the number of bytes written.
func WriteInt(w io.ByteWriter, v Int) (n int, err error) {
	for v >= 0x80 {
		if err = w.WriteByte(byte(v) | 0x80); err != nil {
			return n, err
		}
		v >>= 7
		n++
	}
	if err = w.WriteByte(byte(v)); err != nil {
		return n, err
	}
	return n + 1, nil
}

// ReadInt reads one Int from r, and returns the value and the number of
// bytes read. It returns io.EOF only if no byte is available, and
// ErrTruncated if r ends in the middle of an encoded value.
func ReadInt(r io.ByteReader) (v Int, n int, err error) {
	var x uint32
	var shift uint
	var b byte
	for n < MaxEncodedLen {
		b, err = r.ReadByte()
		if err != nil {
			if err == io.EOF && n > 0 {
				return 0, n, ErrTruncated
			}
			return 0, n, err
		}
		n++
		if n == MaxEncodedLen && b > 0x0f {
			return 0, n, ErrOverflow
		}
		x |= uint32(b&0x7f) << shift
		if b < 0x80 {
			return Int(x), n, nil
		}
		shift += 7
	}
	return 0, n, ErrOverflow
}

// WriteTo writes the encoding of v to w.
func (v Int) WriteTo(w io.Writer) (int64, error) {
	var buf [MaxEncodedLen]byte
	n := PutInt(buf[:], v)
	m, err := w.Write(buf[:n])
	return int64(m), err
}

// ReadFrom reads exactly one encoded value from r. Unlike most
// io.ReaderFrom implementations it does not read until EOF, and it returns
// io.EOF if r is already drained. When r is not an io.ByteReader, bytes
// are read one at a time so nothing after the value is consumed.
func (v *Int) ReadFrom(r io.Reader) (int64, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = &byteReader{r: r}
	}
	x, n, err := ReadInt(br)
	if err != nil {
		return int64(n), err
	}
	*v = x
	return int64(n), nil
}

// MarshalBinary returns the encoding of v.
func (v Int) MarshalBinary() ([]byte, error) {
	return Encode(v), nil
}

// UnmarshalBinary decodes data which should contain exactly one encoded value.
func (v *Int) UnmarshalBinary(data []byte) error {
	x, n, err := Decode(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return ErrTrailingBytes
	}
	*v = x
	return nil
}

type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (br *byteReader) ReadByte() (byte, error) {
	_, err := io.ReadFull(br.r, br.buf[:])
	return br.buf[0], err
}
