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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// MainVersion is the main version number.
const MainVersion uint8 = 1

// MinorVersion is the minor version number.
const MinorVersion uint8 = 0

// Magic number of binary file.
var Magic = [8]byte{'.', 'u', '7', 'i', 'n', 't', 's', '.'}

// ErrInvalidFileFormat means invalid file format.
var ErrInvalidFileFormat = errors.New("u7: invalid binary format")

// ErrBrokenFile means the file is not complete.
var ErrBrokenFile = errors.New("u7: broken file")

// ErrNotSorted means a smaller value is written after a larger one to a sorted file.
var ErrNotSorted = errors.New("u7: values not sorted")

// ErrNumberMismatch means the number of written values differs from Header.Number.
var ErrNumberMismatch = errors.New("u7: number of values mismatch")

var be = binary.BigEndian

// Header contains metadata
type Header struct {
	MainVersion  uint8
	MinorVersion uint8
	Flag         uint32
	Number       int64 // -1 for unknown
}

const (
	// FlagSorted means values are in ascending order and saved as deltas
	// to the previous ones.
	FlagSorted = 1 << iota
)

func (h Header) String() string {
	return fmt.Sprintf("u7 binary integer data file v%d.%d with Flag=%d and Number=%d",
		h.MainVersion, h.MinorVersion, h.Flag, h.Number)
}

// IsSorted tells if the values are sorted.
func (h Header) IsSorted() bool {
	return h.Flag&FlagSorted > 0
}

// Reader is for reading Ints.
type Reader struct {
	Header
	r *bufio.Reader

	sorted bool
	prev   Int

	count uint64
	bytes uint64
}

// NewReader returns a Reader.
func NewReader(r io.Reader) (reader *Reader, err error) {
	reader = &Reader{r: bufio.NewReader(r)}
	err = reader.readHeader()
	if err != nil {
		return nil, err
	}
	return reader, nil
}

func (reader *Reader) readHeader() (err error) {
	// check Magic number
	var m [8]byte
	r := reader.r
	err = binary.Read(r, be, &m)
	if err != nil {
		return err
	}
	if m != Magic {
		return ErrInvalidFileFormat
	}

	// read metadata
	var meta [4]uint8
	err = binary.Read(r, be, &meta)
	if err != nil {
		return err
	}
	if meta[0] != MainVersion {
		return fmt.Errorf("u7: .u7 format compatibility error (v%d.%d), please recreate with newest version",
			meta[0], meta[1])
	}
	reader.MainVersion = meta[0]
	reader.MinorVersion = meta[1]

	flag, _, err := ReadInt(r)
	if err != nil {
		if err == io.EOF || err == ErrTruncated {
			return errors.Wrap(ErrBrokenFile, "read flag")
		}
		return errors.Wrap(err, "read flag")
	}
	reader.Flag = uint32(flag)
	reader.sorted = reader.IsSorted()

	err = binary.Read(r, be, &reader.Number)
	if err != nil {
		return err
	}
	return nil
}

// Read reads one Int. It returns io.EOF at the end of the file.
func (reader *Reader) Read() (Int, error) {
	v, n, err := ReadInt(reader.r)
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		if err == ErrTruncated {
			return 0, ErrBrokenFile
		}
		return 0, err
	}

	if reader.sorted {
		v += reader.prev
		if v < reader.prev { // running value overflows 32 bits
			return 0, errors.Wrapf(ErrBrokenFile, "delta overflow after %d", reader.prev)
		}
		reader.prev = v
	}
	reader.count++
	reader.bytes += uint64(n)
	return v, nil
}

// Count returns the number of values read.
func (reader *Reader) Count() uint64 {
	return reader.count
}

// Bytes returns the number of encoded bytes of values read, excluding the
// header. For sorted files it is the size of stored deltas.
func (reader *Reader) Bytes() uint64 {
	return reader.bytes
}

// Writer writes Ints.
type Writer struct {
	Header
	w           *bufio.Writer
	wroteHeader bool

	sorted bool
	prev   Int

	count uint64
}

// NewWriter creates a Writer. The header is written lazily, so Header.Number
// could be set before the first Write.
func NewWriter(w io.Writer, flag uint32) *Writer {
	writer := &Writer{
		Header: Header{MainVersion: MainVersion, MinorVersion: MinorVersion, Flag: flag, Number: -1},
		w:      bufio.NewWriter(w),
	}
	writer.sorted = writer.IsSorted()
	return writer
}

// WriteHeader writes file header
func (writer *Writer) WriteHeader() (err error) {
	if writer.wroteHeader {
		return nil
	}
	w := writer.w
	// write magic number
	err = binary.Write(w, be, Magic)
	if err != nil {
		return err
	}

	err = binary.Write(w, be, [4]uint8{writer.MainVersion, writer.MinorVersion, 0, 0})
	if err != nil {
		return err
	}

	_, err = WriteInt(w, Int(writer.Flag))
	if err != nil {
		return err
	}

	err = binary.Write(w, be, writer.Number)
	if err != nil {
		return err
	}

	writer.wroteHeader = true
	return nil
}

// Write writes one Int.
func (writer *Writer) Write(v Int) (err error) {
	// lazily write header
	if !writer.wroteHeader {
		err = writer.WriteHeader()
		if err != nil {
			return err
		}
	}

	if writer.sorted {
		if v < writer.prev {
			return errors.Wrapf(ErrNotSorted, "%d after %d", v, writer.prev)
		}
		v, writer.prev = v-writer.prev, v
	}

	_, err = WriteInt(writer.w, v)
	if err != nil {
		return err
	}
	writer.count++
	return nil
}

// Count returns the number of values written.
func (writer *Writer) Count() uint64 {
	return writer.count
}

// Flush must be called after writing all values. It writes the header for
// empty files, flushes buffered data to the underlying io.Writer, and checks
// the number of written values if Header.Number is given.
func (writer *Writer) Flush() (err error) {
	if !writer.wroteHeader {
		err = writer.WriteHeader()
		if err != nil {
			return err
		}
	}
	err = writer.w.Flush()
	if err != nil {
		return err
	}
	if writer.Number >= 0 && uint64(writer.Number) != writer.count {
		return errors.Wrapf(ErrNumberMismatch, "%d given, %d written", writer.Number, writer.count)
	}
	return nil
}
