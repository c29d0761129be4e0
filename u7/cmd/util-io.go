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

package cmd

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/breader"
	"github.com/shenwei356/u7"
)

var mapInitSize = 100000

// eachTextValue calls fn for every decimal integer in a plain text file,
// one per line. Blank lines and lines starting with '#' are skipped.
func eachTextValue(file string, fn func(v u7.Int) error) error {
	reader, err := breader.NewDefaultBufferedReader(file)
	if err != nil {
		return errors.Wrap(err, file)
	}

	var line string
	var v u7.Int
	var n int
	for chunk := range reader.Ch {
		if chunk.Err != nil {
			return errors.Wrap(chunk.Err, file)
		}
		for _, data := range chunk.Data {
			n++
			line = strings.TrimSpace(data.(string))
			if line == "" || line[0] == '#' {
				continue
			}

			v, err = u7.ParseInt(line)
			if err != nil {
				return errors.Wrapf(err, "%s: line %d", file, n)
			}
			if err = fn(v); err != nil {
				return errors.Wrap(err, file)
			}
		}
	}
	return nil
}

// eachStoredValue calls fn for every value in a .u7 file.
func eachStoredValue(file string, fn func(v u7.Int) error) (*u7.Header, error) {
	infh, r, _, err := inStream(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	reader, err := readStoredValues(infh, fn)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return &reader.Header, nil
}

// readStoredValues returns the drained Reader for its header and counters.
func readStoredValues(r io.Reader, fn func(v u7.Int) error) (*u7.Reader, error) {
	reader, err := u7.NewReader(r)
	if err != nil {
		return nil, err
	}

	var v u7.Int
	for {
		v, err = reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if err = fn(v); err != nil {
			return nil, err
		}
	}
	return reader, nil
}

// writeValues saves values into a .u7 file. Number in the header is set,
// and values must be sorted if flag contains u7.FlagSorted.
// Values are kept in uint64 for sorting with sortutil.
func writeValues(outFile string, values []uint64, flag uint32, opt *Options) (err error) {
	outfh, gw, w, err := outStream(outFile, opt.Compress, opt.CompressionLevel)
	if err != nil {
		return err
	}
	defer func() {
		if err2 := outfh.Flush(); err == nil {
			err = err2
		}
		if gw != nil {
			if err2 := gw.Close(); err == nil {
				err = err2
			}
		}
		if !isStdout(outFile) {
			if err2 := w.Close(); err == nil {
				err = err2
			}
		}
	}()

	writer := u7.NewWriter(outfh, flag)
	writer.Number = int64(len(values))
	for _, v := range values {
		if err = writer.Write(u7.Int(v)); err != nil {
			return errors.Wrap(err, outFile)
		}
	}
	return errors.Wrap(writer.Flush(), outFile)
}

// uniqSorted removes duplicates in a sorted slice in place.
func uniqSorted(values []uint64) []uint64 {
	if len(values) < 2 {
		return values
	}
	j := 0
	for i := 1; i < len(values); i++ {
		if values[i] != values[j] {
			j++
			values[j] = values[i]
		}
	}
	return values[:j+1]
}
