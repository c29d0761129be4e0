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
	"bufio"
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/shenwei356/u7"
	"github.com/twotwotwo/sorts/sortutil"
)

func TestWriteAndReadValues(t *testing.T) {
	dir := t.TempDir()

	values := make([]uint64, 10000)
	for i := range values {
		values[i] = uint64(rand.Uint32() >> uint(rand.Intn(32)))
	}
	values = append(values, values[0], values[1])
	sortutil.Uint64s(values)
	values = uniqSorted(values)

	for _, compress := range []bool{true, false} {
		opt := &Options{NumCPUs: 2, Compress: compress, CompressionLevel: -1}
		file := filepath.Join(dir, "sub", "t"+extDataFile)

		err := writeValues(file, values, u7.FlagSorted, opt)
		if err != nil {
			t.Fatalf("writeValues: %s", err)
		}

		values2 := make([]uint64, 0, len(values))
		header, err := eachStoredValue(file, func(v u7.Int) error {
			values2 = append(values2, uint64(v))
			return nil
		})
		if err != nil {
			t.Fatalf("eachStoredValue: %s", err)
		}
		if !header.IsSorted() || header.Number != int64(len(values)) {
			t.Errorf("header mismatch: %s", header)
		}
		if len(values2) != len(values) {
			t.Fatalf("number mismatch: %d vs %d", len(values), len(values2))
		}
		for i := range values {
			if values[i] != values2[i] {
				t.Errorf("data mismatch. %d: %d vs %d", i, values[i], values2[i])
			}
		}

		info := statFile(file)
		if info.err != nil {
			t.Fatalf("statFile: %s", info.err)
		}
		if info.gzipped != compress || !info.sorted || info.number != uint64(len(values)) ||
			uint64(info.min) != values[0] || uint64(info.max) != values[len(values)-1] {
			t.Errorf("statFile: %+v", info)
		}
		// sorted values are stored as deltas
		var size, prev uint64
		for _, v := range values {
			size += uint64(u7.EncodedLen(u7.Int(v - prev)))
			prev = v
		}
		if info.bytes != size {
			t.Errorf("statFile: expected %d bytes, got %d", size, info.bytes)
		}
	}
}

func TestStatSortedPayload(t *testing.T) {
	values := make([]uint64, 1000)
	for i := range values {
		values[i] = uint64(1<<30 + i)
	}

	file := filepath.Join(t.TempDir(), "t"+extDataFile)
	opt := &Options{NumCPUs: 1, Compress: false}
	for _, flag := range []uint32{0, u7.FlagSorted} {
		if err := writeValues(file, values, flag, opt); err != nil {
			t.Fatalf("writeValues: %s", err)
		}
		fi, err := os.Stat(file)
		if err != nil {
			t.Fatal(err)
		}
		headerSize := int64(len(u7.Magic) + 4 + 1 + 8)

		info := statFile(file)
		if info.err != nil {
			t.Fatalf("statFile: %s", info.err)
		}
		if int64(info.bytes) != fi.Size()-headerSize {
			t.Errorf("flag %d: stats bytes %d != stored payload %d", flag, info.bytes, fi.Size()-headerSize)
		}
		expected := uint64(5 * len(values))
		if flag&u7.FlagSorted > 0 {
			expected = uint64(5 + len(values) - 1)
		}
		if info.bytes != expected {
			t.Errorf("flag %d: expected %d bytes, got %d", flag, expected, info.bytes)
		}
	}
}

func TestWriteValuesNotSorted(t *testing.T) {
	file := filepath.Join(t.TempDir(), "t"+extDataFile)
	opt := &Options{NumCPUs: 1, Compress: false}
	err := writeValues(file, []uint64{3, 2, 1}, u7.FlagSorted, opt)
	if errors.Cause(err) != u7.ErrNotSorted {
		t.Errorf("expected ErrNotSorted, got %v", err)
	}
}

func TestEachTextValue(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "ints.txt")
	err := os.WriteFile(file, []byte("# comment\n0\n\n127\r\n 128 \n4294967295\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	var values []u7.Int
	err = eachTextValue(file, func(v u7.Int) error {
		values = append(values, v)
		return nil
	})
	if err != nil {
		t.Fatalf("eachTextValue: %s", err)
	}
	expected := []u7.Int{0, 127, 128, u7.MaxInt}
	if len(values) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, values)
	}
	for i := range expected {
		if values[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, values)
		}
	}

	file = filepath.Join(dir, "bad.txt")
	err = os.WriteFile(file, []byte("1\n4294967296\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	err = eachTextValue(file, func(v u7.Int) error { return nil })
	if errors.Cause(err) != u7.ErrInvalidInt {
		t.Errorf("expected ErrInvalidInt, got %v", err)
	}
}

func TestHex(t *testing.T) {
	var buf bytes.Buffer
	outfh := bufio.NewWriter(&buf)

	for _, line := range []string{"0", "300", "4294967295"} {
		if err := writeHexEncoded(outfh, line); err != nil {
			t.Errorf("writeHexEncoded(%s): %s", line, err)
		}
	}
	outfh.Flush()
	expected := "0\t00\t1\n300\tac02\t2\n4294967295\tffffffff0f\t5\n"
	if buf.String() != expected {
		t.Errorf("writeHexEncoded: expected %q, got %q", expected, buf.String())
	}

	buf.Reset()
	if err := writeHexDecoded(outfh, "ac 02 7f"); err != nil {
		t.Errorf("writeHexDecoded: %s", err)
	}
	outfh.Flush()
	expected = "ac027f\t300\t0\t2\nac027f\t127\t2\t1\n"
	if buf.String() != expected {
		t.Errorf("writeHexDecoded: expected %q, got %q", expected, buf.String())
	}

	for line, e := range map[string]error{
		"80":         u7.ErrTruncated,
		"01 8080":    u7.ErrTruncated,
		"8080808080": u7.ErrOverflow,
		"ffffffff1f": u7.ErrOverflow,
	} {
		if err := writeHexDecoded(outfh, line); errors.Cause(err) != e {
			t.Errorf("writeHexDecoded(%s): expected %v, got %v", line, e, err)
		}
	}
	if err := writeHexDecoded(outfh, "zz"); err == nil {
		t.Errorf("writeHexDecoded: invalid hex should fail")
	}
	if err := writeHexEncoded(outfh, "-1"); errors.Cause(err) != u7.ErrInvalidInt {
		t.Errorf("writeHexEncoded(-1): expected ErrInvalidInt, got %v", err)
	}
}

func TestHexDecodedLines(t *testing.T) {
	tests := []struct {
		line string
		out  string
		err  error
	}{
		{"80 01 7f", "80017f\t128\t0\t2\n80017f\t127\t2\t1\n", nil},
		{"00", "00\t0\t0\t1\n", nil},
		{"80", "", u7.ErrTruncated},
		{"ffffffff10", "", u7.ErrOverflow},
		{"zz", "", nil},
		{"", "", u7.ErrTruncated},
	}

	var buf bytes.Buffer
	outfh := bufio.NewWriter(&buf)
	for _, test := range tests {
		buf.Reset()
		err := writeHexDecoded(outfh, test.line)
		outfh.Flush()

		switch {
		case test.line == "zz":
			if err == nil {
				t.Errorf("%q: invalid hex should fail", test.line)
			}
		case test.err != nil:
			if errors.Cause(err) != test.err {
				t.Errorf("%q: expected %v, got %v", test.line, test.err, err)
			}
		default:
			if err != nil {
				t.Errorf("%q: %s", test.line, err)
			}
		}
		if buf.String() != test.out {
			t.Errorf("%q: expected %q, got %q", test.line, test.out, buf.String())
		}
	}
}

func TestUniqSorted(t *testing.T) {
	tests := []struct {
		in, out []uint64
	}{
		{nil, nil},
		{[]uint64{1}, []uint64{1}},
		{[]uint64{1, 1, 1}, []uint64{1}},
		{[]uint64{1, 2, 2, 3, 5, 5}, []uint64{1, 2, 3, 5}},
	}
	for _, test := range tests {
		out := uniqSorted(test.in)
		if len(out) != len(test.out) {
			t.Errorf("uniqSorted: expected %v, got %v", test.out, out)
			continue
		}
		for i := range out {
			if out[i] != test.out[i] {
				t.Errorf("uniqSorted: expected %v, got %v", test.out, out)
			}
		}
	}
}

func TestGetFileList(t *testing.T) {
	files, err := getFileList(nil, true)
	if err != nil || len(files) != 1 || !isStdin(files[0]) {
		t.Errorf("getFileList without args: %v, %v", files, err)
	}

	dir := t.TempDir()
	_, err = getFileList([]string{filepath.Join(dir, "missing.u7")}, true)
	if err == nil {
		t.Errorf("getFileList: missing file should be reported")
	}

	list := filepath.Join(dir, "list.txt")
	file := filepath.Join(dir, "a.u7")
	if err = os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err = os.WriteFile(list, []byte(file+"\n\n"), 0644); err != nil {
		t.Fatal(err)
	}
	files, err = getListFromFile(list, true)
	if err != nil || len(files) != 1 || files[0] != file {
		t.Errorf("getListFromFile: %v, %v", files, err)
	}
}
