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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/u7"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var hexCmd = &cobra.Command{
	Use:   "hex",
	Short: "Show encoded bytes of integers in hex, or the reverse",
	Long: `Show encoded bytes of integers in hex, or the reverse

Output format:
  integer  hex  number-of-bytes

With -r/--reverse, each input line should be a hex string of one or more
concatenated encodings, spaces are allowed, e.g., "ac02" or "80 01 7f".
Output format:
  hex  integer  offset  number-of-bytes

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		var err error

		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)
		logInputFiles(opt, files)

		outFile := getFlagString(cmd, "out-file")
		reverse := getFlagBool(cmd, "reverse")
		skipErr := getFlagBool(cmd, "skip-err")

		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(strings.ToLower(outFile), ".gz"), opt.CompressionLevel)
		checkError(err)
		defer func() {
			outfh.Flush()
			if gw != nil {
				gw.Close()
			}
			w.Close()
		}()

		var infh *xopen.Reader
		var scanner *bufio.Scanner
		var line string
		var n int
		for _, file := range files {
			infh, err = xopen.Ropen(file)
			checkError(errors.Wrap(err, file))

			scanner = bufio.NewScanner(infh)
			n = 0
			for scanner.Scan() {
				n++
				line = strings.TrimSpace(scanner.Text())
				if line == "" || line[0] == '#' {
					continue
				}

				if reverse {
					err = writeHexDecoded(outfh, line)
				} else {
					err = writeHexEncoded(outfh, line)
				}
				if err != nil {
					err = errors.Wrapf(err, "%s: line %d", file, n)
					if skipErr {
						log.Warning(err)
						continue
					}
					checkError(err)
				}
			}
			checkError(errors.Wrap(scanner.Err(), file))
			infh.Close()
		}
	},
}

func writeHexEncoded(outfh *bufio.Writer, line string) error {
	v, err := u7.ParseInt(line)
	if err != nil {
		return err
	}
	enc := u7.Encode(v)
	_, err = fmt.Fprintf(outfh, "%d\t%s\t%d\n", v, hex.EncodeToString(enc), len(enc))
	return err
}

func writeHexDecoded(outfh *bufio.Writer, line string) error {
	code := strings.Join(strings.Fields(line), "")
	data, err := hex.DecodeString(code)
	if err != nil {
		return errors.Wrapf(err, "invalid hex string: %s", line)
	}
	if len(data) == 0 {
		return u7.ErrTruncated
	}

	var offset, n int
	var v u7.Int
	for offset < len(data) {
		v, n, err = u7.Decode(data[offset:])
		if err != nil {
			return errors.Wrapf(err, "offset %d", offset)
		}
		_, err = fmt.Fprintf(outfh, "%s\t%d\t%d\t%d\n", code, v, offset, n)
		if err != nil {
			return err
		}
		offset += n
	}
	return nil
}

func init() {
	RootCmd.AddCommand(hexCmd)

	hexCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	hexCmd.Flags().BoolP("reverse", "r", false, "decode hex strings of encoded bytes to integers")
	hexCmd.Flags().BoolP("skip-err", "e", false, "skip invalid lines, only show warning message")
}
