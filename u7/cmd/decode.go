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
	"encoding/hex"
	"runtime"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/shenwei356/u7"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode binary files to plain integers",
	Long: `Decode binary files to plain integers

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)

		var err error

		if opt.Verbose {
			log.Info("checking input files ...")
		}
		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)
		logInputFiles(opt, files)

		checkFileSuffix(extDataFile, files...)

		outFile := getFlagString(cmd, "out-file")
		all := getFlagBool(cmd, "all")

		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(strings.ToLower(outFile), ".gz"), opt.CompressionLevel)
		checkError(err)
		defer func() {
			outfh.Flush()
			if gw != nil {
				gw.Close()
			}
			w.Close()
		}()

		buf := make([]byte, 0, 64)
		var enc [u7.MaxEncodedLen]byte
		var n int
		var header *u7.Header
		var total uint64
		for i, file := range files {
			if opt.Verbose {
				log.Infof("processing file (%d/%d): %s", i+1, len(files), file)
			}

			header, err = eachStoredValue(file, func(v u7.Int) error {
				buf = strconv.AppendUint(buf[:0], uint64(v), 10)
				if all {
					n = u7.PutInt(enc[:], v)
					buf = append(buf, '\t')
					buf = append(buf, hex.EncodeToString(enc[:n])...)
				}
				buf = append(buf, '\n')
				_, err := outfh.Write(buf)
				total++
				return err
			})
			checkError(err)

			if opt.Verbose {
				log.Infof("  %s", header)
			}
		}

		if opt.Verbose {
			log.Infof("%s integers decoded", humanize.Comma(int64(total)))
		}
	},
}

func init() {
	RootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	decodeCmd.Flags().BoolP("all", "a", false, `output all data: integer, encoded bytes in hex`)
}
