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
	"fmt"
	"runtime"
	"strings"
	"sync"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/u7"
	"github.com/shenwei356/util/bytesize"
	"github.com/spf13/cobra"
)

var statCmd = &cobra.Command{
	Use:   "stats",
	Short: "Statistics of binary files",
	Long: `Statistics of binary files

Columns:
  file, gzipped, sorted, number, min, max, bytes, bytes-per-integer

The column "bytes" is the size of encoded integers as stored, i.e., the
deltas for sorted files, excluding the header and not affected by gzip
compression.

Tips:
  1. For lots of small files, use big value of '-j' to parallelize counting.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)

		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)
		logInputFiles(opt, files)

		checkFileSuffix(extDataFile, files...)

		outFile := getFlagString(cmd, "out-file")
		tabular := getFlagBool(cmd, "tabular")
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

		infos := make([]statInfo, len(files))

		var wg sync.WaitGroup
		token := make(chan int, opt.NumCPUs)
		for i, file := range files {
			token <- 1
			wg.Add(1)
			go func(i int, file string) {
				defer func() {
					wg.Done()
					<-token
				}()
				infos[i] = statFile(file)
			}(i, file)
		}
		wg.Wait()

		outfh.WriteString(strings.Join([]string{"file", "gzipped", "sorted", "number",
			"min", "max", "bytes", "bytes-per-integer"}, "\t") + "\n")
		for _, info := range infos {
			if info.err != nil {
				if skipErr {
					log.Warningf("%s: %s", info.file, info.err)
					continue
				}
				checkError(info.err)
			}
			outfh.WriteString(info.format(tabular) + "\n")
		}
	},
}

type statInfo struct {
	file    string
	gzipped bool
	sorted  bool
	number  uint64
	min     u7.Int
	max     u7.Int
	bytes   uint64

	err error
}

func statFile(file string) statInfo {
	info := statInfo{file: file, min: u7.MaxInt}

	infh, r, gzipped, err := inStream(file)
	if err != nil {
		info.err = err
		return info
	}
	defer r.Close()
	info.gzipped = gzipped

	reader, err := readStoredValues(infh, func(v u7.Int) error {
		info.number++
		if v < info.min {
			info.min = v
		}
		if v > info.max {
			info.max = v
		}
		return nil
	})
	if err != nil {
		info.err = errors.Wrap(err, file)
		return info
	}
	info.sorted = reader.IsSorted()
	info.bytes = reader.Bytes()
	if info.number == 0 {
		info.min = 0
	}
	return info
}

func (info statInfo) format(tabular bool) string {
	var perInt float64
	if info.number > 0 {
		perInt = float64(info.bytes) / float64(info.number)
	}
	if tabular {
		return fmt.Sprintf("%s\t%v\t%v\t%d\t%d\t%d\t%d\t%.2f",
			info.file, info.gzipped, info.sorted, info.number,
			info.min, info.max, info.bytes, perInt)
	}
	return fmt.Sprintf("%s\t%v\t%v\t%s\t%s\t%s\t%s\t%.2f",
		info.file, info.gzipped, info.sorted, humanize.Comma(int64(info.number)),
		humanize.Comma(int64(info.min)), humanize.Comma(int64(info.max)),
		bytesize.ByteSize(info.bytes).String(), perInt)
}

func init() {
	RootCmd.AddCommand(statCmd)

	statCmd.Flags().StringP("out-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped out)`)
	statCmd.Flags().BoolP("tabular", "t", false, "output raw numbers in machine-friendly tabular format")
	statCmd.Flags().BoolP("skip-err", "e", false, "skip error, only show warning message")
}
