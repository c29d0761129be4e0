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
	"runtime"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/u7"
	"github.com/spf13/cobra"
	"github.com/twotwotwo/sorts"
	"github.com/twotwotwo/sorts/sortutil"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode plain integers to binary file",
	Long: `Encode plain integers to binary file

Input is plain text with one unsigned 32-bit decimal integer per line,
blank lines and lines starting with '#' are ignored.

Attentions:
  1. Sorting (-s/--sort) holds all integers in RAM, while unsorted
     integers are encoded in streaming mode.
  2. Sorted integers are saved as differences to the previous ones,
     which significantly reduces file size.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)
		sorts.MaxProcs = opt.NumCPUs

		var err error

		if opt.Verbose {
			log.Info("checking input files ...")
		}
		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)
		logInputFiles(opt, files)

		outFile := getFlagString(cmd, "out-prefix")
		unique := getFlagBool(cmd, "unique")
		sortValues := getFlagBool(cmd, "sort") || unique

		if !isStdout(outFile) && !strings.HasSuffix(outFile, extDataFile) {
			outFile += extDataFile
		}

		if sortValues {
			values := make([]uint64, 0, mapInitSize)
			for _, file := range files {
				err = eachTextValue(file, func(v u7.Int) error {
					values = append(values, uint64(v))
					return nil
				})
				checkError(err)
			}

			if opt.Verbose {
				log.Infof("sorting %s integers", humanize.Comma(int64(len(values))))
			}
			sortutil.Uint64s(values)
			if unique {
				values = uniqSorted(values)
			}

			checkError(writeValues(outFile, values, u7.FlagSorted, opt))
			if opt.Verbose {
				log.Infof("%s integers saved to %s", humanize.Comma(int64(len(values))), outFile)
			}
			return
		}

		outfh, gw, w, err := outStream(outFile, opt.Compress, opt.CompressionLevel)
		checkError(err)
		defer func() {
			outfh.Flush()
			if gw != nil {
				gw.Close()
			}
			w.Close()
		}()

		writer := u7.NewWriter(outfh, 0)
		for _, file := range files {
			err = eachTextValue(file, writer.Write)
			checkError(err)
		}
		checkError(errors.Wrap(writer.Flush(), outFile))

		if opt.Verbose {
			log.Infof("%s integers saved to %s", humanize.Comma(int64(writer.Count())), outFile)
		}
	},
}

func init() {
	RootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringP("out-prefix", "o", "-", `out file prefix ("-" for stdout)`)
	encodeCmd.Flags().BoolP("sort", "s", false, "sort integers, this significantly reduces file size")
	encodeCmd.Flags().BoolP("unique", "u", false, "remove duplicated integers, implies -s/--sort")
}
