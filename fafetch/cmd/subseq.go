// Copyright © 2024-2025 Wei Shen <shenwei356@gmail.com>
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
	"fmt"
	"strings"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/fafetch/fafetch/faidx"
	"github.com/shenwei356/fafetch/fafetch/region"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var subseqCmd = &cobra.Command{
	Use:   "subseq",
	Short: "Extract subsequences by region",
	Long: `Extract subsequences by region

Regions ("chr1:3-8") are 1-based and fully inclusive: chr1:3-8 covers six
bases, and chr1:5-5 a single one. A region running over the sequence end
returns the bases up to the end, with a warning.

By default the FASTA file is memory-mapped and only the bytes of the
region are read, which requires both bounds. Open-ended regions ("chr1",
"chr1:300") need -B/--buffered, which decodes whole records instead.

The index file (<file>.fai) is built on first use.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		regions := getFlagStringSlice(cmd, "region")
		regionFile := getFlagString(cmd, "region-file")
		buffered := getFlagBool(cmd, "buffered")
		revcom := getFlagBool(cmd, "revcom")
		lineWidth := getFlagNonNegativeInt(cmd, "line-width")
		outFile := getFlagString(cmd, "out-file")

		if len(args) != 1 {
			checkError(fmt.Errorf("one FASTA file needed, %d given", len(args)))
		}
		file := args[0]
		checkFiles(file)

		if regionFile != "" {
			fh, err := xopen.Ropen(regionFile)
			checkError(err)
			scanner := bufio.NewScanner(fh)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line != "" {
					regions = append(regions, line)
				}
			}
			checkError(scanner.Err())
			checkError(fh.Close())
		}
		if len(regions) == 0 {
			checkError(fmt.Errorf("flag -r/--region or -R/--region-file needed"))
		}
		if opt.Verbose {
			log.Infof("%d region(s) to extract from %s", len(regions), file)
		}

		var reader faidx.Reader
		var err error
		if buffered {
			reader, err = faidx.NewBuffered(file)
		} else {
			reader, err = faidx.New(file)
		}
		checkError(err)

		outfh, err := xopen.Wopen(outFile)
		checkError(err)
		defer outfh.Close()

		for _, rs := range regions {
			r, err := region.Parse(rs)
			checkError(err)

			sub, err := reader.Query(r)
			checkError(err)

			if r.Bounded() && len(sub) < r.Length() {
				log.Warningf("%s: only %d of %d bases returned, the region runs over the sequence end",
					rs, len(sub), r.Length())
			}

			s, err := seq.NewSeq(seq.DNAredundant, sub)
			checkError(err)
			if revcom {
				s.RevComInplace()
			}

			fmt.Fprintf(outfh, ">%s\n", r)
			outfh.Write(s.FormatSeq(lineWidth))
			outfh.WriteByte('\n')
		}

		checkError(reader.Close())
	},
}

func init() {
	RootCmd.AddCommand(subseqCmd)

	subseqCmd.Flags().StringSliceP("region", "r", nil,
		`region to extract, e.g. "chr1:3-8", multiple values supported`)

	subseqCmd.Flags().StringP("region-file", "R", "",
		"file of regions, one per line")

	subseqCmd.Flags().BoolP("buffered", "B", false,
		"use the buffered whole-record reader, allowing open-ended regions")

	subseqCmd.Flags().Bool("revcom", false,
		"output the reverse complement")

	subseqCmd.Flags().IntP("line-width", "w", 60,
		"line width of output sequences (0 for no wrap)")

	subseqCmd.Flags().StringP("out-file", "o", "-",
		`out file, supports the ".gz" suffix ("-" for stdout)`)
}
