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
	"fmt"

	"github.com/shenwei356/fafetch/fafetch/faidx"
	"github.com/shenwei356/natsort"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed sequences",
	Long: `List indexed sequences

Columns are those of the .fai format:
name, length, offset, bases per line, bytes per line.

The index file (<file>.fai) is built on first use.

`,
	Run: func(cmd *cobra.Command, args []string) {
		sortNames := getFlagBool(cmd, "sort")
		outFile := getFlagString(cmd, "out-file")

		if len(args) != 1 {
			checkError(fmt.Errorf("one FASTA file needed, %d given", len(args)))
		}
		file := args[0]
		checkFiles(file)

		idx, err := faidx.LoadOrCreateIndex(file)
		checkError(err)

		outfh, err := xopen.Wopen(outFile)
		checkError(err)
		defer outfh.Close()

		if sortNames {
			names := make([]string, 0, idx.Len())
			for _, rec := range idx.Records() {
				names = append(names, rec.Name)
			}
			natsort.Sort(names)
			for _, name := range names {
				rec, _ := idx.Record(name)
				fmt.Fprintln(outfh, rec)
			}
			return
		}

		for _, rec := range idx.Records() {
			fmt.Fprintln(outfh, rec)
		}
	},
}

func init() {
	RootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("sort", "s", false,
		"sort sequences by name in natural order")

	listCmd.Flags().StringP("out-file", "o", "-",
		`out file, supports the ".gz" suffix ("-" for stdout)`)
}
