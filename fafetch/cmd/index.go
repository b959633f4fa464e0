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
	"os"
	"time"

	"github.com/shenwei356/fafetch/fafetch/fai"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Create FASTA index (.fai) files",
	Long: `Create FASTA index (.fai) files

For each input file, the index is saved as <file>.fai next to it, written
atomically so concurrent runs never leave a partially written index.
Existing index files are kept unless -f/--force is given.

Input files must be plain text: byte offsets in the index address the
uncompressed stream.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		force := getFlagBool(cmd, "force")

		if len(args) == 0 {
			checkError(fmt.Errorf("at least one FASTA file needed"))
		}
		checkFiles(args...)

		timeStart := time.Now()

		// process bar
		var pbs *mpb.Progress
		var bar *mpb.Bar
		var chDuration chan time.Duration
		var doneDuration chan int
		showBar := opt.Verbose && len(args) > 1
		if showBar {
			pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
			bar = pbs.AddBar(int64(len(args)),
				mpb.PrependDecorators(
					decor.Name("indexed files: ", decor.WC{W: len("indexed files: "), C: decor.DindentRight}),
					decor.Name("", decor.WCSyncSpaceR),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
					decor.EwmaETA(decor.ET_STYLE_GO, 10),
					decor.OnComplete(decor.Name(""), ". done"),
				),
			)

			chDuration = make(chan time.Duration, len(args))
			doneDuration = make(chan int)
			go func() {
				for t := range chDuration {
					bar.EwmaIncrBy(1, t)
				}
				doneDuration <- 1
			}()
		}

		var nIndexed, nSkipped int
		for _, file := range args {
			t := time.Now()

			faiFile := file + fai.FileExt
			existed, err := pathutil.Exists(faiFile)
			checkError(err)
			if existed && !force {
				nSkipped++
				if opt.Verbose && !showBar {
					log.Infof("skipping %s: %s existed, use -f/--force to rebuild", file, faiFile)
				}
			} else {
				idx, err := fai.CreateAndSave(file, faiFile)
				checkError(err)
				nIndexed++
				if opt.Verbose && !showBar {
					log.Infof("%s: %d sequence(s) indexed", file, idx.Len())
				}
			}

			if showBar {
				chDuration <- time.Since(t)
			}
		}

		if showBar {
			close(chDuration)
			<-doneDuration
			pbs.Wait()
		}

		if opt.Verbose {
			log.Infof("%d file(s) indexed, %d skipped", nIndexed, nSkipped)
			log.Infof("elapsed time: %s", time.Since(timeStart))
		}
	},
}

func init() {
	RootCmd.AddCommand(indexCmd)

	indexCmd.Flags().BoolP("force", "f", false,
		"overwrite existing index files")
}
