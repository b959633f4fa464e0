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

	"github.com/spf13/cobra"
)

// VERSION of fafetch
const VERSION = "0.1.0"

// RootCmd is the root command of fafetch.
var RootCmd = &cobra.Command{
	Use:   "fafetch",
	Short: "fast random access to sequences in line-wrapped FASTA files",
	Long: fmt.Sprintf(`
fafetch: fast random access to sequences in line-wrapped FASTA files

Version: v%s

Documents: https://github.com/shenwei356/fafetch

fafetch extracts subsequences by region ("chr1:3-8", 1-based and inclusive)
via a FASTA index (.fai), reading only the bytes the region covers from a
memory-mapped file. The index is built automatically on first use.

`, VERSION),
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolP("quiet", "q", false,
		"do not print any verbose information")
	RootCmd.PersistentFlags().String("log", "",
		"log to file (appending)")

	RootCmd.CompletionOptions.DisableDefaultCmd = true
}
