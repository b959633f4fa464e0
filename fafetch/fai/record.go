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

package fai

import "fmt"

// Record describes the layout of one named sequence in a FASTA file.
// It is constructed once, when the index is built or loaded, and never
// modified afterwards.
type Record struct {
	Name      string // sequence name, unique within the index
	Length    int    // total number of bases
	Offset    int64  // byte position of the first base, right after the header line
	LineBases int    // bases per full line
	LineWidth int    // bytes per full line, including the line terminator(s)
}

func (r Record) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%d", r.Name, r.Length, r.Offset, r.LineBases, r.LineWidth)
}

// TerminatorWidth returns the number of line-terminator bytes per line,
// 1 for "\n" and 2 for "\r\n".
func (r Record) TerminatorWidth() int {
	return r.LineWidth - r.LineBases
}

// EndOffset returns the absolute byte position right after the record's
// sequence data: full_lines*LineWidth + remainder bases past Offset. When the
// record ends with a short final line the value points right after its last
// base, excluding any terminator. Bytes at or beyond this position never
// belong to this record's bases.
func (r Record) EndOffset() int64 {
	if r.LineBases == 0 {
		return r.Offset
	}
	fullLines := r.Length / r.LineBases
	remainder := r.Length % r.LineBases
	return r.Offset + int64(fullLines*r.LineWidth+remainder)
}
