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

package faidx

import (
	"github.com/pkg/errors"
	"github.com/shenwei356/fafetch/fafetch/fai"
	"github.com/shenwei356/fafetch/fafetch/region"
)

// resolve maps a fully bounded region onto the record's byte layout: the
// absolute byte position of the first requested base, and the number of
// requested bases.
//
// Region positions are 1-based inclusive, so the count is End-Start+1.
// A start beyond the record is not an error: the returned position lies at
// or past the record end and extraction yields an empty, truncated result.
func resolve(rec fai.Record, r region.Region) (int64, int, error) {
	if r.Start < 0 || r.End < 0 || (r.Bounded() && r.End < r.Start) {
		return 0, 0, errors.Wrap(ErrInvalidRegion, r.String())
	}
	if !r.Bounded() {
		return 0, 0, errors.Wrap(ErrUnsupportedRegion, r.String())
	}
	if rec.LineBases == 0 { // a record with no sequence data
		return rec.Offset, 0, nil
	}

	prev := r.Start - 1 // bases before the requested start
	start := rec.Offset + int64((prev/rec.LineBases)*rec.LineWidth+prev%rec.LineBases)
	return start, r.End - r.Start + 1, nil
}

// extract collects up to max bases from the mapped file bytes, starting at
// the absolute position start, in a single pass over the physical lines.
//
// Each line contributes at most the bases remaining in it; the first line
// may be entered mid-way, so terminator bytes are never inside a line's
// base range. The per-line limit is additionally clamped to the record's
// end offset and to the file end, which truncates a short final line and a
// file cut off mid-line. After a line is exhausted, the terminator bytes
// are skipped. A start inside terminator bytes is stepped over to the next
// line. Fewer than max bases are returned iff the record or file end was
// reached first.
func extract(src []byte, rec fai.Record, start int64, max int) []byte {
	buf := make([]byte, 0, max)
	if rec.LineBases == 0 {
		return buf
	}

	padding := rec.TerminatorWidth()
	recEnd := rec.EndOffset()
	if recEnd > int64(len(src)) {
		recEnd = int64(len(src))
	}

	pos := start
	// the query may start mid-line
	lineLeft := rec.LineBases - int((start-rec.Offset)%int64(rec.LineWidth))
	if lineLeft <= 0 {
		// start points into terminator bytes, step to the next line
		pos += int64(lineLeft + padding)
		lineLeft = rec.LineBases
	}

	for len(buf) < max && pos < recEnd {
		lineEnd := pos + int64(lineLeft)
		if lineEnd > recEnd {
			lineEnd = recEnd
		}

		take := max - len(buf)
		if avail := int(lineEnd - pos); avail < take {
			take = avail
		}
		buf = append(buf, src[pos:pos+int64(take)]...)

		pos += int64(take + padding)
		lineLeft = rec.LineBases
	}
	return buf
}
