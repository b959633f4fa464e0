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

// Package region parses genomic region strings of the forms
//
//	name
//	name:start
//	name:start-end
//
// with 1-based, fully inclusive positions: "chr1:3-8" covers bases 3 through
// 8, six bases, and "chr1:5-5" covers a single base.
package region

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedRegion means a region string could not be parsed, or its
// bounds are not positive, or end < start.
var ErrMalformedRegion = errors.New("region: malformed region")

// Region is a named interval of base positions within one sequence.
// Start and End are 1-based and inclusive; 0 means the bound was not given,
// denoting "from the beginning" or "to the end" of the sequence.
type Region struct {
	Name  string
	Start int
	End   int
}

// Bounded tells whether both bounds are present.
func (r Region) Bounded() bool {
	return r.Start > 0 && r.End > 0
}

// Length returns the number of requested bases of a bounded region.
func (r Region) Length() int {
	if !r.Bounded() {
		return 0
	}
	return r.End - r.Start + 1
}

func (r Region) String() string {
	switch {
	case r.Start == 0:
		return r.Name
	case r.End == 0:
		return fmt.Sprintf("%s:%d", r.Name, r.Start)
	}
	return fmt.Sprintf("%s:%d-%d", r.Name, r.Start, r.End)
}

var reRange = regexp.MustCompile(`^(0|[1-9]\d*)(-(0|[1-9]\d*))?$`)

// Parse parses a region string.
//
// Sequence names may themselves contain ':': the text after the last ':' is
// treated as a range only if it looks like one, otherwise the whole string
// is taken as a name. So "HLA-A:01" is a bare name, positions never carry
// leading zeros, while "HLA-A:01:2-10" addresses bases 2-10 of "HLA-A:01".
func Parse(s string) (Region, error) {
	if s == "" {
		return Region{}, errors.Wrap(ErrMalformedRegion, "empty region")
	}

	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return Region{Name: s}, nil
	}

	m := reRange.FindStringSubmatch(s[i+1:])
	if m == nil {
		// no range part, the whole string is a name
		return Region{Name: s}, nil
	}
	if i == 0 {
		return Region{}, errors.Wrapf(ErrMalformedRegion, "empty sequence name: %s", s)
	}

	r := Region{Name: s[:i]}
	var err error
	if r.Start, err = strconv.Atoi(m[1]); err != nil {
		return Region{}, errors.Wrapf(ErrMalformedRegion, "start position: %s", s)
	}
	if r.Start < 1 {
		return Region{}, errors.Wrapf(ErrMalformedRegion, "positions are 1-based: %s", s)
	}
	if m[3] != "" {
		if r.End, err = strconv.Atoi(m[3]); err != nil {
			return Region{}, errors.Wrapf(ErrMalformedRegion, "end position: %s", s)
		}
		if r.End < r.Start {
			return Region{}, errors.Wrapf(ErrMalformedRegion, "end < start: %s", s)
		}
	}
	return r, nil
}
