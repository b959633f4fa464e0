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

package region

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in  string
		out Region
	}{
		{"chr1", Region{Name: "chr1"}},
		{"chr1:3", Region{Name: "chr1", Start: 3}},
		{"chr1:3-8", Region{Name: "chr1", Start: 3, End: 8}},
		{"chr1:5-5", Region{Name: "chr1", Start: 5, End: 5}},
		// names containing ':'
		{"HLA-A:01", Region{Name: "HLA-A:01"}},
		{"HLA-A:01:2-10", Region{Name: "HLA-A:01", Start: 2, End: 10}},
		// the suffix does not look like a range, so it is part of the name
		{"chr1:x-8", Region{Name: "chr1:x-8"}},
		// positions never carry leading zeros, so these are names too
		{"chr1:007", Region{Name: "chr1:007"}},
		{"chr1:3-08", Region{Name: "chr1:3-08"}},
	}

	for _, test := range tests {
		r, err := Parse(test.in)
		if err != nil {
			t.Errorf("%s: %s", test.in, err)
			continue
		}
		if r != test.out {
			t.Errorf("%s: expected %+v, got %+v", test.in, test.out, r)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",         // empty
		":3-8",     // empty name
		"chr1:0",   // positions are 1-based
		"chr1:0-8", // positions are 1-based
		"chr1:8-3", // end < start
	}
	for _, test := range tests {
		_, err := Parse(test)
		if err == nil {
			t.Errorf("%q: expected error, got none", test)
			continue
		}
		if !errors.Is(err, ErrMalformedRegion) {
			t.Errorf("%q: expected ErrMalformedRegion, got %v", test, err)
		}
	}
}

func TestRegion(t *testing.T) {
	r := Region{Name: "chr1", Start: 3, End: 8}
	if !r.Bounded() {
		t.Error("expected bounded")
	}
	if r.Length() != 6 {
		t.Errorf("expected length 6, got %d", r.Length())
	}
	if r.String() != "chr1:3-8" {
		t.Errorf("unexpected string: %s", r)
	}

	r = Region{Name: "chr1", Start: 3}
	if r.Bounded() {
		t.Error("expected unbounded")
	}
	if r.String() != "chr1:3" {
		t.Errorf("unexpected string: %s", r)
	}

	r = Region{Name: "chr1"}
	if r.String() != "chr1" {
		t.Errorf("unexpected string: %s", r)
	}
}
