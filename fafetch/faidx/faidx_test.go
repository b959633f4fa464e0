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
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/shenwei356/fafetch/fafetch/fai"
	"github.com/shenwei356/fafetch/fafetch/region"
)

type testSeq struct {
	name string
	seq  string
}

// writeFasta writes sequences wrapped at the given width. When finalEOL is
// false, the terminator of the very last line is dropped.
func writeFasta(t *testing.T, file string, seqs []testSeq, width int, eol string, finalEOL bool) {
	t.Helper()

	var b strings.Builder
	for _, s := range seqs {
		b.WriteString(">" + s.name + eol)
		for i := 0; i < len(s.seq); i += width {
			end := i + width
			if end > len(s.seq) {
				end = len(s.seq)
			}
			b.WriteString(s.seq[i:end] + eol)
		}
	}
	data := b.String()
	if !finalEOL {
		data = strings.TrimSuffix(data, eol)
	}
	if err := os.WriteFile(file, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

// chr1, 10 bases wrapped at 4: "ACGT\nACGT\nAC\n"
func openSmallFile(t *testing.T) *Faidx {
	t.Helper()
	file := filepath.Join(t.TempDir(), "t.fasta")
	writeFasta(t, file, []testSeq{{"chr1", "ACGTACGTAC"}}, 4, "\n", true)

	f, err := New(file)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestQuery(t *testing.T) {
	f := openSmallFile(t)

	// bases 3 through 8, inclusive
	s, err := f.QueryString("chr1:3-8")
	if err != nil {
		t.Fatal(err)
	}
	if string(s) != "GTACGT" {
		t.Errorf("expected GTACGT, got %s", s)
	}

	// the short final line, no terminator bytes appended
	s, err = f.QueryString("chr1:9-10")
	if err != nil {
		t.Fatal(err)
	}
	if string(s) != "AC" {
		t.Errorf("expected AC, got %s", s)
	}

	// a single base
	s, err = f.QueryString("chr1:5-5")
	if err != nil {
		t.Fatal(err)
	}
	if string(s) != "A" {
		t.Errorf("expected A, got %s", s)
	}

	// the full range
	s, err = f.QueryString("chr1:1-10")
	if err != nil {
		t.Fatal(err)
	}
	if string(s) != "ACGTACGTAC" {
		t.Errorf("expected ACGTACGTAC, got %s", s)
	}
}

func TestQueryErrors(t *testing.T) {
	f := openSmallFile(t)

	// an unknown name is an error, not an empty result
	if _, err := f.QueryString("chrX:1-2"); !errors.Is(err, ErrSeqNotFound) {
		t.Errorf("expected ErrSeqNotFound, got %v", err)
	}

	// open-ended regions are not widened to the whole sequence
	if _, err := f.QueryString("chr1"); !errors.Is(err, ErrUnsupportedRegion) {
		t.Errorf("expected ErrUnsupportedRegion, got %v", err)
	}
	if _, err := f.QueryString("chr1:3"); !errors.Is(err, ErrUnsupportedRegion) {
		t.Errorf("expected ErrUnsupportedRegion, got %v", err)
	}

	// structured regions skip string parsing, invalid bounds must still be caught
	if _, err := f.Query(region.Region{Name: "chr1", Start: 8, End: 3}); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("expected ErrInvalidRegion, got %v", err)
	}
	if _, err := f.Query(region.Region{Name: "chr1", Start: -2, End: 3}); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("expected ErrInvalidRegion, got %v", err)
	}
}

func TestQueryTruncation(t *testing.T) {
	f := openSmallFile(t)

	// the region runs over the sequence end: bases up to the end, no error
	s, err := f.QueryString("chr1:9-100")
	if err != nil {
		t.Fatal(err)
	}
	if string(s) != "AC" {
		t.Errorf("expected AC, got %s", s)
	}

	// entirely beyond the sequence: empty, no error
	s, err = f.QueryString("chr1:11-20")
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 0 {
		t.Errorf("expected an empty result, got %s", s)
	}
}

func TestQueryIdempotent(t *testing.T) {
	f := openSmallFile(t)

	first, err := f.QueryString("chr1:2-9")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		s, err := f.QueryString("chr1:2-9")
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(s, first) {
			t.Fatalf("query %d: expected %s, got %s", i, first, s)
		}
	}
}

func TestQueryConcurrent(t *testing.T) {
	f := openSmallFile(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s, err := f.QueryString("chr1:3-8")
				if err != nil {
					t.Error(err)
					return
				}
				if string(s) != "GTACGT" {
					t.Errorf("expected GTACGT, got %s", s)
					return
				}
			}
		}()
	}
	wg.Wait()
}

var testSeqs = []testSeq{
	{"chr1", "ACGTACGTAC"},
	{"chr2", "A"},
	{"chr3", "CATGCCACGTACGTAGTACGATGCTCGACATG"},
	{"chr4", "ACTAGACGACGTACGCGTACGTAGTACGATGCTCGAT"},
}

// Both reader variants must return, for any bounded range inside a record,
// the same bases as naively decoding the whole record and slicing it,
// for single- and double-byte terminators, several wrap widths, and files
// with and without a final terminator.
func TestQueryAgainstNaiveSlicing(t *testing.T) {
	for _, eol := range []string{"\n", "\r\n"} {
		for _, width := range []int{1, 3, 4, 5, 60} {
			for _, finalEOL := range []bool{true, false} {
				name := fmt.Sprintf("eol=%q,width=%d,finalEOL=%v", eol, width, finalEOL)

				dir := t.TempDir()
				file := filepath.Join(dir, "t.fasta")
				writeFasta(t, file, testSeqs, width, eol, finalEOL)

				fm, err := New(file)
				if err != nil {
					t.Fatalf("%s: %s", name, err)
				}
				fb, err := NewBuffered(file)
				if err != nil {
					t.Fatalf("%s: %s", name, err)
				}

				for _, ts := range testSeqs {
					for start := 1; start <= len(ts.seq); start++ {
						for end := start; end <= len(ts.seq); end++ {
							expected := ts.seq[start-1 : end]
							r := region.Region{Name: ts.name, Start: start, End: end}

							s, err := fm.Query(r)
							if err != nil {
								t.Fatalf("%s: %s: %s", name, r, err)
							}
							if string(s) != expected {
								t.Fatalf("%s: mmap: %s: expected %s, got %s", name, r, expected, s)
							}

							s, err = fb.Query(r)
							if err != nil {
								t.Fatalf("%s: %s: %s", name, r, err)
							}
							if string(s) != expected {
								t.Fatalf("%s: buffered: %s: expected %s, got %s", name, r, expected, s)
							}
						}
					}
				}

				fm.Close()
				fb.Close()
			}
		}
	}
}

func TestNewBuildsIndex(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "t.fasta")
	writeFasta(t, file, testSeqs, 4, "\n", true)

	f, err := New(file)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// the index file is created beside the FASTA file
	faiFile := file + fai.FileExt
	if _, err = os.Stat(faiFile); err != nil {
		t.Fatalf("index file not created: %s", err)
	}

	idx, err := fai.Read(faiFile)
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != len(testSeqs) {
		t.Fatalf("expected %d records, got %d", len(testSeqs), idx.Len())
	}
	if idx.Len() != f.Index().Len() {
		t.Fatalf("loaded and in-memory index differ in size")
	}

	// records are enumerated in file order
	for i, ts := range testSeqs {
		if f.Index().Records()[i].Name != ts.name {
			t.Errorf("record %d: expected %s, got %s", i, ts.name, f.Index().Records()[i].Name)
		}
		if f.Index().Records()[i].Length != len(ts.seq) {
			t.Errorf("record %d: expected length %d, got %d",
				i, len(ts.seq), f.Index().Records()[i].Length)
		}
	}
}

func TestBufferedOpenEnded(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "t.fasta")
	writeFasta(t, file, []testSeq{{"chr1", "ACGTACGTAC"}}, 4, "\n", true)

	f, err := NewBuffered(file)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// a bare name gives the whole sequence
	s, err := f.QueryString("chr1")
	if err != nil {
		t.Fatal(err)
	}
	if string(s) != "ACGTACGTAC" {
		t.Errorf("expected ACGTACGTAC, got %s", s)
	}

	// a start-only region runs to the sequence end
	s, err = f.QueryString("chr1:7")
	if err != nil {
		t.Fatal(err)
	}
	if string(s) != "GTAC" {
		t.Errorf("expected GTAC, got %s", s)
	}

	if _, err = f.QueryString("chrX"); !errors.Is(err, ErrSeqNotFound) {
		t.Errorf("expected ErrSeqNotFound, got %v", err)
	}
	if _, err = f.Query(region.Region{Name: "chr1", Start: 8, End: 3}); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("expected ErrInvalidRegion, got %v", err)
	}
}

func TestBufferedConcurrentLoad(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "t.fasta")
	writeFasta(t, file, testSeqs, 4, "\n", true)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := NewBuffered(file)
			if err != nil {
				t.Error(err)
				return
			}
			defer f.Close()

			s, err := f.QueryString("chr1:3-8")
			if err != nil {
				t.Error(err)
				return
			}
			if string(s) != "GTACGT" {
				t.Errorf("expected GTACGT, got %s", s)
			}
		}()
	}
	wg.Wait()
}

func TestExtractMidLineStart(t *testing.T) {
	// a range starting mid-line and spanning lines must skip the
	// terminator between them
	rec := fai.Record{Name: "chr1", Length: 10, Offset: 0, LineBases: 4, LineWidth: 5}
	src := []byte("ACGT\nACGT\nAC\n")

	s := extract(src, rec, 2, 6) // base 3, six bases
	if string(s) != "GTACGT" {
		t.Errorf("expected GTACGT, got %s", s)
	}

	// a range entirely inside one line
	s = extract(src, rec, 6, 2) // bases 6-7
	if string(s) != "CG" {
		t.Errorf("expected CG, got %s", s)
	}

	// a range entirely inside the short final line
	s = extract(src, rec, 10, 1) // base 9 only, not the whole final line
	if string(s) != "A" {
		t.Errorf("expected A, got %s", s)
	}

	// a start inside terminator bytes steps to the next line
	s = extract(src, rec, 4, 3) // the '\n' after the first line
	if string(s) != "ACG" {
		t.Errorf("expected ACG, got %s", s)
	}

	rec = fai.Record{Name: "chr1", Length: 10, Offset: 0, LineBases: 4, LineWidth: 6}
	src = []byte("ACGT\r\nACGT\r\nAC\r\n")
	s = extract(src, rec, 5, 2) // the '\n' of a "\r\n" terminator
	if string(s) != "AC" {
		t.Errorf("expected AC, got %s", s)
	}
}
