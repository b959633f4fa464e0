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

// Package fai builds, reads and writes FASTA index (.fai) files:
// tab-separated text with one line per sequence,
//
//	name \t length \t offset \t lineBases \t lineWidth
//
// where offset is the byte position of the first base and lineBases/lineWidth
// describe the fixed line wrapping of the sequence.
package fai

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// FileExt is the file extension of FASTA index files.
var FileExt = ".fai"

// ErrInvalidFormat means an index line does not have the 5 expected columns.
var ErrInvalidFormat = errors.New("fai: invalid index format")

// ErrDuplicateName means two records share one name.
var ErrDuplicateName = errors.New("fai: duplicated sequence name")

// Index is a table of Records, keeping the order of records in the FASTA
// file and providing lookup by name. It is read-only after being built
// or loaded, so it may be shared by concurrent queries.
type Index struct {
	records []Record
	names   map[string]int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		records: make([]Record, 0, 128),
		names:   make(map[string]int, 128),
	}
}

// Add appends a record, rejecting duplicated names.
func (idx *Index) Add(r Record) error {
	if _, ok := idx.names[r.Name]; ok {
		return errors.Wrap(ErrDuplicateName, r.Name)
	}
	idx.names[r.Name] = len(idx.records)
	idx.records = append(idx.records, r)
	return nil
}

// Record returns the record of the given name.
func (idx *Index) Record(name string) (Record, bool) {
	i, ok := idx.names[name]
	if !ok {
		return Record{}, false
	}
	return idx.records[i], true
}

// Has tells whether a sequence of the given name is indexed.
func (idx *Index) Has(name string) bool {
	_, ok := idx.names[name]
	return ok
}

// Records returns all records in their order in the FASTA file.
// The returned slice is shared, do not modify it.
func (idx *Index) Records() []Record {
	return idx.records
}

// Len returns the number of records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Read loads an index from a .fai file.
func Read(file string) (*Index, error) {
	fh, err := xopen.Ropen(file)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	defer fh.Close()

	idx, err := Parse(fh)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return idx, nil
}

// Parse reads index lines from r.
func Parse(r io.Reader) (*Index, error) {
	idx := NewIndex()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 16<<10), 1<<20)
	var nr int
	for scanner.Scan() {
		nr++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		items := strings.Split(line, "\t")
		if len(items) != 5 {
			return nil, errors.Wrapf(ErrInvalidFormat, "line %d: %d columns", nr, len(items))
		}

		var rec Record
		var err error
		rec.Name = items[0]
		if rec.Length, err = strconv.Atoi(items[1]); err != nil {
			return nil, errors.Wrapf(ErrInvalidFormat, "line %d: length: %s", nr, items[1])
		}
		if rec.Offset, err = strconv.ParseInt(items[2], 10, 64); err != nil {
			return nil, errors.Wrapf(ErrInvalidFormat, "line %d: offset: %s", nr, items[2])
		}
		if rec.LineBases, err = strconv.Atoi(items[3]); err != nil {
			return nil, errors.Wrapf(ErrInvalidFormat, "line %d: line bases: %s", nr, items[3])
		}
		if rec.LineWidth, err = strconv.Atoi(items[4]); err != nil {
			return nil, errors.Wrapf(ErrInvalidFormat, "line %d: line width: %s", nr, items[4])
		}
		if rec.LineWidth < rec.LineBases {
			return nil, errors.Wrapf(ErrInvalidFormat,
				"line %d: line width (%d) smaller than line bases (%d)", nr, rec.LineWidth, rec.LineBases)
		}

		if err = idx.Add(rec); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}

// WriteTo writes the index in .fai format.
func (idx *Index) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, rec := range idx.records {
		nw, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
			rec.Name, rec.Length, rec.Offset, rec.LineBases, rec.LineWidth)
		n += int64(nw)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Write saves the index to a file.
func (idx *Index) Write(file string) error {
	outfh, err := xopen.Wopen(file)
	if err != nil {
		return errors.Wrap(err, file)
	}
	if _, err = idx.WriteTo(outfh); err != nil {
		outfh.Close()
		return errors.Wrap(err, file)
	}
	return outfh.Close()
}
