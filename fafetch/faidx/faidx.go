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

// Package faidx extracts subsequences of indexed FASTA files by region,
// without reading whole sequences into memory.
//
// Faidx memory-maps the FASTA file and walks the byte windows the .fai
// index points at. BufferedReader decodes whole records instead; it is
// slower but also serves open-ended regions, and both implement Reader so
// they can be checked against each other.
package faidx

import (
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"github.com/shenwei356/fafetch/fafetch/fai"
	"github.com/shenwei356/fafetch/fafetch/region"
)

// ErrSeqNotFound means the requested sequence name is not in the index.
var ErrSeqNotFound = errors.New("faidx: sequence not found")

// ErrInvalidRegion means a structured region has bounds that can not be
// serviced: end < start, or a negative position.
var ErrInvalidRegion = errors.New("faidx: invalid region")

// ErrUnsupportedRegion means an open-ended region was queried against a
// reader that only serves fully bounded ones. Such a region is never
// silently widened to the whole sequence.
var ErrUnsupportedRegion = errors.New("faidx: open-ended region not supported")

// Reader answers region queries against one FASTA file.
//
// Query returns the bases of the region with line terminators stripped.
// The result may be shorter than requested when the region runs over the
// sequence (or file) end; that is a truncation, not an error. Callers
// needing an exact count must check the returned length.
type Reader interface {
	// Query extracts the bases of a structured region.
	Query(r region.Region) ([]byte, error)

	// QueryString parses a region string and extracts its bases.
	QueryString(s string) ([]byte, error)

	// Index returns the index table, e.g. for enumerating sequences or
	// validating bounds before querying.
	Index() *fai.Index

	Close() error
}

// Faidx is the memory-mapped Reader. After New returns, the mapping is
// read-only, so a Faidx may be shared by concurrent queries without
// synchronization; it only serves fully bounded regions.
type Faidx struct {
	file string
	fh   *os.File
	mm   mmap.MMap
	idx  *fai.Index
}

// LoadOrCreateIndex loads file+".fai", or builds and saves it atomically
// beside the FASTA file when absent.
func LoadOrCreateIndex(file string) (*fai.Index, error) {
	faiFile := file + fai.FileExt
	if _, err := os.Stat(faiFile); err == nil {
		return fai.Read(faiFile)
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, faiFile)
	}
	return fai.CreateAndSave(file, faiFile)
}

// New opens a FASTA file for region queries. The index file
// (file + ".fai") is loaded if present, otherwise it is built and saved
// atomically beside the FASTA file.
func New(file string) (*Faidx, error) {
	idx, err := LoadOrCreateIndex(file)
	if err != nil {
		return nil, err
	}
	return NewWithIndex(file, idx)
}

// NewWithIndex opens a FASTA file with an already loaded index.
func NewWithIndex(file string, idx *fai.Index) (*Faidx, error) {
	fh, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}

	mm, err := mmap.Map(fh, mmap.RDONLY, 0)
	if err != nil {
		fh.Close()
		return nil, errors.Wrapf(err, "mmap %s", file)
	}

	return &Faidx{file: file, fh: fh, mm: mm, idx: idx}, nil
}

// Index returns the index table.
func (f *Faidx) Index() *fai.Index {
	return f.idx
}

// Query extracts the bases of a fully bounded region.
// Open-ended regions get ErrUnsupportedRegion, unknown names ErrSeqNotFound.
func (f *Faidx) Query(r region.Region) ([]byte, error) {
	rec, ok := f.idx.Record(r.Name)
	if !ok {
		return nil, errors.Wrap(ErrSeqNotFound, r.Name)
	}

	start, n, err := resolve(rec, r)
	if err != nil {
		return nil, err
	}
	return extract(f.mm, rec, start, n), nil
}

// QueryString parses a region string and extracts its bases.
func (f *Faidx) QueryString(s string) ([]byte, error) {
	r, err := region.Parse(s)
	if err != nil {
		return nil, err
	}
	return f.Query(r)
}

// Close unmaps and closes the FASTA file. Byte slices returned by Query
// remain valid: they are copies, not views into the mapping.
func (f *Faidx) Close() error {
	if f.mm != nil {
		if err := f.mm.Unmap(); err != nil {
			f.fh.Close()
			return err
		}
		f.mm = nil
	}
	return f.fh.Close()
}
