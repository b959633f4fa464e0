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

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// BufferSize is the size of the reading and writing buffer.
var BufferSize = 65536

// ErrNoHeader means sequence data appears before any header line.
var ErrNoHeader = errors.New("fai: sequence data before the first header")

// ErrRaggedLines means sequence lines of one record differ in length,
// other than a shorter final line.
var ErrRaggedLines = errors.New("fai: different line lengths within one record")

// Create scans a FASTA file once and returns its index.
//
// The file must be plain text: the recorded byte offsets address the
// uncompressed stream, so compressed input can not be indexed for random
// access. All non-final sequence lines of a record must share one length.
// Both "\n" and "\r\n" line terminators are supported, and the final line
// of the file may lack a terminator.
func Create(file string) (*Index, error) {
	fh, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	defer fh.Close()

	idx, err := create(bufio.NewReaderSize(fh, BufferSize))
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return idx, nil
}

// CreateAndSave builds the index of a FASTA file and saves it to faiFile.
//
// The index is written to a temporary file in the destination directory and
// renamed into place, so a concurrent reader either sees no index file or a
// complete one, never a partially written one. When two processes index the
// same file at the same time, the contents they write are identical and the
// last rename wins.
func CreateAndSave(file string, faiFile string) (*Index, error) {
	idx, err := Create(file)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(faiFile), filepath.Base(faiFile)+".tmp")
	if err != nil {
		return nil, errors.Wrap(err, faiFile)
	}
	w := bufio.NewWriterSize(tmp, BufferSize)
	if _, err = idx.WriteTo(w); err == nil {
		err = w.Flush()
	}
	if err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}
	if err != nil {
		os.Remove(tmp.Name())
		return nil, errors.Wrap(err, faiFile)
	}

	if err = os.Rename(tmp.Name(), faiFile); err != nil {
		os.Remove(tmp.Name())
		return nil, errors.Wrap(err, faiFile)
	}
	return idx, nil
}

func create(r *bufio.Reader) (*Index, error) {
	idx := NewIndex()

	var rec Record
	var inRecord bool    // a header has been seen and the record is still open
	var hasGeometry bool // the first sequence line of the record has been seen
	var prevShort bool   // a previous line was short, only legal for the final line
	var offset int64     // byte position of the current line start
	var nr int           // line number, for error messages

	finish := func() error {
		if !inRecord {
			return nil
		}
		if err := idx.Add(rec); err != nil {
			return err
		}
		inRecord = false
		return nil
	}

	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			nr++
			width := len(line)

			// strip terminator(s)
			bases := width
			if line[bases-1] == '\n' {
				bases--
				if bases > 0 && line[bases-1] == '\r' {
					bases--
				}
			}

			switch {
			case bases > 0 && line[0] == '>':
				if err2 := finish(); err2 != nil {
					return nil, err2
				}
				name := firstWord(line[1:bases])
				if name == "" {
					return nil, errors.Errorf("fai: empty sequence name at line %d", nr)
				}
				rec = Record{Name: name, Offset: offset + int64(width)}
				inRecord = true
				hasGeometry = false
				prevShort = false

			case !inRecord:
				if bases > 0 {
					return nil, errors.Wrapf(ErrNoHeader, "line %d", nr)
				}
				// leading blank lines are tolerated

			case bases == 0:
				// a blank line may only be followed by a header or EOF
				prevShort = true

			default:
				if !hasGeometry {
					if prevShort {
						return nil, errors.Wrapf(ErrRaggedLines, "%s: line %d", rec.Name, nr)
					}
					rec.LineBases = bases
					rec.LineWidth = width
					hasGeometry = true
				} else {
					if prevShort || bases > rec.LineBases {
						return nil, errors.Wrapf(ErrRaggedLines, "%s: line %d", rec.Name, nr)
					}
					if bases < rec.LineBases || width != rec.LineWidth {
						// must be the final line of the record
						prevShort = true
					}
				}
				rec.Length += bases
			}

			offset += int64(width)
		}

		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
	}

	if err := finish(); err != nil {
		return nil, err
	}
	return idx, nil
}

// firstWord returns the sequence name of a header: the text up to the first
// whitespace, matching how FASTA parsers derive sequence IDs.
func firstWord(b []byte) string {
	for i, c := range b {
		if c == ' ' || c == '\t' {
			return string(b[:i])
		}
	}
	return string(b)
}
