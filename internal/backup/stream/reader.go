package stream

import (
	"archive/zip"
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"iter"
)

// maxLineSize bounds a single JSONL record. Recipes with long instructions
// easily pass bufio's 64 KiB default.
const maxLineSize = 16 << 20

// ErrFileNotFound indicates a file was not found in the backup archive.
var ErrFileNotFound = errors.New("file not found in backup")

// OpenFile finds and opens a file from a zip archive.
func OpenFile(zr *zip.Reader, path string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == path {
			return f.Open()
		}
	}
	return nil, ErrFileNotFound
}

// Reader streams records from a JSONL file in a zip archive.
type Reader[T any] struct {
	rc      io.ReadCloser
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a streaming reader for type T. The reader closes rc once
// iteration ends.
func NewReader[T any](rc io.ReadCloser) *Reader[T] {
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader[T]{
		rc:      rc,
		scanner: scanner,
	}
}

// Line returns the 1-based line number of the record last yielded.
func (r *Reader[T]) Line() int {
	return r.line
}

// All returns an iterator over every record in the file. A line that fails
// to decode yields an error and iteration moves on to the next line.
func (r *Reader[T]) All() iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		defer r.rc.Close()

		for r.scanner.Scan() {
			r.line++
			line := r.scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var record T
			if err := json.Unmarshal(line, &record); err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !yield(&record, nil) {
				return
			}
		}

		if err := r.scanner.Err(); err != nil {
			yield(nil, err)
		}
	}
}
