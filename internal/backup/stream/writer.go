// Package stream provides JSONL streaming to/from zip archives.
package stream

import (
	"archive/zip"
	"encoding/json"
	"io"
)

// Writer streams records as JSONL into one file of a zip archive.
type Writer struct {
	enc   *json.Encoder
	count int
}

// NewWriter creates a JSONL writer for a path within the zip.
func NewWriter(zw *zip.Writer, path string) (*Writer, error) {
	w, err := zw.Create(path)
	if err != nil {
		return nil, err
	}
	return newWriter(w), nil
}

func newWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// Write encodes a single record as a JSON line.
func (w *Writer) Write(record any) error {
	// Encode terminates every value with a newline.
	if err := w.enc.Encode(record); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns records written so far.
func (w *Writer) Count() int {
	return w.count
}
