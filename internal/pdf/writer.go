package pdf

import (
	"fmt"
	"io"
)

// ObjectID identifies an indirect PDF object. Every object in this exporter
// is written exactly once at generation 0; nothing is ever updated in place.
type ObjectID int

// countingWriter wraps an io.Writer, tracking the total number of bytes
// written so object offsets can be recorded as they're emitted.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// writer serializes indirect PDF objects to a byte sink one at a time,
// recording each object's starting offset so the cross-reference table can
// be emitted in a single forward pass once every object has been written -
// the classic (non-stream) xref format, grounded on the table layout built
// by other_examples' Geek0x0 xref tests.
type writer struct {
	w       *countingWriter
	offsets map[ObjectID]int64
	maxID   ObjectID
}

func newWriter(dst io.Writer) *writer {
	return &writer{w: &countingWriter{w: dst}, offsets: make(map[ObjectID]int64)}
}

// written returns the total number of bytes emitted so far.
func (w *writer) written() int { return int(w.w.n) }

func (w *writer) writeHeader() error {
	_, err := io.WriteString(w.w, "%PDF-1.7\n")
	return err
}

func (w *writer) recordOffset(id ObjectID) {
	w.offsets[id] = w.w.n
	if id > w.maxID {
		w.maxID = id
	}
}

// writeObj writes a dictionary-bodied indirect object.
func (w *writer) writeObj(id ObjectID, dict string) error {
	w.recordOffset(id)
	_, err := fmt.Fprintf(w.w, "%d 0 obj\n%s\nendobj\n", id, dict)
	return err
}

// writeStreamObj writes a dictionary-bodied object carrying a raw byte
// payload as its stream. The dictionary must not already carry /Length -
// it's injected here from the actual payload size.
func (w *writer) writeStreamObj(id ObjectID, dict string, data []byte) error {
	w.recordOffset(id)
	if _, err := fmt.Fprintf(w.w, "%d 0 obj\n%s\nstream\n", id, withLength(dict, len(data))); err != nil {
		return err
	}
	if _, err := w.w.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(w.w, "\nendstream\nendobj\n")
	return err
}

// withLength splices a /Length entry into a "<< ... >>" dictionary just
// before its closing delimiter.
func withLength(dict string, n int) string {
	body := dict[:len(dict)-len(" >>")]
	return fmt.Sprintf("%s /Length %d >>", body, n)
}

// writeXref emits the cross-reference table covering every object from 1 up
// to the highest ID written, and returns the byte offset the table itself
// started at (the trailer's startxref operand).
func (w *writer) writeXref() (int64, error) {
	start := w.w.n
	size := int(w.maxID) + 1

	if _, err := fmt.Fprintf(w.w, "xref\n0 %d\n", size); err != nil {
		return 0, err
	}
	if _, err := io.WriteString(w.w, "0000000000 65535 f \n"); err != nil {
		return 0, err
	}
	for id := ObjectID(1); int(id) < size; id++ {
		off, ok := w.offsets[id]
		if !ok {
			return 0, fmt.Errorf("xref: object %d was never written", id)
		}
		if _, err := fmt.Fprintf(w.w, "%010d 00000 n \n", off); err != nil {
			return 0, err
		}
	}
	return start, nil
}

func (w *writer) writeTrailer(root ObjectID, xrefOffset int64) error {
	size := int(w.maxID) + 1
	_, err := fmt.Fprintf(w.w, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF", size, root, xrefOffset)
	return err
}
