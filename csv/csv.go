package csv

import (
	"encoding/csv"
	"io"

	"golang.org/x/xerrors"
)

// Produces a list of fields making up a record.
type Recorder interface {
	Record() []string
}

// Optionally produces a header row naming the record's fields.
type Headerer interface {
	Header() []string
}

// An Encoder writes CSV records to an output stream.
type Encoder struct {
	w *csv.Writer

	wroteHeader bool
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: csv.NewWriter(w)}
}

// Encode writes a CSV record representing v to the stream followed by a
// newline character. Value given must implement the Recorder interface; if
// it also implements Headerer, a header row precedes the first record.
func (enc *Encoder) Encode(v interface{}) (err error) {
	defer func() {
		if err, _ = recover().(error); err != nil {
			err = xerrors.Errorf("recovered: %w", err)
		}
	}()

	if h, ok := v.(Headerer); ok && !enc.wroteHeader {
		enc.wroteHeader = true
		enc.w.Write(h.Header())
	}

	err = enc.w.Write(v.(Recorder).Record())
	enc.w.Flush()

	return nil
}
