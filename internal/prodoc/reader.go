package prodoc

import (
	"errors"
	"io"

	"github.com/chapmanb/biosqlweb/internal/linescan"
)

// ErrMultipleRecords is returned by ReadOne when a second entry follows.
var ErrMultipleRecords = errors.New("prodoc: more than one record found")

// Reader yields the entries of a PRODOC stream one at a time. It reads
// forward only; to start over, open the stream again.
type Reader struct {
	lr      *linescan.Reader
	scanner Scanner
	err     error
	start   int64
	end     int64
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{lr: linescan.NewReader(r)}
}

// Read returns the next entry, or io.EOF when the stream is exhausted. After
// a parse error every later call returns the same error.
func (r *Reader) Read() (*Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	more, err := skipBlank(r.lr)
	if err != nil {
		r.err = err
		return nil, err
	}
	if !more {
		r.err = io.EOF
		return nil, io.EOF
	}
	r.start = r.lr.Offset()
	c := NewRecordConsumer()
	if err := r.scanner.ScanRecord(r.lr, c); err != nil {
		r.err = err
		return nil, err
	}
	r.end = r.lr.Offset()
	return c.Record(), nil
}

// Span returns the byte offset and length of the entry last returned by
// Read.
func (r *Reader) Span() (offset, length int64) {
	return r.start, r.end - r.start
}

// ReadAll reads every entry of r.
func ReadAll(r io.Reader) ([]*Record, error) {
	rd := NewReader(r)
	var out []*Record
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

// ReadOne reads a stream holding exactly one entry.
func ReadOne(r io.Reader) (*Record, error) {
	rd := NewReader(r)
	rec, err := rd.Read()
	if err != nil {
		return nil, err
	}
	if _, err := rd.Read(); err != io.EOF {
		if err == nil {
			err = ErrMultipleRecords
		}
		return nil, err
	}
	return rec, nil
}
