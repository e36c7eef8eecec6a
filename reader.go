package pdfcmp

import (
	"bytes"
	"io"
)

// Reader iterates over the lines of an in-memory byte stream. A line keeps
// every byte it had in the stream except the terminating newline; carriage
// returns are document bytes and stay in place. Nothing gets trimmed: the
// comparison downstream is byte-sensitive.
type Reader struct {
	buf []byte
	ptr int
}

func NewReader(b []byte) *Reader {
	return &Reader{
		buf: b,
		ptr: 0,
	}
}

func (r *Reader) AtEOF() bool {
	return r.ptr >= len(r.buf)
}

func (r *Reader) Len() int {
	if r.ptr >= len(r.buf) {
		return 0
	}
	return len(r.buf) - r.ptr
}

func (r *Reader) ReadLine() ([]byte, error) {
	if r.ptr >= len(r.buf) {
		return nil, io.EOF
	}
	offset := bytes.IndexByte(r.buf[r.ptr:], nl)
	if offset < 0 {
		line := r.buf[r.ptr:]
		r.ptr = len(r.buf)
		return line, nil
	}
	line := r.buf[r.ptr : r.ptr+offset]
	r.ptr += offset + 1
	return line, nil
}
