package pdfcmp

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// TypeNone is the declared type assigned to objects without a /Type marker.
const TypeNone = "_none_"

var (
	magic     = []byte("%PDF-")
	begobj    = []byte("obj")
	endobj    = []byte("endobj")
	begstream = []byte("stream")
	typemark  = []byte("/Type")
)

const (
	nl = '\n'
	cr = '\r'
)

// Object is one indirect object detected in an uncompressed PDF stream.
type Object struct {
	// Line is the 0-indexed number of the line carrying the closing endobj
	// marker. It is the object's identity and ordering key.
	Line int
	// Type is the first /Type value found in the object, or TypeNone.
	Type string
	// Content is the newline-join of every line of the object, from the
	// line carrying the opening obj marker to the closing marker line.
	Content []byte
	// Stream is set when any line of the object contains the stream
	// keyword. The payload stays inside Content, untouched.
	Stream bool
}

type scanState int

const (
	stateOutside scanState = iota
	stateInObject
)

// Scan reads an uncompressed PDF byte stream and returns the objects found
// in it, in document order. Detection is marker-driven, not grammar-driven:
// a line containing obj opens an object, a line containing endobj closes
// it, and everything in between belongs to the object verbatim. Lines
// outside any object are discarded. The only possible failure is a read
// error on rs.
func Scan(rs io.Reader) ([]Object, error) {
	buf, err := io.ReadAll(rs)
	if err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}
	var (
		r     = NewReader(buf)
		state = stateOutside
		body  [][]byte
		typ   string
		strm  bool
		list  []Object
	)
	for no := 0; !r.AtEOF(); no++ {
		line, err := r.ReadLine()
		if err != nil {
			break
		}
		if state == stateOutside && bytes.Contains(line, begobj) {
			state = stateInObject
			body = body[:0]
		}
		if state == stateInObject {
			body = append(body, line)
			if typ == "" && bytes.Contains(line, typemark) {
				typ = declaredType(line)
			}
			if bytes.Contains(line, begstream) {
				strm = true
			}
			if bytes.Contains(line, endobj) {
				if typ == "" {
					typ = TypeNone
				}
				list = append(list, Object{
					Line:    no,
					Type:    typ,
					Content: bytes.Join(body, []byte{nl}),
					Stream:  strm,
				})
				state, typ, strm = stateOutside, "", false
				body = body[:0]
			}
		}
	}
	return list, nil
}

// ScanFile scans the uncompressed PDF stored in file.
func ScanFile(file string) ([]Object, error) {
	buf, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Scan(bytes.NewReader(buf))
}

// declaredType extracts the value of a /Type declaration from a single
// line: second whitespace-delimited token of the trimmed line, leading
// slash stripped. A declaration split across lines is not detected.
func declaredType(line []byte) string {
	fields := strings.Fields(string(line))
	if len(fields) < 2 {
		return ""
	}
	return strings.TrimPrefix(fields[1], "/")
}
