package pdfcmp

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
)

var (
	encbe = unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	encle = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
)

// convertString decodes BOM-prefixed UTF-16 PDF text strings; anything
// else passes through unchanged.
func convertString(str string) string {
	if strings.HasPrefix(str, "\xfe\xff") {
		str, _ = encbe.String(str)
	} else if strings.HasPrefix(str, "\xff\xfe") {
		str, _ = encle.String(str)
	}
	return str
}

var timePatterns = []string{
	"D:20060102150405-0700",
	"D:20060102150405",
	"D:20060102150405Z",
	"D:20060102",
}

func parseTime(str string) (time.Time, error) {
	var (
		when time.Time
		err  error
	)
	str = strings.ReplaceAll(str, "'", "")
	for _, pat := range timePatterns {
		when, err = time.Parse(pat, str)
		if err == nil {
			break
		}
	}
	return when, err
}

var (
	datemark   = regexp.MustCompile(`^\s*/(ModDate|CreationDate)\b`)
	fontprefix = regexp.MustCompile(`(/(?:BaseFont|FontName)\s+/)[A-Z]{6}\+`)
)

// normalizeContent applies the ignore options to an object's content
// before it enters the comparison. With the zero Options the content is
// returned as is.
func normalizeContent(content []byte, opts Options) []byte {
	if !opts.IgnoreDates && !opts.IgnoreFontPrefix {
		return content
	}
	var kept [][]byte
	for _, line := range bytes.Split(content, []byte{nl}) {
		if opts.IgnoreDates && datemark.Match(line) {
			continue
		}
		if opts.IgnoreFontPrefix {
			line = fontprefix.ReplaceAll(line, []byte("$1"))
		}
		kept = append(kept, line)
	}
	return bytes.Join(kept, []byte{nl})
}

type infoField struct {
	Name  string
	Value string
}

var infoNames = []string{
	"Title",
	"Author",
	"Subject",
	"Creator",
	"Producer",
	"ModDate",
	"CreationDate",
}

// infoFields extracts document information entries such as /Creator (...)
// from an object's content, one entry per line, with UTF-16 strings
// decoded and PDF dates reformatted. Used to make diagnostics on differing
// information objects readable.
func infoFields(content []byte) []infoField {
	var list []infoField
	for _, line := range bytes.Split(content, []byte{nl}) {
		f, ok := infoEntry(string(bytes.TrimSpace(line)))
		if ok {
			list = append(list, f)
		}
	}
	return list
}

const timePattern = "2006-01-02 15:04:05"

func infoEntry(line string) (infoField, bool) {
	var f infoField
	for _, name := range infoNames {
		prefix := "/" + name
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		rest := strings.TrimSpace(line[len(prefix):])
		if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
			return f, false
		}
		f.Name = name
		f.Value = convertString(rest[1 : len(rest)-1])
		if when, err := parseTime(f.Value); err == nil {
			f.Value = when.Format(timePattern)
		}
		return f, true
	}
	return f, false
}
