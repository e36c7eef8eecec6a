package pdfcmp

import (
	"fmt"
	"sort"
	"strings"
)

// Collection groups the objects of one document by declared type.
type Collection struct {
	All    []Object
	ByType map[string][]Object
}

func Collect(list []Object) Collection {
	c := Collection{
		All:    list,
		ByType: make(map[string][]Object),
	}
	for _, o := range list {
		c.ByType[o.Type] = append(c.ByType[o.Type], o)
	}
	return c
}

// Types returns the distinct declared types of the collection, sorted.
func (c Collection) Types() []string {
	list := make([]string, 0, len(c.ByType))
	for t := range c.ByType {
		list = append(list, t)
	}
	sort.Strings(list)
	return list
}

// Options relaxes the comparison. The zero value compares byte for byte.
type Options struct {
	// IgnoreDates drops /ModDate and /CreationDate lines from object
	// content before comparing. Creator, Author and Producer still count
	// as differences.
	IgnoreDates bool
	// IgnoreFontPrefix strips subset prefixes such as XUXPCT+ from
	// /BaseFont and /FontName values before comparing.
	IgnoreFontPrefix bool
}

func DefaultOptions() Options {
	return Options{}
}

// Verdict is the outcome of comparing two documents. A negative outcome is
// data, not an error: Report carries one diagnostic per line, in phase
// order.
type Verdict struct {
	Matched bool
	Report  []string
}

func Compare(pdf1, pdf2 []Object) Verdict {
	return CompareWithOptions(pdf1, pdf2, DefaultOptions())
}

// CompareWithOptions runs the three comparison phases: type-set equality,
// per-type multiset equality over (line, content, stream) triples, then
// positional equality. A phase-1 mismatch stops the comparison at once; a
// phase-2 mismatch stops it after every shared type has been scanned.
func CompareWithOptions(pdf1, pdf2 []Object, opts Options) Verdict {
	var (
		c1 = Collect(pdf1)
		c2 = Collect(pdf2)
		v  = Verdict{Matched: true}
	)
	if !v.compareTypes(c1, c2) {
		return v
	}
	if !v.compareObjects(c1, c2, opts) {
		return v
	}
	v.compareOrder(c1, c2)
	return v
}

func (v *Verdict) failf(pattern string, args ...interface{}) {
	v.Matched = false
	v.Report = append(v.Report, fmt.Sprintf(pattern, args...))
}

func (v *Verdict) notef(pattern string, args ...interface{}) {
	v.Report = append(v.Report, fmt.Sprintf(pattern, args...))
}

// compareTypes checks that both documents declare the same set of object
// types. When they don't, the documents are already proven incompatible
// and the later phases are skipped.
func (v *Verdict) compareTypes(c1, c2 Collection) bool {
	if only := missingTypes(c1, c2); len(only) > 0 {
		v.failf("pdf1 has object type(s) '%s' that pdf2 doesn't have", strings.Join(only, ", "))
	}
	if only := missingTypes(c2, c1); len(only) > 0 {
		v.failf("pdf2 has object type(s) '%s' that pdf1 doesn't have", strings.Join(only, ", "))
	}
	return v.Matched
}

func missingTypes(c1, c2 Collection) []string {
	var list []string
	for _, t := range c1.Types() {
		if _, ok := c2.ByType[t]; !ok {
			list = append(list, t)
		}
	}
	return list
}

type triple struct {
	line    int
	content string
	stream  bool
}

func makeTriples(list []Object, opts Options) map[triple]struct{} {
	set := make(map[triple]struct{}, len(list))
	for _, o := range list {
		t := triple{
			line:    o.Line,
			content: string(normalizeContent(o.Content, opts)),
			stream:  o.Stream,
		}
		set[t] = struct{}{}
	}
	return set
}

func missingTriples(set1, set2 map[triple]struct{}) []triple {
	var list []triple
	for t := range set1 {
		if _, ok := set2[t]; !ok {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].line != list[j].line {
			return list[i].line < list[j].line
		}
		return list[i].content < list[j].content
	})
	return list
}

// compareObjects computes, for every shared type, the symmetric difference
// of the two documents' triple sets. All types are scanned before the
// verdict is settled so the report covers every difference.
func (v *Verdict) compareObjects(c1, c2 Collection, opts Options) bool {
	for _, typ := range c1.Types() {
		var (
			set1 = makeTriples(c1.ByType[typ], opts)
			set2 = makeTriples(c2.ByType[typ], opts)
		)
		v.reportTriples("pdf1", typ, missingTriples(set1, set2))
		v.reportTriples("pdf2", typ, missingTriples(set2, set1))
	}
	return v.Matched
}

func (v *Verdict) reportTriples(label, typ string, list []triple) {
	if len(list) == 0 {
		return
	}
	v.failf("%s has %d different %s object(s)", label, len(list), typ)
	for _, t := range list {
		if t.stream {
			v.notef("    - object with stream, line_no=%d, len_bytes(object)=%d", t.line, len(t.content))
			continue
		}
		v.notef("    - line_no=%d, obj=%s", t.line, t.content)
		for _, f := range infoFields([]byte(t.content)) {
			v.notef("      %s: %s", f.Name, f.Value)
		}
	}
}

// compareOrder pairs each type's objects by ascending line and reports
// pairs whose line numbers differ. Equal triple multisets already imply
// equal line sets, so this phase cannot fire after phase 2 passed; it is
// kept as a final consistency check. Only type and line pair are reported,
// never content.
func (v *Verdict) compareOrder(c1, c2 Collection) {
	for _, typ := range c1.Types() {
		var (
			list1 = sortedByLine(c1.ByType[typ])
			list2 = sortedByLine(c2.ByType[typ])
		)
		for i := 0; i < len(list1) && i < len(list2); i++ {
			if list1[i].Line != list2[i].Line {
				v.failf("%s objects at line %d (pdf1) and line %d (pdf2) don't match", typ, list1[i].Line, list2[i].Line)
			}
		}
	}
}

func sortedByLine(list []Object) []Object {
	out := make([]Object, len(list))
	copy(out, list)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Line < out[j].Line
	})
	return out
}
