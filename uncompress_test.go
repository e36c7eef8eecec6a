package pdfcmp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestSniff(t *testing.T) {
	pdf := writeFile(t, "doc.pdf", []byte("%PDF-1.7\n"))
	if err := Sniff(pdf); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	txt := writeFile(t, "doc.txt", []byte("hello world"))
	if err := Sniff(txt); err == nil {
		t.Error("expected error for non-pdf content")
	}
	tiny := writeFile(t, "tiny.pdf", []byte("%P"))
	if err := Sniff(tiny); err == nil {
		t.Error("expected error for truncated header")
	}
	if err := Sniff(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestToolArgs(t *testing.T) {
	want := map[string][]string{
		"pdftk": {"in.pdf", "output", "out.pdf", "uncompress"},
		"qpdf":  {"--qdf", "--object-streams=disable", "in.pdf", "out.pdf"},
	}
	for _, tool := range tools {
		args, ok := want[tool.Name]
		if !ok {
			t.Errorf("unknown tool %s", tool.Name)
			continue
		}
		if got := tool.args("in.pdf", "out.pdf"); !reflect.DeepEqual(got, args) {
			t.Errorf("%s: expected args %v, got %v", tool.Name, args, got)
		}
	}
}

func TestFindTool(t *testing.T) {
	tool, err := FindTool()
	switch {
	case err == nil:
		if tool.Name == "" {
			t.Error("expected a named tool")
		}
	case errors.Is(err, ErrNoTool):
	default:
		t.Errorf("unexpected error: %v", err)
	}
}

func TestToolUncompress(t *testing.T) {
	var (
		in  = writeFile(t, "in.pdf", []byte("%PDF-1.4\n"))
		out = filepath.Join(t.TempDir(), "out.pdf")
		cp  = Tool{
			Name: "cp",
			args: func(in, out string) []string {
				return []string{in, out}
			},
		}
	)
	if err := cp.Uncompress(context.Background(), in, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestToolUncompressFails(t *testing.T) {
	fail := Tool{
		Name: "false",
		args: func(in, out string) []string {
			return nil
		},
	}
	err := fail.Uncompress(context.Background(), "in.pdf", "out.pdf")
	if err == nil {
		t.Fatal("expected error from failing tool")
	}
	if !strings.Contains(err.Error(), "exited with code") {
		t.Errorf("expected exit code in error, got %v", err)
	}
}

func TestCompareFilesRejectsNonPDF(t *testing.T) {
	var (
		pdf = writeFile(t, "doc.pdf", []byte("%PDF-1.7\n"))
		txt = writeFile(t, "doc.txt", []byte("hello world"))
	)
	if _, err := CompareFiles(context.Background(), pdf, txt, DefaultOptions()); err == nil {
		t.Error("expected error for non-pdf input")
	}
	if _, err := CompareFiles(context.Background(), txt, pdf, DefaultOptions()); err == nil {
		t.Error("expected error for non-pdf input")
	}
}

func TestUncompressedName(t *testing.T) {
	if got := uncompressedName(1, "/tmp/report.pdf"); got != "1-report-unc.pdf" {
		t.Errorf("unexpected name %q", got)
	}
	// Same base name on both sides must not collide.
	if uncompressedName(1, "a/x.pdf") == uncompressedName(2, "b/x.pdf") {
		t.Error("temporary names collide for equal base names")
	}
}
