package pdfcmp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoTool is returned when no known uncompress tool is found in PATH.
var ErrNoTool = errors.New("no pdf uncompress tool found")

// Tool is an external program able to rewrite a PDF with its streams and
// cross-reference tables in uncompressed, line-readable form.
type Tool struct {
	Name string
	args func(in, out string) []string
}

var tools = []Tool{
	{
		Name: "pdftk",
		args: func(in, out string) []string {
			return []string{in, "output", out, "uncompress"}
		},
	},
	{
		Name: "qpdf",
		args: func(in, out string) []string {
			return []string{"--qdf", "--object-streams=disable", in, out}
		},
	},
}

// FindTool returns the first known tool present in PATH.
func FindTool() (Tool, error) {
	for _, t := range tools {
		if _, err := exec.LookPath(t.Name); err == nil {
			return t, nil
		}
	}
	return Tool{}, ErrNoTool
}

// Uncompress rewrites the PDF stored in the in file into the out file.
func (t Tool) Uncompress(ctx context.Context, in, out string) error {
	var (
		cmd    = exec.CommandContext(ctx, t.Name, t.args(in, out)...)
		stderr bytes.Buffer
	)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return fmt.Errorf("%s exited with code %d: %s", t.Name, exit.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("run %s: %w", t.Name, err)
	}
	return nil
}

// Sniff checks that file starts with the PDF magic bytes.
func Sniff(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	buf := make([]byte, len(magic))
	if _, err := io.ReadFull(f, buf); err != nil || !bytes.HasPrefix(buf, magic) {
		return fmt.Errorf("%s: not a pdf file", file)
	}
	return nil
}

// CompareFiles uncompresses and compares two PDF files end to end: sniff
// both, uncompress both with the first available tool into a temporary
// directory, scan and compare. The temporary files are removed before
// returning.
func CompareFiles(ctx context.Context, pdf1, pdf2 string, opts Options) (Verdict, error) {
	var v Verdict
	for _, file := range []string{pdf1, pdf2} {
		if err := Sniff(file); err != nil {
			return v, err
		}
	}
	tool, err := FindTool()
	if err != nil {
		return v, err
	}
	dir, err := os.MkdirTemp("", "pdfcmp")
	if err != nil {
		return v, err
	}
	defer os.RemoveAll(dir)

	objs := make([][]Object, 2)
	for i, file := range []string{pdf1, pdf2} {
		unc := filepath.Join(dir, uncompressedName(i+1, file))
		if err := tool.Uncompress(ctx, file, unc); err != nil {
			return v, fmt.Errorf("uncompress %s: %w", file, err)
		}
		if objs[i], err = ScanFile(unc); err != nil {
			return v, err
		}
	}
	return CompareWithOptions(objs[0], objs[1], opts), nil
}

// uncompressedName keeps the two temporary files apart even when both
// inputs share a base name.
func uncompressedName(n int, file string) string {
	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%d-%s-unc.pdf", n, base)
}
