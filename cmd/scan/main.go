package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/midbel/hexdump"
	"github.com/midbel/pdfcmp"
)

func main() {
	raw := flag.Bool("r", false, "raw")
	flag.Parse()

	list, err := pdfcmp.ScanFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, o := range list {
		printObject(o, *raw)
	}
}

const row = "%6d | %-16s | %6t | %d bytes"

func printObject(o pdfcmp.Object, raw bool) {
	fmt.Printf(row, o.Line, o.Type, o.Stream, len(o.Content))
	fmt.Println()
	if raw && o.Stream {
		fmt.Println(hexdump.Dump(o.Content))
	}
}
