package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/midbel/pdfcmp"
)

const (
	match   = "\n* * * * * * * * * *\nPDFs match!\n* * * * * * * * * *"
	nomatch = "\n* * * * * * * * * *\nPDFs don't match!\n* * * * * * * * * *"
)

func main() {
	var opts pdfcmp.Options
	flag.BoolVar(&opts.IgnoreDates, "d", false, "ignore creation and modification dates")
	flag.BoolVar(&opts.IgnoreFontPrefix, "f", false, "ignore font subset prefixes")
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: cmp [-d] [-f] pdf1 pdf2")
		os.Exit(2)
	}
	verdict, err := pdfcmp.CompareFiles(context.Background(), flag.Arg(0), flag.Arg(1), opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("pdf1=%s\n", flag.Arg(0))
	fmt.Printf("pdf2=%s\n", flag.Arg(1))
	fmt.Println()
	for _, line := range verdict.Report {
		fmt.Println(line)
	}
	if !verdict.Matched {
		fmt.Println(nomatch)
		os.Exit(1)
	}
	fmt.Println(match)
}
