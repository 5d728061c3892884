package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/slideforge/pdf2pptx/internal/config"
	"github.com/slideforge/pdf2pptx/internal/pdf"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `pdftext - Dump the embedded text layer of a PDF, page by page

Usage:
  pdftext [pdf-file]

The input defaults to input/slides.pdf when no file is given.

`)
	}
	flag.Parse()

	cfg := config.Load()
	path := cfg.InputPath
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	pages, err := pdf.ExtractTextByPage(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for i, text := range pages {
		fmt.Printf("--- Page %d ---\n", i+1)
		if text == "" {
			fmt.Println("(no text layer)")
		} else {
			fmt.Println(text)
		}
		fmt.Println()
	}
}
