// Command boardprint renders a board JSON document, as returned by the API,
// to the terminal and optionally to a PDF file.
//
//	curl -s localhost:8000/v1/board > board.json
//	boardprint board.json
//	boardprint -pdf board.pdf - < board.json
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"resty_chess/internal/render"
)

func main() {
	pdfPath := flag.String("pdf", "", "also write a PDF diagram to this file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-pdf out.pdf] <board.json|->\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *pdfPath, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "boardprint:", err)
		os.Exit(1)
	}
}

func run(src, pdfPath string, stdin io.Reader, stdout io.Writer) error {
	in := stdin
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	snap, err := render.Decode(in)
	if err != nil {
		return err
	}

	if err := render.Text(stdout, snap); err != nil {
		return err
	}

	if pdfPath == "" {
		return nil
	}
	out, err := os.Create(pdfPath)
	if err != nil {
		return err
	}
	if err := render.PDF(out, snap); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
