package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/procalc"
)

func main() {
	log.SetFlags(0)
	var (
		inname    string
		raw, echo bool
		prec      int
	)
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.IntVar(&prec, "p", procalc.DefaultPrec, "significant digits of calculations")
	flag.BoolVar(&raw, "raw", false, "print results in plain notation without engineering form")
	flag.BoolVar(&echo, "echo", false, "print postfix forms")
	flag.Parse()
	if prec < 1 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	srcs, err := inputLines(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	srcs = append(srcs, flag.Args()...)

	ctx := procalc.NewContext(procalc.Prec(prec))
	for _, src := range srcs {
		if echo {
			fmt.Printf("%s : ", postfix(ctx, src))
		}
		r, err := ctx.EvaluateExpression(src)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if raw {
			fmt.Println(r.String())
			continue
		}
		fmt.Println(procalc.Format(r))
	}
}

func postfix(ctx *procalc.Context, src string) string {
	p, err := ctx.ToPostfix(procalc.Tokenize(src))
	if err != nil {
		return "?"
	}
	return procalc.PostfixString(p)
}

// inputLines returns the non-blank lines of the input selected by inname and
// std, as infile does.
func inputLines(inname string, std bool) ([]string, error) {
	f, err := infile(inname, std)
	if err != nil || f == nil {
		return nil, err
	}
	defer f.Close()
	return readLines(f)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

// infile opens the named input, or stdin for "-" or when std is set. The
// result is nil if there is no input file.
func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		return f, nil
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
