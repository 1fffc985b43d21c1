// Command wandle is the CLI front end: a single positional argument
// naming a source file, validated end to end through pkg/wandle,
// printing "Model is valid." on success. Structured the way
// original_source/wandle/main.py's argparse-based main() is, but in the
// idiom of funxy's own cmd/funxy/main.go (flag-based, fmt.Fprintf(os.Stderr,
// ...) for errors, os.Exit(1) on failure).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/wandlelang/wandle/internal/commentstrip"
	"github.com/wandlelang/wandle/internal/config"
	"github.com/wandlelang/wandle/internal/pipeline"
	"github.com/wandlelang/wandle/internal/treedump"
	"github.com/wandlelang/wandle/internal/wparser"
	"github.com/wandlelang/wandle/pkg/wandle"
)

func main() {
	showTree := flag.Bool("tree", false, "print the adapted parse tree instead of validating")
	showVersion := flag.Bool("version", false, "print the toolchain version and exit")
	debug := flag.Bool("debug", false, "print the model's build id alongside the success banner")
	flag.Parse()

	if *showVersion {
		fmt.Println(config.Version)
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: wandle [-tree] [-debug] <source-file>")
		os.Exit(1)
	}
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s does not exist.\n", path)
		os.Exit(1)
	}
	if info.IsDir() {
		fmt.Fprintf(os.Stderr, "ERROR: %s is not a file.\n", path)
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	if *showTree {
		runTreeDump(string(data))
		return
	}

	m, verr := wandle.BuildSource(string(data))
	if verr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", verr.Error())
		os.Exit(1)
	}

	banner := "Model is valid."
	if isatty.IsTerminal(os.Stdout.Fd()) {
		banner = "\033[32m" + banner + "\033[0m"
	}
	fmt.Println(banner)

	if *debug {
		fmt.Printf("build id: %s\n", m.BuildID)
	}
}

// runTreeDump implements the `-tree` flag: comment-strip and parse the
// source, then print the adapted parse tree indented by rule name — the
// Go analogue of the original's arpeggio_parse_debug recursive printer.
func runTreeDump(src string) {
	ctx := pipeline.NewContext(src)
	p := pipeline.New(commentstrip.Processor{}, wparser.Processor{})
	ctx = p.Run(ctx)
	if ctx.Err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", ctx.Err.Error())
		os.Exit(1)
	}
	treedump.Print(os.Stdout, ctx.Tree)
}
