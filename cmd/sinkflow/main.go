// Command sinkflow prints every value a program can pass to its sink.
//
//	sinkflow [flags] <file> [-d|--debug]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/speakeasy-api/sinkflow"
	"github.com/speakeasy-api/sinkflow/analysis"
	"github.com/speakeasy-api/sinkflow/pkg/playground"
)

// Exit codes.
const (
	exitOK       = 0
	exitUsage    = 1
	exitFile     = 2
	exitParse    = 3
	exitLex      = 4
	exitInternal = 5
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sinkflow", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "YAML options file")
		format     = fs.String("format", "list", "output format: list, json, yaml or schema")
		order      = fs.String("order", analysis.OrderDiscovery, "value order: discovery or ascending")
		backend    = fs.String("backend", "dpll", "SAT backend: dpll, exhaustive or gophersat")
		qualified  = fs.Bool("qualified", false, "name indexed conditions by variable and index")
		strict     = fs.Bool("strict", false, "fail on characters the lexer cannot classify")
		workers    = fs.Int("workers", 1, "concurrent value queries")
		logLevel   = fs.String("log-level", "warn", "log level: error, warn, info or debug")
		debug      = fs.Bool("d", false, "debug trace (same as -log-level debug)")
		color      = fs.String("color", "auto", "colorize diagnostics: auto, always or never")
	)
	fs.BoolVar(debug, "debug", false, "debug trace (same as -d)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: sinkflow [flags] <file> [-d|--debug]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	rest := fs.Args()
	if len(rest) == 2 && (rest[1] == "-d" || rest[1] == "--debug") {
		*debug = true
		rest = rest[:1]
	}
	if len(rest) != 1 {
		fmt.Fprintln(stderr, "You need to specify source file")
		fs.Usage()
		return exitUsage
	}
	path := rest[0]

	opts := analysis.DefaultOptions()
	if *configPath != "" {
		var err error
		if opts, err = analysis.LoadOptionsFile(*configPath); err != nil {
			fmt.Fprintf(stderr, "invalid config: %v\n", err)
			return exitUsage
		}
	}
	// explicit flags win over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "order":
			opts.Order = *order
		case "backend":
			opts.Backend = *backend
		case "qualified":
			opts.QualifiedAtoms = *qualified
		case "strict":
			opts.StrictLex = *strict
		case "workers":
			opts.Workers = *workers
		case "log-level":
			opts.LogLevel = *logLevel
		}
	})
	if *debug {
		opts.LogLevel = "debug"
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid options: %v\n", err)
		return exitUsage
	}
	opts.Logger = analysis.NewLogger(analysis.ParseLogLevel(opts.LogLevel), stderr, opts.LogTimeFormat)

	outFormat, err := playground.ParseFormat(*format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	paint, err := newPainter(*color, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stderr, "The file could not be read:")
		fmt.Fprintln(stderr, err)
		return exitFile
	}

	res, err := analysis.Analyze(context.Background(), string(src), opts)
	if err != nil {
		fmt.Fprint(stderr, paint.red(playground.FormatAnalysisError(err, string(src))))
		var panicErr *analysis.SolverPanicError
		if errors.As(err, &panicErr) {
			_, _ = stderr.Write(panicErr.Stack)
		}
		return exitCode(err)
	}

	out, err := playground.Render(res, outFormat)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitInternal
	}
	fmt.Fprint(stdout, out)
	if outFormat != playground.Schema {
		fmt.Fprintln(stdout)
	}
	return exitOK
}

func exitCode(err error) int {
	var lexErr *sinkflow.LexError
	var parseErr *sinkflow.ParseError
	switch {
	case errors.As(err, &lexErr):
		return exitLex
	case errors.As(err, &parseErr):
		return exitParse
	default:
		return exitInternal
	}
}

type painter struct{ on bool }

func newPainter(mode string, w io.Writer) (painter, error) {
	switch mode {
	case "always":
		return painter{on: true}, nil
	case "never":
		return painter{}, nil
	case "auto":
	default:
		return painter{}, fmt.Errorf("unknown color mode %q (valid: auto, always, never)", mode)
	}
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return painter{}, nil
	}
	return painter{on: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())}, nil
}

func (p painter) wrap(code, s string) string {
	if !p.on {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func (p painter) red(s string) string { return p.wrap("31", s) }
