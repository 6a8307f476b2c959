package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"risl/interpreter-go/pkg/driver"
	"risl/interpreter-go/pkg/interpreter"
	"risl/interpreter-go/pkg/lexer"
)

const version = "0.1.0"

// Exit statuses follow sysexits.h.
const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitNoInput  = 66
	exitSoftware = 70
	exitConfig   = 78
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args, env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, dir: "."})
	stop()
	os.Exit(code)
}

// env carries the process streams so tests can substitute them.
type env struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	dir            string
	interactive    func(*interpreter.Interpreter, *driver.Config, io.Writer, *reporter) int
}

func run(ctx context.Context, argv []string, e env) int {
	opts, err := parseArgs(argv)
	if err != nil {
		fmt.Fprintf(e.stderr, "risl: %v\n", err)
		printUsage(e.stderr)
		return exitUsage
	}
	if opts.help {
		printUsage(e.stdout)
		return exitOK
	}
	if opts.version {
		fmt.Fprintf(e.stdout, "risl %s\n", version)
		return exitOK
	}

	cfg, err := driver.DiscoverConfig(e.dir)
	if err != nil {
		fmt.Fprintf(e.stderr, "risl: %v\n", err)
		return exitConfig
	}
	logger := cfg.Logger(e.stderr)
	report := newReporter(e.stderr, cfg.Color)

	if opts.check {
		return checkFiles(ctx, opts.checkFiles, cfg, report, e.stdout)
	}

	source, name, err := readInput(opts, e.stdin)
	if err != nil {
		report.errorf("%v", err)
		return exitNoInput
	}
	if opts.tokens {
		return dumpTokens(e.stdout, report, name, source)
	}

	sessionOpts := append(cfg.InterpreterOptions(),
		interpreter.WithOutput(e.stdout),
		interpreter.WithLogger(logger),
		interpreter.WithArgs(opts.scriptArgs),
	)
	session := interpreter.New(sessionOpts...)
	defer session.Close()

	if err := driver.RunPrelude(session, cfg.Prelude); err != nil {
		return reportPrelude(report, err)
	}

	status := exitOK
	if opts.hasInput() {
		outcome := session.Interpret(source)
		switch {
		case outcome.Err != nil:
			report.errorf("%v", outcome.Err)
			status = exitSoftware
		case len(outcome.Diagnostics) > 0:
			report.diagnostics("", outcome.Diagnostics)
			status = statusFor(outcome.Diagnostics)
		}
		if !opts.interactive {
			return status
		}
	}

	interactive := e.interactive
	if interactive == nil {
		interactive = runREPL
	}
	if code := interactive(session, cfg, e.stdout, report); code != exitOK {
		return code
	}
	return status
}

// readInput returns the program text and a name for it. Without an input it
// returns an empty source.
func readInput(opts *options, stdin io.Reader) (string, string, error) {
	switch {
	case opts.command != nil:
		return *opts.command, "<command>", nil
	case opts.stdin:
		source, err := driver.ReadSource(stdin, "<stdin>")
		return source, "<stdin>", err
	case opts.file != "":
		source, err := driver.LoadSource(opts.file)
		return source, opts.file, err
	}
	return "", "", nil
}

func dumpTokens(w io.Writer, report *reporter, name, source string) int {
	l := lexer.New(source)
	for tok := range l.All() {
		fmt.Fprintf(w, "%s\t%s\n", tok.Pos, tok)
	}
	if diags := l.Diagnostics(); len(diags) > 0 {
		report.diagnostics(name, diags)
		return exitDataErr
	}
	return exitOK
}

func checkFiles(ctx context.Context, paths []string, cfg *driver.Config, report *reporter, out io.Writer) int {
	checker := driver.Checker{Limit: cfg.CheckParallelism, Logger: cfg.Logger(report.w)}
	results, err := checker.Run(ctx, paths)
	if err != nil {
		report.errorf("%v", err)
		return exitSoftware
	}
	status := exitOK
	okReport := &reporter{w: out, good: report.good}
	for _, result := range results {
		switch {
		case result.Err != nil:
			report.errorf("%v", result.Err)
			status = exitNoInput
		case len(result.Diagnostics) > 0:
			report.diagnostics(result.Path, result.Diagnostics)
			if status == exitOK {
				status = exitDataErr
			}
		default:
			okReport.ok(result.Path)
		}
	}
	return status
}

func reportPrelude(report *reporter, err error) int {
	var perr *driver.PreludeError
	if !errors.As(err, &perr) {
		report.errorf("%v", err)
		return exitSoftware
	}
	switch {
	case len(perr.Diagnostics) > 0:
		report.errorf("prelude %s failed", perr.Path)
		report.diagnostics(perr.Path, perr.Diagnostics)
		return statusFor(perr.Diagnostics)
	case errors.Is(perr.Err, os.ErrNotExist):
		report.errorf("%v", perr)
		return exitNoInput
	default:
		report.errorf("%v", perr)
		return exitSoftware
	}
}
