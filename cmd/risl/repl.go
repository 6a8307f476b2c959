package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"risl/interpreter-go/pkg/driver"
	"risl/interpreter-go/pkg/interpreter"
	"risl/interpreter-go/pkg/parser"
)

const (
	promptMain     = "risl> "
	promptCont     = "  ... "
	defaultHistory = ".risl_history"
)

const replHelp = `Commands:
  :help         show this message
  :load <file>  run a file in this session
  :quit         leave the REPL (also :exit or Ctrl+D)
`

// lineEditor is the part of liner.State the REPL loop uses.
type lineEditor interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type repl struct {
	session *interpreter.Interpreter
	editor  lineEditor
	out     io.Writer
	report  *reporter
}

// runREPL drives an interactive liner session and persists its history.
func runREPL(session *interpreter.Interpreter, cfg *driver.Config, out io.Writer, report *reporter) int {
	histPath := cfg.HistoryFile
	if histPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, defaultHistory)
		}
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	r := &repl{session: session, editor: ln, out: out, report: report}
	r.loop()

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return exitOK
}

func (r *repl) loop() {
	for {
		code, ok := r.readFragment()
		if !ok {
			fmt.Fprintln(r.out)
			return
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		r.editor.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if r.command(trimmed) {
				return
			}
			continue
		}
		r.eval(code)
	}
}

// readFragment reads lines until the buffer parses or fails for a reason
// more input cannot fix. It returns false at end of input.
func (r *repl) readFragment() (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := r.editor.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input.
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, diags := parser.ParseProgram(src); parser.IsIncomplete(diags) {
			continue
		}
		return src, true
	}
}

func (r *repl) eval(code string) {
	outcome := r.session.Interpret(code)
	switch {
	case outcome.Err != nil:
		r.report.errorf("%v", outcome.Err)
	case len(outcome.Diagnostics) > 0:
		r.report.diagnostics("", outcome.Diagnostics)
	case outcome.Value != nil:
		fmt.Fprintln(r.out, interpreter.Stringify(outcome.Value))
	}
}

// command handles a ':' command and reports whether the REPL should exit.
func (r *repl) command(line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprint(r.out, replHelp)
	case ":load":
		if len(fields) != 2 {
			fmt.Fprintln(r.out, "usage: :load <file>")
			return false
		}
		source, err := driver.LoadSource(fields[1])
		if err != nil {
			r.report.errorf("%v", err)
			return false
		}
		r.eval(source)
	default:
		fmt.Fprintf(r.out, "unknown command %s; type :help for help\n", fields[0])
	}
	return false
}
