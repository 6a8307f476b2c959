package interpreter

import (
	"io"
	"log/slog"
)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets where print writes. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.out = w
		}
	}
}

// WithLogger sets the logger for pipeline events. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMaxCallDepth limits how deeply calls may nest before a StackOverflow
// error. Values below 1 keep the default.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxCallDepth = depth
		}
	}
}

// WithDebug makes internal inconsistencies panic instead of surfacing as
// Internal runtime errors.
func WithDebug(debug bool) Option {
	return func(i *Interpreter) {
		i.debug = debug
	}
}

// WithArgs sets the script arguments visible through arg and arg_count.
func WithArgs(args []string) Option {
	return func(i *Interpreter) {
		i.args = append([]string(nil), args...)
	}
}
