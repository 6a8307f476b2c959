package main

import (
	"fmt"
	"io"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
)

const optString = "hivstCc:"

// options is the parsed command line.
type options struct {
	help        bool
	version     bool
	interactive bool
	stdin       bool
	tokens      bool
	check       bool
	command     *string
	file        string
	checkFiles  []string
	scriptArgs  []string
}

// usageError marks a bad command line; it maps to the usage exit status.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// parseArgs reads argv (argv[0] is the program name). Option parsing stops
// at the first operand; with -c or -s every operand goes to the script.
func parseArgs(argv []string) (*options, error) {
	opts, optind, err := getopt.Getopts(argv, optString)
	if err != nil {
		return nil, &usageError{msg: err.Error()}
	}
	o := &options{}
	for _, opt := range opts {
		switch opt.Option {
		case 'h':
			o.help = true
		case 'v':
			o.version = true
		case 'i':
			o.interactive = true
		case 's':
			o.stdin = true
		case 't':
			o.tokens = true
		case 'C':
			o.check = true
		case 'c':
			command := opt.Value
			o.command = &command
		}
	}
	if o.help {
		return o, nil
	}

	rest := argv[optind:]
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}

	if o.check {
		var conflicts []string
		for _, c := range []struct {
			set  bool
			name string
		}{
			{o.command != nil, "-c <command>"},
			{o.stdin, "-s"},
			{o.interactive, "-i"},
			{o.tokens, "-t"},
		} {
			if c.set {
				conflicts = append(conflicts, c.name)
			}
		}
		if len(conflicts) > 0 {
			return nil, usagef("conflicting arguments: -C, %s", strings.Join(conflicts, ", "))
		}
		if len(rest) == 0 && !o.version {
			return nil, usagef("-C needs at least one <file>")
		}
		o.checkFiles = rest
		return o, nil
	}

	if o.command != nil && o.stdin {
		return nil, usagef("conflicting arguments: -c <command>, -s")
	}
	if o.command == nil && !o.stdin && len(rest) > 0 {
		o.file, rest = rest[0], rest[1:]
	}
	o.scriptArgs = rest
	if o.tokens && !o.hasInput() {
		return nil, usagef("-t needs an input: -c <command>, <file> or -s")
	}
	return o, nil
}

func (o *options) hasInput() bool {
	return o.command != nil || o.file != "" || o.stdin
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  risl [-hivt] [ -c <command> | <file> | -s ] [ [--] <arguments>... ]")
	fmt.Fprintln(w, "  risl -C <file>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -h            show this help")
	fmt.Fprintln(w, "  -v            print the version")
	fmt.Fprintln(w, "  -i            start the REPL after running the input")
	fmt.Fprintln(w, "  -s            read the program from standard input")
	fmt.Fprintln(w, "  -c <command>  run <command> as the program")
	fmt.Fprintln(w, "  -t            print the tokens of the input instead of running it")
	fmt.Fprintln(w, "  -C            check every <file> without running them")
}
