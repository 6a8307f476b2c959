package driver

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/interpreter"
)

// LoadSource reads the program stored at path.
func LoadSource(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer file.Close()
	return ReadSource(file, path)
}

// ReadSource reads a whole program from r. name only labels errors.
func ReadSource(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("loader: read %s: %w", name, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("loader: %s is not valid UTF-8", name)
	}
	return string(data), nil
}

// PreludeError reports a prelude script that failed to load or run.
type PreludeError struct {
	Path        string
	Diagnostics diag.List
	Err         error
}

func (e *PreludeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("loader: prelude %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("loader: prelude %s:\n%s", e.Path, e.Diagnostics.Error())
}

func (e *PreludeError) Unwrap() error {
	return e.Err
}

// RunPrelude runs each script into session in order and stops at the first
// one that fails.
func RunPrelude(session *interpreter.Interpreter, paths []string) error {
	for _, path := range paths {
		source, err := LoadSource(path)
		if err != nil {
			return &PreludeError{Path: path, Err: err}
		}
		outcome := session.Interpret(source)
		if outcome.Err != nil || len(outcome.Diagnostics) > 0 {
			return &PreludeError{Path: path, Diagnostics: outcome.Diagnostics, Err: outcome.Err}
		}
	}
	return nil
}
