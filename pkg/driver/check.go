package driver

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/parser"
	"risl/interpreter-go/pkg/resolver"
)

// CheckResult is the static verdict for one file. Err is set when the file
// could not be read; Diagnostics holds lex, parse and resolve problems.
type CheckResult struct {
	Path        string
	Diagnostics diag.List
	Err         error
}

// OK reports whether the file was read and has no diagnostics.
func (r CheckResult) OK() bool {
	return r.Err == nil && len(r.Diagnostics) == 0
}

// CheckSource lexes, parses and resolves source without running it.
func CheckSource(source string) diag.List {
	program, diags := parser.ParseProgram(source)
	if len(diags) > 0 {
		return diags
	}
	_, diags = resolver.Resolve(program)
	return diags
}

// Checker runs static checks over many files at once.
type Checker struct {
	Limit  int
	Logger *slog.Logger
}

// CheckFiles checks paths with at most limit files in flight and returns one
// result per path, in input order. Unreadable files are reported in their
// result rather than failing the batch; only cancellation of ctx does that.
func CheckFiles(ctx context.Context, paths []string, limit int) ([]CheckResult, error) {
	return Checker{Limit: limit}.Run(ctx, paths)
}

// Run is CheckFiles with the checker's settings.
func (c Checker) Run(ctx context.Context, paths []string) ([]CheckResult, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	results := make([]CheckResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if c.Limit > 0 {
		g.SetLimit(c.Limit)
	}
	for idx, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			result := CheckResult{Path: path}
			source, err := LoadSource(path)
			if err != nil {
				result.Err = err
			} else {
				result.Diagnostics = CheckSource(source)
			}
			results[idx] = result
			logger.Debug("file checked",
				slog.String("path", path),
				slog.Int("diagnostics", len(result.Diagnostics)),
				slog.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
