package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/driver"
)

// reporter prints diagnostics and host errors, coloured per the config.
type reporter struct {
	w        io.Writer
	location *color.Color
	problem  *color.Color
	good     *color.Color
}

func newReporter(w io.Writer, mode driver.ColorMode) *reporter {
	r := &reporter{
		w:        w,
		location: color.New(color.FgCyan),
		problem:  color.New(color.FgRed, color.Bold),
		good:     color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{r.location, r.problem, r.good} {
		switch mode {
		case driver.ColorAlways:
			c.EnableColor()
		case driver.ColorNever:
			c.DisableColor()
		}
	}
	return r
}

// diagnostics writes one line per diagnostic, prefixed with name when set.
func (r *reporter) diagnostics(name string, diags diag.List) {
	for _, d := range diags {
		if name != "" {
			fmt.Fprintf(r.w, "%s ", name)
		}
		r.location.Fprintf(r.w, "[line %d:%d]", d.Line, d.Column)
		fmt.Fprint(r.w, " ")
		r.problem.Fprintf(r.w, "%s error:", d.Phase)
		fmt.Fprintf(r.w, " %s\n", d.Message)
	}
}

func (r *reporter) errorf(format string, args ...any) {
	r.problem.Fprint(r.w, "risl:")
	fmt.Fprintf(r.w, " "+format+"\n", args...)
}

func (r *reporter) ok(name string) {
	fmt.Fprintf(r.w, "%s ", name)
	r.good.Fprintln(r.w, "ok")
}

// statusFor maps a failed run to its exit status.
func statusFor(diags diag.List) int {
	if diags.HasPhase(diag.PhaseRuntime) {
		return exitSoftware
	}
	return exitDataErr
}
