package source

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrFatal is the signal returned through the parser when a fatal
// diagnostic aborts a compilation. By the time a caller sees it, all
// diagnostics collected so far have been rendered.
var ErrFatal = errors.New("fatal compiler error")

type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
)

// Diagnostic is one compiler error message tied to a source position.
// Diagnostics with NoPosition render without source context.
type Diagnostic struct {
	Message  string
	Severity Severity
	Pos      Position
}

const (
	// DefaultMaxErrors is how many diagnostics are retained for
	// rendering. Errors past the limit are still counted.
	DefaultMaxErrors = 100

	lineNumWidth = 6
)

// Diagnostics accumulates compiler errors for one compilation.
// Diagnostics retained under the limit are rendered by Flush with
// source-line context and stay available to structured consumers
// through All; the total count keeps growing even after the retention
// limit is hit.
type Diagnostics struct {
	pending  []Diagnostic // retained but not yet rendered
	recorded []Diagnostic // every retained diagnostic, rendered or not
	total    int
	limit    int
	out      io.Writer
	buf      *Buffer
}

func NewDiagnostics(out io.Writer, buf *Buffer) *Diagnostics {
	return &Diagnostics{out: out, buf: buf, limit: DefaultMaxErrors}
}

// SetLimit overrides the retention limit. Values below one are ignored.
func (d *Diagnostics) SetLimit(n int) {
	if n > 0 {
		d.limit = n
	}
}

// Error records an ordinary error. Parsing continues after it.
func (d *Diagnostics) Error(message string, pos Position) {
	d.add(Diagnostic{Message: message, Severity: SeverityError, Pos: pos})
}

// Fatal records the error, renders everything collected so far and
// returns ErrFatal for the caller to propagate. Fatal errors indicate a
// bug in the compiler itself, not in the program being compiled.
func (d *Diagnostics) Fatal(message string, pos Position) error {
	d.add(Diagnostic{Message: message, Severity: SeverityFatal, Pos: pos})
	d.Flush()
	d.Summary()
	return ErrFatal
}

// Check returns nil when cond holds, otherwise a fatal error.
func (d *Diagnostics) Check(cond bool, message string, pos Position) error {
	if cond {
		return nil
	}
	return d.Fatal("assertion failed: "+message, pos)
}

func (d *Diagnostics) add(diag Diagnostic) {
	if d.total < d.limit {
		d.pending = append(d.pending, diag)
		d.recorded = append(d.recorded, diag)
	}
	d.total++
}

// Count reports the true number of errors, including any past the
// retention limit.
func (d *Diagnostics) Count() int {
	return d.total
}

func (d *Diagnostics) HadErrors() bool {
	return d.total > 0
}

// All returns every retained diagnostic sorted by position, whether or
// not it has been rendered yet. Diagnostics at the same position keep
// their arrival order.
func (d *Diagnostics) All() []Diagnostic {
	return sortedByPosition(d.recorded)
}

func sortedByPosition(diags []Diagnostic) []Diagnostic {
	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pos.Less(sorted[j].Pos)
	})
	return sorted
}

// Flush renders the diagnostics collected since the last Flush in
// position order. Each source line is echoed once, right-justified line
// number first, with a caret marking the column of every error on it.
func (d *Diagnostics) Flush() {
	prevLine := -1
	for _, e := range sortedByPosition(d.pending) {
		if e.Pos.Valid() {
			if e.Pos.Line != prevLine {
				fmt.Fprintf(d.out, "%*d %s\n", lineNumWidth, e.Pos.Line, d.line(e.Pos.Line))
				prevLine = e.Pos.Line
			}
			indent := e.Pos.Column - 1
			if indent < 0 {
				indent = 0
			}
			fmt.Fprintf(d.out, "%s %s^ %s\n",
				strings.Repeat("*", lineNumWidth), strings.Repeat(" ", indent), e.Message)
		} else {
			fmt.Fprintf(d.out, "%s %s\n", strings.Repeat("*", lineNumWidth), e.Message)
		}
	}
	d.pending = d.pending[:0]
}

// Summary prints the final error count sentence.
func (d *Diagnostics) Summary() {
	switch d.total {
	case 0:
		fmt.Fprintln(d.out, "No errors detected.")
	case 1:
		fmt.Fprintln(d.out, "1 error detected.")
	default:
		fmt.Fprintf(d.out, "%d errors detected.\n", d.total)
	}
}

func (d *Diagnostics) line(n int) string {
	if d.buf == nil {
		return ""
	}
	return d.buf.Line(n)
}
