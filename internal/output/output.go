// Package output provides context-aware output for the git-nav tools.
// Stdout is used for primary data (resolved refs, history, alias tables,
// lookup results). Stderr (via the log package) is used for diagnostics.
//
// Styled text is downsampled to what the destination supports, so ANSI
// sequences never end up in pipes or command substitutions.
package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
type Printer struct {
	w  io.Writer
	cw *colorprofile.Writer
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w, cw: colorprofile.NewWriter(w, os.Environ())}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.cw, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.cw, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.cw, a...)
}

// Writer returns the underlying writer, bypassing color handling.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// IsTerminal reports whether styled output reaches a terminal.
func (p *Printer) IsTerminal() bool {
	return p.cw.Profile != colorprofile.NoTTY
}
