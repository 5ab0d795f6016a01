// Package cmdtest provides a scripted [cmd.Runner] for tests.
package cmdtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/raphi011/gitnav/internal/cmd"
)

// Response is the scripted outcome of one command.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Call captures a command that was executed.
type Call struct {
	Opts cmd.Options
	Argv []string
}

// String returns the argv joined by spaces.
func (c Call) String() string {
	return strings.Join(c.Argv, " ")
}

// Fake records commands and answers them from Responses or Handler.
// Commands with no scripted answer succeed with empty output.
type Fake struct {
	mu    sync.Mutex
	Calls []Call

	// Responses maps the space-joined argv to its outcome.
	Responses map[string]Response

	// Handler, if set, is consulted before Responses.
	Handler func(argv []string) (Response, bool)
}

// NewFake returns an empty fake.
func NewFake() *Fake {
	return &Fake{Responses: map[string]Response{}}
}

// On scripts the response for a command line.
func (f *Fake) On(cmdline string, resp Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Responses == nil {
		f.Responses = map[string]Response{}
	}
	f.Responses[cmdline] = resp
	return f
}

// Run records the command and returns the scripted result.
func (f *Fake) Run(ctx context.Context, opts cmd.Options, name string, args ...string) (*cmd.Result, error) {
	argv := append([]string{name}, args...)

	f.mu.Lock()
	f.Calls = append(f.Calls, Call{Opts: opts, Argv: argv})
	handler := f.Handler
	resp, ok := f.Responses[strings.Join(argv, " ")]
	f.mu.Unlock()

	if handler != nil {
		if r, handled := handler(argv); handled {
			resp, ok = r, true
		}
	}
	if !ok {
		resp = Response{}
	}

	res := &cmd.Result{ExitCode: resp.ExitCode}
	if opts.Mode != cmd.Stream {
		res.Output = resp.Stdout
		if opts.Mode == cmd.Lines {
			res.Lines = cmd.SplitLines(resp.Stdout)
		}
	}
	return cmd.Check(res, opts, strings.TrimSpace(resp.Stderr), argv)
}

// Commands returns every recorded command line.
func (f *Fake) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.String()
	}
	return out
}

// Ran reports whether the exact command line was executed.
func (f *Fake) Ran(cmdline string) bool {
	for _, c := range f.Commands() {
		if c == cmdline {
			return true
		}
	}
	return false
}

// Find returns the first recorded call whose command line starts with prefix.
func (f *Fake) Find(prefix string) (Call, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if strings.HasPrefix(c.String(), prefix) {
			return c, nil
		}
	}
	return Call{}, fmt.Errorf("no call with prefix %q in %d calls", prefix, len(f.Calls))
}

// Reset clears recorded calls.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = nil
}
