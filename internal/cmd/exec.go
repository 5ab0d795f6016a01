package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/raphi011/gitnav/internal/log"
)

// Mode selects what happens with a command's output.
type Mode int

const (
	// Capture returns stdout as a single string.
	Capture Mode = iota
	// Lines returns stdout split into lines, without the trailing empty line.
	Lines
	// Stream connects stdout and stderr to the console.
	Stream
)

// Options control a single command execution.
type Options struct {
	Dir            string
	Mode           Mode
	AllowExitCodes []int
	Quiet          bool
}

// Result holds the output of a finished command.
type Result struct {
	Output   string
	Lines    []string
	ExitCode int
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, opts Options, name string, args ...string) (*Result, error)
}

// ExitError is returned when a command exits with a code the caller did not allow.
type ExitError struct {
	Args   []string
	Code   int
	Stderr string
	Silent bool
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s failed with exit code %d", strings.Join(e.Args, " "), e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// IsSilent reports whether err should terminate the program without a message.
func IsSilent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Silent
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner that streams to the process's stdout/stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes name with args according to opts.
func (r *ExecRunner) Run(ctx context.Context, opts Options, name string, args ...string) (*Result, error) {
	done := log.FromContext(ctx).Command(opts.Dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = opts.Dir

	var stdout, stderr bytes.Buffer
	if opts.Mode == Stream {
		c.Stdin = os.Stdin
		c.Stdout = r.Stdout
		c.Stderr = r.Stderr
	} else {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	err := c.Run()
	done(time.Since(start))

	res := &Result{}
	if opts.Mode != Stream {
		res.Output = stdout.String()
		if opts.Mode == Lines {
			res.Lines = SplitLines(res.Output)
		}
	}

	if err == nil {
		return res, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// Command could not be started at all.
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	res.ExitCode = exitErr.ExitCode()
	return Check(res, opts, strings.TrimSpace(stderr.String()), append([]string{name}, args...))
}

// Check applies the allowed exit codes of opts to a finished result.
// Runner implementations share it so fakes fail the same way real commands do.
func Check(res *Result, opts Options, stderr string, argv []string) (*Result, error) {
	if res.ExitCode == 0 || slices.Contains(opts.AllowExitCodes, res.ExitCode) {
		return res, nil
	}
	return nil, &ExitError{
		Args:   argv,
		Code:   res.ExitCode,
		Stderr: stderr,
		Silent: opts.Quiet,
	}
}

// SplitLines splits command output into lines, dropping the trailing newline.
func SplitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
