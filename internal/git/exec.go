package git

import (
	"context"
	"strings"

	"github.com/raphi011/gitnav/internal/cmd"
)

// Git runs git commands in one repository directory.
type Git struct {
	runner cmd.Runner
	dir    string
}

// New returns a Git bound to dir. An empty dir means the current directory.
func New(runner cmd.Runner, dir string) *Git {
	return &Git{runner: runner, dir: dir}
}

// Dir returns the directory commands run in.
func (g *Git) Dir() string {
	return g.dir
}

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// run executes git with opts and returns the raw result.
func (g *Git) run(ctx context.Context, opts cmd.Options, args ...string) (*cmd.Result, error) {
	return g.runner.Run(ctx, opts, "git", gitArgs(g.dir, args)...)
}

// output executes git and returns trimmed stdout.
func (g *Git) output(ctx context.Context, args ...string) (string, error) {
	res, err := g.run(ctx, cmd.Options{}, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Output), nil
}

// lines executes git and returns stdout split into lines.
func (g *Git) lines(ctx context.Context, args ...string) ([]string, error) {
	res, err := g.run(ctx, cmd.Options{Mode: cmd.Lines}, args...)
	if err != nil {
		return nil, err
	}
	return res.Lines, nil
}

// stream executes git with output going to the console. Failures are
// silent because git has already printed its own message.
func (g *Git) stream(ctx context.Context, args ...string) error {
	_, err := g.run(ctx, cmd.Options{Mode: cmd.Stream, Quiet: true}, args...)
	return err
}
