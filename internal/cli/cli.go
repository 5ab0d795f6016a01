// Package cli holds the bootstrap shared by the git-nav, git-port,
// git-rechain and lookup commands: global flags, per-run context setup
// and the mapping from errors to exit status.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/cmd"
	"github.com/raphi011/gitnav/internal/config"
	"github.com/raphi011/gitnav/internal/log"
	"github.com/raphi011/gitnav/internal/output"
	"github.com/raphi011/gitnav/internal/ui/styles"
)

// Version information - set by goreleaser
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// ErrCancelled ends the program with status 1 and no message, e.g. when
// an interactive prompt is dismissed.
var ErrCancelled = errors.New("cancelled")

// UsageError marks errors caused by wrong arguments or flags.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Usagef returns a formatted *UsageError.
func Usagef(format string, a ...any) error {
	return &UsageError{Err: fmt.Errorf(format, a...)}
}

// Args wraps a cobra argument validator so its errors are usage errors.
func Args(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if err := fn(c, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// Streams are the standard streams a command talks to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStreams returns the process's standard streams.
func OSStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Interactive reports whether both stdin and stderr are terminals, which
// prompts need.
func (s Streams) Interactive() bool {
	return isTerminal(s.In) && isTerminal(s.Err)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Globals are the flags every command accepts.
type Globals struct {
	Verbose bool
	Quiet   bool
}

// Register adds the global flags to root.
func (g *Globals) Register(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "Show external commands being executed")
	root.PersistentFlags().BoolVarP(&g.Quiet, "quiet", "q", false, "Suppress informational output")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// Prepare attaches the logger, printer and config to ctx and applies the
// configured theme. An invalid config file is reported and the defaults
// are used.
func Prepare(ctx context.Context, s Streams, g Globals) context.Context {
	logger := log.New(s.Err, g.Verbose, g.Quiet)
	ctx = log.WithLogger(ctx, logger)
	ctx = output.WithPrinter(ctx, s.Out)

	cfg, err := config.Load()
	if err != nil {
		logger.Warnf("%v", err)
	}
	ctx = config.WithConfig(ctx, &cfg)

	if err := styles.Init(cfg.Theme, s.Out); err != nil {
		logger.Warnf("%v", err)
	}
	return ctx
}

// NewRoot applies the settings shared by every root command.
func NewRoot(root *cobra.Command, g *Globals) *cobra.Command {
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.SuggestionsMinimumDistance = 2
	root.Version = VersionString(root.Name())
	root.SetVersionTemplate("{{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	g.Register(root)
	return root
}

// VersionString returns the version line for the named program.
func VersionString(name string) string {
	return fmt.Sprintf("%s %s (%s, %s, %s)", name, Version, Commit[:min(7, len(Commit))], Date, runtime.Version())
}

// Report prints err for the named program and returns the exit status.
// Silent errors print nothing.
func Report(w io.Writer, name string, err error) int {
	if err == nil {
		return 0
	}
	if cmd.IsSilent(err) || errors.Is(err, ErrCancelled) {
		return 1
	}
	fmt.Fprintf(w, "%s: %v\n", name, err)
	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintf(w, "Run '%s -h' for help\n", name)
	}
	return 1
}

// Main runs root with signal handling and exits the process.
func Main(root *cobra.Command) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	cancel()
	os.Exit(Report(os.Stderr, root.Name(), err))
}
