package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/cli"
	"github.com/raphi011/gitnav/internal/config"
	"github.com/raphi011/gitnav/internal/log"
	"github.com/raphi011/gitnav/internal/lookup"
	"github.com/raphi011/gitnav/internal/output"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

type app struct {
	streams cli.Streams
	globals cli.Globals
}

func newApp(s cli.Streams) *app {
	return &app{streams: s}
}

func newRootCmd(a *app) *cobra.Command {
	var (
		fuzzy      bool
		first      bool
		copyPath   bool
		maxResults int
		noIgnore   bool
	)

	root := &cobra.Command{
		Use:   "lookup [flags] <pattern> [dir]",
		Short: "Find files by glob, name or fuzzy match",
		Long: `lookup searches dir (default: the current directory) for files.

  - patterns with *, ?, [ or { are doublestar globs ("**" spans directories),
    matched against paths relative to dir; a glob without "/" matches file
    names at any depth
  - other patterns match file names by substring, ignoring case unless the
    pattern has an upper case letter
  - --fuzzy ranks all paths by fuzzy score

Directories matching the [lookup] ignore patterns in the config file are
skipped. Exits 1 when nothing matches.`,
		Example: `  lookup '*.go'                 # all Go files
  lookup 'internal/**/*_test.go'
  lookup config                 # names containing "config"
  lookup --fuzzy navgo          # fuzzy ranked
  vim $(lookup --first nav.go)  # open the best hit`,
		Args: cli.Args(cobra.RangeArgs(1, 2)),
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if c.Name() == "completion" || c.Name() == cobra.ShellCompRequestCmd || c.Name() == "help" {
				return nil
			}
			c.SetContext(cli.Prepare(c.Context(), a.streams, a.globals))
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			cfg := config.FromContext(ctx)
			pattern, dir := args[0], "."
			if len(args) == 2 {
				dir = args[1]
			}

			info, err := os.Stat(dir)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			opts := lookup.Options{
				Ignore:     cfg.Lookup.Ignore,
				MaxResults: cfg.Lookup.MaxResults,
				Fuzzy:      fuzzy,
			}
			if noIgnore {
				opts.Ignore = nil
			}
			if c.Flags().Changed("max") {
				opts.MaxResults = maxResults
			}
			if first {
				opts.MaxResults = 1
			}

			matches, err := lookup.Find(ctx, os.DirFS(dir), pattern, opts)
			if errors.Is(err, lookup.ErrNoMatch) {
				return fmt.Errorf("no files match %q in %s", pattern, dir)
			}
			if err != nil {
				return err
			}

			out := output.FromContext(ctx)
			for _, m := range matches {
				out.Println(displayPath(dir, m.Path))
			}

			if copyPath {
				if err := copyToClipboard(displayPath(dir, matches[0].Path)); err != nil {
					log.FromContext(ctx).Warnf("failed to copy to clipboard: %v", err)
				}
			}
			return nil
		},
	}
	cli.NewRoot(root, &a.globals)

	root.Flags().BoolVarP(&fuzzy, "fuzzy", "f", false, "Rank all paths by fuzzy score")
	root.Flags().BoolVar(&first, "first", false, "Print only the best match")
	root.Flags().BoolVar(&copyPath, "copy", false, "Copy the best match to the clipboard")
	root.Flags().IntVar(&maxResults, "max", 0, "Maximum number of results, 0 for unlimited (default from config)")
	root.Flags().BoolVar(&noIgnore, "no-ignore", false, "Do not skip ignored directories")

	return root
}

// displayPath turns a match back into a path usable from the working
// directory.
func displayPath(dir, rel string) string {
	if dir == "." {
		return filepath.FromSlash(rel)
	}
	return filepath.Join(dir, filepath.FromSlash(rel))
}
