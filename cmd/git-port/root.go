package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/cli"
	"github.com/raphi011/gitnav/internal/cmd"
	"github.com/raphi011/gitnav/internal/config"
	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/log"
	"github.com/raphi011/gitnav/internal/output"
	"github.com/raphi011/gitnav/internal/port"
	"github.com/raphi011/gitnav/internal/ui/prompt"
	"github.com/raphi011/gitnav/internal/ui/static"
)

type app struct {
	streams  cli.Streams
	runner   cmd.Runner
	checkGit func() error
	globals  cli.Globals
}

func newApp(s cli.Streams) *app {
	return &app{
		streams:  s,
		runner:   &cmd.ExecRunner{Stdout: s.Out, Stderr: s.Err},
		checkGit: git.CheckGit,
	}
}

func newRootCmd(a *app) *cobra.Command {
	var (
		grep           string
		picks          []string
		dryRun         bool
		yes            bool
		noRecordOrigin bool
	)

	root := &cobra.Command{
		Use:   "git-port [flags] <source>",
		Short: "Cherry-pick the commits of another branch that are missing here",
		Long: `git-port lists the commits of <source> that the current branch does not
have yet, oldest first, and cherry-picks them.

Commits whose change already exists on the current branch (same patch,
different hash) are skipped. Narrow the selection with --grep and --pick.
On a conflict git's cherry-pick state is left in place; finish with
"git cherry-pick --continue" or "--abort".`,
		Example: `  git port feature              # everything missing from feature
  git port feature --dry-run    # show the plan only
  git port feature --grep fix   # commits whose subject matches "fix"
  git port feature --pick 1a2b --pick 3c4d`,
		Args: cli.Args(cobra.ExactArgs(1)),
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if c.Name() == "completion" || c.Name() == cobra.ShellCompRequestCmd || c.Name() == "help" {
				return nil
			}
			if err := a.checkGit(); err != nil {
				return err
			}
			c.SetContext(cli.Prepare(c.Context(), a.streams, a.globals))
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			source := args[0]

			sel := port.Selection{Picks: picks}
			if grep != "" {
				re, err := regexp.Compile(grep)
				if err != nil {
					return cli.Usagef("invalid --grep pattern: %v", err)
				}
				sel.Grep = re
			}

			p := port.New(git.New(a.runner, ""))
			plan, err := p.Plan(ctx, source, sel)
			if err != nil {
				return err
			}

			rows := make([][]string, len(plan.Commits))
			for i, commit := range plan.Commits {
				rows[i] = []string{commit.SHA, commit.Subject}
			}
			output.FromContext(ctx).Print(static.RenderTable([]string{"COMMIT", "SUBJECT"}, rows, static.NoHighlight))
			if plan.Applied > 0 {
				l.Printf("Skipping %d commit(s) already on the current branch\n", plan.Applied)
			}

			if dryRun {
				return nil
			}
			if !yes && a.streams.Interactive() {
				res, err := prompt.Confirm(fmt.Sprintf("Cherry-pick %d commit(s) from %s?", len(plan.Commits), source), true)
				if err != nil {
					return err
				}
				if !res.Confirmed {
					return cli.ErrCancelled
				}
			}

			recordOrigin := cfg.Port.RecordOrigin && !noRecordOrigin
			return p.Apply(ctx, plan, recordOrigin)
		},
	}
	cli.NewRoot(root, &a.globals)

	root.Flags().StringVar(&grep, "grep", "", "Only commits whose subject matches this regular expression")
	root.Flags().StringSliceVar(&picks, "pick", nil, "Only commits whose hash starts with this prefix (repeatable)")
	root.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the plan without cherry-picking")
	root.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	root.Flags().BoolVar(&noRecordOrigin, "no-record-origin", false, "Do not append \"cherry picked from\" lines (-x)")

	return root
}
