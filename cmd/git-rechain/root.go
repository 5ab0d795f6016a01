package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/cli"
	"github.com/raphi011/gitnav/internal/cmd"
	"github.com/raphi011/gitnav/internal/config"
	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/output"
	"github.com/raphi011/gitnav/internal/rechain"
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
		base   string
		dryRun bool
	)

	root := &cobra.Command{
		Use:   "git-rechain [flags] <branch>...",
		Short: "Rebase a stack of dependent branches",
		Long: `git-rechain rebases a stack of branches, bottom first. The first branch
moves onto --base, every following branch onto the rebased branch before it.

All branch tips are recorded before anything is rebased. If a rebase
stops on a conflict, the remaining commands are printed so the chain can
be finished by hand.`,
		Example: `  git rechain feature-a feature-b feature-c
  git rechain --base develop api ui
  git rechain --dry-run a b     # print the rebase commands only`,
		Args: cli.Args(cobra.MinimumNArgs(1)),
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
			if base == "" {
				base = config.FromContext(ctx).RootRef
			}

			r := rechain.New(git.New(a.runner, ""))
			plan, err := r.Plan(ctx, base, args)
			if err != nil {
				return err
			}

			if dryRun {
				out := output.FromContext(ctx)
				for _, step := range plan.Steps {
					out.Println(step.Command())
				}
				return nil
			}
			return r.Run(ctx, plan)
		},
	}
	cli.NewRoot(root, &a.globals)

	root.Flags().StringVar(&base, "base", "", "Branch the first branch is rebased onto (default: root_ref from config)")
	root.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the rebase commands without running them")

	return root
}
