package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/alias"
	"github.com/raphi011/gitnav/internal/cli"
	"github.com/raphi011/gitnav/internal/cmd"
	"github.com/raphi011/gitnav/internal/config"
	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/history"
	"github.com/raphi011/gitnav/internal/hooks"
	"github.com/raphi011/gitnav/internal/log"
	"github.com/raphi011/gitnav/internal/nav"
)

// Command group IDs for organizing help output
const (
	GroupNav    = "nav"
	GroupManage = "manage"
)

// app holds what the commands share during one run. The repository
// dependent fields are filled in by prepare.
type app struct {
	streams  cli.Streams
	runner   cmd.Runner
	checkGit func() error
	globals  cli.Globals

	git     *git.Git
	paths   nav.Paths
	aliases *alias.Store
	nav     *nav.Navigator
	hooks   *hooks.Manager
}

func newApp(s cli.Streams) *app {
	return &app{
		streams:  s,
		runner:   &cmd.ExecRunner{Stdout: s.Out, Stderr: s.Err},
		checkGit: git.CheckGit,
	}
}

// prepare sets up the run context and opens the repository state.
// record-jump runs inside git's post-checkout hook and skips everything
// that could print or touch the hook file. doctor reports that state
// instead of repairing it.
func (a *app) prepare(c *cobra.Command) error {
	if err := a.checkGit(); err != nil {
		return err
	}

	ctx := cli.Prepare(c.Context(), a.streams, a.globals)
	cfg := config.FromContext(ctx)

	a.git = git.New(a.runner, "")
	paths, err := nav.ResolvePaths(ctx, a.git)
	if err != nil {
		return err
	}
	a.paths = paths
	ctx = nav.WithPaths(ctx, paths)

	hist, err := history.Load(paths.HistoryFile, cfg.MaxHistory)
	if err != nil {
		return err
	}
	a.aliases = alias.NewStore(git.NewConfig(a.git))
	a.nav = nav.New(a.git, a.aliases, hist, cfg.RootRef)
	a.hooks = hooks.NewManager(paths.HookFile)

	if c.Name() == recordJumpName || c.Name() == doctorName {
		c.SetContext(ctx)
		return nil
	}

	if _, err := a.aliases.Migrate(ctx, paths.LegacyAliasFile); err != nil {
		return err
	}
	if c.Name() != hookName {
		// A broken hook only costs history entries.
		if _, err := a.hooks.Ensure(ctx); err != nil {
			log.FromContext(ctx).Warnf("post-checkout hook: %v", err)
		}
	}

	c.SetContext(ctx)
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	var (
		merge       bool
		interactive bool
	)

	root := &cobra.Command{
		Use:   "git-nav [flags] <destination>",
		Short: "Jump between git branches",
		Long: `git-nav checks out branches by name, alias, history position or relation.

A destination is one of:
  -        the branch you were on before the last checkout
  ..       the nearest parent branch that is not on the root branch
  N        the N-th entry of "git nav history" (1 = most recent)
  <alias>  a name set with "git nav alias"
  <ref>    anything git checkout accepts

Every checkout, including plain "git checkout", is recorded by a
post-checkout hook that git-nav installs on first use.`,
		Example: `  git nav feature/login   # check out a branch
  git nav -               # go back
  git nav ..              # go to the parent branch
  git nav 3               # third entry of the history
  git nav -m main         # carry local changes over
  git nav -i              # pick from history, aliases and branches`,
		Args: cli.Args(cobra.MaximumNArgs(1)),
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			// Skip repository setup for completion and help commands
			if c.Name() == "completion" || c.Name() == cobra.ShellCompRequestCmd || c.Name() == "help" {
				return nil
			}
			return a.prepare(c)
		},
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()

			var dest string
			switch {
			case interactive && len(args) > 0:
				return cli.Usagef("--interactive does not take a destination")
			case interactive:
				picked, err := a.pick(ctx)
				if err != nil {
					return err
				}
				dest = picked
			case len(args) == 0:
				return cli.Usagef("missing destination")
			default:
				dest = args[0]
			}

			_, err := a.nav.Go(ctx, dest, nav.Options{Merge: merge})
			return err
		},
	}
	cli.NewRoot(root, &a.globals)

	root.Flags().BoolVarP(&merge, "merge", "m", false, "Carry local changes over to the destination (git checkout -m)")
	root.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick the destination interactively")
	root.ValidArgsFunction = a.completeDestination

	root.AddGroup(
		&cobra.Group{ID: GroupNav, Title: "Navigation Commands:"},
		&cobra.Group{ID: GroupManage, Title: "Management Commands:"},
	)

	root.AddCommand(newHistoryCmd(a))
	root.AddCommand(newResolveCmd(a))
	root.AddCommand(newAliasCmd(a))
	root.AddCommand(newAliasesCmd(a))
	root.AddCommand(newHookCmd(a))
	root.AddCommand(newDoctorCmd(a))
	root.AddCommand(newRecordJumpCmd(a))

	return root
}
