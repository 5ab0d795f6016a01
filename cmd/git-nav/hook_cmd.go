package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/cli"
	"github.com/raphi011/gitnav/internal/hooks"
	"github.com/raphi011/gitnav/internal/output"
)

const hookName = "hook"

func newHookCmd(a *app) *cobra.Command {
	var printScript bool

	cmd := &cobra.Command{
		Use:     hookName,
		Short:   "Show the state of the post-checkout hook",
		GroupID: GroupManage,
		Args:    cli.Args(cobra.NoArgs),
		Long: `Install or upgrade the post-checkout hook that records the jump history,
and report its state.

A hook that git-nav did not write is never modified. Use --print to get
the script and merge it into your own hook by hand.`,
		Example: `  git nav hook
  git nav hook --print >> .git/hooks/post-checkout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if printScript {
				out.Print(hooks.Script)
				return nil
			}

			before, err := a.hooks.Status()
			if err != nil {
				return err
			}
			if _, err := a.hooks.Ensure(ctx); err != nil {
				return err
			}
			out.Printf("%s: %s\n", a.hooks.Path(), describeHook(before))
			return nil
		},
	}

	cmd.Flags().BoolVar(&printScript, "print", false, "Print the hook script instead of installing it")

	return cmd
}

// describeHook reports what Ensure did for a hook found in state st.
func describeHook(st hooks.Status) string {
	switch st.State {
	case hooks.Missing:
		return fmt.Sprintf("installed (v%d)", hooks.CurrentVersion)
	case hooks.Current:
		return fmt.Sprintf("up to date (v%d)", hooks.CurrentVersion)
	case hooks.Outdated:
		return fmt.Sprintf("upgraded from v%d to v%d", st.Version, hooks.CurrentVersion)
	default:
		return "foreign, not managed by git-nav"
	}
}
