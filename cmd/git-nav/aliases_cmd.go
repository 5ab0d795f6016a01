package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/cli"
	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/log"
	"github.com/raphi011/gitnav/internal/output"
	"github.com/raphi011/gitnav/internal/ui/static"
)

func newAliasesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "aliases",
		Short:   "List branch aliases",
		GroupID: GroupManage,
		Args:    cli.Args(cobra.NoArgs),
		Long: `List all aliases, repository aliases first.

When a name is defined in both scopes the repository alias is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			local, err := a.aliases.List(ctx, git.Local)
			if err != nil {
				return err
			}
			global, err := a.aliases.List(ctx, git.Global)
			if err != nil {
				return err
			}

			all := append(local, global...)
			if len(all) == 0 {
				log.FromContext(ctx).Printf("No aliases defined (add one with: git nav alias <name> <target>)\n")
				return nil
			}
			output.FromContext(ctx).Print(static.RenderTable(static.AliasHeaders, static.AliasRows(all), static.NoHighlight))
			return nil
		},
	}
}
