package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/cli"
	"github.com/raphi011/gitnav/internal/log"
	"github.com/raphi011/gitnav/internal/output"
	"github.com/raphi011/gitnav/internal/ui/static"
)

func newHistoryCmd(a *app) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "List recently visited branches",
		GroupID: GroupNav,
		Args:    cli.Args(cobra.NoArgs),
		Long: `List the jump history, most recent first.

The numbers are the destinations accepted by "git nav N". Entry 1 is
where "git nav -" goes.`,
		Example: `  git nav history          # numbered list
  git nav 2                # jump to the second entry
  git nav history --clear  # forget everything`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			h := a.nav.History()

			if clear {
				h.Clear()
				if err := h.Save(); err != nil {
					return err
				}
				l.Printf("Cleared jump history\n")
				return nil
			}

			if h.Len() == 0 {
				l.Printf("No jump history yet\n")
				return nil
			}
			output.FromContext(ctx).Print(static.RenderTable(static.HistoryHeaders, static.HistoryRows(h.Entries()), 0))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Remove all history entries")

	return cmd
}
