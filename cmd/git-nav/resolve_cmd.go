package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/cli"
	"github.com/raphi011/gitnav/internal/log"
	"github.com/raphi011/gitnav/internal/output"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func newResolveCmd(a *app) *cobra.Command {
	var copyRef bool

	cmd := &cobra.Command{
		Use:     "resolve <destination>",
		Short:   "Print the reference a destination points at",
		GroupID: GroupNav,
		Args:    cli.Args(cobra.ExactArgs(1)),
		Long: `Print the reference a destination points at without checking it out.

"-" shows the next "git nav -" target and leaves the history unchanged.`,
		Example: `  git nav resolve -              # where would "git nav -" go?
  git log $(git nav resolve ..)  # log of the parent branch
  git nav resolve --copy 2       # copy a history entry`,
		ValidArgsFunction: a.completeDestination,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ref, err := a.nav.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			if copyRef {
				if err := copyToClipboard(ref); err != nil {
					log.FromContext(ctx).Warnf("failed to copy to clipboard: %v", err)
				}
			}

			output.FromContext(ctx).Println(ref)
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyRef, "copy", false, "Copy the reference to the clipboard")

	return cmd
}
