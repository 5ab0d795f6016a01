package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/cli"
)

const recordJumpName = "record-jump"

// newRecordJumpCmd is the post-checkout hook's callback.
func newRecordJumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:    recordJumpName + " <old> <new>",
		Short:  "Record a checkout in the jump history",
		Hidden: true,
		Args:   cli.Args(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.nav.RecordJump(cmd.Context(), args[0], args[1])
		},
	}
}
