package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/cli"
	"github.com/raphi011/gitnav/internal/config"
	"github.com/raphi011/gitnav/internal/doctor"
)

const doctorName = "doctor"

func newDoctorCmd(a *app) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     doctorName,
		Short:   "Diagnose and repair git-nav state",
		GroupID: GroupManage,
		Args:    cli.Args(cobra.NoArgs),
		Long: `Check the config file, the post-checkout hook, the jump history and the
aliases of the current repository.

Without --fix nothing is changed. With --fix, doctor installs or upgrades
the hook, migrates a legacy alias file and drops history entries whose
ref no longer exists. Foreign hooks and dangling aliases are only
reported.`,
		Example: `  git nav doctor
  git nav doctor --fix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doctor.Run(cmd.Context(), doctor.Deps{
				Git:        a.git,
				Paths:      a.paths,
				Hooks:      a.hooks,
				Aliases:    a.aliases,
				History:    a.nav.History(),
				LoadConfig: loadConfig,
			}, fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair the issues that can be fixed automatically")

	return cmd
}

func loadConfig() (string, error) {
	path, err := config.Path()
	if err != nil {
		return "", err
	}
	_, err = config.LoadFile(path)
	return path, err
}
