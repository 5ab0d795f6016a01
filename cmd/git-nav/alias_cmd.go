package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/alias"
	"github.com/raphi011/gitnav/internal/cli"
	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/log"
	"github.com/raphi011/gitnav/internal/output"
)

func newAliasCmd(a *app) *cobra.Command {
	var (
		global bool
		remove bool
	)

	cmd := &cobra.Command{
		Use:     "alias <name> [<target>]",
		Short:   "Show, set or remove a branch alias",
		GroupID: GroupManage,
		Args:    cli.Args(cobra.RangeArgs(1, 2)),
		Long: `Show, set or remove a short name for a branch.

Aliases are stored in git config under nav.alias, in the repository
(default) or in your global config with -g. Repository aliases win over
global ones with the same name. An empty target removes the alias.`,
		Example: `  git nav alias m main          # set
  git nav alias m=main          # set, single argument form
  git nav alias -g r release    # set globally
  git nav alias m               # show
  git nav alias m ""            # remove
  git nav alias -d m            # remove`,
		ValidArgsFunction: a.completeAliasNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			scope := git.Local
			if global {
				scope = git.Global
			}

			name, target, hasTarget := args[0], "", len(args) == 2
			if hasTarget {
				target = args[1]
			} else if n, t, ok := strings.Cut(name, "="); ok {
				name, target, hasTarget = n, t, true
			}

			switch {
			case remove && hasTarget:
				return cli.Usagef("-d takes only an alias name")
			case remove || (hasTarget && target == ""):
				removed, err := a.aliases.Remove(ctx, name, scope)
				if err != nil {
					return err
				}
				if removed {
					l.Printf("Removed %s alias %q\n", scope, name)
				} else {
					l.Printf("No %s alias %q\n", scope, name)
				}
				return nil
			case hasTarget:
				if err := a.aliases.Set(ctx, name, target, scope); err != nil {
					return err
				}
				l.Printf("Set %s alias %s -> %s\n", scope, name, target)
				return nil
			}

			target, err := a.showAlias(cmd, name, global)
			if err != nil {
				return err
			}
			output.FromContext(ctx).Println(target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Use the global git config")
	cmd.Flags().BoolVarP(&remove, "delete", "d", false, "Remove the alias")

	return cmd
}

// showAlias looks name up in the global scope only, or in the local then
// the global scope. Unknown names get suggestions from every searched scope.
func (a *app) showAlias(cmd *cobra.Command, name string, globalOnly bool) (string, error) {
	ctx := cmd.Context()
	if globalOnly {
		return a.aliases.Lookup(ctx, name, git.Global)
	}

	target, ok, err := a.aliases.Get(ctx, name, git.Local)
	if err != nil || ok {
		return target, err
	}
	target, err = a.aliases.Lookup(ctx, name, git.Global)
	var unknown *alias.UnknownError
	if !errors.As(err, &unknown) {
		return target, err
	}

	local, lerr := a.aliases.List(ctx, git.Local)
	if lerr != nil {
		return "", lerr
	}
	global, gerr := a.aliases.List(ctx, git.Global)
	if gerr != nil {
		return "", gerr
	}
	unknown.Suggestions = alias.Suggest(name, append(local, global...))
	return "", unknown
}
