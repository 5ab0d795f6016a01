package main

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitnav/internal/alias"
	"github.com/raphi011/gitnav/internal/cli"
	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/ui/prompt"
)

// destinationItems lists history entries, then aliases, then the local
// branches not already listed. Each item's value is a destination.
func (a *app) destinationItems(ctx context.Context) ([]prompt.Item, error) {
	var items []prompt.Item
	seen := map[string]bool{}

	for i, ref := range a.nav.History().Entries() {
		items = append(items, prompt.Item{
			Label:  ref,
			Detail: "history #" + strconv.Itoa(i+1),
			Value:  strconv.Itoa(i + 1),
		})
		seen[ref] = true
	}

	for _, scope := range []git.Scope{git.Local, git.Global} {
		aliases, err := a.aliases.List(ctx, scope)
		if err != nil {
			return nil, err
		}
		for _, al := range aliases {
			items = append(items, prompt.Item{
				Label:  al.Name,
				Detail: scope.String() + " alias for " + al.Target,
			})
		}
	}

	branches, err := a.git.LocalBranches(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range branches {
		if seen[b] {
			continue
		}
		seen[b] = true
		items = append(items, prompt.Item{Label: b, Detail: "branch"})
	}
	return items, nil
}

// pick asks for a destination on the terminal.
func (a *app) pick(ctx context.Context) (string, error) {
	if !a.streams.Interactive() {
		return "", errors.New("interactive mode requires a terminal")
	}
	items, err := a.destinationItems(ctx)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", errors.New("nothing to pick from")
	}

	res, err := prompt.Select("Jump to", items)
	if err != nil {
		return "", err
	}
	if res.Cancelled {
		return "", cli.ErrCancelled
	}
	return res.Value, nil
}

// completeDestination completes aliases and local branches. It runs
// without prepare, so it opens the repository itself.
func (a *app) completeDestination(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	g := git.New(a.runner, "")

	out := []string{"-", ".."}
	for _, scope := range []git.Scope{git.Local, git.Global} {
		aliases, err := alias.NewStore(git.NewConfig(g)).List(ctx, scope)
		if err != nil {
			break
		}
		for _, al := range aliases {
			out = append(out, al.Name+"\t"+scope.String()+" alias for "+al.Target)
		}
	}
	if branches, err := g.LocalBranches(ctx); err == nil {
		out = append(out, branches...)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeAliasNames completes the alias command's name argument.
func (a *app) completeAliasNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	g := git.New(a.runner, "")
	store := alias.NewStore(git.NewConfig(g))

	var names []string
	for _, scope := range []git.Scope{git.Local, git.Global} {
		aliases, err := store.List(cmd.Context(), scope)
		if err != nil {
			break
		}
		for _, al := range aliases {
			names = append(names, al.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
