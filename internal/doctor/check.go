package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/hooks"
)

// Check runs every check and returns the issues found, in report order.
func Check(ctx context.Context, d Deps) ([]Issue, error) {
	checks := []func(context.Context, Deps) ([]Issue, error){
		checkConfig,
		checkHook,
		checkHistory,
		checkAliases,
	}

	var issues []Issue
	for _, check := range checks {
		found, err := check(ctx, d)
		if err != nil {
			return nil, err
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

func checkConfig(_ context.Context, d Deps) ([]Issue, error) {
	if d.LoadConfig == nil {
		return nil, nil
	}
	path, err := d.LoadConfig()
	if err == nil {
		return nil, nil
	}
	return []Issue{{
		Category:    CategoryConfig,
		Subject:     path,
		Description: fmt.Sprintf("%v (defaults are used instead)", err),
		Hint:        "edit the file or remove it",
	}}, nil
}

func checkHook(_ context.Context, d Deps) ([]Issue, error) {
	st, err := d.Hooks.Status()
	if err != nil {
		return nil, err
	}

	issue := Issue{Category: CategoryHook, Subject: d.Hooks.Path()}
	switch st.State {
	case hooks.Missing:
		issue.Description = "post-checkout hook is not installed; checkouts are not recorded"
		issue.FixAction = FixInstallHook
	case hooks.Outdated:
		issue.Description = fmt.Sprintf("post-checkout hook is v%d, current is v%d", st.Version, hooks.CurrentVersion)
		issue.FixAction = FixUpgradeHook
	case hooks.Foreign:
		issue.Description = "post-checkout hook was not written by git-nav; checkouts are not recorded"
		issue.Hint = `merge the output of "git nav hook --print" into it`
	default:
		return nil, nil
	}
	return []Issue{issue}, nil
}

// checkHistory reports history entries that no longer resolve.
func checkHistory(ctx context.Context, d Deps) ([]Issue, error) {
	var issues []Issue
	seen := make(map[string]bool)
	for _, ref := range d.History.Entries() {
		if seen[ref] {
			continue
		}
		seen[ref] = true

		ok, err := d.Git.RefExists(ctx, ref)
		if err != nil {
			return nil, err
		}
		if !ok {
			issues = append(issues, Issue{
				Category:    CategoryHistory,
				Subject:     ref,
				Description: "history entry no longer resolves",
				FixAction:   FixPruneHistory,
			})
		}
	}
	return issues, nil
}

// checkAliases reports a leftover legacy alias file and aliases whose
// target no longer resolves.
func checkAliases(ctx context.Context, d Deps) ([]Issue, error) {
	var issues []Issue

	if d.Paths.LegacyAliasFile != "" {
		if _, err := os.Stat(d.Paths.LegacyAliasFile); err == nil {
			issues = append(issues, Issue{
				Category:    CategoryAlias,
				Subject:     d.Paths.LegacyAliasFile,
				Description: "legacy alias file has not been migrated to git config",
				FixAction:   FixMigrateAliases,
			})
		}
	}

	for _, scope := range []git.Scope{git.Local, git.Global} {
		aliases, err := d.Aliases.List(ctx, scope)
		if err != nil {
			return nil, err
		}
		for _, a := range aliases {
			ok, err := d.Git.RefExists(ctx, a.Target)
			if err != nil {
				return nil, err
			}
			if ok {
				continue
			}
			flag := ""
			if scope == git.Global {
				flag = " -g"
			}
			issues = append(issues, Issue{
				Category:    CategoryAlias,
				Subject:     fmt.Sprintf("%s (%s)", a.Name, scope),
				Description: fmt.Sprintf("target %q does not resolve", a.Target),
				Hint:        fmt.Sprintf("git nav alias%s -d %s", flag, a.Name),
			})
		}
	}
	return issues, nil
}
