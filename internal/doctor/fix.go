package doctor

import (
	"context"
	"fmt"

	"github.com/raphi011/gitnav/internal/output"
	"github.com/raphi011/gitnav/internal/ui/styles"
)

// Fix repairs every fixable issue and returns how many were fixed.
// History entries are pruned together and saved once.
func Fix(ctx context.Context, d Deps, issues []Issue) (int, error) {
	out := output.FromContext(ctx)
	ok := styles.SuccessStyle.Render("✓")

	var fixed int
	stale := make(map[string]bool)

	for _, issue := range issues {
		switch issue.FixAction {
		case FixInstallHook, FixUpgradeHook:
			if _, err := d.Hooks.Ensure(ctx); err != nil {
				return fixed, err
			}
			out.Printf("  %s Wrote post-checkout hook %s\n", ok, issue.Subject)
			fixed++

		case FixMigrateAliases:
			n, err := d.Aliases.Migrate(ctx, issue.Subject)
			if err != nil {
				return fixed, err
			}
			out.Printf("  %s Migrated %d legacy alias(es)\n", ok, n)
			fixed++

		case FixPruneHistory:
			stale[issue.Subject] = true
		}
	}

	if len(stale) > 0 {
		dropped := d.History.Retain(func(ref string) bool { return !stale[ref] })
		if err := d.History.Save(); err != nil {
			return fixed, err
		}
		out.Printf("  %s Pruned %d history entr%s\n", ok, dropped, plural(dropped, "y", "ies"))
		fixed += len(stale)
	}

	return fixed, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// unfixable counts issues that Fix cannot handle.
func unfixable(issues []Issue) int {
	var n int
	for _, issue := range issues {
		if !issue.Fixable() {
			n++
		}
	}
	return n
}

func describe(issue Issue) string {
	s := fmt.Sprintf("%s: %s", issue.Subject, issue.Description)
	if issue.Hint != "" {
		s += styles.MutedStyle.Render(" (" + issue.Hint + ")")
	}
	return s
}
