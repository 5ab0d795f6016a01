package doctor

import (
	"context"

	"github.com/raphi011/gitnav/internal/output"
	"github.com/raphi011/gitnav/internal/ui/styles"
)

// Run checks the repository state, prints a report and, when fix is set,
// repairs what it can.
func Run(ctx context.Context, d Deps, fix bool) error {
	out := output.FromContext(ctx)

	out.Println("Checking config, hook, history and aliases...")
	issues, err := Check(ctx, d)
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		out.Printf("\n%s No issues found\n", styles.SuccessStyle.Render("✓"))
		return nil
	}

	out.Printf("\nFound %d issue%s:\n", len(issues), plural(len(issues), "", "s"))
	printIssuesByCategory(ctx, issues)

	if !fix {
		if len(issues) > unfixable(issues) {
			out.Println("\nRun 'git nav doctor --fix' to repair.")
		}
		return nil
	}

	out.Println()
	fixed, err := Fix(ctx, d, issues)
	if err != nil {
		return err
	}
	out.Printf("\nFixed %d of %d issue%s\n", fixed, len(issues), plural(len(issues), "", "s"))
	return nil
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(ctx context.Context, issues []Issue) {
	out := output.FromContext(ctx)
	warn := styles.WarningStyle.Render("⚠")

	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	for _, cat := range categories {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		out.Printf("\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			out.Printf("  %s %s\n", warn, describe(issue))
		}
	}
}
