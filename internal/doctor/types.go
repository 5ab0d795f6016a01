package doctor

import (
	"github.com/raphi011/gitnav/internal/alias"
	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/history"
	"github.com/raphi011/gitnav/internal/hooks"
	"github.com/raphi011/gitnav/internal/nav"
)

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryConfig represents problems with the config file.
	CategoryConfig IssueCategory = "config"
	// CategoryHook represents problems with the post-checkout hook.
	CategoryHook IssueCategory = "hook"
	// CategoryHistory represents stale jump history entries.
	CategoryHistory IssueCategory = "history"
	// CategoryAlias represents legacy or dangling aliases.
	CategoryAlias IssueCategory = "alias"
)

// categories lists the categories in report order.
var categories = []IssueCategory{CategoryConfig, CategoryHook, CategoryHistory, CategoryAlias}

var categoryNames = map[IssueCategory]string{
	CategoryConfig:  "Config issues",
	CategoryHook:    "Hook issues",
	CategoryHistory: "History issues",
	CategoryAlias:   "Alias issues",
}

// FixAction names the repair Fix applies to an issue.
type FixAction string

const (
	FixNone           FixAction = ""
	FixInstallHook    FixAction = "install_hook"
	FixUpgradeHook    FixAction = "upgrade_hook"
	FixPruneHistory   FixAction = "prune_history"
	FixMigrateAliases FixAction = "migrate_aliases"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Category    IssueCategory
	Subject     string    // file path, ref or alias name
	Description string    // human-readable description
	Hint        string    // what to do by hand when FixAction is FixNone
	FixAction   FixAction // what --fix would do
}

// Fixable reports whether Fix can repair the issue.
func (i Issue) Fixable() bool {
	return i.FixAction != FixNone
}

// Deps is the repository state doctor inspects.
type Deps struct {
	Git     *git.Git
	Paths   nav.Paths
	Hooks   *hooks.Manager
	Aliases *alias.Store
	History *history.History

	// LoadConfig reloads the config file to surface its error.
	// Nil skips the config check.
	LoadConfig func() (path string, err error)
}
