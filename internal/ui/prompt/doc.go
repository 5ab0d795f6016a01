// Package prompt provides the interactive prompts used by the git-nav tools.
//
//   - [Select]: filterable single choice, used by "git nav -i"
//   - [Confirm]: yes/no, used by git-port before cherry-picking
//
// Prompts render to stderr. Callers check for a terminal first.
package prompt
