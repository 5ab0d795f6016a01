// Package git provides git operations via the git CLI.
//
// Every call goes through a [cmd.Runner] held by [Git], so callers can be
// tested against a scripted runner. The working directory is passed with
// "git -C <dir>" when set.
//
// # Repository Queries
//
//   - [Git.GitDir], [Git.GitPath]: locate the private control directory
//   - [Git.CurrentRef]: branch name, or short commit when detached
//   - [Git.ParentBranches]: local branches below HEAD that are not part of the root branch
//   - [Git.RevParse], [Git.MergeBase], [Git.RefExists]
//
// # Working Tree Changes
//
//   - [Git.Checkout]: switch branches, optionally carrying local changes with -m
//   - [Git.CherryCandidates], [Git.CherryPick]: selective commit porting
//   - [Git.RebaseOnto]: move a branch onto a new base
//
// # Configuration
//
// [ConfigStore] exposes multi-valued config keys in local or global scope,
// including removal of one exact value, which "git config" only offers as a
// value-pattern match.
package git
