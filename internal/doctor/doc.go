// Package doctor inspects and repairs the state git-nav keeps in a
// repository.
//
// The doctor package detects:
//
//   - Config issues: a config file that cannot be parsed or fails
//     validation. git-nav falls back to the defaults in that case, so the
//     problem is otherwise easy to miss.
//
//   - Hook issues: a missing post-checkout hook, an earlier canonical
//     version that has not been upgraded yet, or a hook git-nav did not
//     write.
//
//   - History issues: jump history entries whose ref no longer resolves,
//     for example after a branch was deleted.
//
//   - Alias issues: a legacy alias file that still needs migrating, and
//     aliases whose target no longer resolves.
//
// # Usage
//
//	issues, err := doctor.Check(ctx, deps)
//	fixed, err := doctor.Fix(ctx, deps, issues)
//
// [Run] combines both and prints a report.
//
// Only issues with a [FixAction] are repaired. Foreign hooks and dangling
// aliases are reported but left for the user to resolve.
package doctor
