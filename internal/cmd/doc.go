// Package cmd runs external commands on behalf of the git-nav tools.
//
// All external interaction goes through the [Runner] capability so that
// callers can be exercised against [cmdtest.Fake] instead of a real git
// binary. Commands are spawned directly, never through a shell.
//
// # Modes
//
//   - [Capture]: stdout is returned as one string
//   - [Lines]: stdout is split into lines
//   - [Stream]: stdout and stderr go straight to the console
//
// # Exit codes
//
// A non-zero exit code is turned into an [*ExitError] unless it is listed in
// [Options.AllowExitCodes]. With [Options.Quiet] the error is marked silent:
// the caller still fails, but main prints nothing because the command has
// already told the user what went wrong.
//
// # Design Notes
//
// The tools shell out to the git CLI rather than using a Go git library.
// This keeps behaviour identical to what the user gets at the prompt,
// including their hooks, aliases and credential helpers.
package cmd
