// Package hooks installs and maintains the post-checkout hook that keeps
// the jump history in sync.
//
// git runs the hook after every checkout; the hook calls back into
// "git nav record-jump" with the names of the old and new references.
//
// # Versions
//
// The canonical script is embedded in the binary. Scripts written by earlier
// releases are recognised by the SHA-256 of their content, listed in
// [KnownVersions], and upgraded in place. Any other content at the hook
// path belongs to someone else: it is reported and never modified.
//
// Changing post-checkout.sh requires appending the hash of the previous
// script to [KnownVersions], or existing installations will be reported as
// foreign.
package hooks
