package git

import (
	"errors"
	"os/exec"
)

// ErrGitNotFound reports that no git binary is on PATH.
var ErrGitNotFound = errors.New("git not found in PATH: install git (https://git-scm.com) and retry")

// CheckGit returns ErrGitNotFound unless git can be executed.
func CheckGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}
