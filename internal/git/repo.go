package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/raphi011/gitnav/internal/cmd"
)

// GitDir returns the absolute path of the repository's private git directory.
func (g *Git) GitDir(ctx context.Context) (string, error) {
	out, err := g.output(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return out, nil
}

// GitPath resolves a path inside the git directory the way git itself does,
// honouring core.hooksPath and linked worktrees. The result is absolute.
func (g *Git) GitPath(ctx context.Context, rel string) (string, error) {
	out, err := g.output(ctx, "rev-parse", "--git-path", rel)
	if err != nil {
		return "", fmt.Errorf("resolve git path %s: %w", rel, err)
	}
	if filepath.IsAbs(out) {
		return out, nil
	}
	base := g.dir
	if base == "" {
		base = "."
	}
	return filepath.Abs(filepath.Join(base, out))
}

// CurrentRef returns the checked out branch name, or the short commit hash
// when HEAD is detached.
func (g *Git) CurrentRef(ctx context.Context) (string, error) {
	ref, err := g.output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	if ref != "HEAD" {
		return ref, nil
	}
	return g.output(ctx, "rev-parse", "--short", "HEAD")
}

// RevParse resolves ref to a full commit hash.
func (g *Git) RevParse(ctx context.Context, ref string) (string, error) {
	out, err := g.output(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("unknown revision %q: %w", ref, err)
	}
	return out, nil
}

// RefExists reports whether ref resolves to a commit.
func (g *Git) RefExists(ctx context.Context, ref string) (bool, error) {
	res, err := g.run(ctx, cmd.Options{AllowExitCodes: []int{1}}, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0, nil
}

// MergeBase returns the best common ancestor of a and b.
func (g *Git) MergeBase(ctx context.Context, a, b string) (string, error) {
	out, err := g.output(ctx, "merge-base", a, b)
	if err != nil {
		return "", fmt.Errorf("merge-base %s %s: %w", a, b, err)
	}
	return out, nil
}

// LocalBranches returns all local branch names.
func (g *Git) LocalBranches(ctx context.Context) ([]string, error) {
	return g.lines(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads/")
}

// Checkout switches to ref. With merge, local changes are carried over
// through a three-way merge (git checkout -m).
func (g *Git) Checkout(ctx context.Context, ref string, merge bool) error {
	args := []string{"checkout"}
	if merge {
		args = append(args, "-m")
	}
	args = append(args, ref)
	return g.stream(ctx, args...)
}

// ParentBranches walks history from current in topological order, stopping
// at commits reachable from root, and returns the local branches found on
// the way, nearest first. current, root and HEAD are never returned.
func (g *Git) ParentBranches(ctx context.Context, current, root string) ([]string, error) {
	lines, err := g.lines(ctx, "log", "--topo-order", "--format=%D", "--decorate-refs=refs/heads/*", current, "--not", root)
	if err != nil {
		return nil, fmt.Errorf("walk parents of %s: %w", current, err)
	}

	var parents []string
	seen := map[string]bool{current: true, root: true, "HEAD": true}
	for _, line := range lines {
		for _, name := range parseDecorations(line) {
			if seen[name] {
				continue
			}
			seen[name] = true
			parents = append(parents, name)
		}
	}
	return parents, nil
}

// parseDecorations splits a %D decoration line like "HEAD -> main, topic"
// into ref names.
func parseDecorations(line string) []string {
	var names []string
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		part = strings.TrimPrefix(part, "HEAD -> ")
		part = strings.TrimPrefix(part, "tag: ")
		if part == "" {
			continue
		}
		names = append(names, part)
	}
	return names
}
