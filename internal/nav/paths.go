package nav

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/raphi011/gitnav/internal/alias"
	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/history"
)

// Paths locates all state git-nav keeps inside a repository.
// It is resolved once per invocation and handed to each component.
type Paths struct {
	GitDir          string
	HistoryFile     string
	HookFile        string
	LegacyAliasFile string
}

// ResolvePaths asks git for the repository's private directory and hook path.
func ResolvePaths(ctx context.Context, g *git.Git) (Paths, error) {
	gitDir, err := g.GitDir(ctx)
	if err != nil {
		return Paths{}, err
	}
	hook, err := g.GitPath(ctx, "hooks/post-checkout")
	if err != nil {
		return Paths{}, err
	}
	return Paths{
		GitDir:          gitDir,
		HistoryFile:     filepath.Join(gitDir, history.FileName),
		HookFile:        hook,
		LegacyAliasFile: filepath.Join(gitDir, alias.LegacyFileName),
	}, nil
}

type pathsKey struct{}

// WithPaths attaches resolved paths to the context.
func WithPaths(ctx context.Context, p Paths) context.Context {
	return context.WithValue(ctx, pathsKey{}, p)
}

// PathsFromContext returns the paths attached by WithPaths.
func PathsFromContext(ctx context.Context) (Paths, error) {
	p, ok := ctx.Value(pathsKey{}).(Paths)
	if !ok {
		return Paths{}, fmt.Errorf("repository paths not resolved")
	}
	return p, nil
}
