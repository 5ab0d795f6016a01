// Package lookup finds files below a directory by glob, by name or by
// fuzzy score.
//
// Patterns containing glob characters (*?[{) use doublestar syntax and are
// matched against slash separated paths relative to the root; a glob
// without a slash matches base names at any depth. Other patterns match
// base names by substring, case insensitive unless the pattern contains an
// upper case letter.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sahilm/fuzzy"
)

// ErrNoMatch is returned when nothing matches.
var ErrNoMatch = errors.New("no match")

// Options control a lookup.
type Options struct {
	// Ignore holds doublestar patterns for paths that are skipped,
	// including everything below a matching directory. Patterns without
	// a slash are matched against base names.
	Ignore []string
	// MaxResults caps the result count; 0 means unlimited.
	MaxResults int
	// Fuzzy ranks all files by fuzzy score against the pattern.
	Fuzzy bool
}

// Match is a found file.
type Match struct {
	Path  string // slash separated, relative to the root
	Score int    // fuzzy score, 0 for other modes
}

// Find walks fsys and returns the matching files, best first.
func Find(ctx context.Context, fsys fs.FS, pattern string, opts Options) ([]Match, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	for _, p := range opts.Ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
	}

	var match func(rel string) bool
	switch {
	case opts.Fuzzy:
		match = func(string) bool { return true }
	case isGlob(pattern):
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		match = func(rel string) bool { return globMatch(pattern, rel) }
	default:
		needle, fold := pattern, !hasUpper(pattern)
		if fold {
			needle = strings.ToLower(needle)
		}
		match = func(rel string) bool {
			base := path.Base(rel)
			if fold {
				base = strings.ToLower(base)
			}
			return strings.Contains(base, needle)
		}
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if rel == "." {
			return nil
		}
		if ignored(opts.Ignore, rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if match(rel) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var matches []Match
	switch {
	case opts.Fuzzy:
		for _, m := range fuzzy.Find(pattern, paths) {
			matches = append(matches, Match{Path: m.Str, Score: m.Score})
		}
	case isGlob(pattern):
		matches = toMatches(paths)
	default:
		matches = toMatches(paths)
		rankByName(matches, pattern)
	}

	if len(matches) == 0 {
		return nil, ErrNoMatch
	}
	if opts.MaxResults > 0 && len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}
	return matches, nil
}

func toMatches(paths []string) []Match {
	matches := make([]Match, len(paths))
	for i, p := range paths {
		matches[i] = Match{Path: p}
	}
	return matches
}

// rankByName puts exact base name hits first, then shallower and shorter
// paths. Ties keep walk order.
func rankByName(matches []Match, pattern string) {
	exact := func(m Match) bool { return strings.EqualFold(path.Base(m.Path), pattern) }
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if exact(a) != exact(b) {
			return exact(a)
		}
		if da, db := strings.Count(a.Path, "/"), strings.Count(b.Path, "/"); da != db {
			return da < db
		}
		return len(a.Path) < len(b.Path)
	})
}

func globMatch(pattern, rel string) bool {
	if !strings.Contains(pattern, "/") {
		rel = path.Base(rel)
	}
	ok, _ := doublestar.Match(pattern, rel)
	return ok
}

func ignored(patterns []string, rel string) bool {
	for _, p := range patterns {
		if globMatch(p, rel) {
			return true
		}
	}
	return false
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
