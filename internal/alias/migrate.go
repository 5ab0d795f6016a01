package alias

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/log"
)

// LegacyFileName is the pre-git-config alias file inside the git directory.
const LegacyFileName = "nav_aliases"

// Migrate imports aliases from the legacy file at path into the local scope
// and deletes the file. A missing file is a no-op. Entries with an empty
// target are dropped and reserved names are skipped with a warning.
// Returns the number of aliases written.
func (s *Store) Migrate(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("open legacy aliases: %w", err)
	}
	entries, err := parseLegacy(f)
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("parse legacy aliases %s: %w", path, err)
	}

	l := log.FromContext(ctx)
	var written int
	for _, e := range entries {
		if e.Target == "" {
			continue
		}
		if err := s.Set(ctx, e.Name, e.Target, git.Local); err != nil {
			if errors.Is(err, ErrReservedName) {
				l.Warnf("skipping legacy alias: %v", err)
				continue
			}
			return written, fmt.Errorf("migrate alias %q: %w", e.Name, err)
		}
		written++
	}

	l.Printf("Migrated %d alias(es) from %s to git config (%s)\n", written, path, ConfigKey)

	if err := os.Remove(path); err != nil {
		return written, fmt.Errorf("remove legacy aliases: %w", err)
	}
	return written, nil
}

// parseLegacy reads an INI style file: "[section]" headers, "key = value"
// or "key: value" entries, "#" and ";" comments. Sections are ignored.
func parseLegacy(r io.Reader) ([]Alias, error) {
	var entries []Alias
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			continue
		}

		idx := strings.IndexAny(line, "=:")
		if idx <= 0 {
			return nil, fmt.Errorf("line %d: expected key = value, got %q", lineNo, line)
		}
		name := strings.TrimSpace(line[:idx])
		target := strings.TrimSpace(line[idx+1:])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty alias name", lineNo)
		}
		entries = append(entries, Alias{Name: name, Target: target, Scope: git.Local})
	}
	return entries, sc.Err()
}
