// Package alias stores short names for branches in git config.
//
// Aliases live as repeated "nav.alias" values of the form "name=target",
// either in the repository's config (local) or the user's (global). When a
// name appears more than once, the first entry wins.
package alias

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/gitnav/internal/git"
)

// ConfigKey is the multi-valued git config key holding aliases.
const ConfigKey = "nav.alias"

// ErrUnknownAlias is matched by errors returned for names with no alias.
var ErrUnknownAlias = errors.New("unknown alias")

// ErrReservedName is wrapped by ReservedNameError.
var ErrReservedName = errors.New("reserved alias name")

// ReservedNameError rejects names that navigation reads as "-", ".." or a
// history index before it ever looks at aliases.
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("invalid alias name %q: \"-\", \"..\" and numbers are navigation shortcuts", e.Name)
}

func (e *ReservedNameError) Unwrap() error { return ErrReservedName }

// UnknownError reports a missing alias together with similar names.
type UnknownError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownError) Error() string {
	msg := fmt.Sprintf("unknown alias %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *UnknownError) Unwrap() error {
	return ErrUnknownAlias
}

// Alias maps a short name to a target reference.
type Alias struct {
	Name   string
	Target string
	Scope  git.Scope
}

// Store reads and writes aliases through a git config store.
type Store struct {
	cfg git.ConfigStore
}

// NewStore returns a Store backed by cfg.
func NewStore(cfg git.ConfigStore) *Store {
	return &Store{cfg: cfg}
}

// List returns all aliases in scope in config order.
func (s *Store) List(ctx context.Context, scope git.Scope) ([]Alias, error) {
	values, err := s.cfg.GetAll(ctx, scope, ConfigKey)
	if err != nil {
		return nil, err
	}

	aliases := make([]Alias, 0, len(values))
	for _, v := range values {
		name, target, ok := strings.Cut(v, "=")
		if !ok || name == "" {
			continue
		}
		aliases = append(aliases, Alias{Name: name, Target: target, Scope: scope})
	}
	return aliases, nil
}

// Get returns the target of name in scope. ok is false if name is not set.
func (s *Store) Get(ctx context.Context, name string, scope git.Scope) (target string, ok bool, err error) {
	aliases, err := s.List(ctx, scope)
	if err != nil {
		return "", false, err
	}
	for _, a := range aliases {
		if a.Name == name {
			return a.Target, true, nil
		}
	}
	return "", false, nil
}

// Lookup is Get for a name that must exist. A missing name yields an
// *UnknownError suggesting aliases from scope.
func (s *Store) Lookup(ctx context.Context, name string, scope git.Scope) (string, error) {
	aliases, err := s.List(ctx, scope)
	if err != nil {
		return "", err
	}
	for _, a := range aliases {
		if a.Name == name {
			return a.Target, nil
		}
	}
	return "", &UnknownError{Name: name, Suggestions: Suggest(name, aliases)}
}

// Resolve maps name to its target, looking at local aliases before global
// ones. Unaliased names resolve to themselves.
func (s *Store) Resolve(ctx context.Context, name string) (string, error) {
	for _, scope := range []git.Scope{git.Local, git.Global} {
		target, ok, err := s.Get(ctx, name, scope)
		if err != nil {
			return "", err
		}
		if ok {
			return target, nil
		}
	}
	return name, nil
}

// Set points name at target in scope, replacing any previous value.
// An empty target is a no-op.
func (s *Store) Set(ctx context.Context, name, target string, scope git.Scope) error {
	if target == "" {
		return nil
	}
	if err := validateName(name); err != nil {
		return err
	}

	aliases, err := s.List(ctx, scope)
	if err != nil {
		return err
	}
	for _, a := range aliases {
		if a.Name != name {
			continue
		}
		if err := s.cfg.Unset(ctx, scope, ConfigKey, encode(a.Name, a.Target)); err != nil {
			return err
		}
	}
	return s.cfg.Add(ctx, scope, ConfigKey, encode(name, target))
}

// Remove deletes the current entry for name in scope.
// removed is false if name was not set.
func (s *Store) Remove(ctx context.Context, name string, scope git.Scope) (removed bool, err error) {
	target, ok, err := s.Get(ctx, name, scope)
	if err != nil || !ok {
		return false, err
	}
	if err := s.cfg.Unset(ctx, scope, ConfigKey, encode(name, target)); err != nil {
		return false, err
	}
	return true, nil
}

// Suggest returns alias names resembling name, best match first.
func Suggest(name string, aliases []Alias) []string {
	names := make([]string, 0, len(aliases))
	seen := map[string]bool{}
	for _, a := range aliases {
		if !seen[a.Name] {
			seen[a.Name] = true
			names = append(names, a.Name)
		}
	}

	matches := fuzzy.Find(name, names)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

func encode(name, target string) string {
	return name + "=" + target
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("alias name must not be empty")
	}
	if strings.ContainsAny(name, "=\n") {
		return fmt.Errorf("invalid alias name %q: must not contain '=' or newlines", name)
	}
	if name == "-" || name == ".." || isNumber(name) {
		return &ReservedNameError{Name: name}
	}
	return nil
}

func isNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
