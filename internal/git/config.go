package git

import (
	"context"
	"fmt"
	"regexp"

	"github.com/raphi011/gitnav/internal/cmd"
)

// Scope selects which config file a ConfigStore operation targets.
type Scope int

const (
	// Local is the repository's own config.
	Local Scope = iota
	// Global is the user-wide config.
	Global
)

func (s Scope) String() string {
	if s == Global {
		return "global"
	}
	return "local"
}

func (s Scope) flag() string {
	return "--" + s.String()
}

// ConfigStore reads and writes multi-valued git config keys.
type ConfigStore interface {
	// GetAll returns every value of key in scope, in file order.
	GetAll(ctx context.Context, scope Scope, key string) ([]string, error)
	// Add appends a value to key in scope.
	Add(ctx context.Context, scope Scope, key, value string) error
	// Unset removes the entry of key whose value is exactly expectedValue.
	// It is not an error if no such entry exists.
	Unset(ctx context.Context, scope Scope, key, expectedValue string) error
}

// Config is the git CLI backed ConfigStore.
type Config struct {
	git *Git
}

// NewConfig returns a ConfigStore running through g.
func NewConfig(g *Git) *Config {
	return &Config{git: g}
}

// GetAll implements ConfigStore.
func (c *Config) GetAll(ctx context.Context, scope Scope, key string) ([]string, error) {
	// Exit code 1 means the key doesn't exist - not an error
	res, err := c.git.run(ctx, cmd.Options{Mode: cmd.Lines, AllowExitCodes: []int{1}},
		"config", scope.flag(), "--get-all", key)
	if err != nil {
		return nil, fmt.Errorf("read %s config %s: %w", scope, key, err)
	}
	if res.ExitCode == 1 {
		return nil, nil
	}
	return res.Lines, nil
}

// Add implements ConfigStore.
func (c *Config) Add(ctx context.Context, scope Scope, key, value string) error {
	if _, err := c.git.run(ctx, cmd.Options{}, "config", scope.flag(), "--add", key, value); err != nil {
		return fmt.Errorf("write %s config %s: %w", scope, key, err)
	}
	return nil
}

// Unset implements ConfigStore.
func (c *Config) Unset(ctx context.Context, scope Scope, key, expectedValue string) error {
	// Exit code 5 means nothing matched - not an error for removal
	pattern := "^" + regexp.QuoteMeta(expectedValue) + "$"
	if _, err := c.git.run(ctx, cmd.Options{AllowExitCodes: []int{5}},
		"config", scope.flag(), "--unset-all", key, pattern); err != nil {
		return fmt.Errorf("remove %s config %s: %w", scope, key, err)
	}
	return nil
}
