package hooks

import (
	"context"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/raphi011/gitnav/internal/log"
	"github.com/raphi011/gitnav/internal/storage"
)

// Script is the canonical post-checkout hook.
//
//go:embed post-checkout.sh
var Script string

// CurrentVersion is the version of Script.
const CurrentVersion = 4

// Version identifies a previously shipped hook script by content hash.
type Version struct {
	Version int
	SHA256  string
}

// KnownVersions lists every earlier canonical script, oldest first.
var KnownVersions = []Version{
	{Version: 1, SHA256: "6159784386789ec1a77b2b9cfbd37b0f2046db55472f4a73e6c20b7c465174ba"},
	{Version: 2, SHA256: "f18896232f76af68262d601bd735ae7d9438dd91a91a4e4872d204076dacf170"},
	{Version: 3, SHA256: "168c3972ce7594edbabb976e14559b29d6d7da823b3d74a7ddb6c328a482b425"},
}

// State describes what is found at the hook path.
type State int

const (
	// Missing means no file exists at the hook path.
	Missing State = iota
	// Current means the file matches Script exactly.
	Current
	// Outdated means the file is a known earlier version.
	Outdated
	// Foreign means the file was not written by git-nav.
	Foreign
)

func (s State) String() string {
	switch s {
	case Missing:
		return "missing"
	case Current:
		return "current"
	case Outdated:
		return "outdated"
	case Foreign:
		return "foreign"
	}
	return "unknown"
}

// Status is the result of inspecting the hook path.
type Status struct {
	State   State
	Version int    // known version for Current and Outdated, 0 otherwise
	Content string // file content for Outdated and Foreign
}

// Manager owns the hook file at one path.
type Manager struct {
	path string
}

// NewManager returns a Manager for the hook at path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the hook file path.
func (m *Manager) Path() string {
	return m.path
}

// Hash returns the hex SHA-256 of content.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// knownVersion returns the version whose hash matches, or 0.
func knownVersion(hash string) int {
	for _, v := range KnownVersions {
		if v.SHA256 == hash {
			return v.Version
		}
	}
	return 0
}

// Status inspects the hook file without changing it.
func (m *Manager) Status() (Status, error) {
	data, ok, err := storage.ReadFile(m.path)
	if err != nil {
		return Status{}, fmt.Errorf("read hook: %w", err)
	}
	if !ok {
		return Status{State: Missing}, nil
	}

	if string(data) == Script {
		return Status{State: Current, Version: CurrentVersion}, nil
	}
	if v := knownVersion(Hash(data)); v != 0 {
		return Status{State: Outdated, Version: v, Content: string(data)}, nil
	}
	return Status{State: Foreign, Content: string(data)}, nil
}

// EnsureInstalled writes the canonical script if no hook exists yet.
// Returns true if the hook was installed.
func (m *Manager) EnsureInstalled(ctx context.Context) (bool, error) {
	if _, err := os.Stat(m.path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat hook: %w", err)
	}

	if err := m.write(); err != nil {
		return false, err
	}
	log.FromContext(ctx).Printf("Installed git-nav post-checkout hook at %s\n", m.path)
	return true, nil
}

// Check upgrades a known earlier script to the canonical one and warns
// about foreign content, which is left untouched.
func (m *Manager) Check(ctx context.Context) (Status, error) {
	st, err := m.Status()
	if err != nil {
		return st, err
	}

	l := log.FromContext(ctx)
	switch st.State {
	case Outdated:
		if err := m.write(); err != nil {
			return st, err
		}
		l.Printf("Upgraded git-nav post-checkout hook at %s (v%d -> v%d)\n", m.path, st.Version, CurrentVersion)
	case Foreign:
		l.Warnf("%s was not installed by git-nav; jump history will not be recorded.\n"+
			"Current content:\n%s\n"+
			"To fix, merge the output of \"git nav hook --print\" into that file, or remove it and rerun git nav.",
			m.path, indent(st.Content))
	}
	return st, nil
}

// Ensure installs the hook if missing, otherwise checks it.
func (m *Manager) Ensure(ctx context.Context) (Status, error) {
	installed, err := m.EnsureInstalled(ctx)
	if err != nil {
		return Status{}, err
	}
	if installed {
		return Status{State: Current, Version: CurrentVersion}, nil
	}
	return m.Check(ctx)
}

func (m *Manager) write() error {
	if err := storage.WriteFile(m.path, []byte(Script), 0o755); err != nil {
		return fmt.Errorf("write hook: %w", err)
	}
	return nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
