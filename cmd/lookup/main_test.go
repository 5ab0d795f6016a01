package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/gitnav/internal/cli"
)

func TestMain(m *testing.M) {
	os.Setenv("GITNAV_CONFIG", filepath.Join(os.TempDir(), "gitnav-test-missing", "config.toml"))
	os.Exit(m.Run())
}

func setupTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{
		"README.md",
		"internal/nav/nav.go",
		"internal/nav/nav_test.go",
		"node_modules/pkg/nav.go",
	} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(newApp(cli.Streams{In: strings.NewReader(""), Out: &out, Err: &errOut}))
	root.SetArgs(append([]string{}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLookup_Glob(t *testing.T) {
	dir := setupTree(t)

	out, err := run(t, "*.go", dir)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	want := filepath.Join(dir, "internal", "nav", "nav.go") + "\n" +
		filepath.Join(dir, "internal", "nav", "nav_test.go") + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestLookup_NoIgnore(t *testing.T) {
	dir := setupTree(t)

	out, err := run(t, "--no-ignore", "**/nav.go", dir)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !strings.Contains(out, filepath.Join("node_modules", "pkg", "nav.go")) {
		t.Errorf("output = %q, want node_modules match", out)
	}
}

func TestLookup_FirstAndCopy(t *testing.T) {
	dir := setupTree(t)
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	defer func() { copyToClipboard = orig }()

	out, err := run(t, "--first", "--copy", "nav", dir)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	want := filepath.Join(dir, "internal", "nav", "nav.go")
	if out != want+"\n" {
		t.Errorf("output = %q, want %q", out, want+"\n")
	}
	if copied != want {
		t.Errorf("copied %q, want %q", copied, want)
	}
}

func TestLookup_NoMatch(t *testing.T) {
	dir := setupTree(t)

	_, err := run(t, "missing", dir)
	if err == nil || !strings.Contains(err.Error(), `no files match "missing"`) {
		t.Errorf("error = %v, want no match", err)
	}
}

func TestLookup_BadArgs(t *testing.T) {
	dir := setupTree(t)

	if _, err := run(t, "x", filepath.Join(dir, "README.md")); err == nil {
		t.Error("file as dir: want error")
	}
	var usage *cli.UsageError
	if _, err := run(t); !errors.As(err, &usage) {
		t.Errorf("no pattern error = %v, want usage error", err)
	}
}

func TestDisplayPath(t *testing.T) {
	if got := displayPath(".", "a/b.go"); got != filepath.FromSlash("a/b.go") {
		t.Errorf("displayPath(.) = %q", got)
	}
	if got := displayPath("src", "a/b.go"); got != filepath.Join("src", "a", "b.go") {
		t.Errorf("displayPath(src) = %q", got)
	}
}
