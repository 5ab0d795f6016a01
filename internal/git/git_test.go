package git

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/raphi011/gitnav/internal/cmd"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// mustGit runs a git command in repoPath and fails the test on error.
func mustGit(t *testing.T, repoPath string, args ...string) string {
	t.Helper()
	out, err := New(cmd.NewExecRunner(), repoPath).output(context.Background(), args...)
	if err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
	return out
}

// commitFile writes name and commits it.
func commitFile(t *testing.T, repoPath, name, msg string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(repoPath, name), []byte(msg+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	mustGit(t, repoPath, "add", name)
	mustGit(t, repoPath, "commit", "-q", "-m", msg)
}

// setupTestRepo creates a git repo with a master branch and one commit.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	if err := CheckGit(); err != nil {
		t.Skip(err)
	}

	repoPath := filepath.Join(resolveTempDir(t), "repo")
	mustGit(t, "", "init", "-q", "-b", "master", repoPath)
	for _, kv := range [][2]string{
		{"user.email", "test@test.com"},
		{"user.name", "Test User"},
		{"commit.gpgsign", "false"},
	} {
		mustGit(t, repoPath, "config", kv[0], kv[1])
	}
	commitFile(t, repoPath, "README.md", "Initial commit")
	return repoPath
}

func TestGitDir(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	g := New(cmd.NewExecRunner(), repo)

	dir, err := g.GitDir(context.Background())
	if err != nil {
		t.Fatalf("GitDir failed: %v", err)
	}
	if dir != filepath.Join(repo, ".git") {
		t.Errorf("GitDir = %q, want %q", dir, filepath.Join(repo, ".git"))
	}
}

func TestGitPath_Hook(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	g := New(cmd.NewExecRunner(), repo)

	p, err := g.GitPath(context.Background(), "hooks/post-checkout")
	if err != nil {
		t.Fatalf("GitPath failed: %v", err)
	}
	if want := filepath.Join(repo, ".git", "hooks", "post-checkout"); p != want {
		t.Errorf("GitPath = %q, want %q", p, want)
	}
}

func TestGitDir_NotARepo(t *testing.T) {
	t.Parallel()
	if err := CheckGit(); err != nil {
		t.Skip(err)
	}
	g := New(cmd.NewExecRunner(), resolveTempDir(t))
	if _, err := g.GitDir(context.Background()); err == nil {
		t.Error("GitDir outside a repository = nil, want error")
	}
}

func TestCurrentRef(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	g := New(cmd.NewExecRunner(), repo)
	ctx := context.Background()

	ref, err := g.CurrentRef(ctx)
	if err != nil {
		t.Fatalf("CurrentRef failed: %v", err)
	}
	if ref != "master" {
		t.Errorf("CurrentRef = %q, want master", ref)
	}

	short := mustGit(t, repo, "rev-parse", "--short", "HEAD")
	mustGit(t, repo, "checkout", "-q", "--detach")
	ref, err = g.CurrentRef(ctx)
	if err != nil {
		t.Fatalf("CurrentRef detached failed: %v", err)
	}
	if ref != short {
		t.Errorf("CurrentRef detached = %q, want %q", ref, short)
	}
}

func TestRefExists(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	g := New(cmd.NewExecRunner(), repo)
	ctx := context.Background()

	if ok, err := g.RefExists(ctx, "master"); err != nil || !ok {
		t.Errorf("RefExists(master) = %v, %v; want true, nil", ok, err)
	}
	if ok, err := g.RefExists(ctx, "nope"); err != nil || ok {
		t.Errorf("RefExists(nope) = %v, %v; want false, nil", ok, err)
	}
}

func TestParentBranches(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	g := New(cmd.NewExecRunner(), repo)
	ctx := context.Background()

	mustGit(t, repo, "checkout", "-q", "-b", "feature-a")
	commitFile(t, repo, "a.txt", "feature a")
	mustGit(t, repo, "checkout", "-q", "-b", "feature-b")
	commitFile(t, repo, "b.txt", "feature b")

	parents, err := g.ParentBranches(ctx, "feature-b", "master")
	if err != nil {
		t.Fatalf("ParentBranches failed: %v", err)
	}
	if want := []string{"feature-a"}; !reflect.DeepEqual(parents, want) {
		t.Errorf("ParentBranches = %v, want %v", parents, want)
	}

	parents, err = g.ParentBranches(ctx, "feature-a", "master")
	if err != nil {
		t.Fatalf("ParentBranches failed: %v", err)
	}
	if len(parents) != 0 {
		t.Errorf("ParentBranches(feature-a) = %v, want none", parents)
	}
}

func TestParentBranches_SameCommit(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	g := New(cmd.NewExecRunner(), repo)

	mustGit(t, repo, "checkout", "-q", "-b", "feature-a")
	commitFile(t, repo, "a.txt", "feature a")
	mustGit(t, repo, "checkout", "-q", "-b", "feature-b")

	parents, err := g.ParentBranches(context.Background(), "feature-b", "master")
	if err != nil {
		t.Fatalf("ParentBranches failed: %v", err)
	}
	if want := []string{"feature-a"}; !reflect.DeepEqual(parents, want) {
		t.Errorf("ParentBranches = %v, want %v", parents, want)
	}
}

func TestConfigStore_Local(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	store := NewConfig(New(cmd.NewExecRunner(), repo))
	ctx := context.Background()
	const key = "nav.alias"

	values, err := store.GetAll(ctx, Local, key)
	if err != nil {
		t.Fatalf("GetAll on empty key failed: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("GetAll on empty key = %v, want none", values)
	}

	for _, v := range []string{"a=b.c", "a=bxc", "d=e"} {
		if err := store.Add(ctx, Local, key, v); err != nil {
			t.Fatalf("Add(%q) failed: %v", v, err)
		}
	}

	// The dot must be matched literally.
	if err := store.Unset(ctx, Local, key, "a=b.c"); err != nil {
		t.Fatalf("Unset failed: %v", err)
	}
	values, err = store.GetAll(ctx, Local, key)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if want := []string{"a=bxc", "d=e"}; !reflect.DeepEqual(values, want) {
		t.Errorf("GetAll = %v, want %v", values, want)
	}

	if err := store.Unset(ctx, Local, key, "missing=value"); err != nil {
		t.Errorf("Unset of missing value = %v, want nil", err)
	}
}

func TestCherryCandidates(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	g := New(cmd.NewExecRunner(), repo)
	ctx := context.Background()

	mustGit(t, repo, "checkout", "-q", "-b", "topic")
	commitFile(t, repo, "one.txt", "first change")
	first := mustGit(t, repo, "rev-parse", "HEAD")
	commitFile(t, repo, "two.txt", "second change")
	mustGit(t, repo, "checkout", "-q", "master")
	mustGit(t, repo, "cherry-pick", first)

	commits, err := g.CherryCandidates(ctx, "HEAD", "topic")
	if err != nil {
		t.Fatalf("CherryCandidates failed: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("CherryCandidates = %v, want 2 commits", commits)
	}
	if !commits[0].Applied || commits[0].Subject != "first change" {
		t.Errorf("commits[0] = %+v, want applied first change", commits[0])
	}
	if commits[1].Applied || commits[1].Subject != "second change" {
		t.Errorf("commits[1] = %+v, want pending second change", commits[1])
	}
}

func TestParseDecorations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"HEAD -> main", []string{"main"}},
		{"HEAD -> feature, other", []string{"feature", "other"}},
		{"HEAD", []string{"HEAD"}},
		{"tag: v1.0, release", []string{"v1.0", "release"}},
	}
	for _, tt := range tests {
		if got := parseDecorations(tt.line); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseDecorations(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestParseCherryLine(t *testing.T) {
	t.Parallel()
	c, ok := parseCherryLine("+ abc123 add thing")
	if !ok || c.SHA != "abc123" || c.Subject != "add thing" || c.Applied {
		t.Errorf("parseCherryLine(+) = %+v, %v", c, ok)
	}
	c, ok = parseCherryLine("- def456")
	if !ok || c.SHA != "def456" || !c.Applied {
		t.Errorf("parseCherryLine(-) = %+v, %v", c, ok)
	}
	if _, ok := parseCherryLine("garbage"); ok {
		t.Error("parseCherryLine(garbage) ok = true")
	}
}

func TestScopeString(t *testing.T) {
	t.Parallel()
	if Local.String() != "local" || Global.String() != "global" {
		t.Errorf("Scope strings = %q, %q", Local, Global)
	}
	if !strings.HasPrefix(Global.flag(), "--") {
		t.Errorf("flag = %q", Global.flag())
	}
}
