package rechain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/raphi011/gitnav/internal/cmd"
	"github.com/raphi011/gitnav/internal/cmd/cmdtest"
	"github.com/raphi011/gitnav/internal/git"
)

func stackFake() *cmdtest.Fake {
	fake := cmdtest.NewFake()
	fake.On("git rev-parse --abbrev-ref HEAD", cmdtest.Response{Stdout: "work\n"})
	fake.On("git rev-parse --verify --quiet a^{commit}", cmdtest.Response{Stdout: "aaaa\n"})
	fake.On("git rev-parse --verify --quiet b^{commit}", cmdtest.Response{Stdout: "bbbb\n"})
	fake.On("git rev-parse --verify --quiet c^{commit}", cmdtest.Response{Stdout: "cccc\n"})
	fake.On("git merge-base master a", cmdtest.Response{Stdout: "base0\n"})
	return fake
}

func TestPlan(t *testing.T) {
	t.Parallel()
	r := New(git.New(stackFake(), ""))

	plan, err := r.Plan(context.Background(), "master", []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	want := []Step{
		{Branch: "a", NewBase: "master", OldBase: "base0"},
		{Branch: "b", NewBase: "a", OldBase: "aaaa"},
		{Branch: "c", NewBase: "b", OldBase: "bbbb"},
	}
	if !reflect.DeepEqual(plan.Steps, want) {
		t.Errorf("Steps = %+v, want %+v", plan.Steps, want)
	}
	if plan.Start != "work" {
		t.Errorf("Start = %q, want work", plan.Start)
	}
	if got := want[1].Command(); got != "git rebase --onto a aaaa b" {
		t.Errorf("Command = %q", got)
	}
}

func TestPlan_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		branches []string
		want     string
	}{
		{"empty", nil, "no branches"},
		{"duplicate", []string{"a", "a"}, "more than once"},
		{"base in list", []string{"master", "a"}, "more than once"},
		{"unknown", []string{"a", "nope"}, `unknown revision "nope"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fake := stackFake()
			fake.On("git rev-parse --verify --quiet nope^{commit}", cmdtest.Response{ExitCode: 1})
			_, err := New(git.New(fake, "")).Plan(context.Background(), "master", tt.branches)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Plan error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	t.Parallel()
	fake := stackFake()
	r := New(git.New(fake, ""))
	ctx := context.Background()

	plan, err := r.Plan(ctx, "master", []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	fake.Reset()
	if err := r.Run(ctx, plan); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []string{
		"git rebase --onto master base0 a",
		"git rebase --onto a aaaa b",
		"git checkout work",
	}
	if got := fake.Commands(); !reflect.DeepEqual(got, want) {
		t.Errorf("commands = %v, want %v", got, want)
	}
}

func TestRun_StopsOnConflict(t *testing.T) {
	t.Parallel()
	fake := stackFake()
	fake.On("git rebase --onto a aaaa b", cmdtest.Response{ExitCode: 1})
	r := New(git.New(fake, ""))
	ctx := context.Background()

	plan, err := r.Plan(ctx, "master", []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	err = r.Run(ctx, plan)

	var stopped *StoppedError
	if !errors.As(err, &stopped) {
		t.Fatalf("Run error = %v, want *StoppedError", err)
	}
	if stopped.Step.Branch != "b" || len(stopped.Remaining) != 1 || stopped.Remaining[0].Branch != "c" {
		t.Errorf("stopped = %+v", stopped)
	}
	if cmd.IsSilent(err) {
		t.Error("StoppedError must be reported")
	}
	msg := err.Error()
	for _, want := range []string{"git rebase --continue", "git rebase --onto b bbbb c", "git checkout work"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q lacks %q", msg, want)
		}
	}
	if fake.Ran("git rebase --onto b bbbb c") {
		t.Error("chain continued after a failed rebase")
	}
}

func TestRechain_RealRepo(t *testing.T) {
	t.Parallel()
	if err := git.CheckGit(); err != nil {
		t.Skip(err)
	}
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	g := git.New(cmd.NewExecRunner(), dir)
	run := func(args ...string) string {
		t.Helper()
		res, err := cmd.NewExecRunner().Run(ctx, cmd.Options{Dir: dir}, "git", args...)
		if err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
		return strings.TrimSpace(res.Output)
	}
	commit := func(name string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		run("add", name)
		run("commit", "-q", "-m", name)
	}

	run("init", "-q", "-b", "master")
	run("config", "user.email", "test@test.com")
	run("config", "user.name", "Test User")
	run("config", "commit.gpgsign", "false")
	commit("base.txt")
	run("checkout", "-q", "-b", "a")
	commit("a.txt")
	run("checkout", "-q", "-b", "b")
	commit("b.txt")
	run("checkout", "-q", "master")
	commit("master2.txt")
	run("checkout", "-q", "a")

	r := New(g)
	plan, err := r.Plan(ctx, "master", []string{"a", "b"})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if err := r.Run(ctx, plan); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if cur, _ := g.CurrentRef(ctx); cur != "a" {
		t.Errorf("current branch = %q, want a", cur)
	}
	master := run("rev-parse", "master")
	if base := run("merge-base", "master", "b"); base != master {
		t.Errorf("b does not contain master's new commit")
	}
	if got := run("log", "--format=%s", "master..b"); got != "b.txt\na.txt" {
		t.Errorf("commits on b = %q, want b.txt and a.txt once each", got)
	}
}
