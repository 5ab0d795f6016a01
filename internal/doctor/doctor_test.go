package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/gitnav/internal/alias"
	"github.com/raphi011/gitnav/internal/cmd/cmdtest"
	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/history"
	"github.com/raphi011/gitnav/internal/hooks"
	"github.com/raphi011/gitnav/internal/log"
	"github.com/raphi011/gitnav/internal/nav"
	"github.com/raphi011/gitnav/internal/output"
)

const (
	localAliases  = "git config --local --get-all nav.alias"
	globalAliases = "git config --global --get-all nav.alias"
)

func missingRef(ref string) string {
	return "git rev-parse --verify --quiet " + ref + "^{commit}"
}

type fixture struct {
	fake *cmdtest.Fake
	deps Deps
	out  *bytes.Buffer
	ctx  context.Context
}

func newFixture(t *testing.T, historyRefs ...string) *fixture {
	t.Helper()
	dir := t.TempDir()

	fake := cmdtest.NewFake()
	g := git.New(fake, "")

	h, err := history.Load(filepath.Join(dir, history.FileName), history.DefaultMaxLen)
	if err != nil {
		t.Fatal(err)
	}
	for i := len(historyRefs) - 1; i >= 0; i-- {
		h.Push(historyRefs[i])
	}

	hookPath := filepath.Join(dir, "hooks", "post-checkout")
	m := hooks.NewManager(hookPath)
	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(hookPath, []byte(hooks.Script), 0o755); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&out, false, false))
	ctx = output.WithPrinter(ctx, &out)

	return &fixture{
		fake: fake,
		out:  &out,
		ctx:  ctx,
		deps: Deps{
			Git: g,
			Paths: nav.Paths{
				GitDir:          dir,
				HistoryFile:     h.Path(),
				HookFile:        hookPath,
				LegacyAliasFile: filepath.Join(dir, alias.LegacyFileName),
			},
			Hooks:   m,
			Aliases: alias.NewStore(git.NewConfig(g)),
			History: h,
		},
	}
}

func TestCheck_Healthy(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "main", "feature")

	issues, err := Check(f.ctx, f.deps)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("Check() = %+v, want no issues", issues)
	}
}

func TestCheck_Hook(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string // empty removes the hook
		want    FixAction
	}{
		{"missing", "", FixInstallHook},
		{"foreign", "#!/bin/sh\necho mine\n", FixNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			path := f.deps.Hooks.Path()
			if tt.content == "" {
				os.Remove(path)
			} else if err := os.WriteFile(path, []byte(tt.content), 0o755); err != nil {
				t.Fatal(err)
			}

			issues, err := Check(f.ctx, f.deps)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if len(issues) != 1 || issues[0].Category != CategoryHook {
				t.Fatalf("Check() = %+v, want one hook issue", issues)
			}
			if issues[0].FixAction != tt.want {
				t.Errorf("FixAction = %q, want %q", issues[0].FixAction, tt.want)
			}
		})
	}
}

func TestCheck_StaleHistory(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "main", "deleted", "main")
	f.fake.On(missingRef("deleted"), cmdtest.Response{ExitCode: 1})

	issues, err := Check(f.ctx, f.deps)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(issues) != 1 || issues[0].Subject != "deleted" || issues[0].FixAction != FixPruneHistory {
		t.Fatalf("Check() = %+v, want one stale history entry", issues)
	}

	var checks int
	for _, c := range f.fake.Commands() {
		if c == missingRef("main") {
			checks++
		}
	}
	if checks != 1 {
		t.Errorf("main was checked %d times, want 1", checks)
	}
}

func TestCheck_Aliases(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.fake.On(localAliases, cmdtest.Response{Stdout: "ok=main\nold=gone\n"})
	f.fake.On(globalAliases, cmdtest.Response{Stdout: "g=also-gone\n"})
	f.fake.On(missingRef("gone"), cmdtest.Response{ExitCode: 1})
	f.fake.On(missingRef("also-gone"), cmdtest.Response{ExitCode: 1})
	if err := os.WriteFile(f.deps.Paths.LegacyAliasFile, []byte("[aliases]\nm = main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	issues, err := Check(f.ctx, f.deps)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("Check() = %+v, want 3 alias issues", issues)
	}
	if issues[0].FixAction != FixMigrateAliases {
		t.Errorf("first issue = %+v, want legacy migration", issues[0])
	}
	if issues[1].Subject != "old (local)" || issues[1].Hint != "git nav alias -d old" {
		t.Errorf("local issue = %+v", issues[1])
	}
	if issues[2].Subject != "g (global)" || issues[2].Hint != "git nav alias -g -d g" {
		t.Errorf("global issue = %+v", issues[2])
	}
}

func TestCheck_Config(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.deps.LoadConfig = func() (string, error) {
		return "/tmp/config.toml", errors.New("max_history must be between 1 and 100, got 0")
	}

	issues, err := Check(f.ctx, f.deps)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(issues) != 1 || issues[0].Category != CategoryConfig || issues[0].Fixable() {
		t.Fatalf("Check() = %+v, want one unfixable config issue", issues)
	}
}

func TestCheck_GitFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "main")
	f.fake.On(missingRef("main"), cmdtest.Response{ExitCode: 128, Stderr: "fatal: not a git repository"})

	if _, err := Check(f.ctx, f.deps); err == nil {
		t.Fatal("Check() error = nil, want git failure")
	}
}

func TestRun_Fix(t *testing.T) {
	t.Parallel()
	f := newFixture(t, "main", "deleted")
	f.fake.On(missingRef("deleted"), cmdtest.Response{ExitCode: 1})
	os.Remove(f.deps.Hooks.Path())

	if err := Run(f.ctx, f.deps, true); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	st, err := f.deps.Hooks.Status()
	if err != nil {
		t.Fatal(err)
	}
	if st.State != hooks.Current {
		t.Errorf("hook state = %v, want current", st.State)
	}

	loaded, err := history.Load(f.deps.Paths.HistoryFile, history.DefaultMaxLen)
	if err != nil {
		t.Fatal(err)
	}
	if got := loaded.Entries(); len(got) != 1 || got[0] != "main" {
		t.Errorf("saved history = %v, want [main]", got)
	}
	if !strings.Contains(f.out.String(), "Fixed 2 of 2 issues") {
		t.Errorf("output = %q, want fix summary", f.out.String())
	}
}

func TestRun_ReportOnly(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	os.Remove(f.deps.Hooks.Path())

	if err := Run(f.ctx, f.deps, false); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := os.Stat(f.deps.Hooks.Path()); !os.IsNotExist(err) {
		t.Error("report only run installed the hook")
	}
	out := f.out.String()
	for _, want := range []string{"Hook issues:", "git nav doctor --fix"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_NoIssues(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if err := Run(f.ctx, f.deps, false); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(f.out.String(), "No issues found") {
		t.Errorf("output = %q, want all clear", f.out.String())
	}
}
