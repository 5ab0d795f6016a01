package cmd

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/raphi011/gitnav/internal/log"
)

func logCtx() context.Context {
	l := log.New(&bytes.Buffer{}, false, false)
	return log.WithLogger(context.Background(), l)
}

func TestRun_Capture(t *testing.T) {
	t.Parallel()
	r := NewExecRunner()
	res, err := r.Run(logCtx(), Options{}, "echo", "hello")
	if err != nil {
		t.Fatalf("Run(echo hello) = %v, want nil", err)
	}
	if res.Output != "hello\n" {
		t.Errorf("Output = %q, want %q", res.Output, "hello\n")
	}
}

func TestRun_Lines(t *testing.T) {
	t.Parallel()
	r := NewExecRunner()
	res, err := r.Run(logCtx(), Options{Mode: Lines}, "printf", "a\nb\n")
	if err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(res.Lines, want) {
		t.Errorf("Lines = %q, want %q", res.Lines, want)
	}
}

func TestRun_Stream(t *testing.T) {
	t.Parallel()
	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stderr}
	res, err := r.Run(logCtx(), Options{Mode: Stream}, "sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	if res.Output != "" {
		t.Errorf("Output = %q, want empty in stream mode", res.Output)
	}
	if stdout.String() != "out\n" || stderr.String() != "err\n" {
		t.Errorf("streamed stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
}

func TestRun_FailureCarriesStderr(t *testing.T) {
	t.Parallel()
	r := NewExecRunner()
	_, err := r.Run(logCtx(), Options{}, "sh", "-c", "echo 'bad thing' >&2; exit 3")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("Code = %d, want 3", exitErr.Code)
	}
	if exitErr.Stderr != "bad thing" {
		t.Errorf("Stderr = %q, want %q", exitErr.Stderr, "bad thing")
	}
	if IsSilent(err) {
		t.Error("IsSilent = true without Quiet")
	}
}

func TestRun_AllowedExitCode(t *testing.T) {
	t.Parallel()
	r := NewExecRunner()
	res, err := r.Run(logCtx(), Options{AllowExitCodes: []int{1}}, "sh", "-c", "exit 1")
	if err != nil {
		t.Fatalf("Run = %v, want nil for allowed exit code", err)
	}
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
}

func TestRun_QuietIsSilent(t *testing.T) {
	t.Parallel()
	r := NewExecRunner()
	_, err := r.Run(logCtx(), Options{Quiet: true}, "sh", "-c", "exit 2")
	if err == nil {
		t.Fatal("Run = nil, want error")
	}
	if !IsSilent(err) {
		t.Errorf("IsSilent(%v) = false, want true", err)
	}
}

func TestRun_NotFound(t *testing.T) {
	t.Parallel()
	r := NewExecRunner()
	_, err := r.Run(logCtx(), Options{}, "definitely-not-a-command-gitnav")
	if err == nil {
		t.Fatal("Run = nil, want error for missing binary")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("missing binary reported as exit error: %v", err)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(logCtx())
	cancel()
	_, err := NewExecRunner().Run(ctx, Options{}, "sleep", "10")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestRun_Dir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	res, err := NewExecRunner().Run(logCtx(), Options{Dir: dir}, "pwd")
	if err != nil {
		t.Fatalf("Run with dir = %v, want nil", err)
	}
	if res.Output == "" {
		t.Error("pwd printed nothing")
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"\n", nil},
		{"a", []string{"a"}},
		{"a\nb\n", []string{"a", "b"}},
		{"a\n\nb", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
