package output

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if p := FromContext(WithPrinter(context.Background(), &buf)); p.Writer() != &buf {
		t.Error("FromContext() did not return the attached printer")
	}
	if p := FromContext(context.Background()); p.Writer() != os.Stdout {
		t.Error("FromContext() without a printer should write to stdout")
	}
}

func TestPrinter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	p.Print("feature", "/", "login")
	p.Printf(" #%d\n", 2)
	p.Println("main")

	if got, want := buf.String(), "feature/login #2\nmain\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrinter_StripsStylesForPipes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	p.Println("\x1b[1mmain\x1b[0m")
	if got := buf.String(); got != "main\n" {
		t.Errorf("Println() wrote %q, want %q", got, "main\n")
	}
	if p.IsTerminal() {
		t.Error("IsTerminal() = true for a buffer")
	}
}

func TestPrinter_WriterIsRaw(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)

	// The raw writer bypasses profile handling, for data that must not be
	// touched such as the hook script.
	if _, err := p.Writer().Write([]byte("\x1b[1mraw\x1b[0m")); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\x1b[1mraw\x1b[0m" {
		t.Errorf("Writer() output = %q, want it unchanged", got)
	}
}
