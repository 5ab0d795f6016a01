// Package history keeps the jump history used by "git nav -" and numeric
// destinations. Entries are stored most recent first, one reference per
// line, in a flat file inside the repository's git directory.
package history

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/raphi011/gitnav/internal/storage"
)

// DefaultMaxLen is the number of entries kept when saving.
const DefaultMaxLen = 20

// FileName is the name of the history file inside the git directory.
const FileName = "nav_history"

// IndexError reports a history index outside the recorded entries.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%d is not a valid index (history has %d entries)", e.Index, e.Len)
}

// History is an in-memory copy of the jump history file.
type History struct {
	path    string
	maxLen  int
	entries []string
}

// Load reads the history file at path. A missing file yields an empty history.
// maxLen caps the number of entries written by Save.
func Load(path string, maxLen int) (*History, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	h := &History{path: path, maxLen: maxLen}

	data, ok, err := storage.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if !ok {
		return h, nil
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if ref := strings.TrimSpace(sc.Text()); ref != "" {
			h.entries = append(h.entries, ref)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return h, nil
}

// Path returns the file the history is loaded from and saved to.
func (h *History) Path() string {
	return h.path
}

// MaxLen returns the number of entries Save keeps.
func (h *History) MaxLen() int {
	return h.maxLen
}

// Len returns the number of entries in memory.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries, most recent first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Push records ref as the most recent entry. Pushing the current front again
// is a no-op, so consecutive duplicates never appear.
func (h *History) Push(ref string) {
	if ref == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[0] == ref {
		return
	}
	h.entries = append([]string{ref}, h.entries...)
}

// Pop removes and returns the most recent entry.
// ok is false when the history is empty.
func (h *History) Pop() (ref string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	ref = h.entries[0]
	h.entries = h.entries[1:]
	return ref, true
}

// Peek returns the most recent entry without removing it.
func (h *History) Peek() (ref string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[0], true
}

// At returns the entry at the 1-based index, as shown by "git nav history".
func (h *History) At(index int) (string, error) {
	if index < 1 || index > len(h.entries) {
		return "", &IndexError{Index: index, Len: len(h.entries)}
	}
	return h.entries[index-1], nil
}

// Retain keeps only the entries for which keep returns true and reports
// how many were dropped. Call Save to persist.
func (h *History) Retain(keep func(ref string) bool) int {
	kept := h.entries[:0]
	for _, ref := range h.entries {
		if keep(ref) {
			kept = append(kept, ref)
		}
	}
	dropped := len(h.entries) - len(kept)
	h.entries = kept
	return dropped
}

// Clear drops all entries. Call Save to persist.
func (h *History) Clear() {
	h.entries = nil
}

// Save writes the first MaxLen entries to disk atomically.
func (h *History) Save() error {
	keep := h.entries
	if len(keep) > h.maxLen {
		keep = keep[:h.maxLen]
	}

	var buf bytes.Buffer
	for _, ref := range keep {
		buf.WriteString(ref)
		buf.WriteByte('\n')
	}

	if err := storage.WriteFile(h.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
