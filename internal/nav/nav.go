// Package nav interprets git-nav destinations and performs the checkout.
//
// A destination is one of:
//
//   - "-": the most recent history entry, which is consumed
//   - "..": the nearest local branch below the current one that is not part of the root branch
//   - a number no larger than the history cap: 1-based history index
//   - anything else: an alias name, or a reference used as is
package nav

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/raphi011/gitnav/internal/alias"
	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/history"
	"github.com/raphi011/gitnav/internal/log"
)

var (
	// ErrNoPrevious is returned for "-" when the history is empty.
	ErrNoPrevious = errors.New("no previous branch")
	// ErrNoParent is returned for ".." when no parent branch exists.
	ErrNoParent = errors.New("no parent to jump to")
)

const (
	previousDest = "-"
	parentDest   = ".."
)

// Kind classifies a destination argument.
type Kind int

const (
	KindRef Kind = iota
	KindPrevious
	KindParent
	KindIndex
)

// Destination is a parsed destination argument.
type Destination struct {
	Kind  Kind
	Raw   string
	Index int // for KindIndex
}

// Parse classifies dest. Numbers above maxIndex are treated as references
// so that numeric branch names stay reachable.
func Parse(dest string, maxIndex int) Destination {
	switch dest {
	case previousDest:
		return Destination{Kind: KindPrevious, Raw: dest}
	case parentDest:
		return Destination{Kind: KindParent, Raw: dest}
	}
	if isDigits(dest) {
		if n, err := strconv.Atoi(dest); err == nil && n <= maxIndex {
			return Destination{Kind: KindIndex, Raw: dest, Index: n}
		}
	}
	return Destination{Kind: KindRef, Raw: dest}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Options modify a checkout.
type Options struct {
	// Merge carries local changes over with "git checkout -m".
	Merge bool
}

// Navigator resolves destinations and checks them out.
type Navigator struct {
	git     *git.Git
	aliases *alias.Store
	history *history.History
	rootRef string
}

// New returns a Navigator. rootRef bounds the ".." walk.
func New(g *git.Git, aliases *alias.Store, h *history.History, rootRef string) *Navigator {
	return &Navigator{git: g, aliases: aliases, history: h, rootRef: rootRef}
}

// History returns the navigator's jump history.
func (n *Navigator) History() *history.History {
	return n.history
}

// Resolve returns the reference dest points at without changing anything.
// "-" peeks at the history instead of consuming it.
func (n *Navigator) Resolve(ctx context.Context, dest string) (string, error) {
	d := Parse(dest, n.history.MaxLen())
	if d.Kind == KindPrevious {
		ref, ok := n.history.Peek()
		if !ok {
			return "", ErrNoPrevious
		}
		return ref, nil
	}
	return n.resolve(ctx, d)
}

func (n *Navigator) resolve(ctx context.Context, d Destination) (string, error) {
	switch d.Kind {
	case KindParent:
		current, err := n.git.CurrentRef(ctx)
		if err != nil {
			return "", err
		}
		parents, err := n.git.ParentBranches(ctx, current, n.rootRef)
		if err != nil {
			return "", err
		}
		if len(parents) == 0 {
			return "", ErrNoParent
		}
		return parents[0], nil
	case KindIndex:
		return n.history.At(d.Index)
	default:
		return n.aliases.Resolve(ctx, d.Raw)
	}
}

// Go resolves dest and checks it out. It returns the checked out reference.
func (n *Navigator) Go(ctx context.Context, dest string, opts Options) (string, error) {
	d := Parse(dest, n.history.MaxLen())

	var target string
	if d.Kind == KindPrevious {
		ref, ok := n.history.Pop()
		if !ok {
			return "", ErrNoPrevious
		}
		// The hook started by the checkout reloads the file, so it must be
		// written first.
		if err := n.history.Save(); err != nil {
			return "", err
		}
		target = ref
	} else {
		ref, err := n.resolve(ctx, d)
		if err != nil {
			return "", err
		}
		target = ref
	}

	log.FromContext(ctx).Debug("checking out", "dest", dest, "target", target, "merge", opts.Merge)
	if err := n.git.Checkout(ctx, target, opts.Merge); err != nil {
		return "", err
	}
	return target, nil
}

// RecordJump stores from in the history after a checkout from one
// reference to another. It never checks anything out.
func (n *Navigator) RecordJump(ctx context.Context, from, to string) error {
	if from == "" || from == to {
		return nil
	}
	n.history.Push(from)
	if err := n.history.Save(); err != nil {
		return fmt.Errorf("record jump: %w", err)
	}
	log.FromContext(ctx).Debug("recorded jump", "from", from, "to", to)
	return nil
}
