// Package rechain rebases a stack of dependent branches, each onto the
// rebased tip of the one before it.
package rechain

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/log"
)

// Step is one "git rebase --onto NewBase OldBase Branch".
type Step struct {
	Branch  string
	NewBase string
	OldBase string // commit hash recorded before any rebase ran
}

// Command returns the git command line for the step.
func (s Step) Command() string {
	return fmt.Sprintf("git rebase --onto %s %s %s", s.NewBase, s.OldBase, s.Branch)
}

// Plan is a rebase chain ready to run.
type Plan struct {
	Base  string
	Start string // checked out again when the chain finishes
	Steps []Step
}

// StoppedError reports a chain interrupted by a failing rebase.
type StoppedError struct {
	Step      Step
	Remaining []Step
	Start     string
	Err       error
}

func (e *StoppedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rebase of %s stopped", e.Step.Branch)
	b.WriteString("\nresolve the conflict, then run:\n  git rebase --continue")
	for _, s := range e.Remaining {
		b.WriteString("\n  " + s.Command())
	}
	if e.Start != "" {
		b.WriteString("\n  git checkout " + e.Start)
	}
	return b.String()
}

// Rechainer plans and runs rebase chains.
type Rechainer struct {
	git *git.Git
}

// New returns a Rechainer working through g.
func New(g *git.Git) *Rechainer {
	return &Rechainer{git: g}
}

// Plan records the current tips of branches, bottom of the stack first,
// and derives the rebase of each onto its predecessor. The first branch
// moves onto base, starting from its merge base with base.
func (r *Rechainer) Plan(ctx context.Context, base string, branches []string) (*Plan, error) {
	if len(branches) == 0 {
		return nil, fmt.Errorf("no branches to rechain")
	}
	seen := map[string]bool{}
	for _, ref := range append([]string{base}, branches...) {
		if seen[ref] {
			return nil, fmt.Errorf("%s is listed more than once", ref)
		}
		seen[ref] = true
		ok, err := r.git.RefExists(ctx, ref)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unknown revision %q", ref)
		}
	}

	start, err := r.git.CurrentRef(ctx)
	if err != nil {
		return nil, err
	}

	tips := make([]string, len(branches))
	for i, b := range branches {
		if tips[i], err = r.git.RevParse(ctx, b); err != nil {
			return nil, err
		}
	}

	oldBase, err := r.git.MergeBase(ctx, base, branches[0])
	if err != nil {
		return nil, err
	}

	plan := &Plan{Base: base, Start: start}
	newBase := base
	for i, b := range branches {
		plan.Steps = append(plan.Steps, Step{Branch: b, NewBase: newBase, OldBase: oldBase})
		newBase, oldBase = b, tips[i]
	}
	return plan, nil
}

// Run executes the plan and returns to the starting branch. A failing
// rebase stops the chain with a *StoppedError listing what is left.
func (r *Rechainer) Run(ctx context.Context, plan *Plan) error {
	l := log.FromContext(ctx)
	for i, step := range plan.Steps {
		l.Printf("Rebasing %s onto %s\n", step.Branch, step.NewBase)
		if err := r.git.RebaseOnto(ctx, step.NewBase, step.OldBase, step.Branch); err != nil {
			return &StoppedError{
				Step:      step,
				Remaining: plan.Steps[i+1:],
				Start:     plan.Start,
				Err:       err,
			}
		}
	}
	if plan.Start == "" {
		return nil
	}
	return r.git.Checkout(ctx, plan.Start, false)
}
