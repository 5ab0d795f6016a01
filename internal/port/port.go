// Package port selects commits of another branch that the current branch
// lacks and cherry-picks them.
package port

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/raphi011/gitnav/internal/git"
	"github.com/raphi011/gitnav/internal/log"
)

// ErrNothingToPort is returned when no commit survives the selection.
var ErrNothingToPort = errors.New("nothing to port")

// Selection narrows the candidate commits. Empty fields select everything.
type Selection struct {
	// Grep keeps commits whose subject matches.
	Grep *regexp.Regexp
	// Picks keeps commits whose hash starts with one of the prefixes.
	Picks []string
}

// Plan is the ordered list of commits to cherry-pick.
type Plan struct {
	Source  string
	Commits []git.CherryCommit // oldest first
	Applied int                // candidates skipped because HEAD has an equivalent change
}

// SHAs returns the hashes of the planned commits in order.
func (p *Plan) SHAs() []string {
	shas := make([]string, len(p.Commits))
	for i, c := range p.Commits {
		shas[i] = c.SHA
	}
	return shas
}

// Porter ports commits onto the checked out branch.
type Porter struct {
	git *git.Git
}

// New returns a Porter working through g.
func New(g *git.Git) *Porter {
	return &Porter{git: g}
}

// Plan lists the commits of source missing from HEAD that match sel.
func (p *Porter) Plan(ctx context.Context, source string, sel Selection) (*Plan, error) {
	ok, err := p.git.RefExists(ctx, source)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("unknown revision %q", source)
	}

	candidates, err := p.git.CherryCandidates(ctx, "HEAD", source)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Source: source}
	matched := make([]bool, len(sel.Picks))
	for _, c := range candidates {
		if c.Applied {
			plan.Applied++
			continue
		}
		if sel.Grep != nil && !sel.Grep.MatchString(c.Subject) {
			continue
		}
		if len(sel.Picks) > 0 && !markPicks(sel.Picks, c.SHA, matched) {
			continue
		}
		plan.Commits = append(plan.Commits, c)
	}

	for i, pick := range sel.Picks {
		if !matched[i] {
			return nil, fmt.Errorf("commit %s is not a pending commit of %s", pick, source)
		}
	}
	if len(plan.Commits) == 0 {
		return nil, ErrNothingToPort
	}

	log.FromContext(ctx).Debug("port plan", "source", source, "commits", len(plan.Commits), "applied", plan.Applied)
	return plan, nil
}

// Apply cherry-picks the planned commits in one git invocation so a
// conflict leaves git's own sequencer state for --continue or --abort.
func (p *Porter) Apply(ctx context.Context, plan *Plan, recordOrigin bool) error {
	if len(plan.Commits) == 0 {
		return ErrNothingToPort
	}
	return p.git.CherryPick(ctx, recordOrigin, plan.SHAs()...)
}

// markPicks flags every pick that is a prefix of sha and reports whether
// any was.
func markPicks(picks []string, sha string, matched []bool) bool {
	var hit bool
	for i, pick := range picks {
		if pick != "" && strings.HasPrefix(sha, pick) {
			matched[i] = true
			hit = true
		}
	}
	return hit
}
