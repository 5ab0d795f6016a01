package git

import (
	"context"
	"fmt"
	"strings"
)

// CherryCommit is one line of "git cherry -v" output.
type CherryCommit struct {
	SHA     string
	Subject string
	Applied bool // an equivalent change already exists upstream
}

// CherryCandidates lists commits of head that are not in upstream, oldest
// first, marking those whose change is already present upstream.
func (g *Git) CherryCandidates(ctx context.Context, upstream, head string) ([]CherryCommit, error) {
	lines, err := g.lines(ctx, "cherry", "-v", upstream, head)
	if err != nil {
		return nil, fmt.Errorf("git cherry %s %s: %w", upstream, head, err)
	}

	commits := make([]CherryCommit, 0, len(lines))
	for _, line := range lines {
		c, ok := parseCherryLine(line)
		if !ok {
			continue
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// parseCherryLine parses "+ <sha> <subject>" or "- <sha> <subject>".
func parseCherryLine(line string) (CherryCommit, bool) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) < 2 || (fields[0] != "+" && fields[0] != "-") {
		return CherryCommit{}, false
	}
	c := CherryCommit{SHA: fields[1], Applied: fields[0] == "-"}
	if len(fields) == 3 {
		c.Subject = fields[2]
	}
	return c, true
}

// CherryPick applies shas onto the current branch in order. With
// recordOrigin the source commit is noted in the message (-x).
func (g *Git) CherryPick(ctx context.Context, recordOrigin bool, shas ...string) error {
	args := []string{"cherry-pick"}
	if recordOrigin {
		args = append(args, "-x")
	}
	args = append(args, shas...)
	return g.stream(ctx, args...)
}

// RebaseOnto replays the commits of branch after oldBase onto newBase.
func (g *Git) RebaseOnto(ctx context.Context, newBase, oldBase, branch string) error {
	return g.stream(ctx, "rebase", "--onto", newBase, oldBase, branch)
}
