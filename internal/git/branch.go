package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// CurrentBranch returns the checked-out branch name via the git CLI. It is
// used to default the push-event branch when none is given on the command
// line.
func CurrentBranch() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to detect current branch: %w", err)
	}

	branch := strings.TrimSpace(string(output))
	if branch == "" || branch == "HEAD" {
		// Detached HEAD has no branch name to match trigger patterns against
		return "", fmt.Errorf("not on a branch (detached HEAD)")
	}

	return branch, nil
}
