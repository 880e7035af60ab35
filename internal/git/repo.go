package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner runs one git command in dir and returns its combined output
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExecRunner runs the git binary found in PATH
type ExecRunner struct{}

// Run executes git with args in dir
func (ExecRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return output, fmt.Errorf("git not found in PATH\nPublishing requires Git to be installed.\nInstall Git: https://git-scm.com/downloads")
		}
		return output, &CommandError{Args: args, Output: strings.TrimSpace(string(output)), Err: err}
	}
	return output, nil
}

// CommandError reports a git command that exited unsuccessfully
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Output != "" {
		msg += "\n" + e.Output
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// Repo is a working directory published to a single remote
type Repo struct {
	Dir    string
	runner Runner
}

// NewRepo creates a Repo for dir. A nil runner uses the git binary.
func NewRepo(dir string, runner Runner) *Repo {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Repo{Dir: dir, runner: runner}
}

func (r *Repo) git(ctx context.Context, args ...string) ([]byte, error) {
	return r.runner.Run(ctx, r.Dir, args...)
}

// ForcePush commits everything in the working directory and force-pushes it
// to remote as branch, returning the paths staged by this publish as git
// status reports them ("XY path"). The repository is initialised when needed
// and its origin is replaced by remote. A commit with no changes is not an
// error.
func (r *Repo) ForcePush(ctx context.Context, remote, branch, message string) ([]string, error) {
	if _, err := r.git(ctx, "init"); err != nil {
		return nil, fmt.Errorf("failed to initialise repository in %s: %w", r.Dir, err)
	}
	// origin does not exist on first publish
	_, _ = r.git(ctx, "remote", "remove", "origin")

	if _, err := r.git(ctx, "add", "."); err != nil {
		return nil, fmt.Errorf("failed to stage files: %w", err)
	}
	changes, err := r.Changes(ctx)
	if err != nil {
		return nil, err
	}
	if output, err := r.git(ctx, "commit", "-m", message); err != nil && !nothingToCommit(output) {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	if _, err := r.git(ctx, "branch", "-M", branch); err != nil {
		return nil, fmt.Errorf("failed to rename branch to %s: %w", branch, err)
	}
	if _, err := r.git(ctx, "remote", "add", "origin", remote); err != nil {
		return nil, fmt.Errorf("failed to add remote %s: %w", remote, err)
	}
	if _, err := r.git(ctx, "push", "-u", "origin", branch, "--force"); err != nil {
		return nil, fmt.Errorf("failed to push to %s: %w", remote, err)
	}
	return changes, nil
}

func nothingToCommit(output []byte) bool {
	s := string(output)
	return strings.Contains(s, "nothing to commit") || strings.Contains(s, "nothing added to commit")
}

// Changes lists uncommitted paths as reported by git status, one
// "XY path" entry per file.
func (r *Repo) Changes(ctx context.Context) ([]string, error) {
	output, err := r.git(ctx, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to check Git status: %w", err)
	}

	var changes []string
	for _, line := range strings.Split(string(output), "\n") {
		if len(strings.TrimSpace(line)) < 3 {
			continue
		}
		changes = append(changes, line)
	}
	return changes, nil
}
