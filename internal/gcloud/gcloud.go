// Package gcloud wraps the gcloud CLI for the handful of invocations the
// bootstrap flow needs. Every call is non-interactive (--quiet) and
// captures combined stdout/stderr so rejections surface the tool's own
// words as the reason.
package gcloud

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// execRunner runs commands through os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	// #nosec G204 -- arguments are assembled from validated configuration
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// CLI invokes the gcloud binary.
type CLI struct {
	runner Runner
}

// New returns a CLI backed by the real gcloud binary.
func New() *CLI {
	return &CLI{runner: execRunner{}}
}

// NewWithRunner returns a CLI backed by a custom runner, for tests.
func NewWithRunner(r Runner) *CLI {
	return &CLI{runner: r}
}

// CreateProject submits a project create request. A nonzero exit comes
// back as an error carrying gcloud's combined output; the caller decides
// whether to retry with a new ID.
func (c *CLI) CreateProject(ctx context.Context, projectID string) error {
	return c.run(ctx, "projects", "create", projectID, "--quiet")
}

// SetActiveProject makes projectID the active default for subsequent
// gcloud invocations.
func (c *CLI) SetActiveProject(ctx context.Context, projectID string) error {
	return c.run(ctx, "config", "set", "project", projectID, "--quiet")
}

// EnableService enables an API service on the given project.
func (c *CLI) EnableService(ctx context.Context, service, projectID string) error {
	return c.run(ctx, "services", "enable", service, "--project", projectID, "--quiet")
}

func (c *CLI) run(ctx context.Context, args ...string) error {
	out, err := c.runner.Run(ctx, "gcloud", args...)
	if err == nil {
		return nil
	}
	if out == "" {
		return fmt.Errorf("gcloud %s: %v", strings.Join(args, " "), err)
	}
	return fmt.Errorf("gcloud %s: %v: %s", strings.Join(args, " "), err, out)
}
