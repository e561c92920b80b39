// Package pip installs Python packages in the invoking user's scope.
package pip

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

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	// #nosec G204 -- arguments are assembled from validated configuration
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// Installer installs packages through pip3.
type Installer struct {
	runner Runner
}

// New returns an Installer backed by the real pip3 binary.
func New() *Installer {
	return &Installer{runner: execRunner{}}
}

// NewWithRunner returns an Installer backed by a custom runner, for tests.
func NewWithRunner(r Runner) *Installer {
	return &Installer{runner: r}
}

// Install installs or upgrades pkg for the current user.
func (i *Installer) Install(ctx context.Context, pkg string) error {
	args := []string{"install", "--user", "--upgrade", pkg}
	out, err := i.runner.Run(ctx, "pip3", args...)
	if err == nil {
		return nil
	}
	if out == "" {
		return fmt.Errorf("pip3 %s: %v", strings.Join(args, " "), err)
	}
	return fmt.Errorf("pip3 %s: %v: %s", strings.Join(args, " "), err, out)
}
