package provisioning

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// ExecEnabler runs a user-supplied enablement program with no arguments,
// wired to the terminal. The program's exit status decides success.
type ExecEnabler struct {
	Command string
}

// Enable runs the configured program.
func (e ExecEnabler) Enable(ctx context.Context) error {
	// #nosec G204 -- command comes from the user's own configuration
	cmd := exec.CommandContext(ctx, e.Command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("enablement command %s: %w", e.Command, err)
	}
	return nil
}

// EnablerFunc adapts a function to the Enabler interface.
type EnablerFunc func(ctx context.Context) error

// Enable calls the function.
func (f EnablerFunc) Enable(ctx context.Context) error {
	return f(ctx)
}
