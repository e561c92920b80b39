package provisioning

import (
	"context"
	"fmt"
	"io"

	"github.com/agentverse/gcpboot/internal/util/naming"
)

// Provisioner runs the create-project loop and finalization steps.
// All fields must be set; Out receives progress output.
type Provisioner struct {
	Prefix     string
	Dependency string

	Creator   ProjectCreator
	Context   ContextSetter
	Installer PackageInstaller
	Enabler   Enabler
	Prompter  Prompter
	Store     IDStore

	Out io.Writer
}

// Run proposes project IDs until one is created, then finalizes it.
// It returns the final project ID. Rejected creations loop forever with a
// fresh suffix; only context cancellation or a finalization failure stops
// the flow. When finalization fails, the returned ID is still the one
// that was created (and possibly persisted).
func (p *Provisioner) Run(ctx context.Context) (string, error) {
	budget := naming.SuffixLength(p.Prefix)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		suffix, err := naming.RandomSuffix(budget)
		if err != nil {
			return "", fmt.Errorf("generate suffix: %w", err)
		}
		candidate := naming.ProjectID(p.Prefix, suffix)

		projectID, err := p.Prompter.Confirm(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("confirm project ID: %w", err)
		}

		fmt.Fprintf(p.Out, "Creating project %s...\n", projectID)
		if err := p.Creator.CreateProject(ctx, projectID); err != nil {
			fmt.Fprintf(p.Out, "Project %s was rejected:\n%v\n", projectID, err)
			fmt.Fprintln(p.Out, "Retrying with a new ID.")
			continue
		}

		if err := p.finalize(ctx, projectID); err != nil {
			return projectID, err
		}
		return projectID, nil
	}
}

// finalize runs the post-creation steps in order. The project ID file is
// written before the dependency install and the enabler run, so a later
// failure leaves the ID on disk for a manual retry of those steps.
func (p *Provisioner) finalize(ctx context.Context, projectID string) error {
	if err := p.Context.SetActiveProject(ctx, projectID); err != nil {
		return fmt.Errorf("set active project: %w", err)
	}
	fmt.Fprintf(p.Out, "Active project set to %s.\n", projectID)

	if err := p.Store.Write(projectID); err != nil {
		return fmt.Errorf("persist project ID: %w", err)
	}

	if p.Dependency != "" {
		fmt.Fprintf(p.Out, "Installing %s...\n", p.Dependency)
		if err := p.Installer.Install(ctx, p.Dependency); err != nil {
			return fmt.Errorf("install dependency %s: %w", p.Dependency, err)
		}
	}

	if err := p.Enabler.Enable(ctx); err != nil {
		return fmt.Errorf("billing enablement step failed for %s: %w", projectID, err)
	}
	return nil
}
