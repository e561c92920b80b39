package provisioning

import "context"

// ProjectCreator submits a project create request. A returned error means
// the remote tool rejected the ID; its message carries the tool's output.
// Implemented by internal/gcloud.CLI.
type ProjectCreator interface {
	CreateProject(ctx context.Context, projectID string) error
}

// ContextSetter makes a project the active default for subsequent tool
// invocations. Implemented by internal/gcloud.CLI.
type ContextSetter interface {
	SetActiveProject(ctx context.Context, projectID string) error
}

// PackageInstaller installs a dependency for the current user.
// Implemented by internal/pip.Installer.
type PackageInstaller interface {
	Install(ctx context.Context, pkg string) error
}

// Enabler runs the post-creation enablement step.
type Enabler interface {
	Enable(ctx context.Context) error
}

// Prompter confirms or overrides a proposed project ID.
type Prompter interface {
	Confirm(ctx context.Context, proposed string) (string, error)
}

// IDStore persists the final project ID.
type IDStore interface {
	Write(projectID string) error
}
