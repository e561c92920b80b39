// Package handlers implements the execution logic behind the CLI
// commands. External collaborators are built through factory function
// variables so tests can swap in fakes.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agentverse/gcpboot/internal/config"
	"github.com/agentverse/gcpboot/internal/gcloud"
	"github.com/agentverse/gcpboot/internal/pip"
	"github.com/agentverse/gcpboot/internal/provisioning"
	"github.com/agentverse/gcpboot/internal/ui"
	"github.com/agentverse/gcpboot/internal/util/naming"
	"github.com/agentverse/gcpboot/internal/util/prerequisites"
)

// Factory function variables - can be replaced in tests.
var (
	// loadConfig loads and validates the configuration.
	loadConfig = config.Load

	// newGcloudCLI builds the gcloud wrapper.
	newGcloudCLI = func() *gcloud.CLI { return gcloud.New() }

	// newInstaller builds the pip wrapper.
	newInstaller = func() provisioning.PackageInstaller { return pip.New() }

	// newEnabler builds the post-creation enablement step.
	newEnabler = defaultEnabler

	// checkTools checks external tool prerequisites.
	checkTools = prerequisites.Check

	// stdinIsTTY reports whether stdin is interactive.
	stdinIsTTY = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
)

// Init runs the project bootstrap flow.
func Init(ctx context.Context, configPath string, assumeYes bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorBanner("configuration", err))
		return err
	}

	idPath, err := cfg.ProjectIDPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorBanner("configuration", err))
		return err
	}

	if err := checkTools(prerequisites.BootstrapTools(cfg.Dependency != "")).Error(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorBanner("preflight", err))
		return err
	}

	printWelcome(cfg)

	cli := newGcloudCLI()

	var prompter provisioning.Prompter = ui.ProjectIDPrompt{}
	if assumeYes || !stdinIsTTY() {
		prompter = ui.AcceptPrompt{}
	}

	p := &provisioning.Provisioner{
		Prefix:     cfg.Prefix,
		Dependency: cfg.Dependency,
		Creator:    cli,
		Context:    cli,
		Installer:  newInstaller(),
		Enabler:    newEnabler(cfg, idPath),
		Prompter:   prompter,
		Store:      provisioning.NewFileStore(idPath),
		Out:        os.Stdout,
	}

	projectID, err := p.Run(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorBanner("bootstrap", err))
		return err
	}

	printInitSuccess(projectID, idPath)
	return nil
}

// defaultEnabler returns the configured external enablement program, or
// the built-in billing flow when none is configured. The built-in flow
// reads the project ID back from the persisted file, which the
// provisioner writes before running the enabler.
func defaultEnabler(cfg *config.Config, idPath string) provisioning.Enabler {
	if cfg.EnablementCommand != "" {
		return provisioning.ExecEnabler{Command: cfg.EnablementCommand}
	}
	return provisioning.EnablerFunc(func(ctx context.Context) error {
		projectID, err := provisioning.NewFileStore(idPath).Read()
		if err != nil {
			return err
		}
		return linkBilling(ctx, projectID)
	})
}

// printWelcome prints the welcome message.
func printWelcome(cfg *config.Config) {
	fmt.Println()
	fmt.Println("gcpboot - Google Cloud project bootstrap")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Printf("Project IDs use the prefix %q with a %d-character random suffix.\n",
		cfg.Prefix, naming.SuffixLength(cfg.Prefix))
	fmt.Println("Rejected IDs are retried with a fresh suffix until one is accepted.")
	fmt.Println()
}

// printInitSuccess prints the success message with next steps.
func printInitSuccess(projectID, idPath string) {
	fmt.Println()
	fmt.Println(ui.Success("Project " + projectID + " is ready."))
	fmt.Println()
	fmt.Printf("  Project ID file: %s\n", idPath)
	fmt.Println()
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Verify the billing link in the console if it was reported as unverified.")
	fmt.Println("  2. Enable the service APIs your workload needs:")
	fmt.Printf("     gcloud services enable <service> --project %s\n", projectID)
	fmt.Println()
}
