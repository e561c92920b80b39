package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/agentverse/gcpboot/internal/billing"
	"github.com/agentverse/gcpboot/internal/provisioning"
	"github.com/agentverse/gcpboot/internal/ui"
)

// newBillingService dials the Cloud Billing API - replaced in tests.
var newBillingService = func(ctx context.Context) (billing.Service, error) {
	return billing.NewClient(ctx)
}

// Billing links a project to the first open billing account. An empty
// projectID means the one persisted by init.
func Billing(ctx context.Context, configPath, projectID string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorBanner("configuration", err))
		return err
	}

	if projectID == "" {
		idPath, err := cfg.ProjectIDPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.ErrorBanner("configuration", err))
			return err
		}
		projectID, err = provisioning.NewFileStore(idPath).Read()
		if err != nil {
			fmt.Fprintln(os.Stderr, ui.ErrorBanner("project ID", err))
			return err
		}
		fmt.Printf("Using project ID from %s: %s\n", idPath, projectID)
	}

	if err := linkBilling(ctx, projectID); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorBanner("billing enablement", err))
		return err
	}

	fmt.Println(ui.Success("Billing enablement complete for " + projectID))
	return nil
}

// linkBilling runs the billing flow against the real API and gcloud.
func linkBilling(ctx context.Context, projectID string) error {
	svc, err := newBillingService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	linker := billing.NewLinker(svc, newGcloudCLI(), os.Stdout)
	return linker.Run(ctx, projectID)
}
