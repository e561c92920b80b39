// Package billing links a bootstrapped project to an open billing account.
//
// The flow mirrors what a fresh project needs: list the visible billing
// accounts, ride out the window where the Cloud Billing API itself is
// still disabled on the new project, pick the first open account, link
// the project to it, and verify the link became active.
package billing

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/billing/apiv1/billingpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/agentverse/gcpboot/internal/util/retry"
)

// cloudBillingService is the API that must be enabled before billing
// accounts become listable.
const cloudBillingService = "cloudbilling.googleapis.com"

// Accounts is the slice of the Cloud Billing API the linker needs.
// Implemented by Client; tests use fakes.
type Accounts interface {
	ListBillingAccounts(ctx context.Context) ([]*billingpb.BillingAccount, error)
	GetProjectBillingInfo(ctx context.Context, name string) (*billingpb.ProjectBillingInfo, error)
	UpdateProjectBillingInfo(ctx context.Context, name string, info *billingpb.ProjectBillingInfo) (*billingpb.ProjectBillingInfo, error)
}

// ServiceEnabler enables an API service on a project.
// Implemented by internal/gcloud.CLI.
type ServiceEnabler interface {
	EnableService(ctx context.Context, service, projectID string) error
}

// Linker drives the billing enablement flow for one project.
type Linker struct {
	Accounts Accounts
	Services ServiceEnabler
	Out      io.Writer

	// Propagation wait for a freshly enabled Cloud Billing API.
	ListAttempts int
	ListDelay    time.Duration

	// Poll schedule for verifying the billing link went active.
	VerifyAttempts int
	VerifyDelay    time.Duration
}

// NewLinker returns a Linker with the production wait schedule.
func NewLinker(accounts Accounts, services ServiceEnabler, out io.Writer) *Linker {
	return &Linker{
		Accounts:       accounts,
		Services:       services,
		Out:            out,
		ListAttempts:   5,
		ListDelay:      15 * time.Second,
		VerifyAttempts: 6,
		VerifyDelay:    10 * time.Second,
	}
}

// Run links projectID to the first open billing account it can see.
func (l *Linker) Run(ctx context.Context, projectID string) error {
	accounts, err := l.listAccounts(ctx, projectID)
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		return fmt.Errorf("no billing accounts visible; this may be a permissions issue (roles/billing.user)")
	}

	var target *billingpb.BillingAccount
	for _, account := range accounts {
		if account.GetOpen() {
			target = account
			break
		}
	}
	if target == nil {
		return fmt.Errorf("found %d billing accounts, but none are open", len(accounts))
	}

	fmt.Fprintf(l.Out, "Selected billing account %q (%s).\n", target.GetDisplayName(), target.GetName())
	return l.link(ctx, projectID, target)
}

// listAccounts fetches billing accounts, enabling the Cloud Billing API
// and waiting out propagation when the first attempt reports the API as
// disabled.
func (l *Linker) listAccounts(ctx context.Context, projectID string) ([]*billingpb.BillingAccount, error) {
	fmt.Fprintln(l.Out, "Fetching billing accounts...")

	accounts, err := l.Accounts.ListBillingAccounts(ctx)
	if err == nil {
		return accounts, nil
	}

	switch {
	case isDisabledAPI(err):
		fmt.Fprintln(l.Out, "The Cloud Billing API looks disabled on this project; enabling it.")
		fmt.Fprintln(l.Out, "If this persists, check the roles/billing.user grant on the organization.")
	case isPermissionDenied(err):
		return nil, fmt.Errorf("permission denied listing billing accounts; ensure the active user has roles/billing.user: %w", err)
	default:
		return nil, fmt.Errorf("list billing accounts: %w", err)
	}

	if err := l.Services.EnableService(ctx, cloudBillingService, projectID); err != nil {
		return nil, fmt.Errorf("enable %s: %w", cloudBillingService, err)
	}

	// A fresh enablement takes a while to propagate, so the first
	// re-list only happens after a full delay.
	fmt.Fprintf(l.Out, "Waiting %s for the enablement to propagate...\n", l.ListDelay)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(l.ListDelay):
	}

	attempt := 0
	err = retry.Do(ctx, func() error {
		attempt++
		fmt.Fprintf(l.Out, "Retrying billing account list (attempt %d/%d)...\n", attempt, l.ListAttempts)
		var listErr error
		accounts, listErr = l.Accounts.ListBillingAccounts(ctx)
		if listErr == nil {
			return nil
		}
		if isDisabledAPI(listErr) {
			return listErr
		}
		return retry.Fatal(listErr)
	},
		retry.WithAttempts(l.ListAttempts),
		retry.WithInitialDelay(time.Duration(float64(l.ListDelay)*1.5)),
		retry.WithMultiplier(1.5),
	)
	if err != nil {
		return nil, fmt.Errorf("the Cloud Billing API did not become active: %w", err)
	}

	fmt.Fprintln(l.Out, "API is now active.")
	return accounts, nil
}

// link points the project at the target account unless it already is,
// then polls until the link reports active.
func (l *Linker) link(ctx context.Context, projectID string, target *billingpb.BillingAccount) error {
	name := "projects/" + projectID

	info, err := l.Accounts.GetProjectBillingInfo(ctx, name)
	switch {
	case isNotFound(err):
		fmt.Fprintln(l.Out, "Project is not linked to any billing account yet.")
	case err != nil:
		return fmt.Errorf("get billing info for %s: %w", projectID, err)
	case info.GetBillingAccountName() == target.GetName():
		fmt.Fprintf(l.Out, "%s is already linked to %q.\n", projectID, target.GetDisplayName())
		return nil
	case info.GetBillingEnabled():
		fmt.Fprintf(l.Out, "Project is currently linked to a different account: %s\n", info.GetBillingAccountName())
	}

	fmt.Fprintf(l.Out, "Linking %s to %q...\n", projectID, target.GetDisplayName())
	_, err = l.Accounts.UpdateProjectBillingInfo(ctx, name, &billingpb.ProjectBillingInfo{
		BillingAccountName: target.GetName(),
	})
	if err != nil {
		if isPermissionDenied(err) {
			return fmt.Errorf("permission denied linking billing; ensure roles/billing.projectManager on the project: %w", err)
		}
		return fmt.Errorf("link project to billing account: %w", err)
	}

	return l.verify(ctx, projectID, name, target)
}

// verify polls the billing info until the link is active. Running out of
// attempts is reported as a warning, not a failure: the link request was
// accepted and usually lands shortly after.
func (l *Linker) verify(ctx context.Context, projectID, name string, target *billingpb.BillingAccount) error {
	fmt.Fprintln(l.Out, "Verifying that the billing link is active...")

	for attempt := 1; attempt <= l.VerifyAttempts; attempt++ {
		info, err := l.Accounts.GetProjectBillingInfo(ctx, name)
		if err == nil && info.GetBillingAccountName() == target.GetName() && info.GetBillingEnabled() {
			fmt.Fprintf(l.Out, "Billing link for %s is confirmed active.\n", projectID)
			return nil
		}
		if err != nil {
			fmt.Fprintf(l.Out, "Verification attempt %d/%d errored: %v\n", attempt, l.VerifyAttempts, err)
		} else {
			fmt.Fprintf(l.Out, "Verification attempt %d/%d: link not active yet.\n", attempt, l.VerifyAttempts)
		}

		if attempt == l.VerifyAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.VerifyDelay):
		}
	}

	fmt.Fprintf(l.Out, "Warning: could not verify the billing link after %d attempts.\n", l.VerifyAttempts)
	return nil
}

// isDisabledAPI reports whether err is the PermissionDenied flavor that
// actually means "the Cloud Billing API is not enabled yet".
func isDisabledAPI(err error) bool {
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.PermissionDenied {
		return false
	}
	msg := strings.ToLower(st.Message())
	return strings.Contains(msg, "api has not been used") || strings.Contains(msg, "service is disabled")
}

func isPermissionDenied(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.PermissionDenied
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.NotFound
}
