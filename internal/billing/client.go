package billing

import (
	"context"
	"errors"
	"fmt"

	apiv1 "cloud.google.com/go/billing/apiv1"
	"cloud.google.com/go/billing/apiv1/billingpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Service is an Accounts implementation that must be closed after use.
type Service interface {
	Accounts
	Close() error
}

// Client adapts the Cloud Billing API client to the Accounts interface.
type Client struct {
	c *apiv1.CloudBillingClient
}

// NewClient dials the Cloud Billing API with application default
// credentials.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	c, err := apiv1.NewCloudBillingClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create billing client: %w", err)
	}
	return &Client{c: c}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.c.Close()
}

// ListBillingAccounts returns every billing account visible to the
// caller. API errors are returned unwrapped so callers can inspect the
// gRPC status code.
func (c *Client) ListBillingAccounts(ctx context.Context) ([]*billingpb.BillingAccount, error) {
	it := c.c.ListBillingAccounts(ctx, &billingpb.ListBillingAccountsRequest{})

	var accounts []*billingpb.BillingAccount
	for {
		account, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return accounts, nil
		}
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
}

// GetProjectBillingInfo returns the billing info for a project resource
// name ("projects/<id>").
func (c *Client) GetProjectBillingInfo(ctx context.Context, name string) (*billingpb.ProjectBillingInfo, error) {
	return c.c.GetProjectBillingInfo(ctx, &billingpb.GetProjectBillingInfoRequest{Name: name})
}

// UpdateProjectBillingInfo points the project at a billing account.
func (c *Client) UpdateProjectBillingInfo(ctx context.Context, name string, info *billingpb.ProjectBillingInfo) (*billingpb.ProjectBillingInfo, error) {
	return c.c.UpdateProjectBillingInfo(ctx, &billingpb.UpdateProjectBillingInfoRequest{
		Name:               name,
		ProjectBillingInfo: info,
	})
}
