package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// ProjectIDPrompt asks the user to accept or edit a proposed project ID.
type ProjectIDPrompt struct{}

// Confirm presents the proposed ID as an editable default. Empty input is
// rejected in place, leaving the proposed value for the user to edit
// again; the final value is returned trimmed.
func (ProjectIDPrompt) Confirm(ctx context.Context, proposed string) (string, error) {
	value := proposed

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project ID").
				Description("Press enter to accept the generated ID, or edit it.").
				Value(&value).
				Validate(ValidateProjectID),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// ValidateProjectID rejects values that are empty after trimming.
func ValidateProjectID(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("project ID must not be empty")
	}
	return nil
}

// AcceptPrompt accepts every proposed ID unchanged, for --yes runs and
// non-interactive stdin.
type AcceptPrompt struct{}

// Confirm returns the proposed ID as-is.
func (AcceptPrompt) Confirm(_ context.Context, proposed string) (string, error) {
	return proposed, nil
}
