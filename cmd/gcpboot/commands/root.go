// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the gcpboot CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gcpboot",
		Short:         "Bootstrap Google Cloud projects with billing enabled",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Init())
	cmd.AddCommand(Billing())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())

	return cmd
}
