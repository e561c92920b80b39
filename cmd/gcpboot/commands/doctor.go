package commands

import (
	"github.com/spf13/cobra"

	"github.com/agentverse/gcpboot/cmd/gcpboot/handlers"
)

// Doctor returns the command for checking external tool prerequisites.
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that required external tools are installed",
		Long: `Check that the external tools gcpboot shells out to are on PATH.

gcloud is always required. pip3 is required when a dependency install is
configured. python3 is only needed when enablement_command points at a
Python script.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Doctor(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")

	return cmd
}
