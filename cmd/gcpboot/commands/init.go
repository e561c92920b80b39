package commands

import (
	"github.com/spf13/cobra"

	"github.com/agentverse/gcpboot/cmd/gcpboot/handlers"
)

// Init returns the command for bootstrapping a new project.
//
// Flags:
//
//	--config, -c: Path to the configuration file (default ~/.config/gcpboot/config.yaml)
//	--yes, -y: Accept the proposed project ID without prompting
func Init() *cobra.Command {
	var (
		configPath string
		assumeYes  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new Google Cloud project and enable billing",
		Long: `Create a new Google Cloud project and enable billing.

The command proposes a project ID built from the configured prefix and a
random suffix, and asks you to accept or edit it. If the creation is
rejected (ID taken, invalid, or permission denied), it proposes a fresh
ID and tries again until one succeeds.

After a successful creation it:

  - sets the new project as the active gcloud project
  - writes the project ID to the configured file (default ~/project_id.txt)
  - installs the configured Python dependency with pip3
  - runs the billing enablement step

Any failure after creation is fatal; re-run the command to start over.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), configPath, assumeYes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Accept the proposed project ID without prompting")

	return cmd
}
