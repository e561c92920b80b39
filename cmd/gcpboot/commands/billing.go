package commands

import (
	"github.com/spf13/cobra"

	"github.com/agentverse/gcpboot/cmd/gcpboot/handlers"
)

// Billing returns the command for linking a project to a billing account.
//
// Flags:
//
//	--config, -c: Path to the configuration file
//	--project, -p: Project ID to link (default: read from the project ID file)
func Billing() *cobra.Command {
	var (
		configPath string
		projectID  string
	)

	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Link a project to an open billing account",
		Long: `Link a project to the first open billing account visible to you.

By default the project ID is read from the file written by 'gcpboot init'
(default ~/project_id.txt); use --project to link a different project.

If the Cloud Billing API is not yet enabled on the project, it is enabled
via gcloud and the command waits for the change to propagate before
retrying. A link that cannot be verified as active within the polling
window is reported as a warning, since the link request itself was
accepted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Billing(cmd.Context(), configPath, projectID)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project ID to link (default: read from the project ID file)")

	return cmd
}
