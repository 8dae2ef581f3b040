package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarist",
		Short: "Scenarist - build JSON request bodies field by field",
		Long: `Scenarist edits the JSON request bodies of API test scenarios by path.
Paths look like metaData.owner or items[0].id; missing parents are created.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		NewGetCommand(),
		NewSetCommand(),
		NewToggleCommand(),
		NewRefCommand(),
		NewFieldsCommand(),
		NewDefaultsCommand(),
		NewValidateCommand(),
		NewTemplateCommand(),
		NewExportCommand(),
		NewImportCommand(),
		NewRefsCommand(),
	)

	return cmd
}
