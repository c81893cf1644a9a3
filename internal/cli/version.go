package cli

import "github.com/spf13/cobra"

// newCmdVersion creates the `version` cobra command.
func newCmdVersion(common *CommonOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(_ *cobra.Command, _ []string) {
			common.Printf("%s\n", Version)
		},
	}
}
