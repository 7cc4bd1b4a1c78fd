package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thinkmcp/mcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", mcp.ServerName, appVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
