package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thinkmcp/think"
)

var formatCmd = &cobra.Command{
	Use:   "format <prompt...>",
	Short: "Print the thinking template for a prompt without starting the server",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.TrimSpace(strings.Join(args, " "))
		if prompt == "" {
			return errors.New("prompt cannot be empty")
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), think.Format(prompt))
		return err
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
}
