package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thinkmcp/logger"
	"github.com/thinkmcp/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the think tool on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE:  runServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	conf, err := logConfig()
	if err != nil {
		return err
	}

	log := logger.New(*conf, os.Stderr)
	defer log.Close()

	srv := server.NewServer(server.ServerConfigs(appVersion, *conf), os.Stdin, os.Stdout, log)
	return srv.Run()
}
