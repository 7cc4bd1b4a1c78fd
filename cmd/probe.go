package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thinkmcp/client"
	"github.com/thinkmcp/logger"
	"github.com/thinkmcp/server"
	"github.com/thinkmcp/think"
	"github.com/thinkmcp/transport"
)

const probePrompt = "How does quicksort work?"

var (
	probeTimeout time.Duration

	probeCmd = &cobra.Command{
		Use:   "probe",
		Short: "Start a server as a child process and run a think request against it",
		Args:  cobra.NoArgs,
		RunE:  runProbeCmd,
	}
)

func init() {
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 10*time.Second, "overall time limit")
	rootCmd.AddCommand(probeCmd)
}

func runProbeCmd(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate running executable: %w", err)
	}

	conf, err := logConfig()
	if err != nil {
		return err
	}
	log := logger.New(*conf, os.Stderr)
	defer log.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
	defer cancel()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cyan("Testing think MCP server..."))

	c := client.NewClient(transport.NewProcess(self, []string{"serve"}, nil), log)
	if err := c.Connect(ctx); err != nil {
		return fmt.Errorf("server did not initialize: %w", err)
	}
	defer c.Close()

	tools := make([]string, 0, len(c.ServerInfo.Tools))
	for _, tool := range c.ServerInfo.Tools {
		tools = append(tools, tool.Name)
	}
	fmt.Fprintln(out, green("Server successfully initialized"))
	fmt.Fprintf(out, "Server name: %s\n", c.ServerInfo.Name)
	fmt.Fprintf(out, "Tools: %s\n", strings.Join(tools, ", "))

	if !c.HasTool(server.ThinkToolName) {
		return fmt.Errorf("server does not announce the %q tool", server.ThinkToolName)
	}

	output, err := c.Think(ctx, probePrompt)
	if err != nil {
		return fmt.Errorf("think request failed: %w", err)
	}
	if output != think.Format(probePrompt) {
		return fmt.Errorf("unexpected think output:\n%s", output)
	}

	fmt.Fprintln(out, green("Server successfully responded to think request"))
	fmt.Fprintf(out, "\nOutput:\n-------\n%s\n-------\n", output)
	return nil
}
