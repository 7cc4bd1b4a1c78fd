package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/thinkmcp/install"
)

var (
	installHome       string
	installYes        bool
	installSkipVerify bool

	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Install this executable and register it in Cursor's mcp.json",
		Args:  cobra.NoArgs,
		RunE:  runInstallCmd,
	}
)

func init() {
	installCmd.Flags().StringVar(&installHome, "home", "", "home directory to install into (default is the current user's)")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "overwrite an existing registration without asking")
	installCmd.Flags().BoolVar(&installSkipVerify, "skip-verify", false, "skip the post-install checks")
	rootCmd.AddCommand(installCmd)
}

func runInstallCmd(cmd *cobra.Command, args []string) error {
	source, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate running executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(source); err == nil {
		source = resolved
	}

	paths, err := install.DefaultPaths(installHome)
	if err != nil {
		return err
	}

	err = install.New(paths, install.Options{
		Source:     source,
		Yes:        installYes,
		SkipVerify: installSkipVerify,
		Confirm:    confirmOverwrite,
		Out:        cmd.OutOrStdout(),
	}).Run()
	if errors.Is(err, install.ErrAborted) {
		color.Yellow("Installation aborted; existing configuration left unchanged.")
		return nil
	}
	if err != nil {
		color.Red("Installation failed: %v", err)
		return err
	}
	return nil
}

func confirmOverwrite(existing, replacement install.ServerEntry) (bool, error) {
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("%s\n", yellow("An existing registration will be replaced:"))
	fmt.Printf("  current: %s %v\n", gray(existing.Command), existing.Args)
	fmt.Printf("  new:     %s %v\n", replacement.Command, replacement.Args)

	prompt := promptui.Prompt{
		Label:     "Overwrite it",
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
