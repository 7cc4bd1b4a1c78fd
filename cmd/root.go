package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyDebug   = "debug"
	keyLogFile = "log-file"
)

var (
	cfgfile    string
	appVersion = "dev"

	rootCmd = &cobra.Command{
		Use:   "think-mcp",
		Short: "Structured-thinking tool server for Cursor and Claude",
		Long: "think-mcp serves a single \"think\" tool over stdin/stdout using line-delimited JSON-RPC.\n" +
			"Run without a subcommand it behaves like \"think-mcp serve\".",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServeCmd,
	}
)

func SetVersion(v string) {
	appVersion = v
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgfile, "config", "", "config file (default is $HOME/.think-mcp.yaml)")
	flags.Bool(keyDebug, false, "enable diagnostic logging (overrides CLAUDE_THINK_DEBUG)")
	flags.String(keyLogFile, "", "diagnostic log path (overrides CLAUDE_THINK_LOG_FILE)")
	cobra.CheckErr(viper.BindPFlag(keyDebug, flags.Lookup(keyDebug)))
	cobra.CheckErr(viper.BindPFlag(keyLogFile, flags.Lookup(keyLogFile)))
}

// initConfig loads the optional config file. stdout belongs to the protocol,
// so anything said here goes to stderr.
func initConfig() {
	if cfgfile != "" {
		viper.SetConfigFile(cfgfile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".think-mcp")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgfile != "" {
			fmt.Fprintf(os.Stderr, "Ignoring config file: %v\n", err)
		}
		return
	}
	if viper.GetBool(keyDebug) {
		fmt.Fprintf(os.Stderr, "Using config file: %v\n", viper.ConfigFileUsed())
	}
}

func Execute() error {
	rootCmd.Version = appVersion
	rootCmd.SetVersionTemplate(fmt.Sprintf("think-mcp v%s\n", appVersion))
	return rootCmd.Execute()
}
