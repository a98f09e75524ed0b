package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "birthdayos",
		Short:         "BirthdayOS: a candle-sweeper game and charm collection",
		Long:          "BirthdayOS hosts the candle game in a terminal or over HTTP and keeps the charm collection, bonus ledger, and milestone progress.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "birthdayos.yaml", "path to config file (optional)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level: debug|info|warn|error")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newPlayCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newCharmsCmd(opts))
	cmd.AddCommand(newBonusCmd(opts))
	cmd.AddCommand(newRedeemCmd(opts))
	cmd.AddCommand(newProgressCmd(opts))
	cmd.AddCommand(newStatusCmd(opts))
	cmd.AddCommand(newResetCmd(opts))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "birthdayos %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
