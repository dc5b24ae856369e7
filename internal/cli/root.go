package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "taskwall",
		Short: "taskwall - deadline reminders for the terminal",
		Long: `taskwall keeps a list of tasks with deadlines and alerts once when each one comes due.

Run without a subcommand to open the board.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default is the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newBinCmd(opts))
	rootCmd.AddCommand(newUpcomingCmd(opts))
	for _, c := range targetCommands {
		rootCmd.AddCommand(newTargetCmd(opts, c))
	}
	rootCmd.AddCommand(newNotifyCmd(opts))
	rootCmd.AddCommand(newThemeCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd := newRootCmd()
	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
