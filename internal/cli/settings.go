package cli

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskwall/internal/commands"
)

func newNotifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "notify <on|off>",
		Short:     "Turn due alerts on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := commands.Parse("notify " + args[0])
			if err != nil {
				return err
			}
			return runCommand(cmd, opts, c)
		},
	}
}

func newThemeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "theme <name>",
		Short: "Set the board theme",
		Long:  "Set the board theme. Names may omit the theme- prefix, e.g. taskwall theme ocean.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := commands.Parse("theme " + args[0])
			if err != nil {
				return err
			}
			return runCommand(cmd, opts, c)
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
