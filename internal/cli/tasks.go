package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskwall/internal/commands"
	"github.com/sandeepkv93/taskwall/internal/notify"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task with a deadline",
		Example: `  taskwall add pay rent --date 2026-03-01 --time 9:00 --meridiem AM --category Home
  taskwall add "submit report" --date 2026-03-02 --time 17:30`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			clock, _ := cmd.Flags().GetString("time")
			meridiem, _ := cmd.Flags().GetString("meridiem")
			category, _ := cmd.Flags().GetString("category")
			color, _ := cmd.Flags().GetString("color")
			return runCommand(cmd, opts, commands.Command{
				Type: commands.TypeAdd,
				Add: &commands.AddArgs{
					Text:     strings.Join(args, " "),
					Date:     date,
					Time:     clock,
					Meridiem: strings.ToUpper(meridiem),
					Category: category,
					Color:    strings.ToUpper(color),
				},
			})
		},
	}
	cmd.Flags().String("date", "", "Deadline date, YYYY-MM-DD")
	cmd.Flags().String("time", "", "Deadline time, h:mm")
	cmd.Flags().String("meridiem", "", "AM or PM (default AM)")
	cmd.Flags().String("category", "", "Category (default Other)")
	cmd.Flags().String("color", "", "Color as #RRGGBB")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks on the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			a, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			board, err := a.manager.Board(cmd.Context(), category)
			if err != nil {
				return err
			}
			if len(board) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTasks(board, a.now()))
			return nil
		},
	}
	cmd.Flags().String("category", "", "Only show this category")
	return cmd
}

func newBinCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bin",
		Short: "List tasks in the recycle bin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			bin, err := a.manager.RecycleBin(cmd.Context())
			if err != nil {
				return err
			}
			if len(bin) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Recycle bin is empty.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTasks(bin, a.now()))
			return nil
		},
	}
}

func newUpcomingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "Show active tasks due within the upcoming window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			tasks, err := a.manager.Tasks(cmd.Context())
			if err != nil {
				return err
			}
			now := a.now()
			upcoming := notify.Upcoming(tasks, now, a.cfg.UpcomingWindow.D())
			out := cmd.OutOrStdout()
			if len(upcoming) == 0 {
				fmt.Fprintf(out, "Nothing due in the next %s.\n", a.cfg.UpcomingWindow.D())
				return nil
			}
			fmt.Fprintf(out, "Upcoming (%s):\n", notify.Badge(len(upcoming)))
			fmt.Fprintln(out, renderTasks(upcoming, now))
			return nil
		},
	}
}

type targetCommand struct {
	typ   commands.Type
	short string
}

var targetCommands = []targetCommand{
	{typ: commands.TypeDone, short: "Toggle a task between open and done"},
	{typ: commands.TypeRemove, short: "Move a task to the recycle bin"},
	{typ: commands.TypeRestore, short: "Restore a task from the recycle bin"},
	{typ: commands.TypePurge, short: "Delete a task forever"},
}

func newTargetCmd(opts *rootOptions, tc targetCommand) *cobra.Command {
	return &cobra.Command{
		Use:   string(tc.typ) + " <id>",
		Short: tc.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := commands.Parse(string(tc.typ) + " " + args[0])
			if err != nil {
				return err
			}
			return runCommand(cmd, opts, c)
		},
	}
}

// runCommand executes a parsed command against the configured store and prints
// its result message.
func runCommand(cmd *cobra.Command, opts *rootOptions, c commands.Command) error {
	a, err := openApp(cmd.Context(), opts, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := commands.Execute(c, commands.NewHandlers(cmd.Context(), a.manager, a.prefs))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}
