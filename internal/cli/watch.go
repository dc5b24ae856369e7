package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskwall/internal/scheduler"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the due-task scheduler without the board",
		Long: `Run the due-task scheduler in the foreground and print each alert as it fires.

Alerts are also sent through the configured notifier. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			once, _ := cmd.Flags().GetBool("once")
			return runWatch(cmd, opts, once)
		},
	}
	cmd.Flags().Bool("once", false, "Run a single due check and exit")
	return cmd
}

func runWatch(cmd *cobra.Command, opts *rootOptions, once bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, opts, cmd.ErrOrStderr(), !once)
	if err != nil {
		return err
	}
	defer a.Close()
	out := cmd.OutOrStdout()

	if once {
		res, err := a.engine.Tick(ctx)
		if err != nil {
			return err
		}
		if res.Skipped {
			fmt.Fprintln(out, "Notifications are off or not permitted; nothing checked.")
			return nil
		}
		printEvent(out, res.Event)
		if len(res.Alerts) == 0 {
			fmt.Fprintln(out, "No tasks due.")
		}
		return nil
	}

	a.logger.WithField("interval", a.cfg.PollInterval.D()).Info("watching for due tasks")
	a.engine.Start(ctx)
	return drainEvents(ctx, out, a.engine.C())
}

func drainEvents(ctx context.Context, out io.Writer, events <-chan scheduler.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			printEvent(out, ev)
		}
	}
}

func printEvent(out io.Writer, ev scheduler.Event) {
	for _, alert := range ev.Alerts {
		fmt.Fprintf(out, "%s  %s: %s\n", ev.At.Local().Format("15:04:05"), alert.Title, alert.Body)
	}
}
