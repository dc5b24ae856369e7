package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskwall/internal/update"
)

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, opts, cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	a.engine.Start(ctx)
	program := tea.NewProgram(update.NewModel(update.Deps{
		Tasks:        a.manager,
		Prefs:        a.prefs,
		Engine:       a.engine,
		Notifier:     a.notifier,
		NotifierName: a.cfg.Notifier,
		Window:       a.cfg.UpcomingWindow.D(),
	}), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		a.logger.WithError(err).Error("board exited")
		return fmt.Errorf("taskwall failed: %w", err)
	}
	return nil
}
