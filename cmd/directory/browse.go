package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gartstein/directory/internal/directory/controller"
	"github.com/gartstein/directory/internal/directory/tui"
	"github.com/spf13/cobra"
)

func newBrowseCmd(a *app) *cobra.Command {
	flags := &browseFlags{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse companies interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			initial, err := flags.state(a.cfg.ViewMode())
			if err != nil {
				return err
			}

			src := a.source()
			dir := controller.New(src, initial, a.logger)
			m := tui.New(cmd.Context(), dir, src, a.logger)

			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("terminal UI: %w", err)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
