package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gestorpro/internal/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive bot fleet view",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		if _, err := gateway.Session(); err != nil {
			return err
		}

		program := tea.NewProgram(ui.NewModel(globalConfig, gateway), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("error running UI: %w", err)
		}
		return nil
	},
}
