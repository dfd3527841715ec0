package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/theapemachine/gtalk/pkg/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Run the chat-style terminal UI",
	Long:  longUI,
	RunE: func(cmd *cobra.Command, args []string) error {
		exec, session, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer session.Close()

		program := tea.NewProgram(ui.New(exec), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Error("error while running program", "error", err)
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

var longUI = `
Run a full-screen chat interface over one browser session. Type a query and
press Enter; the AI Mode answer is appended to the conversation view.

Examples:
  gtalk ui
`
