package cmd

import (
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Run a single query and exit",
	Long:  longAsk,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

var longAsk = `
Ask answers exactly one query and exits. Equivalent to passing the query
directly to the root command.

Examples:
  gtalk ask "How do I reverse a slice in Go?"
`
