package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <text>",
	Short: "Autocomplete medicine names",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range application.Search.Suggest(cmd.Context(), args[0]) {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
