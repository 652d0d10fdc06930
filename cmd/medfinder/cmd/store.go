package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var storeHighlight string

var storeCmd = &cobra.Command{
	Use:   "store [store-id]",
	Short: "Show a store and its inventory",
	Long:  "Without an id, lists every store. With an id, prints its inventory and marks the --highlight medicine.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, s := range application.Stores.List(cmd.Context()) {
				fmt.Fprintf(out, "%-4s %-28s %-8s %d items\n", s.ID, s.Name, s.Distance, s.Items)
			}
			return nil
		}

		detail, err := application.Stores.Detail(cmd.Context(), args[0], storeHighlight)
		if err != nil {
			return err
		}
		fmt.Fprint(out, formatStoreDetail(detail))
		return nil
	},
}

func init() {
	storeCmd.Flags().StringVar(&storeHighlight, "highlight", "", "Medicine id to mark in the inventory")
}
