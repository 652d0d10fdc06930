package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medrelive/medfinder-backend/internal/search"
)

var (
	searchJSON bool
	searchTip  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <medicine>",
	Short: "List stores carrying a medicine",
	Long:  "Resolves the first catalog medicine whose name contains the query and lists every store holding it.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var tips tipSource
		if searchTip {
			tips = application.Enrichment
		}
		return runSearch(cmd.Context(), cmd.OutOrStdout(), application.Search, tips, strings.Join(args, " "), searchJSON)
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
	searchCmd.Flags().BoolVar(&searchTip, "tip", false, "Include a health tip")
}

type tipSource interface {
	HealthTip(ctx context.Context, query string) string
}

func runSearch(ctx context.Context, out io.Writer, svc search.Service, tips tipSource, query string, asJSON bool) error {
	result, err := svc.Search(ctx, query)
	if err != nil {
		return err
	}

	var tip string
	if tips != nil {
		tip = tips.HealthTip(ctx, result.Query)
	}

	if asJSON {
		dto := search.FromResult(result)
		if tip != "" {
			dto.HealthTip = &tip
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dto)
	}

	fmt.Fprint(out, formatResult(result))
	if tip != "" {
		fmt.Fprintf(out, "tip: %s\n", tip)
	}
	return nil
}
