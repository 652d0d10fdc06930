package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/medrelive/medfinder-backend/internal/app"
	"github.com/medrelive/medfinder-backend/pkg/config"
	"github.com/medrelive/medfinder-backend/pkg/logger"
)

var (
	useRedis    bool
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:           "medfinder",
	Short:         "Find which pharmacies stock a medicine",
	Long:          "Search the medicine catalog, inspect store inventory, and browse results with live health tips.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// logs stay off the terminal unless debugging
		var logOut io.Writer = io.Discard
		if strings.EqualFold(cfg.App.LogLevel, "debug") {
			logOut = os.Stderr
		}
		logg := logger.New(logger.Options{
			ServiceName: "medfinder",
			Level:       logger.ParseLevel(cfg.App.LogLevel),
			Output:      logOut,
		})

		application, err = app.New(cmd.Context(), cfg, logg, app.Options{SkipRedis: !useRedis})
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return application.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useRedis, "redis", false, "Use the configured Redis cache for enrichment")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(browseCmd)
}
