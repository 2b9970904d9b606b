package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/actuallystonmai/film-recommender/internal/config"
	"github.com/actuallystonmai/film-recommender/internal/logging"
)

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "filmrec",
	Short: "Film recommendation service",
	Long: `Film recommendation service.

COMMANDS:
  serve        Run the HTTP API
  migrate      Apply or drop the database schema
  seed         Fill the films table with the seed catalog
  cache sweep  Remove expired entries from the metadata cache
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func main() {
	// Load .env if present
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		logging.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
