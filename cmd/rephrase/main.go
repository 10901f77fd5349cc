// Command rephrase serves the tone-aware rephrasing API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TEJA0811/Rephrase.AI/internal/config"
	"github.com/TEJA0811/Rephrase.AI/internal/logging"
)

var (
	configPath string
	useMock    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rephrase",
	Short: "Tone-aware message rephrasing service",
	Long: `rephrase classifies the tone of a chat message and rewrites it as a
polite, professional workplace message.

Configuration is read from an optional YAML file, then REPHRASE_* environment
variables. A .env file in the working directory is loaded first if present.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal outside local development.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load .env: %w", err)
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "use the mock provider instead of a real inference API")

	rootCmd.AddCommand(serveCmd, modelsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
