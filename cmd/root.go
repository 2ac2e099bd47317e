package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/NoushadBug/stt-typer-enhanced-wayland-supported/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "stt-typer",
	Short: "Speech-to-text that types into the focused window",
	Long: `stt-typer records speech, transcribes it with Gemini (rotating across
API keys and models), and types the result into whatever application has
input focus, with Wayland-friendly fallbacks.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		cfg.ExpandPaths()
		cfg.ApplyDefaults()

		setupLogging(cfg.Logging)
		return nil
	},
}

func setupLogging(lc config.LoggingConfig) {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if lc.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
