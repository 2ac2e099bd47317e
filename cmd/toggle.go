package cmd

import (
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle recording (start if inactive, stop if active)",
	Long: `Toggle is meant to be bound to a hotkey: the first press starts a
recording, the second press stops it and types the transcription.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if pid := activePID(cfg.Paths.PIDFile); pid != 0 {
			log.Info().Int("pid", pid).Msg("stopping active recording")
			return syscall.Kill(pid, syscall.SIGTERM)
		}

		return runSession(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
