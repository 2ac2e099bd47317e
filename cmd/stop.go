package cmd

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the active recording",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pid := activePID(cfg.Paths.PIDFile)
		if pid == 0 {
			return fmt.Errorf("no active recording found")
		}
		return syscall.Kill(pid, syscall.SIGTERM)
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
