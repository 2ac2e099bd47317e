package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var typeCmd = &cobra.Command{
	Use:   "type [text...]",
	Short: "Type literal text through the injection backends",
	Long: `Type injects the given text (or stdin when no arguments are passed)
into the focused window, exercising the same fallback chain used after
transcription. Useful for checking which backend works on a setup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if text == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = strings.TrimRight(string(data), "\n")
		}
		if text == "" {
			return fmt.Errorf("nothing to type")
		}

		return buildChain().Inject(text)
	},
}

func init() {
	rootCmd.AddCommand(typeCmd)
}
