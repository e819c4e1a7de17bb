package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cuketool/cuke/internal/expand"
	"github.com/cuketool/cuke/internal/gherkin"
	"github.com/cuketool/cuke/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Parse feature files and report syntax errors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func RunCheck(w io.Writer, paths []string) error {
	failed := 0
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			ui.ErrLine(w, path, err)
			failed++
			continue
		}
		feat, err := gherkin.Parse(content)
		if err != nil {
			ui.ErrLine(w, path, err)
			failed++
			continue
		}
		ui.OkLine(w, path, len(expand.Scenarios(feat)))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(paths))
	}
	return nil
}
