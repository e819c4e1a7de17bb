package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cuketool/cuke/internal/expand"
	"github.com/cuketool/cuke/internal/expression"
	"github.com/cuketool/cuke/internal/gherkin"
	"github.com/cuketool/cuke/internal/ui"
	"github.com/spf13/cobra"
)

var patternsFlag string

var stepsCmd = &cobra.Command{
	Use:   "steps --patterns <file> <feature>...",
	Short: "Match feature steps against step expression patterns",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSteps(cmd.OutOrStdout(), patternsFlag, args)
	},
}

func init() {
	stepsCmd.Flags().StringVar(&patternsFlag, "patterns", "", "File with one step expression per line")
	stepsCmd.MarkFlagRequired("patterns")
	rootCmd.AddCommand(stepsCmd)
}

func RunSteps(w io.Writer, patternsPath string, featurePaths []string) error {
	exprs, err := loadPatterns(patternsPath)
	if err != nil {
		return err
	}

	defined, undefined := 0, 0
	for _, path := range featurePaths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		feat, err := gherkin.Parse(content)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		var steps []gherkin.Step
		if feat.Background != nil {
			steps = append(steps, feat.Background.Steps...)
		}
		for _, sc := range expand.Scenarios(feat) {
			steps = append(steps, sc.Steps...)
		}

		for _, st := range steps {
			if matchesAny(exprs, st.Text) {
				defined++
			} else {
				undefined++
				ui.UndefinedStep(w, path, st)
			}
		}
	}

	ui.StepsSummary(w, defined, undefined)
	if undefined > 0 {
		return fmt.Errorf("%d undefined steps", undefined)
	}
	return nil
}

// loadPatterns compiles each non-blank, non-comment line of the pattern file.
// Expressions are compiled once here and reused for every step.
func loadPatterns(path string) ([]*expression.Expression, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var exprs []*expression.Expression
	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		expr, err := expression.Compile(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func matchesAny(exprs []*expression.Expression, text string) bool {
	for _, expr := range exprs {
		if _, ok := expr.Match(text); ok {
			return true
		}
	}
	return false
}
