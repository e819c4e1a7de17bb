package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cuketool/cuke/internal/db"
	"github.com/cuketool/cuke/internal/expand"
	"github.com/cuketool/cuke/internal/gherkin"
	"github.com/cuketool/cuke/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a tracked scenario's steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func parseID(rawID string) (int64, error) {
	rawID = strings.TrimPrefix(rawID, "@cuke:")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid scenario ID: %s", rawID)
	}
	return id, nil
}

func RunShow(w io.Writer, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := requireProject(); err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	var name, filePath string
	err = sqlDB.QueryRow(`
		SELECT s.name, f.file_path
		FROM scenarios s
		JOIN files f ON s.file_id = f.id
		WHERE s.id = ?
	`, id).Scan(&name, &filePath)
	if err != nil {
		return fmt.Errorf("scenario %d not found", id)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}
	feat, err := gherkin.Parse(content)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", filePath, err)
	}

	var matched *gherkin.Scenario
	for _, sc := range expand.Scenarios(feat) {
		if sc.Name == name {
			matched = &sc
			break
		}
	}
	if matched == nil {
		return fmt.Errorf("scenario %d not found in file %s", id, filePath)
	}

	ui.ShowHeader(w, id, filepath.Base(filePath))

	if feat.Background != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Background:")
		for _, st := range feat.Background.Steps {
			ui.Step(w, st)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Scenario: %s\n", matched.Name)
	for _, st := range matched.Steps {
		ui.Step(w, st)
	}

	return nil
}
