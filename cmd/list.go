package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cuketool/cuke/internal/db"
	"github.com/cuketool/cuke/internal/ui"
	"github.com/spf13/cobra"
)

var (
	statusFlag string
	tagFlag    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), statusFlag, tagFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status")
	listCmd.Flags().StringVar(&tagFlag, "tag", "", "Filter by tag")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	id       int64
	fileName string
	name     string
	tags     string
	status   string
}

func RunList(w io.Writer, statusFilter, tagFilter string) error {
	if err := requireProject(); err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT s.id, f.file_path, s.name, s.tags,
			COALESCE(
				(SELECT status FROM statuses WHERE scenario_id = s.id ORDER BY changed_at DESC, id DESC LIMIT 1),
				'no-activity'
			) AS current_status
		FROM scenarios s
		JOIN files f ON s.file_id = f.id
		ORDER BY f.file_path, s.id
	`)
	if err != nil {
		return fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var filePath string
		if err := rows.Scan(&r.id, &filePath, &r.name, &r.tags, &r.status); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		r.fileName = filepath.Base(filePath)

		if statusFilter != "" && r.status != statusFilter {
			continue
		}
		if tagFilter != "" && !hasTag(r.tags, tagFilter) {
			continue
		}

		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	idWidth, fileWidth, nameWidth := 0, 0, 0
	for _, r := range results {
		tag := fmt.Sprintf("@cuke:%d", r.id)
		idWidth = max(idWidth, len(tag))
		fileWidth = max(fileWidth, len(r.fileName))
		nameWidth = max(nameWidth, len(r.name))
	}

	for _, r := range results {
		ui.ListRow(w, r.id, r.fileName, r.name, r.status, idWidth, fileWidth, nameWidth)
	}

	return nil
}

func hasTag(stored, want string) bool {
	want = strings.TrimPrefix(want, "@")
	for _, t := range strings.Fields(stored) {
		if t == want {
			return true
		}
	}
	return false
}
