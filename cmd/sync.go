package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cuketool/cuke/internal/db"
	"github.com/cuketool/cuke/internal/expand"
	"github.com/cuketool/cuke/internal/gherkin"
	"github.com/cuketool/cuke/internal/ui"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan cukes/ for .feature files and register their scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer) error {
	if err := requireProject(); err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	matches, err := filepath.Glob(projectDir + "/*.feature")
	if err != nil {
		return fmt.Errorf("scanning %s/: %w", projectDir, err)
	}
	sort.Strings(matches)

	files, scenarios := 0, 0
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			ui.ErrLine(w, path, err)
			continue
		}
		feat, err := gherkin.Parse(content)
		if err != nil {
			ui.ErrLine(w, path, err)
			continue
		}

		fileID, known, err := registerFile(sqlDB, path)
		if err != nil {
			return err
		}

		added := 0
		for _, sc := range expand.Scenarios(feat) {
			ok, err := registerScenario(sqlDB, fileID, sc)
			if err != nil {
				return err
			}
			if ok {
				added++
			}
			scenarios++
		}

		if known && added == 0 {
			ui.TrkLine(w, path)
		} else {
			ui.NewLine(w, path, added)
		}
		files++
	}

	ui.SyncSummary(w, files, scenarios)
	return nil
}

func registerFile(sqlDB *sql.DB, path string) (id int64, known bool, err error) {
	err = sqlDB.QueryRow(`SELECT id FROM files WHERE file_path = ?`, path).Scan(&id)
	if err == sql.ErrNoRows {
		res, err := sqlDB.Exec(`INSERT INTO files (file_path) VALUES (?)`, path)
		if err != nil {
			return 0, false, fmt.Errorf("inserting %s: %w", path, err)
		}
		id, err = res.LastInsertId()
		return id, false, err
	}
	if err != nil {
		return 0, false, fmt.Errorf("querying %s: %w", path, err)
	}
	return id, true, nil
}

// registerScenario inserts a scenario unless one with the same name already
// exists for the file. Expanded outline rows that share a name collapse into
// one record on purpose.
func registerScenario(sqlDB *sql.DB, fileID int64, sc gherkin.Scenario) (bool, error) {
	var id int64
	err := sqlDB.QueryRow(`SELECT id FROM scenarios WHERE file_id = ? AND name = ?`, fileID, sc.Name).Scan(&id)
	if err == nil {
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("querying scenario %q: %w", sc.Name, err)
	}
	_, err = sqlDB.Exec(`INSERT INTO scenarios (file_id, name, line, tags) VALUES (?, ?, ?, ?)`,
		fileID, sc.Name, sc.Line, strings.Join(sc.Tags, " "))
	if err != nil {
		return false, fmt.Errorf("inserting scenario %q: %w", sc.Name, err)
	}
	return true, nil
}
