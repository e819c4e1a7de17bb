package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cuketool/cuke/internal/db"
	"github.com/spf13/cobra"
)

const (
	projectDir = "cukes"
	dbPath     = "cukes/cuke.db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize cuke in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	_, err := os.Stat(projectDir)
	dirExists := err == nil
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", projectDir, err)
	}
	if dirExists {
		fmt.Fprintf(w, "%s/ already exists\n", projectDir)
	} else {
		fmt.Fprintf(w, "%s/ created\n", projectDir)
	}

	_, err = os.Stat(dbPath)
	dbExists := err == nil
	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", dbPath)
	} else {
		fmt.Fprintf(w, "%s created\n", dbPath)
	}

	msgs, err := ensureGitignore()
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

// requireProject errors unless `cuke init` has been run here.
func requireProject() error {
	if _, err := os.Stat(projectDir); os.IsNotExist(err) {
		return fmt.Errorf("run `cuke init` first")
	}
	return nil
}

func ensureGitignore() ([]string, error) {
	const entry = dbPath

	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
