package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cuketool/cuke/internal/db"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags used by tracked scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTags(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func RunTags(w io.Writer) error {
	if err := requireProject(); err != nil {
		return err
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`SELECT tags FROM scenarios WHERE tags != ''`)
	if err != nil {
		return fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return fmt.Errorf("scanning tags: %w", err)
		}
		for _, t := range strings.Fields(tags) {
			counts[t]++
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating tags: %w", err)
	}

	if len(counts) == 0 {
		fmt.Fprintln(w, "no tags")
		return nil
	}

	names := make([]string, 0, len(counts))
	for t := range counts {
		names = append(names, t)
	}
	sort.Strings(names)

	for _, t := range names {
		fmt.Fprintf(w, "@%s  %d\n", t, counts[t])
	}
	return nil
}
