package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cuketool/cuke/internal/gherkin"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	trkStyle     = lipgloss.NewStyle().Faint(true)
	keywordStyle = lipgloss.NewStyle().Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func NewLine(w io.Writer, path string, scenarios int) {
	fmt.Fprintf(w, "%s  %s (%d scenarios)\n", okStyle.Render("new"), path, scenarios)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

func SyncSummary(w io.Writer, files, scenarios int) {
	fmt.Fprintf(w, "synced %d files, %d scenarios\n", files, scenarios)
}

func OkLine(w io.Writer, path string, scenarios int) {
	fmt.Fprintf(w, "%s   %s (%d scenarios)\n", okStyle.Render("ok"), path, scenarios)
}

func ErrLine(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "%s  %s: %s\n", errStyle.Render("err"), path, err)
}

func ListRow(w io.Writer, id int64, file, name, status string, idW, fileW, nameW int) {
	// Pad before styling; ANSI escapes would throw off %-*s widths.
	tag := fmt.Sprintf("@cuke:%d", id)
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		tagStyle.Render(tag)+strings.Repeat(" ", idW-len(tag)),
		file+strings.Repeat(" ", fileW-len(file)),
		name+strings.Repeat(" ", nameW-len(name)),
		trkStyle.Render(status))
}

func StatusConfirm(w io.Writer, id int64, prev, next string) {
	if prev == "" {
		fmt.Fprintf(w, "@cuke:%d -> %s\n", id, okStyle.Render(next))
		return
	}
	fmt.Fprintf(w, "@cuke:%d %s -> %s\n", id, trkStyle.Render(prev), okStyle.Render(next))
}

func ShowHeader(w io.Writer, id int64, file string) {
	fmt.Fprintf(w, "%s  %s\n", tagStyle.Render(fmt.Sprintf("@cuke:%d", id)), file)
}

// Step prints one rendered step, including its doc string or data table.
func Step(w io.Writer, st gherkin.Step) {
	fmt.Fprintf(w, "  %s %s\n", keywordStyle.Render(st.Keyword), st.Text)
	if st.DocString != nil {
		fmt.Fprintln(w, `    """`)
		for _, line := range strings.Split(*st.DocString, "\n") {
			fmt.Fprintln(w, trkStyle.Render("    "+line))
		}
		fmt.Fprintln(w, `    """`)
	}
	for _, row := range st.Table {
		fmt.Fprintf(w, "    | %s |\n", strings.Join(row, " | "))
	}
}

func UndefinedStep(w io.Writer, file string, st gherkin.Step) {
	fmt.Fprintf(w, "%s  %s:%d: %s %s\n", errStyle.Render("undefined"), file, st.Line+1, st.Keyword, st.Text)
}

func StepsSummary(w io.Writer, defined, undefined int) {
	if undefined == 0 {
		fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("%d steps, all defined", defined)))
		return
	}
	fmt.Fprintf(w, "%d steps, %s\n", defined+undefined, errStyle.Render(fmt.Sprintf("%d undefined", undefined)))
}
