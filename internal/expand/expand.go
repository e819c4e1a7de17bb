// Package expand flattens a parsed feature into concrete scenarios: plain
// scenarios pass through unchanged and every Scenario Outline row becomes one
// scenario with its <placeholder> tokens substituted from the Examples table.
package expand

import (
	"strings"

	"github.com/cuketool/cuke/internal/gherkin"
)

// Scenarios returns the concrete scenarios of a feature in textual order.
// Outline rows keep the order of their Examples block, and blocks keep the
// order they were written in. Background steps are not folded in; running
// them before each scenario is the caller's concern.
func Scenarios(f *gherkin.Feature) []gherkin.Scenario {
	var out []gherkin.Scenario
	for _, ch := range f.Children {
		switch {
		case ch.Scenario != nil:
			out = append(out, *ch.Scenario)
		case ch.Outline != nil:
			out = append(out, Outline(ch.Outline)...)
		}
	}
	return out
}

// Outline expands one Scenario Outline into a scenario per Examples row. The
// tags of each scenario are the union of the outline's tags and the owning
// Examples block's tags, de-duplicated, declaration order preserved; tags
// never leak between Examples blocks.
func Outline(o *gherkin.ScenarioOutline) []gherkin.Scenario {
	var out []gherkin.Scenario
	for _, ex := range o.Examples {
		tags := unionTags(o.Tags, ex.Tags)
		for _, row := range ex.Rows {
			vals := make(map[string]string, len(ex.Header))
			for i, col := range ex.Header {
				vals[col] = row[i]
			}
			sc := gherkin.Scenario{
				Name: substitute(o.Name, vals),
				Tags: tags,
				Line: o.Line,
			}
			for _, st := range o.Steps {
				sc.Steps = append(sc.Steps, substituteStep(st, vals))
			}
			out = append(out, sc)
		}
	}
	return out
}

// substituteStep returns a copy of st with placeholders replaced in the step
// text, the doc string, and every data table cell.
func substituteStep(st gherkin.Step, vals map[string]string) gherkin.Step {
	out := gherkin.Step{Keyword: st.Keyword, Text: substitute(st.Text, vals), Line: st.Line}
	if st.DocString != nil {
		doc := substitute(*st.DocString, vals)
		out.DocString = &doc
	}
	if st.Table != nil {
		out.Table = make([][]string, len(st.Table))
		for i, row := range st.Table {
			cells := make([]string, len(row))
			for j, cell := range row {
				cells[j] = substitute(cell, vals)
			}
			out.Table[i] = cells
		}
	}
	return out
}

func substitute(s string, vals map[string]string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	for col, val := range vals {
		s = strings.ReplaceAll(s, "<"+col+">", val)
	}
	return s
}

func unionTags(outline, examples []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range outline {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range examples {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
