package gherkin

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`@[A-Za-z0-9_-]+`)

var stepKeywords = []string{"Given", "When", "Then", "And", "But", "*"}

// Parse parses the raw text of a .feature file into a Feature tree. The first
// structural error aborts the parse; the returned error is always a
// *ParseError. Parse performs no I/O and keeps no state between calls, so it
// is safe to call concurrently.
func Parse(content []byte) (*Feature, error) {
	p := &parser{lines: strings.Split(string(content), "\n")}
	return p.document()
}

// parser walks the input line by line. The only mutable state is the current
// line index, which makes rewinding a matter of restoring an int.
type parser struct {
	lines []string
	i     int
}

// --- primitives ---

func (p *parser) eof() bool {
	return p.i >= len(p.lines)
}

// cur returns the current line with surrounding whitespace trimmed.
func (p *parser) cur() string {
	return strings.TrimSpace(p.lines[p.i])
}

// skipBlank advances past blank lines and comment lines.
func (p *parser) skipBlank() {
	for !p.eof() {
		t := p.cur()
		if t == "" || strings.HasPrefix(t, "#") {
			p.i++
			continue
		}
		break
	}
}

// errHere builds a ParseError at the current position.
func (p *parser) errHere(msg string) *ParseError {
	return p.errAt(p.i, msg)
}

// errAt builds a ParseError at the 0-based line index i.
func (p *parser) errAt(i int, msg string) *ParseError {
	e := &ParseError{Message: msg, Line: i + 1, Col: 1}
	if i < len(p.lines) {
		line := p.lines[i]
		e.Col = len(line) - len(strings.TrimLeft(line, " \t")) + 1
		snippet := strings.TrimSpace(line)
		if len(snippet) > 40 {
			snippet = snippet[:40]
		}
		e.Snippet = snippet
	}
	return e
}

// --- keywords ---

func isTagLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "@")
}

func isScenarioOpener(trimmed string) bool {
	return strings.HasPrefix(trimmed, "Scenario:")
}

func isOutlineOpener(trimmed string) bool {
	return strings.HasPrefix(trimmed, "Scenario Outline:") ||
		strings.HasPrefix(trimmed, "Scenario Template:")
}

func isBackgroundOpener(trimmed string) bool {
	return strings.HasPrefix(trimmed, "Background:")
}

func isExamplesOpener(trimmed string) bool {
	return strings.HasPrefix(trimmed, "Examples:") ||
		strings.HasPrefix(trimmed, "Scenarios:")
}

// isSectionBoundary reports whether a trimmed line ends the current run of
// steps.
func isSectionBoundary(trimmed string) bool {
	return isTagLine(trimmed) || isScenarioOpener(trimmed) ||
		isOutlineOpener(trimmed) || isBackgroundOpener(trimmed) ||
		isExamplesOpener(trimmed)
}

// stepKeyword splits a trimmed line into a step keyword and its text. The
// keyword must be followed by a single space; a bare keyword is not a step.
func stepKeyword(trimmed string) (keyword, text string, ok bool) {
	for _, kw := range stepKeywords {
		if strings.HasPrefix(trimmed, kw+" ") {
			return kw, strings.TrimSpace(trimmed[len(kw)+1:]), true
		}
	}
	return "", "", false
}

// keywordRest returns the trimmed text after the first colon of an opener
// line such as "Scenario: name".
func keywordRest(trimmed string) string {
	idx := strings.IndexByte(trimmed, ':')
	return strings.TrimSpace(trimmed[idx+1:])
}

// --- elements ---

// tagLines consumes consecutive tag lines (blank lines and comments between
// them included) and returns the accumulated tag names without the leading @.
func (p *parser) tagLines() []string {
	var tags []string
	for {
		p.skipBlank()
		if p.eof() || !isTagLine(p.cur()) {
			return tags
		}
		for _, m := range tagPattern.FindAllString(p.cur(), -1) {
			tags = append(tags, strings.TrimPrefix(m, "@"))
		}
		p.i++
	}
}

// tableRow splits a pipe-delimited row into trimmed cells. An empty final
// cell produced by the trailing pipe is dropped.
func (p *parser) tableRow() ([]string, error) {
	cells := strings.Split(p.cur()[1:], "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	if len(cells) == 0 {
		return nil, p.errHere("table row has no cells")
	}
	p.i++
	return cells, nil
}

// table consumes consecutive table rows, tolerating blank lines between them.
func (p *parser) table() ([][]string, error) {
	var rows [][]string
	for {
		p.skipBlank()
		if p.eof() || !strings.HasPrefix(p.cur(), "|") {
			return rows, nil
		}
		row, err := p.tableRow()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// docString consumes a triple-quoted block. The common leading indentation of
// the non-empty content lines is stripped so relative indentation survives;
// trailing whitespace on the joined result is trimmed.
func (p *parser) docString() (string, error) {
	open := p.i
	p.i++
	var content []string
	for !p.eof() {
		if p.cur() == `"""` {
			p.i++
			return dedent(content), nil
		}
		content = append(content, p.lines[p.i])
		p.i++
	}
	return "", p.errAt(open, "unterminated doc string")
}

func dedent(lines []string) string {
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	stripped := make([]string, len(lines))
	for i, l := range lines {
		if indent > 0 && len(l) >= indent {
			l = l[indent:]
		} else if indent > 0 {
			l = strings.TrimLeft(l, " \t")
		}
		stripped[i] = l
	}
	return strings.TrimRight(strings.Join(stripped, "\n"), " \t\n")
}

// --- steps ---

// steps consumes step lines until a section boundary or end of input. Each
// step may carry one doc string or one data table.
func (p *parser) steps() ([]Step, error) {
	var steps []Step
	for {
		p.skipBlank()
		if p.eof() || isSectionBoundary(p.cur()) {
			return steps, nil
		}
		kw, text, ok := stepKeyword(p.cur())
		if !ok {
			return nil, p.errHere("expected a step (Given, When, Then, And, But or *)")
		}
		step := Step{Keyword: kw, Text: text, Line: p.i}
		p.i++

		p.skipBlank()
		if !p.eof() {
			switch {
			case p.cur() == `"""`:
				doc, err := p.docString()
				if err != nil {
					return nil, err
				}
				step.DocString = &doc
			case strings.HasPrefix(p.cur(), "|"):
				tbl, err := p.table()
				if err != nil {
					return nil, err
				}
				step.Table = tbl
			}
		}
		steps = append(steps, step)
	}
}

// --- sections ---

func (p *parser) background() (*Background, error) {
	p.i++
	steps, err := p.steps()
	if err != nil {
		return nil, err
	}
	return &Background{Steps: steps}, nil
}

func (p *parser) scenario(tags []string) (*Scenario, error) {
	sc := &Scenario{Name: keywordRest(p.cur()), Tags: tags, Line: p.i}
	p.i++
	steps, err := p.steps()
	if err != nil {
		return nil, err
	}
	sc.Steps = steps
	return sc, nil
}

func (p *parser) outline(tags []string) (*ScenarioOutline, error) {
	o := &ScenarioOutline{Name: keywordRest(p.cur()), Tags: tags, Line: p.i}
	p.i++
	steps, err := p.steps()
	if err != nil {
		return nil, err
	}
	o.Steps = steps

	for {
		// Tags seen here may belong to an Examples block or to the next
		// scenario. Rewind if no Examples opener follows.
		mark := p.i
		exTags := p.tagLines()
		p.skipBlank()
		if p.eof() || !isExamplesOpener(p.cur()) {
			p.i = mark
			break
		}
		ex, err := p.examples(exTags)
		if err != nil {
			return nil, err
		}
		o.Examples = append(o.Examples, *ex)
	}

	if len(o.Examples) == 0 {
		return nil, p.errAt(o.Line, "Scenario Outline has no Examples")
	}
	return o, nil
}

func (p *parser) examples(tags []string) (*Examples, error) {
	ex := &Examples{Name: keywordRest(p.cur()), Tags: tags, Line: p.i}
	p.i++
	rows, err := p.table()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, p.errAt(ex.Line, "Examples table has no header row")
	}
	ex.Header = rows[0]
	for _, row := range rows[1:] {
		if len(row) != len(ex.Header) {
			return nil, p.errAt(ex.Line, "Examples row width does not match header")
		}
	}
	ex.Rows = rows[1:]
	return ex, nil
}

// --- document ---

func (p *parser) document() (*Feature, error) {
	feat := &Feature{}
	feat.Tags = p.tagLines()

	p.skipBlank()
	if p.eof() || !strings.HasPrefix(p.cur(), "Feature:") {
		return nil, p.errHere("expected Feature:")
	}
	feat.Name = keywordRest(p.cur())
	if feat.Name == "" {
		return nil, p.errHere("feature has no name")
	}
	p.i++

	// Description lines are consumed but not kept; the Description field is
	// reserved for a later revision of the model.
	for !p.eof() {
		t := p.cur()
		if isTagLine(t) || isBackgroundOpener(t) || isScenarioOpener(t) || isOutlineOpener(t) {
			break
		}
		p.i++
	}

	for {
		tags := p.tagLines()
		p.skipBlank()
		if p.eof() {
			if len(tags) > 0 {
				return nil, p.errHere("tags are not followed by a scenario")
			}
			return feat, nil
		}

		t := p.cur()
		switch {
		case isBackgroundOpener(t):
			// Backgrounds take no tags; drop any that preceded the keyword.
			if feat.Background != nil {
				return nil, p.errHere("duplicate Background section")
			}
			if len(feat.Children) > 0 {
				return nil, p.errHere("Background must come before scenarios")
			}
			bg, err := p.background()
			if err != nil {
				return nil, err
			}
			feat.Background = bg
		case isOutlineOpener(t):
			o, err := p.outline(tags)
			if err != nil {
				return nil, err
			}
			feat.Children = append(feat.Children, FeatureChild{Outline: o})
		case isScenarioOpener(t):
			sc, err := p.scenario(tags)
			if err != nil {
				return nil, err
			}
			feat.Children = append(feat.Children, FeatureChild{Scenario: sc})
		case isExamplesOpener(t):
			return nil, p.errHere("Examples outside of a Scenario Outline")
		default:
			return nil, p.errHere("expected Scenario or Scenario Outline")
		}
	}
}
