package gherkin

// Document model for parsed .feature files. Values are assembled bottom-up
// during parsing and never mutated after Parse returns; every parent owns its
// children outright.

type Feature struct {
	Name        string
	Description string // reserved, not populated
	Tags        []string
	Background  *Background
	Children    []FeatureChild
}

// FeatureChild is one entry in a feature body, in textual order. Exactly one
// of Scenario or Outline is set.
type FeatureChild struct {
	Scenario *Scenario
	Outline  *ScenarioOutline
}

type Background struct {
	Steps []Step
}

type Scenario struct {
	Name  string
	Tags  []string
	Steps []Step
	Line  int // 0-based line of the Scenario: keyword
}

type ScenarioOutline struct {
	Name     string
	Tags     []string
	Steps    []Step
	Examples []Examples
	Line     int // 0-based line of the Scenario Outline: keyword
}

type Examples struct {
	Name   string
	Tags   []string
	Header []string
	Rows   [][]string // every row is the same width as Header
	Line   int        // 0-based line of the Examples: keyword
}

type Step struct {
	Keyword   string // Given, When, Then, And, But, *
	Text      string
	DocString *string    // nil when absent
	Table     [][]string // nil when absent; never set together with DocString
	Line      int        // 0-based line of the keyword
}
