package gherkin

import "fmt"

// ParseError reports the first structural problem found while parsing.
// Line and Col are 1-based; Snippet is a short run of the unconsumed input
// at the point of failure.
type ParseError struct {
	Message string
	Line    int
	Col     int
	Snippet string
}

func (e *ParseError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s near %q", e.Line, e.Col, e.Message, e.Snippet)
}
