// Package expression implements the step pattern language: Compile turns a
// pattern such as "I have {int} item(s)" into an immutable node sequence, and
// Match extracts typed arguments from step text without backtracking.
package expression

import (
	"fmt"
	"strings"
)

type nodeKind int

const (
	nodeLiteral nodeKind = iota
	nodeParam
	nodeOptText
	nodeAlt
)

type node struct {
	kind     nodeKind
	text     string    // literal or optional text
	param    paramType // set for nodeParam
	optional bool      // {type?}
	alts     []string  // alternation options, in declared order
}

// Expression is a compiled pattern. It is immutable and safe to share across
// goroutines: compile once, match many.
type Expression struct {
	source string
	nodes  []node
}

// Source returns the pattern text the expression was compiled from.
func (e *Expression) Source() string {
	return e.source
}

// CompileError reports a malformed pattern or a reference to an unknown
// parameter type. Col is the 1-based position in the pattern.
type CompileError struct {
	Message  string
	Col      int
	Fragment string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("pattern column %d: %s", e.Col, e.Message)
}

func compileErr(pattern string, pos int, msg string) *CompileError {
	frag := pattern[pos:]
	if len(frag) > 20 {
		frag = frag[:20]
	}
	return &CompileError{Message: msg, Col: pos + 1, Fragment: frag}
}

// altBoundary reports whether c may not appear inside an alternation option.
func altBoundary(c byte) bool {
	switch c {
	case ' ', '\t', '/', '\\', '{', '}', '(', ')':
		return true
	}
	return false
}

// Compile parses a pattern string into an Expression. Unknown parameter types
// and malformed syntax are rejected here, never at match time.
func Compile(pattern string) (*Expression, error) {
	var nodes []node
	var lit []byte
	// Bytes below fixed entered the buffer via an escape and never migrate
	// into an alternation option.
	fixed := 0

	flush := func() {
		if len(lit) > 0 {
			nodes = append(nodes, node{kind: nodeLiteral, text: string(lit)})
			lit = lit[:0]
			fixed = 0
		}
	}

	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch c {
		case '\\':
			if i+1 >= len(pattern) {
				return nil, compileErr(pattern, i, "pattern ends with a dangling backslash")
			}
			next := pattern[i+1]
			if !strings.ContainsRune(`{}()/\`, rune(next)) {
				return nil, compileErr(pattern, i, fmt.Sprintf("unrecognized escape sequence \\%c", next))
			}
			lit = append(lit, next)
			fixed = len(lit)
			i += 2

		case '{':
			flush()
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				return nil, compileErr(pattern, i, "unterminated parameter: missing }")
			}
			name := pattern[i+1 : i+end]
			optional := strings.HasSuffix(name, "?")
			if optional {
				name = name[:len(name)-1]
			}
			pt, ok := paramTypes[name]
			if !ok {
				return nil, compileErr(pattern, i, fmt.Sprintf("unknown parameter type %q", name))
			}
			nodes = append(nodes, node{kind: nodeParam, param: pt, optional: optional})
			i += end + 1

		case '(':
			flush()
			end := strings.IndexByte(pattern[i:], ')')
			if end < 0 {
				return nil, compileErr(pattern, i, "unterminated optional text: missing )")
			}
			if end == 1 {
				return nil, compileErr(pattern, i, "optional text is empty")
			}
			nodes = append(nodes, node{kind: nodeOptText, text: pattern[i+1 : i+end]})
			i += end + 1

		case '/':
			// The first option is the word accumulated just before the slash.
			k := len(lit)
			for k > fixed && !altBoundary(lit[k-1]) {
				k--
			}
			first := string(lit[k:])
			if first == "" {
				return nil, compileErr(pattern, i, "alternation option is empty")
			}
			lit = lit[:k]
			flush()
			opts := []string{first}
			for {
				i++
				j := i
				for j < len(pattern) && !altBoundary(pattern[j]) {
					j++
				}
				if j == i {
					return nil, compileErr(pattern, i, "alternation option is empty")
				}
				opts = append(opts, pattern[i:j])
				i = j
				if i >= len(pattern) || pattern[i] != '/' {
					break
				}
			}
			nodes = append(nodes, node{kind: nodeAlt, alts: opts})

		default:
			lit = append(lit, c)
			i++
		}
	}
	flush()

	return &Expression{source: pattern, nodes: mergeLiterals(nodes)}, nil
}

// mergeLiterals folds adjacent literal nodes together so the matcher never
// sees a split literal.
func mergeLiterals(nodes []node) []node {
	merged := nodes[:0]
	for _, n := range nodes {
		if n.kind == nodeLiteral && len(merged) > 0 && merged[len(merged)-1].kind == nodeLiteral {
			merged[len(merged)-1].text += n.text
			continue
		}
		merged = append(merged, n)
	}
	return merged
}
