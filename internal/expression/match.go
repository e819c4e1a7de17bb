package expression

import "strings"

// Match runs the compiled expression against text. On success it returns the
// captured values in source order: parameter nodes contribute one value each
// (nil for an optional parameter that matched nothing); optional text and
// alternation contribute none. A failed match returns (nil, false) — it is a
// result, not an error.
//
// The walk is a single left-to-right pass. Every node commits to a fixed
// consumption rule or decides via a prefix probe, so no backtracking into an
// earlier decision ever happens.
func (e *Expression) Match(text string) ([]any, bool) {
	return matchNodes(text, e.nodes, []any{})
}

func matchNodes(text string, nodes []node, args []any) ([]any, bool) {
	if len(nodes) == 0 {
		if text == "" {
			return args, true
		}
		return nil, false
	}

	n := nodes[0]
	switch n.kind {
	case nodeLiteral:
		rest, ok := strings.CutPrefix(text, n.text)
		if !ok {
			return nil, false
		}
		return matchNodes(rest, nodes[1:], args)

	case nodeParam:
		if val, rest, ok := n.param.parse(text); ok {
			return matchNodes(rest, nodes[1:], append(args, val))
		}
		if n.optional {
			// The parameter contributed nothing; the same text goes to the
			// next node.
			return matchNodes(text, nodes[1:], append(args, nil))
		}
		return nil, false

	case nodeOptText:
		if rest, ok := strings.CutPrefix(text, n.text); ok {
			return matchNodes(rest, nodes[1:], args)
		}
		return matchNodes(text, nodes[1:], args)

	case nodeAlt:
		for _, opt := range n.alts {
			if rest, ok := strings.CutPrefix(text, opt); ok {
				return matchNodes(rest, nodes[1:], args)
			}
		}
		return nil, false
	}
	return nil, false
}
