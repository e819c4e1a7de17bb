package expression

import (
	"strconv"
	"strings"
)

// Atom is the value produced by the {atom} parameter type. It is a distinct
// type so callers can tell a symbolic name apart from a plain string capture.
type Atom string

// paramType couples a parameter type name with its sub-parser. A sub-parser
// consumes a prefix of s and returns the converted value plus the unconsumed
// remainder, or ok=false when the prefix does not satisfy the sub-grammar.
type paramType struct {
	name  string
	parse func(s string) (val any, rest string, ok bool)
}

// paramTypes is the closed set of recognized parameter types. Compile resolves
// names against this table, so an unknown type fails at compile time.
var paramTypes = map[string]paramType{
	"int":    {name: "int", parse: parseInt},
	"float":  {name: "float", parse: parseFloat},
	"word":   {name: "word", parse: parseWord},
	"string": {name: "string", parse: parseQuoted},
	"atom":   {name: "atom", parse: parseAtom},
}

func digits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func parseInt(s string) (any, string, bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	n := digits(s[i:])
	if n == 0 {
		return nil, "", false
	}
	i += n
	v, err := strconv.Atoi(s[:i])
	if err != nil {
		return nil, "", false
	}
	return v, s[i:], true
}

// parseFloat requires a decimal point: a bare integer does not satisfy
// {float}.
func parseFloat(s string) (any, string, bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	n := digits(s[i:])
	if n == 0 {
		return nil, "", false
	}
	i += n
	if i >= len(s) || s[i] != '.' {
		return nil, "", false
	}
	i++
	n = digits(s[i:])
	if n == 0 {
		return nil, "", false
	}
	i += n
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return nil, "", false
	}
	return v, s[i:], true
}

func parseWord(s string) (any, string, bool) {
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	if i == 0 {
		return nil, "", false
	}
	return s[:i], s[i:], true
}

func isAtomByte(c byte) bool {
	return c == '_' || c == '@' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func parseAtom(s string) (any, string, bool) {
	i := 0
	for i < len(s) && isAtomByte(s[i]) {
		i++
	}
	if i == 0 {
		return nil, "", false
	}
	return Atom(s[:i]), s[i:], true
}

// parseQuoted consumes a double-quoted string with \" and \\ escapes and
// yields the unescaped content.
func parseQuoted(s string) (any, string, bool) {
	if len(s) == 0 || s[0] != '"' {
		return nil, "", false
	}
	var b strings.Builder
	i := 1
	for i < len(s) {
		switch s[i] {
		case '"':
			return b.String(), s[i+1:], true
		case '\\':
			if i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
				b.WriteByte(s[i+1])
				i += 2
				continue
			}
			b.WriteByte(s[i])
			i++
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return nil, "", false
}
