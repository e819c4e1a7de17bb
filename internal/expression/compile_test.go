package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileOK(t *testing.T, pattern string) *Expression {
	t.Helper()
	e, err := Compile(pattern)
	require.NoError(t, err)
	return e
}

func compileErrOf(t *testing.T, pattern string) *CompileError {
	t.Helper()
	_, err := Compile(pattern)
	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	return ce
}

func TestCompile_PlainLiteral(t *testing.T) {
	e := compileOK(t, "I have a cucumber")
	require.Len(t, e.nodes, 1)
	assert.Equal(t, nodeLiteral, e.nodes[0].kind)
	assert.Equal(t, "I have a cucumber", e.nodes[0].text)
	assert.Equal(t, "I have a cucumber", e.Source())
}

func TestCompile_Parameter(t *testing.T) {
	e := compileOK(t, "I have {int} items")
	require.Len(t, e.nodes, 3)
	assert.Equal(t, nodeLiteral, e.nodes[0].kind)
	assert.Equal(t, "I have ", e.nodes[0].text)
	assert.Equal(t, nodeParam, e.nodes[1].kind)
	assert.Equal(t, "int", e.nodes[1].param.name)
	assert.False(t, e.nodes[1].optional)
	assert.Equal(t, " items", e.nodes[2].text)
}

func TestCompile_OptionalParameter(t *testing.T) {
	e := compileOK(t, "retry{int?}")
	require.Len(t, e.nodes, 2)
	assert.Equal(t, nodeParam, e.nodes[1].kind)
	assert.True(t, e.nodes[1].optional)
}

func TestCompile_OptionalText(t *testing.T) {
	e := compileOK(t, "I have cucumber(s)")
	require.Len(t, e.nodes, 2)
	assert.Equal(t, nodeOptText, e.nodes[1].kind)
	assert.Equal(t, "s", e.nodes[1].text)
}

func TestCompile_Alternation(t *testing.T) {
	e := compileOK(t, "I click/tap/press the button")
	require.Len(t, e.nodes, 3)
	assert.Equal(t, "I ", e.nodes[0].text)
	assert.Equal(t, nodeAlt, e.nodes[1].kind)
	assert.Equal(t, []string{"click", "tap", "press"}, e.nodes[1].alts)
	assert.Equal(t, " the button", e.nodes[2].text)
}

func TestCompile_AlternationAtPatternStart(t *testing.T) {
	e := compileOK(t, "click/tap here")
	require.Len(t, e.nodes, 2)
	assert.Equal(t, nodeAlt, e.nodes[0].kind)
	assert.Equal(t, []string{"click", "tap"}, e.nodes[0].alts)
}

func TestCompile_EscapesMergeIntoOneLiteral(t *testing.T) {
	e := compileOK(t, `a\/b\{c\}`)
	require.Len(t, e.nodes, 1)
	assert.Equal(t, "a/b{c}", e.nodes[0].text)
}

func TestCompile_EscapedSlashDoesNotJoinAlternation(t *testing.T) {
	// The escaped slash is literal text; only the second slash alternates.
	e := compileOK(t, `a\/b/c`)
	require.Len(t, e.nodes, 2)
	assert.Equal(t, nodeLiteral, e.nodes[0].kind)
	assert.Equal(t, "a/", e.nodes[0].text)
	assert.Equal(t, []string{"b", "c"}, e.nodes[1].alts)
}

func TestCompile_UnknownParameterType(t *testing.T) {
	ce := compileErrOf(t, "I have {bogus} items")
	assert.Contains(t, ce.Message, "bogus")
	assert.Contains(t, ce.Message, "unknown parameter type")
	assert.Equal(t, 8, ce.Col)
	assert.Contains(t, ce.Fragment, "{bogus}")
}

func TestCompile_UnterminatedParameter(t *testing.T) {
	ce := compileErrOf(t, "I have {int items")
	assert.Contains(t, ce.Message, "missing }")
}

func TestCompile_UnterminatedOptionalText(t *testing.T) {
	ce := compileErrOf(t, "cucumber(s")
	assert.Contains(t, ce.Message, "missing )")
}

func TestCompile_EmptyOptionalText(t *testing.T) {
	ce := compileErrOf(t, "cucumber()")
	assert.Contains(t, ce.Message, "empty")
}

func TestCompile_DanglingBackslash(t *testing.T) {
	ce := compileErrOf(t, `oops\`)
	assert.Contains(t, ce.Message, "backslash")
}

func TestCompile_UnrecognizedEscape(t *testing.T) {
	ce := compileErrOf(t, `digit \d here`)
	assert.Contains(t, ce.Message, `\d`)
}

func TestCompile_EmptyAlternationOption(t *testing.T) {
	for _, pattern := range []string{"/tap", "click/", "click//tap"} {
		ce := compileErrOf(t, pattern)
		assert.Contains(t, ce.Message, "alternation", "pattern %q", pattern)
	}
}
