package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags_CountsAcrossScenarios(t *testing.T) {
	inTempDir(t)
	runInit(t)
	content := `Feature: Tags
  @smoke @auth
  Scenario: First
    Given a

  @smoke
  Scenario: Second
    Given b
`
	require.NoError(t, os.WriteFile("cukes/tags.feature", []byte(content), 0o644))
	runSync(t)

	var buf bytes.Buffer
	require.NoError(t, RunTags(&buf))

	out := buf.String()
	assert.Contains(t, out, "@smoke  2")
	assert.Contains(t, out, "@auth  1")
}

func TestTags_NoTags(t *testing.T) {
	inTempDir(t)
	runInit(t)
	require.NoError(t, os.WriteFile("cukes/login.feature", []byte(validFeature), 0o644))
	runSync(t)

	var buf bytes.Buffer
	require.NoError(t, RunTags(&buf))
	assert.Contains(t, buf.String(), "no tags")
}
