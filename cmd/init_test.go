package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func runInit(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunInit(&buf))
	return buf.String()
}

func TestInit_CreatesProjectDirectory(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	info, err := os.Stat(filepath.Join(dir, "cukes"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Contains(t, out, "cukes/ created")
}

func TestInit_ProjectDirectoryAlreadyExists(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "cukes"), 0o755))

	out := runInit(t)

	assert.Contains(t, out, "cukes/ already exists")
}

func TestInit_InitializesDatabase(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	_, err := os.Stat(filepath.Join(dir, "cukes", "cuke.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "cukes/cuke.db created")
}

func TestInit_AddsGitignoreEntry(t *testing.T) {
	inTempDir(t)
	out := runInit(t)

	data, err := os.ReadFile(".gitignore")
	require.NoError(t, err)
	assert.Contains(t, string(data), "cukes/cuke.db")
	assert.Contains(t, out, "added to .gitignore")
}

func TestInit_GitignoreEntryAlreadyPresent(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile(".gitignore", []byte("cukes/cuke.db\n"), 0o644))

	out := runInit(t)

	assert.Contains(t, out, "already in .gitignore")
}

func TestInit_Idempotent(t *testing.T) {
	inTempDir(t)
	runInit(t)
	out := runInit(t)

	assert.Contains(t, out, "cukes/ already exists")
	assert.Contains(t, out, "cukes/cuke.db already exists")
}
