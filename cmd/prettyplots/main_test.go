package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prettyplots/internal/gallery"
	"prettyplots/internal/recipe"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	renderOutput, renderFormat, renderWatch = "", "", false
	templateOut = ""
	cfgPath = ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestTemplateCommand(t *testing.T) {
	ws := t.TempDir()

	out, err := execute(t, "--workspace", ws, "template", "plot")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: plot")
	assert.Contains(t, out, "series:")

	_, err = execute(t, "--workspace", ws, "template", "scatter3d")
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	ws := t.TempDir()
	recipePath := filepath.Join(ws, "decay.yaml")
	require.NoError(t, os.WriteFile(recipePath, []byte(`
kind: plot
plot:
  series:
    - name: run
      x: [0, 1, 2]
      y: [3, 2, 1]
`), 0644))

	figure := filepath.Join(ws, "decay.png")
	out, err := execute(t, "--workspace", ws, "render", recipePath, "--output", figure)
	require.NoError(t, err)
	assert.Contains(t, out, "decay.png")

	info, err := os.Stat(figure)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// The render lands in the history.
	out, err = execute(t, "--workspace", ws, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "decay.png")

	// The record carries the format and the digest of the written file.
	store, err := gallery.Open(filepath.Join(ws, ".prettyplots", "gallery.db"))
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "png", entries[0].Format)

	sum, err := fileSHA256(figure)
	require.NoError(t, err)
	assert.Equal(t, sum, entries[0].OutputSHA256)
}

func TestRenderCommand_BadRecipe(t *testing.T) {
	ws := t.TempDir()
	recipePath := filepath.Join(ws, "broken.yaml")
	require.NoError(t, os.WriteFile(recipePath, []byte("kind: nope\n"), 0644))

	_, err := execute(t, "--workspace", ws, "render", recipePath)
	assert.Error(t, err)
}

func TestStatusCommand(t *testing.T) {
	ws := t.TempDir()

	out, err := execute(t, "--workspace", ws, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "version:")
	assert.Contains(t, out, version)
	assert.Contains(t, out, "format:")
	assert.Contains(t, out, ".pdf")
}

func TestOutputFor_DefaultsFromRecipeName(t *testing.T) {
	ws := t.TempDir()

	// Prime cfg through the status command.
	_, err := execute(t, "--workspace", ws, "status")
	require.NoError(t, err)

	cfg.Output.Dir = ws
	r := &recipe.Recipe{Kind: recipe.KindPlot}
	out, err := outputFor(r, filepath.Join("some", "dir", "decay.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws, "decay.pdf"), out)
}
