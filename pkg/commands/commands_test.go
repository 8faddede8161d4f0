package commands

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("BNOTE_CONFIG_PATH", t.TempDir())

	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--path", dir, "--log-level", "off"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestConfirmThenDays(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "confirm", "• buy milk", "scratch", "O standup")
	require.NoError(t, err)
	assert.Contains(t, out, "• buy milk")
	assert.Contains(t, out, "O standup")

	out, err = run(t, dir, "days")
	require.NoError(t, err)
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "standup")
	assert.NotContains(t, out, "scratch")

	out, err = run(t, dir, "report", "--last", "1d")
	require.NoError(t, err)
	assert.Contains(t, out, "tasks 1 (1 open)")
}

func TestConfirmWithoutMarkers(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "draft", "set", "just thinking")
	require.NoError(t, err)

	_, err = run(t, dir, "confirm")
	assert.ErrorContains(t, err, "nothing to save")

	out, err := run(t, dir, "draft", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "just thinking")
}

func TestDraftInsertByLine(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "draft", "set", "first", "call mom")
	require.NoError(t, err)

	out, err := run(t, dir, "draft", "insert", "--event", "--line", "2")
	require.NoError(t, err)
	assert.Equal(t, "first\nO call mom\n", out)

	out, err = run(t, dir, "draft", "insert", "--task", "--line", "2")
	require.NoError(t, err)
	assert.Equal(t, "first\n• call mom\n", out)

	_, err = run(t, dir, "draft", "insert", "--task", "--line", "9")
	assert.Error(t, err)
}

func TestParseDoesNotSave(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "parse", "– idea", "prose")
	require.NoError(t, err)
	assert.Contains(t, out, "Parsed - 1 entry")
	assert.Contains(t, out, "– idea")

	out, err = run(t, dir, "days")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved notes yet.")
}

func TestResetRequiresYes(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "reset")
	assert.Error(t, err)
	_, err = run(t, dir, "reset", "--yes")
	assert.NoError(t, err)
}

func TestLineOffset(t *testing.T) {
	text := "a\nbb\nccc"
	for line, want := range map[int]int{1: 0, 2: 2, 3: 5} {
		got, err := lineOffset(text, line)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := lineOffset(text, 4)
	assert.Error(t, err)
}
