package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd, teardown := newRootCmd()
	defer teardown()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTasksCommands(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DB_PATH", filepath.Join(dir, "taskflow.db"))
	t.Setenv("NOTIFY", "none")

	out, err := run(t, "tasks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks.")

	out, err = run(t, "tasks", "add", "write", "release", "notes")
	require.NoError(t, err)
	id := regexp.MustCompile(`Added (\S+)`).FindStringSubmatch(out)
	require.Len(t, id, 2)

	out, err = run(t, "tasks", "toggle", id[1])
	require.NoError(t, err)
	assert.Contains(t, out, "[x] "+id[1]+"  write release notes")

	out, err = run(t, "tasks", "clear-completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 completed task(s)")

	_, err = run(t, "tasks", "delete", id[1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task not found")

	_, err = run(t, "tasks", "add", "   ")
	assert.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DB_PATH", filepath.Join(dir, "taskflow.db"))

	out, err := run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded.")

	out, err = run(t, "history", "--clear")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "History cleared."))
}

func TestLogFlagWritesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DB_PATH", filepath.Join(dir, "taskflow.db"))
	logPath := filepath.Join(dir, "logs", "taskflow.log")

	_, err := run(t, "--log", logPath, "tasks", "list")
	require.NoError(t, err)
	assert.FileExists(t, logPath)
}

// chdir changes the working directory for the duration of the test,
// matching testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
