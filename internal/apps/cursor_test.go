package apps

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripJSONComments(t *testing.T) {
	in := `{
  // editor basics
  "editor.fontSize": 14, /* block
  comment */
  "files.exclude": "//not-a-comment in a string",
  "terminal.integrated.shell": "/usr/bin/fish"
}`

	var settings map[string]interface{}
	require.NoError(t, json.Unmarshal(StripJSONComments([]byte(in)), &settings))
	require.Len(t, settings, 3)
	require.Equal(t, "//not-a-comment in a string", settings["files.exclude"])
	require.Equal(t, "/usr/bin/fish", settings["terminal.integrated.shell"])
}

func setupCursorHome(t *testing.T, home string) {
	t.Helper()
	user := filepath.Join(home, ".config", "Cursor", "User")
	writeFile(t, filepath.Join(user, "settings.json"), `{
  // theme
  "workbench.colorTheme": "Tokyo Night",
  "editor.fontSize": 14
}`)
	writeFile(t, filepath.Join(user, "keybindings.json"), `[]`)
	writeFile(t, filepath.Join(user, "snippets", "go.json"), `{}`)
	writeFile(t, filepath.Join(user, "profiles", "work1", "settings.json"), `{"editor.fontSize": 12}`)

	writeFile(t, filepath.Join(home, ".cursor", "extensions", "extensions.json"), `[
  {"identifier": {"id": "golang.go"}, "version": "0.41.4"},
  {"identifier": {"id": "charliermarsh.ruff"}, "version": "2024.30.0"}
]`)
	writeFile(t, filepath.Join(home, ".cursor", "argv.json"), `{"enable-crash-reporter": false}`)
}

func TestCursorExtractStagesProfilesAndExtensions(t *testing.T) {
	home := t.TempDir()
	staging := t.TempDir()
	setupCursorHome(t, home)

	c := NewCursor(home)
	result, err := c.Extract(staging)
	require.NoError(t, err)

	stageDir := filepath.Join(staging, "cursor-data")
	require.FileExists(t, filepath.Join(stageDir, "default", "settings.json"))
	require.FileExists(t, filepath.Join(stageDir, "default", "snippets", "go.json"))
	require.FileExists(t, filepath.Join(stageDir, "profiles", "work1", "settings.json"))
	require.FileExists(t, filepath.Join(stageDir, "_global", "argv.json"))

	// Extension IDs come out flat and sorted
	list, err := os.ReadFile(filepath.Join(stageDir, "extensions.txt"))
	require.NoError(t, err)
	require.Equal(t, "charliermarsh.ruff\ngolang.go\n", string(list))

	require.Contains(t, result.Details, "cursor: profile default has 2 settings")
	require.Contains(t, result.Details, "cursor: 2 extensions in inventory")
}

func TestCursorRestoreReinstallsExtensions(t *testing.T) {
	home := t.TempDir()
	staging := t.TempDir()
	setupCursorHome(t, home)

	c := NewCursor(home)
	_, err := c.Extract(staging)
	require.NoError(t, err)

	// Wipe the settings, then restore with a fake installer
	require.NoError(t, os.RemoveAll(filepath.Join(home, ".config", "Cursor")))

	var installed []string
	c.reinstallCmd = func(id string) error {
		installed = append(installed, id)
		return nil
	}

	result, err := c.Restore(staging)
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(home, ".config", "Cursor", "User", "settings.json"))
	require.FileExists(t, filepath.Join(home, ".config", "Cursor", "User", "profiles", "work1", "settings.json"))
	require.Equal(t, []string{"charliermarsh.ruff", "golang.go"}, installed)
	require.Contains(t, result.Details, "cursor: reinstalled 2 extensions")
}

func TestCursorRestoreExtensionFailureIsWarning(t *testing.T) {
	home := t.TempDir()
	staging := t.TempDir()
	setupCursorHome(t, home)

	c := NewCursor(home)
	_, err := c.Extract(staging)
	require.NoError(t, err)

	c.reinstallCmd = func(id string) error {
		return os.ErrPermission
	}

	result, err := c.Restore(staging)
	require.NoError(t, err)
	require.Contains(t, result.Details, "cursor: reinstalled 0 extensions")
	require.NotEmpty(t, result.Warnings)
}
