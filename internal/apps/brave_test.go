package apps

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testBookmarks = `{
  "roots": {
    "bookmark_bar": {
      "name": "Bookmarks bar",
      "type": "folder",
      "children": [
        {"type": "url", "name": "Go", "url": "https://go.dev"},
        {
          "type": "folder",
          "name": "News",
          "children": [
            {"type": "url", "name": "LWN", "url": "https://lwn.net"}
          ]
        }
      ]
    },
    "other": {
      "name": "Other bookmarks",
      "type": "folder",
      "children": [
        {"type": "url", "name": "Wiki", "url": "https://wiki.archlinux.org"}
      ]
    }
  }
}`

func setupBraveProfile(t *testing.T, home, profileDir, displayName string) string {
	t.Helper()
	dir := filepath.Join(home, ".config", "BraveSoftware", "Brave-Browser", profileDir)
	writeFile(t, filepath.Join(dir, "Preferences"), `{"profile":{"name":"`+displayName+`"}}`)
	writeFile(t, filepath.Join(dir, "Bookmarks"), testBookmarks)
	writeFile(t, filepath.Join(dir, "History"), "sqlite-data-placeholder")
	return dir
}

func TestBraveDiscoverProfiles(t *testing.T) {
	home := t.TempDir()
	setupBraveProfile(t, home, "Default", "Personal")
	setupBraveProfile(t, home, "Profile 1", "Work")

	// Directories without a Preferences file are not profiles
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".config", "BraveSoftware", "Brave-Browser", "Profile 9"), 0755))
	// Unrelated directories are ignored entirely
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".config", "BraveSoftware", "Brave-Browser", "GrShaderCache"), 0755))

	b := NewBrave(home)
	profiles, err := b.DiscoverProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.Equal(t, "Default", profiles[0].Dir)
	require.Equal(t, "Personal", profiles[0].DisplayName)
	require.Equal(t, "Profile 1", profiles[1].Dir)
	require.Equal(t, "Work", profiles[1].DisplayName)
}

func TestBraveExtractExportsBookmarks(t *testing.T) {
	home := t.TempDir()
	staging := t.TempDir()
	setupBraveProfile(t, home, "Default", "Personal")

	b := NewBrave(home)
	result, err := b.Extract(staging)
	require.NoError(t, err)

	stageDir := filepath.Join(staging, "brave-data", "Default")
	require.FileExists(t, filepath.Join(stageDir, "Bookmarks"))
	require.FileExists(t, filepath.Join(stageDir, "History"))

	data, err := os.ReadFile(filepath.Join(stageDir, "bookmarks.json"))
	require.NoError(t, err)

	var entries []bookmarkEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 3)
	require.Equal(t, "Go", entries[0].Name)
	require.Equal(t, "Bookmarks bar", entries[0].Folder)
	require.Equal(t, "LWN", entries[1].Name)
	require.Equal(t, "Bookmarks bar/News", entries[1].Folder)
	require.Equal(t, "Wiki", entries[2].Name)

	require.Contains(t, result.Details[0], "3 bookmarks")
}

func TestBraveExtractNoDataDirWarns(t *testing.T) {
	b := NewBrave(t.TempDir())
	result, err := b.Extract(t.TempDir())
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
}

func TestBraveRestoreSkipsMissingLocalProfile(t *testing.T) {
	home := t.TempDir()
	staging := t.TempDir()

	// Stage data for two profiles but only create one locally
	writeFile(t, filepath.Join(staging, "brave-data", "Default", "Bookmarks"), testBookmarks)
	writeFile(t, filepath.Join(staging, "brave-data", "Default", "History"), "sqlite-data-placeholder")
	writeFile(t, filepath.Join(staging, "brave-data", "Profile 1", "Bookmarks"), testBookmarks)
	setupBraveProfile(t, home, "Default", "Personal")

	b := NewBrave(home)
	result, err := b.Restore(staging)
	require.NoError(t, err)

	// Default got its bookmarks back, Profile 1 was skipped with a warning
	restored, err := os.ReadFile(filepath.Join(home, ".config", "BraveSoftware", "Brave-Browser", "Default", "Bookmarks"))
	require.NoError(t, err)
	require.Equal(t, testBookmarks, string(restored))

	require.NotEmpty(t, result.Warnings)
	require.Contains(t, result.Warnings[0], "Profile 1")
}
