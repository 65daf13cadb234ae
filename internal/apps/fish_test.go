package apps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"dotkeeper/internal/fsutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFishExtractRestoreRoundTrip(t *testing.T) {
	home := t.TempDir()
	staging := t.TempDir()

	historyPath := filepath.Join(home, ".local", "share", "fish", "fish_history")
	configPath := filepath.Join(home, ".config", "fish", "config.fish")
	funcPath := filepath.Join(home, ".config", "fish", "functions", "ll.fish")

	writeFile(t, historyPath, "- cmd: ls\n  when: 1700000000\n")
	writeFile(t, configPath, "set -gx EDITOR nvim\n")
	writeFile(t, funcPath, "function ll\n    ls -la $argv\nend\n")

	f := NewFish(home)
	result, err := f.Extract(staging)
	require.NoError(t, err)
	require.Empty(t, result.Warnings)
	require.Equal(t, 3, result.FilesCopied)

	staged := filepath.Join(staging, "fish-data", "fish_history")
	identical, err := fsutil.FilesIdentical(historyPath, staged)
	require.NoError(t, err)
	require.True(t, identical)

	// Change the live files, then restore the staged copies over them
	writeFile(t, historyPath, "- cmd: rm -rf /\n")
	writeFile(t, configPath, "set -gx EDITOR nano\n")

	_, err = f.Restore(staging)
	require.NoError(t, err)

	data, err := os.ReadFile(historyPath)
	require.NoError(t, err)
	require.Equal(t, "- cmd: ls\n  when: 1700000000\n", string(data))

	data, err = os.ReadFile(configPath)
	require.NoError(t, err)
	require.Equal(t, "set -gx EDITOR nvim\n", string(data))

	// The overwritten history was saved aside first
	bak, err := os.ReadFile(historyPath + ".bak")
	require.NoError(t, err)
	require.Equal(t, "- cmd: rm -rf /\n", string(bak))
}

func TestFishExtractMissingSourcesWarnsWithoutFailing(t *testing.T) {
	home := t.TempDir()
	staging := t.TempDir()

	f := NewFish(home)
	result, err := f.Extract(staging)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 2)
	require.Equal(t, 0, result.FilesCopied)
}

func TestFishRestoreNothingStagedWarnsWithoutFailing(t *testing.T) {
	home := t.TempDir()
	staging := t.TempDir()

	f := NewFish(home)
	result, err := f.Restore(staging)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 2)
}
