package apps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKonsoleExtractRestoreRoundTrip(t *testing.T) {
	home := t.TempDir()
	staging := t.TempDir()

	rcPath := filepath.Join(home, ".config", "konsolerc")
	profilePath := filepath.Join(home, ".local", "share", "konsole", "Tokyo.profile")

	writeFile(t, rcPath, "[Desktop Entry]\nDefaultProfile=Tokyo.profile\n")
	writeFile(t, profilePath, "[Appearance]\nColorScheme=TokyoNight\n")

	k := NewKonsole(home)
	result, err := k.Extract(staging)
	require.NoError(t, err)
	require.Equal(t, 2, result.FilesCopied)
	// konsolesshconfig was absent
	require.Len(t, result.Warnings, 1)

	require.FileExists(t, filepath.Join(staging, "konsole-data", "konsolerc"))
	require.FileExists(t, filepath.Join(staging, "konsole-data", "profiles", "Tokyo.profile"))

	writeFile(t, rcPath, "[Desktop Entry]\nDefaultProfile=Broken.profile\n")

	_, err = k.Restore(staging)
	require.NoError(t, err)

	data, err := os.ReadFile(rcPath)
	require.NoError(t, err)
	require.Equal(t, "[Desktop Entry]\nDefaultProfile=Tokyo.profile\n", string(data))
	require.FileExists(t, rcPath+".bak")
}
