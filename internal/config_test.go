package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresStagingRoot(t *testing.T) {
	t.Setenv("BACKUP_FOLDER_PATH", "")
	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "BACKUP_FOLDER_PATH")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BACKUP_FOLDER_PATH", "/tmp/staging")
	t.Setenv("GOOGLE_DRIVE_FOLDER_ID", "")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "")
	t.Setenv("GOOGLE_TOKEN_FILE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "/tmp/staging", cfg.StagingRoot)
	require.Empty(t, cfg.DriveFolderID)
	require.Equal(t, "google-creds.json", cfg.CredentialsFile)
	require.Equal(t, "google-token.json", cfg.TokenFile)
}

func TestLoadConfigExplicitValues(t *testing.T) {
	t.Setenv("BACKUP_FOLDER_PATH", "/data/backup")
	t.Setenv("GOOGLE_DRIVE_FOLDER_ID", "folder-123")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "/secrets/creds.json")
	t.Setenv("GOOGLE_TOKEN_FILE", "/secrets/token.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "folder-123", cfg.DriveFolderID)
	require.Equal(t, "/secrets/creds.json", cfg.CredentialsFile)
	require.Equal(t, "/secrets/token.json", cfg.TokenFile)
}

func TestSetupConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	selections := map[int]bool{1: true, 3: true, 7: true}
	require.NoError(t, SaveSetupConfig(selections))

	loaded, err := LoadSetupConfig()
	require.NoError(t, err)
	require.Equal(t, selections, loaded.StepSelections)
}

func TestLoadSetupConfigMissingFileReturnsEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	loaded, err := LoadSetupConfig()
	require.NoError(t, err)
	require.Empty(t, loaded.StepSelections)
}

func TestLoadSetupConfigIgnoresOtherUsersSelections(t *testing.T) {
	homeA := t.TempDir()
	t.Setenv("HOME", homeA)
	require.NoError(t, SaveSetupConfig(map[int]bool{2: true}))

	// Carry the saved file into a different home directory; the recorded
	// home no longer matches, so the selections are discarded
	homeB := t.TempDir()
	saved, err := os.ReadFile(filepath.Join(homeA, ".config", "dotkeeper", "setup.json"))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(homeB, ".config", "dotkeeper"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(homeB, ".config", "dotkeeper", "setup.json"), saved, 0644))

	t.Setenv("HOME", homeB)
	loaded, err := LoadSetupConfig()
	require.NoError(t, err)
	require.Empty(t, loaded.StepSelections)
}

func TestResetSetupConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, SaveSetupConfig(map[int]bool{5: true}))
	require.NoError(t, ResetSetupConfig())

	loaded, err := LoadSetupConfig()
	require.NoError(t, err)
	require.Empty(t, loaded.StepSelections)

	// Resetting twice is fine
	require.NoError(t, ResetSetupConfig())
}
