// Package internal provides configuration management and persistent storage for user preferences.
//
// This module handles:
//   - Environment-driven runtime configuration (staging path, Drive folder ID, credential files)
//   - Saving and loading installer step selections so re-runs remember previous choices
//   - Configuration file management with atomic writes and proper error handling
//
// Runtime configuration comes from the environment (a .env file is honored by the
// entry point); only UI preferences are persisted under ~/.config/dotkeeper/.
package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds the runtime configuration resolved from the environment.
type Config struct {
	// StagingRoot is the local folder whose layout mirrors the remote archive.
	// Required; read from BACKUP_FOLDER_PATH.
	StagingRoot string

	// DriveFolderID is the Google Drive parent folder for backup archives.
	// Optional; read from GOOGLE_DRIVE_FOLDER_ID. Empty means Drive root.
	DriveFolderID string

	// CredentialsFile is the OAuth client secret JSON file.
	// Read from GOOGLE_CREDENTIALS_FILE, default "google-creds.json".
	CredentialsFile string

	// TokenFile persists the OAuth refresh/access token pair.
	// Read from GOOGLE_TOKEN_FILE, default "google-token.json".
	TokenFile string
}

// LoadConfig resolves the runtime configuration from the environment.
// BACKUP_FOLDER_PATH is the only required variable.
func LoadConfig() (*Config, error) {
	stagingRoot := os.Getenv("BACKUP_FOLDER_PATH")
	if stagingRoot == "" {
		return nil, fmt.Errorf("BACKUP_FOLDER_PATH not set - create a .env file or export it with the path to back up")
	}

	cfg := &Config{
		StagingRoot:     stagingRoot,
		DriveFolderID:   os.Getenv("GOOGLE_DRIVE_FOLDER_ID"),
		CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		TokenFile:       os.Getenv("GOOGLE_TOKEN_FILE"),
	}

	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = "google-creds.json"
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = "google-token.json"
	}

	return cfg, nil
}

// SetupConfig represents persistent configuration for installer step selections.
// This structure is saved to disk to remember user preferences between sessions.
type SetupConfig struct {
	Version     string    `json:"version"`      // Config format version for migration
	LastUpdated time.Time `json:"last_updated"` // When this config was last saved
	HomeDir     string    `json:"home_dir"`     // Home directory path for validation

	// StepSelections maps installer step IDs (1-7) to their selected state.
	StepSelections map[int]bool `json:"step_selections"`
}

// getConfigDir returns the appropriate configuration directory for the current user.
// Uses XDG specification on Linux: ~/.config/dotkeeper/
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %v", err)
	}

	configDir := filepath.Join(homeDir, ".config", "dotkeeper")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %v", err)
	}

	return configDir, nil
}

// getSetupConfigPath returns the full path to the installer preferences file.
func getSetupConfigPath() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "setup.json"), nil
}

// SaveSetupConfig persists the current installer step selections to disk.
// This allows users to resume their selections in future setup sessions.
func SaveSetupConfig(selections map[int]bool) error {
	configPath, err := getSetupConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %v", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %v", err)
	}

	config := SetupConfig{
		Version:        "1.0",
		LastUpdated:    time.Now(),
		HomeDir:        homeDir,
		StepSelections: selections,
	}

	jsonData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	// Write to file atomically (write to temp file, then rename)
	tempPath := configPath + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write temp config file: %v", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename config file: %v", err)
	}

	return nil
}

// LoadSetupConfig restores previously saved installer step selections.
// Returns an empty config if none exists or if the home directory changed
// (the saved selections belonged to a different account).
func LoadSetupConfig() (*SetupConfig, error) {
	configPath, err := getSetupConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %v", err)
	}

	currentHomeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %v", err)
	}

	empty := &SetupConfig{
		Version:        "1.0",
		LastUpdated:    time.Now(),
		HomeDir:        currentHomeDir,
		StepSelections: make(map[int]bool),
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return empty, nil
	}

	jsonData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config SetupConfig
	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %v", err)
	}

	if config.HomeDir != currentHomeDir {
		return empty, nil
	}
	if config.StepSelections == nil {
		config.StepSelections = make(map[int]bool)
	}

	return &config, nil
}

// ResetSetupConfig clears all saved installer selections.
func ResetSetupConfig() error {
	configPath, err := getSetupConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %v", err)
	}

	if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %v", err)
	}

	return nil
}
