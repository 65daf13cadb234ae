package handlers

import (
	"dotkeeper/internal/screens"

	tea "github.com/charmbracelet/bubbletea"
)

// BackupMenuHandler handles backup menu selections
type BackupMenuHandler struct{}

// NewBackupMenuHandler creates a new backup menu handler
func NewBackupMenuHandler() *BackupMenuHandler {
	return &BackupMenuHandler{}
}

// HandleSelection processes a backup menu selection and returns the next state
func (h *BackupMenuHandler) HandleSelection(cursor int) (screen screens.Screen, operation string, choices []string, cmd tea.Cmd) {
	switch cursor {
	case 0: // Backup and upload to Drive
		return screens.ScreenConfirm, "cloud_backup", screens.ConfirmationChoices, nil
	case 1: // Backup to staging only
		return screens.ScreenConfirm, "local_backup", screens.ConfirmationChoices, nil
	case 2: // Back
		return screens.ScreenMain, "", screens.MainMenuChoices, nil
	}
	return screens.ScreenBackup, "", screens.BackupMenuChoices, nil
}
