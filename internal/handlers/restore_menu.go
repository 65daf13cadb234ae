package handlers

import (
	"dotkeeper/internal/screens"

	tea "github.com/charmbracelet/bubbletea"
)

// RestoreMenuHandler handles restore menu selections
type RestoreMenuHandler struct{}

// NewRestoreMenuHandler creates a new restore menu handler
func NewRestoreMenuHandler() *RestoreMenuHandler {
	return &RestoreMenuHandler{}
}

// HandleSelection processes a restore menu selection and returns the next state
func (h *RestoreMenuHandler) HandleSelection(cursor int) (screen screens.Screen, operation string, choices []string, cmd tea.Cmd) {
	switch cursor {
	case 0: // Download latest and restore
		return screens.ScreenConfirm, "cloud_restore", screens.ConfirmationChoices, nil
	case 1: // Restore from staging only
		return screens.ScreenConfirm, "local_restore", screens.ConfirmationChoices, nil
	case 2: // Back
		return screens.ScreenMain, "", screens.MainMenuChoices, nil
	}
	return screens.ScreenRestore, "", screens.RestoreMenuChoices, nil
}
