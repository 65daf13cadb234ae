package screens

// Menu choice constants for different screens
var (
	// MainMenuChoices defines the main menu options in the correct order
	MainMenuChoices = []string{
		"🚀 Backup Configs",
		"🔄 Restore Configs",
		"🛠️ System Setup",
		"ℹ️ About",
		"❌ Exit",
	}

	// BackupMenuChoices defines the backup menu options
	BackupMenuChoices = []string{
		"☁️ Backup & Upload to Drive",
		"📁 Backup to Staging Only",
		"⬅️ Back",
	}

	// RestoreMenuChoices defines the restore menu options
	RestoreMenuChoices = []string{
		"☁️ Download Latest & Restore",
		"📁 Restore from Staging Only",
		"⬅️ Back",
	}

	// ConfirmationChoices defines standard yes/no choices
	ConfirmationChoices = []string{
		"✅ Yes",
		"❌ No",
	}
)

// GetMenuChoices returns the appropriate menu choices for a given screen
func GetMenuChoices(screen Screen) []string {
	switch screen {
	case ScreenMain:
		return MainMenuChoices
	case ScreenBackup:
		return BackupMenuChoices
	case ScreenRestore:
		return RestoreMenuChoices
	case ScreenConfirm:
		return ConfirmationChoices
	default:
		return []string{}
	}
}

