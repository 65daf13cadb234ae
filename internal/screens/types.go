package screens

// Screen represents the different screens/views in the application
type Screen int

// Screen constants define all possible screens in the application
const (
	ScreenMain Screen = iota
	ScreenBackup
	ScreenRestore
	ScreenSetup
	ScreenAbout
	ScreenConfirm
	ScreenProgress
	ScreenError
	ScreenComplete
)

// String returns the string representation of a screen
func (s Screen) String() string {
	switch s {
	case ScreenMain:
		return "Main Menu"
	case ScreenBackup:
		return "Backup Menu"
	case ScreenRestore:
		return "Restore Menu"
	case ScreenSetup:
		return "Setup Steps"
	case ScreenAbout:
		return "About"
	case ScreenConfirm:
		return "Confirmation"
	case ScreenProgress:
		return "Progress"
	case ScreenError:
		return "Error"
	case ScreenComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}
