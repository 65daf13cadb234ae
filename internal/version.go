// Package internal provides version information and build metadata for the dotkeeper application.
//
// This module centralizes all version-related constants and provides formatted strings
// for consistent display across the application. To update the version, simply change
// the AppVersion constant - all other version strings will be automatically updated.
package internal

// Application metadata constants.
// These constants define the core identity and versioning information for dotkeeper.
const (
	// AppName is the official name of the application
	AppName = "dotkeeper"

	// AppVersion follows semantic versioning (major.minor.patch)
	AppVersion = "0.4.2"

	// AppDesc is the tagline/description used in UI and documentation
	AppDesc = "Desktop Config Backup, Restore & Setup"
)

// GetVersionString returns just the version number for programmatic use.
// Example: "0.4.2"
func GetVersionString() string {
	return AppVersion
}

// GetFullVersionString returns the application name with version for display.
// Example: "dotkeeper v0.4.2"
func GetFullVersionString() string {
	return AppName + " v" + AppVersion
}

// GetAppTitle returns the complete application title including description.
// Used for the main application header.
func GetAppTitle() string {
	return AppName + " v" + AppVersion + " - " + AppDesc
}

// GetSubtitle returns a compact version string for UI footers.
func GetSubtitle() string {
	return AppName + " v" + AppVersion
}

// GetAboutText returns the standard about text for help screens.
func GetAboutText() string {
	return AppName + " v" + AppVersion + " - " + AppDesc
}

// GetBackupInfoHeader generates version information for backup metadata files.
// This text is embedded in BACKUP-INFO.txt inside the staging directory so a
// restored machine knows which version produced the archive.
func GetBackupInfoHeader() string {
	return "This backup was created using " + AppName + " v" + AppVersion + "\n" + AppDesc
}
