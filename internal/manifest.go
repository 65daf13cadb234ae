// Package internal provides the staging manifest mapping applications to archive folders.
package internal

import (
	"fmt"
	"sort"
)

// StagingFolders maps each supported application to the sub-folder it owns
// inside the staging directory (and therefore inside every remote archive).
// Each application writes only under its own folder so restores can pick
// per-application data out of a mixed archive.
var StagingFolders = map[string]string{
	"fish":    "fish-data",
	"brave":   "brave-data",
	"cursor":  "cursor-data",
	"konsole": "konsole-data",
}

// AppOrder is the fixed order in which applications are extracted and restored.
var AppOrder = []string{"fish", "brave", "cursor", "konsole"}

// StagingFolderFor returns the archive sub-folder owned by the named application.
func StagingFolderFor(app string) (string, error) {
	folder, ok := StagingFolders[app]
	if !ok {
		return "", fmt.Errorf("unknown application: %s", app)
	}
	return folder, nil
}

// ValidateManifest checks that every application has a staging folder, that no
// two applications share one, and that the run order covers exactly the known
// applications. Called once at startup; a failure here is a programming error.
func ValidateManifest() error {
	seen := make(map[string]string)
	for app, folder := range StagingFolders {
		if folder == "" {
			return fmt.Errorf("application %s has an empty staging folder", app)
		}
		if other, dup := seen[folder]; dup {
			return fmt.Errorf("staging folder collision: %s used by both %s and %s", folder, other, app)
		}
		seen[folder] = app
	}

	if len(AppOrder) != len(StagingFolders) {
		return fmt.Errorf("run order lists %d applications, manifest has %d", len(AppOrder), len(StagingFolders))
	}
	for _, app := range AppOrder {
		if _, ok := StagingFolders[app]; !ok {
			return fmt.Errorf("run order names unknown application: %s", app)
		}
	}

	return nil
}

// KnownApps returns the application names in alphabetical order, for display.
func KnownApps() []string {
	apps := make([]string, 0, len(StagingFolders))
	for app := range StagingFolders {
		apps = append(apps, app)
	}
	sort.Strings(apps)
	return apps
}
