// Package internal provides disk space checks for the staging directory.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"
)

// MinFreeSpace is the minimum free space required on the filesystem holding
// the staging directory before an extraction or download is allowed to start.
// Browser history databases are the largest things staged; 1 GB is generous.
const MinFreeSpace = 1 * 1024 * 1024 * 1024

// CheckStagingSpace verifies that the filesystem holding the staging directory
// has at least MinFreeSpace bytes available. The staging directory is created
// if it does not exist yet so the usage query has a valid path to inspect.
func CheckStagingSpace(stagingRoot string) error {
	if err := os.MkdirAll(stagingRoot, 0755); err != nil {
		return fmt.Errorf("failed to create staging directory %s: %v", stagingRoot, err)
	}

	usage, err := disk.Usage(stagingRoot)
	if err != nil {
		return fmt.Errorf("failed to query disk usage for %s: %v", stagingRoot, err)
	}

	if usage.Free < MinFreeSpace {
		return fmt.Errorf("INSUFFICIENT SPACE: only %s free on %s (need at least %s)",
			FormatBytes(int64(usage.Free)), filepath.Dir(stagingRoot), FormatBytes(MinFreeSpace))
	}

	return nil
}

// StagingUsageSummary returns a human-readable line describing free space on
// the staging filesystem, for display before long operations.
func StagingUsageSummary(stagingRoot string) string {
	usage, err := disk.Usage(stagingRoot)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s free of %s on staging filesystem",
		FormatBytes(int64(usage.Free)), FormatBytes(int64(usage.Total)))
}
