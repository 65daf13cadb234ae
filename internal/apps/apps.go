// Package apps implements per-application extraction and restore.
//
// Each supported application (fish, brave, cursor, konsole) knows how to copy
// its own configuration out of the home directory into a staging folder, and
// how to put a previously staged copy back. Extraction and restore never
// transform file contents; everything is copied byte-for-byte so a round trip
// reproduces the original files exactly.
//
// A missing source file or directory is a warning, not an error. People run
// backups on machines where not every application is installed, and the run
// must keep going.
package apps

import (
	"fmt"
	"os"

	"dotkeeper/internal/fsutil"
)

// Result summarizes one application's extraction or restore run.
type Result struct {
	App         string   // application name
	FilesCopied int      // regular files written
	Warnings    []string // missing sources, skipped pieces
	Details     []string // human-readable lines for the completion screen
}

func (r *Result) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) detailf(format string, args ...interface{}) {
	r.Details = append(r.Details, fmt.Sprintf(format, args...))
}

// App is one supported application. Extract copies its configuration into the
// staging directory; Restore copies a staged configuration back into place,
// saving a .bak copy of anything it overwrites.
type App interface {
	Name() string
	Extract(stagingRoot string) (*Result, error)
	Restore(stagingRoot string) (*Result, error)
}

// All returns the supported applications in the fixed order they run.
// homeDir overrides the home directory; pass "" for the real one.
func All(homeDir string) ([]App, error) {
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return nil, err
		}
	}

	return []App{
		NewFish(homeDir),
		NewBrave(homeDir),
		NewCursor(homeDir),
		NewKonsole(homeDir),
	}, nil
}

// copyFileCounted copies src to dst and bumps the result's file counter.
// A missing src records a warning instead of failing.
func copyFileCounted(src, dst string, r *Result) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		r.warnf("not found, skipping: %s", src)
		return nil
	}
	if err := fsutil.CopyFile(src, dst); err != nil {
		return err
	}
	r.FilesCopied++
	return nil
}

// copyDirCounted copies the directory src into dst and adds its file count to
// the result. A missing src records a warning instead of failing.
func copyDirCounted(src, dst string, r *Result) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		r.warnf("not found, skipping: %s", src)
		return nil
	}
	if err := fsutil.CopyDir(src, dst); err != nil {
		return err
	}
	r.FilesCopied += countRegularFiles(dst)
	return nil
}

// restoreFile backs up the existing target and copies the staged file over it.
// A missing staged file records a warning instead of failing.
func restoreFile(staged, target string, r *Result) error {
	if _, err := os.Stat(staged); os.IsNotExist(err) {
		r.warnf("nothing staged, skipping: %s", staged)
		return nil
	}
	if err := fsutil.BackupExisting(target); err != nil {
		return err
	}
	if err := fsutil.CopyFile(staged, target); err != nil {
		return err
	}
	r.FilesCopied++
	return nil
}

// restoreDir backs up the existing target directory and copies the staged
// directory over it. A missing staged directory records a warning.
func restoreDir(staged, target string, r *Result) error {
	if _, err := os.Stat(staged); os.IsNotExist(err) {
		r.warnf("nothing staged, skipping: %s", staged)
		return nil
	}
	if err := fsutil.BackupExisting(target); err != nil {
		return err
	}
	if err := fsutil.CopyDir(staged, target); err != nil {
		return err
	}
	r.FilesCopied += countRegularFiles(staged)
	return nil
}
