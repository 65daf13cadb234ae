package apps

import (
	"path/filepath"
)

// Fish handles the fish shell: command history plus the whole ~/.config/fish
// tree (config.fish, functions, completions, conf.d, fish_variables).
type Fish struct {
	homeDir string
}

// NewFish returns a Fish rooted at the given home directory.
func NewFish(homeDir string) *Fish {
	return &Fish{homeDir: homeDir}
}

func (f *Fish) Name() string { return "fish" }

func (f *Fish) historyPath() string {
	return filepath.Join(f.homeDir, ".local", "share", "fish", "fish_history")
}

func (f *Fish) configDir() string {
	return filepath.Join(f.homeDir, ".config", "fish")
}

// Extract copies the fish history file and configuration directory into
// <stagingRoot>/fish-data/.
func (f *Fish) Extract(stagingRoot string) (*Result, error) {
	r := &Result{App: f.Name()}
	stageDir := filepath.Join(stagingRoot, "fish-data")

	if err := copyFileCounted(f.historyPath(), filepath.Join(stageDir, "fish_history"), r); err != nil {
		return r, err
	}

	if err := copyDirCounted(f.configDir(), filepath.Join(stageDir, "config"), r); err != nil {
		return r, err
	}

	r.detailf("fish: staged %d files", r.FilesCopied)
	return r, nil
}

// Restore copies a staged fish configuration back into the home directory,
// saving .bak copies of the current history and config first.
func (f *Fish) Restore(stagingRoot string) (*Result, error) {
	r := &Result{App: f.Name()}
	stageDir := filepath.Join(stagingRoot, "fish-data")

	if err := restoreFile(filepath.Join(stageDir, "fish_history"), f.historyPath(), r); err != nil {
		return r, err
	}

	if err := restoreDir(filepath.Join(stageDir, "config"), f.configDir(), r); err != nil {
		return r, err
	}

	r.detailf("fish: restored %d files", r.FilesCopied)
	return r, nil
}
