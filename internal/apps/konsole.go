package apps

import (
	"path/filepath"
)

// Konsole handles the KDE Konsole terminal: the main konsolerc, the SSH
// manager configuration, and the profile/color-scheme directory under
// ~/.local/share/konsole.
type Konsole struct {
	homeDir string
}

// NewKonsole returns a Konsole rooted at the given home directory.
func NewKonsole(homeDir string) *Konsole {
	return &Konsole{homeDir: homeDir}
}

func (k *Konsole) Name() string { return "konsole" }

func (k *Konsole) rcPath() string {
	return filepath.Join(k.homeDir, ".config", "konsolerc")
}

func (k *Konsole) sshConfigPath() string {
	return filepath.Join(k.homeDir, ".config", "konsolesshconfig")
}

func (k *Konsole) profilesDir() string {
	return filepath.Join(k.homeDir, ".local", "share", "konsole")
}

// Extract copies konsolerc, konsolesshconfig, and the profiles directory into
// <stagingRoot>/konsole-data/.
func (k *Konsole) Extract(stagingRoot string) (*Result, error) {
	r := &Result{App: k.Name()}
	stageDir := filepath.Join(stagingRoot, "konsole-data")

	if err := copyFileCounted(k.rcPath(), filepath.Join(stageDir, "konsolerc"), r); err != nil {
		return r, err
	}
	if err := copyFileCounted(k.sshConfigPath(), filepath.Join(stageDir, "konsolesshconfig"), r); err != nil {
		return r, err
	}
	if err := copyDirCounted(k.profilesDir(), filepath.Join(stageDir, "profiles"), r); err != nil {
		return r, err
	}

	r.detailf("konsole: staged %d files", r.FilesCopied)
	return r, nil
}

// Restore copies staged Konsole configuration back, saving .bak copies first.
func (k *Konsole) Restore(stagingRoot string) (*Result, error) {
	r := &Result{App: k.Name()}
	stageDir := filepath.Join(stagingRoot, "konsole-data")

	if err := restoreFile(filepath.Join(stageDir, "konsolerc"), k.rcPath(), r); err != nil {
		return r, err
	}
	if err := restoreFile(filepath.Join(stageDir, "konsolesshconfig"), k.sshConfigPath(), r); err != nil {
		return r, err
	}
	if err := restoreDir(filepath.Join(stageDir, "profiles"), k.profilesDir(), r); err != nil {
		return r, err
	}

	r.detailf("konsole: restored %d files", r.FilesCopied)
	return r, nil
}
