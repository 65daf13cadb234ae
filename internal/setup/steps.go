// Package setup implements the machine setup installer.
//
// Setup is a fixed list of seven numbered steps (keyring refresh through
// directory creation). The user toggles steps on and off in the menu, then
// runs the selected ones. Steps always execute in their numbered order, one
// at a time; a failing step is recorded and the run moves on to the next
// selected step so one broken mirror does not strand a fresh machine.
package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Step is one numbered installer step.
type Step struct {
	ID          int
	Title       string
	Description string

	run func(r *runner) error
}

// packages installed by the package installation step. Each one is attempted
// independently; failures are tallied, not fatal.
var packages = []string{
	"fish",
	"konsole",
	"brave-bin",
	"git",
	"base-devel",
	"htop",
	"unzip",
	"rsync",
}

// services enabled by the service configuration step.
var services = []string{
	"NetworkManager",
	"bluetooth",
}

// userDirs created by the directory creation step, relative to home.
var userDirs = []string{
	"Projects",
	"Backups",
	filepath.Join(".local", "bin"),
}

// Steps returns the installer steps in their fixed numbered order.
func Steps() []Step {
	return []Step{
		{
			ID:          1,
			Title:       "Refresh package keyring",
			Description: "Reinstall the distribution keyring so package signatures verify",
			run: func(r *runner) error {
				return r.exec("sudo", "pacman", "-Sy", "--noconfirm", "archlinux-keyring")
			},
		},
		{
			ID:          2,
			Title:       "Update mirror list",
			Description: "Rank package mirrors by speed and rewrite the mirror list",
			run: func(r *runner) error {
				if !r.commandExists("reflector") {
					r.logf("reflector not installed, keeping existing mirror list")
					return nil
				}
				return r.exec("sudo", "reflector", "--latest", "20", "--sort", "rate",
					"--save", "/etc/pacman.d/mirrorlist")
			},
		},
		{
			ID:          3,
			Title:       "Update system packages",
			Description: "Full system upgrade",
			run: func(r *runner) error {
				return r.exec("sudo", "pacman", "-Syu", "--noconfirm")
			},
		},
		{
			ID:          4,
			Title:       "Set up fish shell",
			Description: "Make fish the login shell for the current user",
			run:         setupShell,
		},
		{
			ID:          5,
			Title:       "Install packages",
			Description: "Install the standard package set, one package at a time",
			run:         installPackages,
		},
		{
			ID:          6,
			Title:       "Configure services",
			Description: "Enable and start system services",
			run:         configureServices,
		},
		{
			ID:          7,
			Title:       "Create directories",
			Description: "Create the standard home directory layout",
			run:         createDirectories,
		},
	}
}

// StepCount is the number of installer steps.
func StepCount() int { return len(Steps()) }

func setupShell(r *runner) error {
	fishPath, err := r.lookPath("fish")
	if err != nil {
		return fmt.Errorf("fish is not installed, run the package step first")
	}

	if shell := os.Getenv("SHELL"); shell == fishPath {
		r.logf("fish is already the login shell")
		return nil
	}

	if err := r.exec("chsh", "-s", fishPath); err != nil {
		return fmt.Errorf("failed to change login shell: %v", err)
	}
	r.logf("login shell set to %s", fishPath)
	return nil
}

// installPackages installs each package separately so one unavailable package
// does not block the rest. Failures are reported in the step output.
func installPackages(r *runner) error {
	installed, failed := 0, 0
	var failures []string

	for _, pkg := range packages {
		r.logf("installing %s", pkg)
		if err := r.exec("sudo", "pacman", "-S", "--needed", "--noconfirm", pkg); err != nil {
			failed++
			failures = append(failures, pkg)
			r.logf("failed to install %s: %v", pkg, err)
			continue
		}
		installed++
	}

	r.logf("packages: %d installed, %d failed", installed, failed)
	if failed > 0 {
		return fmt.Errorf("%d packages failed to install: %s", failed, strings.Join(failures, ", "))
	}
	return nil
}

func configureServices(r *runner) error {
	for _, svc := range services {
		if err := r.exec("sudo", "systemctl", "enable", "--now", svc); err != nil {
			return fmt.Errorf("failed to enable %s: %v", svc, err)
		}
		r.logf("enabled %s", svc)
	}
	return nil
}

func createDirectories(r *runner) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %v", err)
	}

	for _, dir := range userDirs {
		path := filepath.Join(home, dir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %v", path, err)
		}
		r.logf("created %s", path)
	}
	return nil
}
