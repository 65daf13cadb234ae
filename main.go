// Package main implements the entry point for dotkeeper.
//
// This package handles:
//   - Loading environment configuration from a .env file
//   - Single instance checking to prevent concurrent operations
//   - Signal handling for clean shutdown
//   - Headless subcommands (backup, restore, setup) for scripted use
//   - TUI initialization and execution
//
// dotkeeper runs entirely as the invoking user; it never elevates itself.
// The setup steps that need root invoke sudo per command instead.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"dotkeeper/internal"
	"dotkeeper/internal/setup"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

// lockFilePath defines the location of the singleton instance lock file.
// This prevents multiple dotkeeper processes from running concurrently.
const lockFilePath = "/tmp/dotkeeper.lock"

// checkSingleInstance verifies that no other dotkeeper process is currently running.
// It checks for the existence of a lock file and validates that the PID is still active.
// Stale lock files are automatically cleaned up if the process no longer exists.
func checkSingleInstance() error {
	if _, err := os.Stat(lockFilePath); err == nil {
		lockContent, readErr := os.ReadFile(lockFilePath)
		if readErr == nil {
			pid := strings.TrimSpace(string(lockContent))
			if pid != "" {
				if pidInt, err := strconv.Atoi(pid); err == nil {
					if process, err := os.FindProcess(pidInt); err == nil {
						// Signal 0 just checks that the process exists
						if err := process.Signal(syscall.Signal(0)); err == nil {
							return fmt.Errorf("another dotkeeper process is already running (PID: %s)", pid)
						}
					}
				}
			}
		}
		// Stale lock file, remove it
		os.Remove(lockFilePath)
	}
	return nil
}

// createInstanceLock creates a lock file containing the current process ID.
func createInstanceLock() error {
	pid := fmt.Sprintf("%d", os.Getpid())
	return os.WriteFile(lockFilePath, []byte(pid), 0644)
}

// removeInstanceLock deletes the singleton lock file to allow new instances.
func removeInstanceLock() {
	os.Remove(lockFilePath)
}

func main() {
	// A .env next to the binary is the usual way to configure dotkeeper.
	// Absence is fine; exported variables work too.
	godotenv.Load()

	if err := checkSingleInstance(); err != nil {
		fmt.Println("⚠️  " + err.Error())
		fmt.Println()
		fmt.Println("💡 If you're sure no other dotkeeper is running, remove the lock file:")
		fmt.Println("   rm " + lockFilePath)
		os.Exit(1)
	}

	if err := createInstanceLock(); err != nil {
		fmt.Printf("❌ Failed to create instance lock: %v\n", err)
		os.Exit(1)
	}
	defer removeInstanceLock()

	// Clean up the lock on signals too
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		removeInstanceLock()
		os.Exit(1)
	}()

	if len(os.Args) > 1 {
		runHeadless(os.Args[1])
		return
	}

	runTUI()
}

// runTUI starts the interactive interface. A missing configuration is not
// fatal here; the setup installer works without one and backup/restore show
// an error screen explaining what to set.
func runTUI() {
	cfg, cfgErr := internal.LoadConfig()

	m := internal.InitialModel(cfg, cfgErr)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// runHeadless dispatches the scripted subcommands: backup, restore, setup.
func runHeadless(command string) {
	switch command {
	case "backup":
		headlessBackup()
	case "restore":
		headlessRestore()
	case "setup":
		headlessSetup()
	case "version", "--version", "-v":
		fmt.Println(internal.GetFullVersionString())
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println("Usage: dotkeeper [backup|restore|setup|version]")
		fmt.Println("Run without arguments for the interactive interface.")
		os.Exit(1)
	}
}

// printProgress is the shared progress reporter for headless runs.
func printProgress(label string, done, total int) {
	fmt.Printf("[%d/%d] %s\n", done+1, total, label)
}

func headlessBackup() {
	cfg, err := internal.LoadConfig()
	if err != nil {
		fmt.Println(internal.FormatError(err.Error()))
		os.Exit(1)
	}

	upload := cfg.DriveFolderID != "" || fileExists(cfg.CredentialsFile)
	summary, warnings, err := internal.RunBackup(cfg, upload, printProgress)

	printOutcome(summary, warnings)
	if err != nil {
		fmt.Println(internal.FormatError(err.Error()))
		os.Exit(1)
	}
	fmt.Println(internal.FormatSuccess("backup complete"))
}

func headlessRestore() {
	cfg, err := internal.LoadConfig()
	if err != nil {
		fmt.Println(internal.FormatError(err.Error()))
		os.Exit(1)
	}

	download := cfg.DriveFolderID != "" || fileExists(cfg.CredentialsFile)
	summary, warnings, err := internal.RunRestore(cfg, download, printProgress)

	printOutcome(summary, warnings)
	if err != nil {
		fmt.Println(internal.FormatError(err.Error()))
		os.Exit(1)
	}
	fmt.Println(internal.FormatSuccess("restore complete"))
}

// headlessSetup runs every installer step. Scripted setup is all-or-nothing;
// interactive selection lives in the TUI.
func headlessSetup() {
	sel := setup.NewSelection()
	sel.SelectAll()

	report := internal.RunSetup(sel, printProgress)
	for _, res := range report.Results {
		for _, line := range res.Lines {
			fmt.Println("  " + line)
		}
		if res.Err != nil {
			fmt.Println(internal.FormatWarning(fmt.Sprintf("step %d (%s): %v", res.Step.ID, res.Step.Title, res.Err)))
		}
	}

	fmt.Println(report.Summary())
	if report.Failed > 0 {
		os.Exit(1)
	}
}

func printOutcome(summary, warnings []string) {
	for _, line := range summary {
		fmt.Println("  " + line)
	}
	for _, line := range warnings {
		fmt.Println(internal.FormatWarning(line))
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
