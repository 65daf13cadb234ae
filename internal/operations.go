// Package internal provides the operation engine behind the TUI and the
// headless subcommands.
//
// Operations (backup, restore, setup) run in a single background goroutine
// started from a Bubble Tea command. The goroutine publishes its state through
// package-level variables guarded by a mutex; the UI polls them on a timer via
// CheckOperationProgress. Nothing here runs concurrently with itself: one
// operation at a time, applications processed strictly in order.
package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dotkeeper/internal/apps"
	"dotkeeper/internal/drive"
	"dotkeeper/internal/fsutil"
	"dotkeeper/internal/setup"
)

// ProgressUpdate carries operation progress to the UI.
type ProgressUpdate struct {
	Percentage float64 // Progress from 0.0 to 1.0, or -1 for indeterminate
	Message    string  // Human-readable status message
	Done       bool    // true when operation is complete
	Error      error   // Non-nil if operation failed
}

// Global state variables for TUI operation tracking.
// These coordinate between the background operation and the UI poller.
var (
	tuiOpCompleted  bool  // true when background operation completes
	tuiOpError      error // non-nil if operation failed
	tuiOpCancelling bool  // true when cancellation is in progress

	opStartTime   time.Time // when the current operation started
	opStageDone   int       // completed stages
	opStageTotal  int       // total stages in the current operation
	opStageLabel  string    // what the operation is doing right now
	opSummary     []string  // lines for the completion screen
	opWarnings    []string  // non-fatal problems collected along the way
	opStateMutex  sync.Mutex
)

// resetOperationState clears all global progress tracking variables.
// Must be called before starting any new operation.
func resetOperationState() {
	opStateMutex.Lock()
	defer opStateMutex.Unlock()

	tuiOpCompleted = false
	tuiOpError = nil
	tuiOpCancelling = false

	opStartTime = time.Time{}
	opStageDone = 0
	opStageTotal = 0
	opStageLabel = ""
	opSummary = nil
	opWarnings = nil
}

func setStage(label string, done, total int) {
	opStateMutex.Lock()
	defer opStateMutex.Unlock()
	opStageLabel = label
	opStageDone = done
	opStageTotal = total
}

func addSummary(lines ...string) {
	opStateMutex.Lock()
	defer opStateMutex.Unlock()
	opSummary = append(opSummary, lines...)
}

func addWarnings(lines ...string) {
	opStateMutex.Lock()
	defer opStateMutex.Unlock()
	opWarnings = append(opWarnings, lines...)
}

func finishOperation(err error) {
	opStateMutex.Lock()
	defer opStateMutex.Unlock()
	tuiOpCompleted = true
	tuiOpError = err
}

// GetOperationSummary returns the completion lines of the last operation.
func GetOperationSummary() []string {
	opStateMutex.Lock()
	defer opStateMutex.Unlock()
	return append([]string(nil), opSummary...)
}

// GetOperationWarnings returns the warnings of the last operation.
func GetOperationWarnings() []string {
	opStateMutex.Lock()
	defer opStateMutex.Unlock()
	return append([]string(nil), opWarnings...)
}

// openOperationLog opens the append-only operation log. A nil return is fine;
// logging is best effort.
func openOperationLog(operation string) *os.File {
	logFile, err := os.OpenFile(getLogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}
	fmt.Fprintf(logFile, "\n=== %s STARTED: %s ===\n", operation, time.Now().Format(time.RFC3339))
	return logFile
}

func logf(logFile *os.File, format string, args ...interface{}) {
	if logFile != nil {
		fmt.Fprintf(logFile, format+"\n", args...)
	}
}

// RunBackup extracts every application into the staging directory and, when
// upload is set, pushes the staging directory to Drive as a new timestamped
// archive. This is the shared core of the TUI operation and the headless
// backup subcommand. progress may be nil.
func RunBackup(cfg *Config, upload bool, progress func(label string, done, total int)) ([]string, []string, error) {
	var summary, warnings []string
	report := func(label string, done, total int) {
		if progress != nil {
			progress(label, done, total)
		}
	}

	logFile := openOperationLog("BACKUP")
	defer func() {
		if logFile != nil {
			logFile.Close()
		}
	}()

	if err := ValidateManifest(); err != nil {
		return nil, nil, err
	}
	if err := CheckStagingSpace(cfg.StagingRoot); err != nil {
		return nil, nil, err
	}

	// Stamp the staging directory so a restored machine knows the origin
	info := GetBackupInfoHeader() + "\nCreated: " + time.Now().Format(time.RFC3339) + "\n"
	if err := os.WriteFile(filepath.Join(cfg.StagingRoot, "BACKUP-INFO.txt"), []byte(info), 0644); err != nil {
		warnings = append(warnings, fmt.Sprintf("could not write BACKUP-INFO.txt: %v", err))
	}

	appList, err := apps.All("")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve home directory: %v", err)
	}

	total := len(appList)
	if upload {
		total++
	}

	for i, app := range appList {
		if shouldCancelOperation() {
			return summary, warnings, fmt.Errorf("backup canceled by user")
		}

		report(fmt.Sprintf("Extracting %s configuration...", app.Name()), i, total)
		logf(logFile, "extracting %s", app.Name())

		result, err := app.Extract(cfg.StagingRoot)
		if err != nil {
			return summary, warnings, fmt.Errorf("%s extraction failed: %v", app.Name(), err)
		}
		summary = append(summary, result.Details...)
		warnings = append(warnings, result.Warnings...)
		for _, w := range result.Warnings {
			logf(logFile, "warning: %s", w)
		}
	}

	if size, err := fsutil.DirSize(cfg.StagingRoot); err == nil {
		summary = append(summary, fmt.Sprintf("staged %s in %s", FormatBytes(size), cfg.StagingRoot))
	}

	if upload {
		report("Uploading archive to Google Drive...", total-1, total)
		logf(logFile, "uploading staging directory to Drive")

		ctx := context.Background()
		client, err := drive.NewClient(ctx, cfg.CredentialsFile, cfg.TokenFile, cfg.DriveFolderID)
		if err != nil {
			return summary, warnings, err
		}

		name, stats, err := client.CreateBackup(cfg.StagingRoot)
		if err != nil {
			return summary, warnings, err
		}
		warnings = append(warnings, stats.Warnings...)
		summary = append(summary, fmt.Sprintf("uploaded archive %s: %d files ok, %d failed", name, stats.Uploaded, stats.Failed))
		logf(logFile, "archive %s: uploaded=%d failed=%d", name, stats.Uploaded, stats.Failed)

		if err := client.PersistToken(); err != nil {
			warnings = append(warnings, fmt.Sprintf("could not persist refreshed token: %v", err))
		}
	}

	report("Backup complete", total, total)
	logf(logFile, "backup completed")
	return summary, warnings, nil
}

// RunRestore restores every application from the staging directory. When
// download is set, the newest Drive archive is mirrored into the staging
// directory first. Shared core of the TUI operation and the headless restore
// subcommand. progress may be nil.
func RunRestore(cfg *Config, download bool, progress func(label string, done, total int)) ([]string, []string, error) {
	var summary, warnings []string
	report := func(label string, done, total int) {
		if progress != nil {
			progress(label, done, total)
		}
	}

	logFile := openOperationLog("RESTORE")
	defer func() {
		if logFile != nil {
			logFile.Close()
		}
	}()

	if err := ValidateManifest(); err != nil {
		return nil, nil, err
	}

	appList, err := apps.All("")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve home directory: %v", err)
	}

	total := len(appList)
	if download {
		total++
	}
	stage := 0

	if download {
		if err := CheckStagingSpace(cfg.StagingRoot); err != nil {
			return nil, nil, err
		}

		report("Downloading latest archive from Google Drive...", stage, total)
		logf(logFile, "downloading latest archive")

		ctx := context.Background()
		client, err := drive.NewClient(ctx, cfg.CredentialsFile, cfg.TokenFile, cfg.DriveFolderID)
		if err != nil {
			return summary, warnings, err
		}

		name, stats, err := client.DownloadLatestBackup(cfg.StagingRoot)
		if err != nil {
			return summary, warnings, err
		}
		warnings = append(warnings, stats.Warnings...)
		summary = append(summary, fmt.Sprintf("downloaded archive %s: %d files", name, stats.Downloaded))
		logf(logFile, "archive %s: downloaded=%d", name, stats.Downloaded)

		if err := client.PersistToken(); err != nil {
			warnings = append(warnings, fmt.Sprintf("could not persist refreshed token: %v", err))
		}
		stage++
	}

	for _, app := range appList {
		if shouldCancelOperation() {
			return summary, warnings, fmt.Errorf("restore canceled by user")
		}

		report(fmt.Sprintf("Restoring %s configuration...", app.Name()), stage, total)
		logf(logFile, "restoring %s", app.Name())

		result, err := app.Restore(cfg.StagingRoot)
		if err != nil {
			return summary, warnings, fmt.Errorf("%s restore failed: %v", app.Name(), err)
		}
		summary = append(summary, result.Details...)
		warnings = append(warnings, result.Warnings...)
		for _, w := range result.Warnings {
			logf(logFile, "warning: %s", w)
		}
		stage++
	}

	report("Restore complete", total, total)
	logf(logFile, "restore completed")
	return summary, warnings, nil
}

// RunSetup executes the selected installer steps in order and returns the
// report. Shared by the TUI and the headless setup subcommand.
func RunSetup(sel *setup.Selection, progress func(label string, done, total int)) *setup.Report {
	logFile := openOperationLog("SETUP")
	defer func() {
		if logFile != nil {
			logFile.Close()
		}
	}()

	total := sel.Count()
	done := 0

	report := setup.Run(sel,
		func(step setup.Step) {
			if progress != nil {
				progress(fmt.Sprintf("Step %d: %s...", step.ID, step.Title), done, total)
			}
			logf(logFile, "running step %d: %s", step.ID, step.Title)
			done++
		},
		func(line string) {
			logf(logFile, "  %s", line)
		})

	logf(logFile, "setup finished: %d ok, %d failed", report.Succeeded, report.Failed)
	return report
}

// startBackup creates a Bubble Tea command that runs a backup in the
// background. Progress is polled via CheckOperationProgress.
func startBackup(cfg *Config, upload bool) tea.Cmd {
	return func() tea.Msg {
		resetOperationState()
		resetOperationCancel()

		go func() {
			opStateMutex.Lock()
			opStartTime = time.Now()
			opStateMutex.Unlock()

			summary, warnings, err := RunBackup(cfg, upload, setStage)
			addSummary(summary...)
			addWarnings(warnings...)
			finishOperation(err)
		}()

		return ProgressUpdate{Percentage: -1, Message: "Starting backup...", Done: false}
	}
}

// startRestore creates a Bubble Tea command that runs a restore in the
// background.
func startRestore(cfg *Config, download bool) tea.Cmd {
	return func() tea.Msg {
		resetOperationState()
		resetOperationCancel()

		go func() {
			opStateMutex.Lock()
			opStartTime = time.Now()
			opStateMutex.Unlock()

			summary, warnings, err := RunRestore(cfg, download, setStage)
			addSummary(summary...)
			addWarnings(warnings...)
			finishOperation(err)
		}()

		return ProgressUpdate{Percentage: -1, Message: "Starting restore...", Done: false}
	}
}

// startSetup creates a Bubble Tea command that runs the selected installer
// steps in the background.
func startSetup(sel *setup.Selection) tea.Cmd {
	return func() tea.Msg {
		resetOperationState()
		resetOperationCancel()

		go func() {
			opStateMutex.Lock()
			opStartTime = time.Now()
			opStateMutex.Unlock()

			report := RunSetup(sel, setStage)
			addSummary(report.Summary())
			for _, res := range report.Results {
				if res.Err != nil {
					addWarnings(fmt.Sprintf("step %d (%s): %v", res.Step.ID, res.Step.Title, res.Err))
				} else {
					addSummary(fmt.Sprintf("step %d (%s): ok", res.Step.ID, res.Step.Title))
				}
			}
			finishOperation(nil)
		}()

		return ProgressUpdate{Percentage: -1, Message: "Starting setup...", Done: false}
	}
}

// CheckOperationProgress polls the background operation state every 200ms and
// converts it into ProgressUpdate messages for the UI.
func CheckOperationProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		opStateMutex.Lock()
		completed := tuiOpCompleted
		opErr := tuiOpError
		cancelling := tuiOpCancelling
		label := opStageLabel
		done := opStageDone
		total := opStageTotal
		opStateMutex.Unlock()

		if shouldCancelOperation() && !cancelling && !completed {
			opStateMutex.Lock()
			tuiOpCancelling = true
			opStateMutex.Unlock()
			return ProgressUpdate{Percentage: -1, Message: "Cancelling operation...", Done: false}
		}

		if cancelling && !completed {
			return ProgressUpdate{Percentage: -1, Message: "Cancelling operation...", Done: false}
		}

		if completed {
			if opErr != nil {
				return ProgressUpdate{Error: opErr, Done: true}
			}
			return ProgressUpdate{Percentage: 1.0, Message: "Operation completed successfully!", Done: true}
		}

		if total > 0 {
			return ProgressUpdate{Percentage: float64(done) / float64(total), Message: label, Done: false}
		}
		return ProgressUpdate{Percentage: -1, Message: "Working...", Done: false}
	})
}
