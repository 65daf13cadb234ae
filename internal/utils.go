// Package internal provides core utilities and shared functionality for the dotkeeper backup system.
//
// This package contains common utilities including:
//   - Formatting functions for human-readable display of numbers and byte sizes
//   - Operation cancellation management
//   - Logging utilities and path management
//
// The utilities in this package are designed to be thread-safe where applicable
// and provide consistent formatting across the entire application.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
)

var opCancelFlag int64

// shouldCancelOperation returns true if a cancellation has been requested.
// This function is thread-safe and can be called from multiple goroutines.
func shouldCancelOperation() bool {
	return atomic.LoadInt64(&opCancelFlag) != 0
}

// CancelOperation signals that any running operation should be cancelled.
// The cancellation is cooperative - operations must check shouldCancelOperation()
// periodically.
func CancelOperation() {
	atomic.StoreInt64(&opCancelFlag, 1)
}

// resetOperationCancel clears the cancellation flag, allowing new operations to start.
func resetOperationCancel() {
	atomic.StoreInt64(&opCancelFlag, 0)
}

// FormatNumber adds commas to large numbers for readability.
//
// Examples:
//
//	FormatNumber(1234) -> "1,234"
//	FormatNumber(999) -> "999" (no comma for numbers < 1000)
func FormatNumber(n int64) string {
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}

	str := strconv.FormatInt(n, 10)
	var result strings.Builder

	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(char)
	}

	return result.String()
}

// FormatBytes formats byte counts into human-readable size with binary (1024-based) units.
//
// Examples:
//
//	FormatBytes(1024) -> "1.0 KB"
//	FormatBytes(1536) -> "1.5 KB"
//	FormatBytes(999) -> "999 B"
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// getLogFilePath determines the appropriate location for the dotkeeper log file.
// It attempts to create a log in the user's cache directory (~/.cache/dotkeeper/dotkeeper.log)
// and falls back to /tmp/dotkeeper.log if the cache directory cannot be created.
func getLogFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/dotkeeper.log"
	}

	logDir := filepath.Join(homeDir, ".cache", "dotkeeper")
	if err := os.MkdirAll(logDir, 0755); err == nil {
		return filepath.Join(logDir, "dotkeeper.log")
	}

	return "/tmp/dotkeeper.log"
}
