// Package internal provides Unicode symbol definitions with fallback support for cross-platform compatibility.
//
// This module ensures consistent visual representation across different terminals
// by providing ASCII fallbacks for Unicode symbols that may not render properly everywhere.
package internal

import (
	"os"
	"strings"
)

// SymbolSet defines a collection of symbols used throughout the UI
type SymbolSet struct {
	// Status indicators
	Success string
	Error   string
	Warning string
	Info    string

	// File and cloud icons
	Folder string
	File   string
	Cloud  string

	// Selection indicators
	Checked   string
	Unchecked string
	Bullet    string
	Arrow     string

	// Misc
	Sparkle string
	Package string
}

// UnicodeSymbols provides rich Unicode symbols for modern terminals
var UnicodeSymbols = SymbolSet{
	Success: "✓",
	Error:   "✗",
	Warning: "⚠️",
	Info:    "🔍",

	Folder: "📁",
	File:   "📄",
	Cloud:  "☁️",

	Checked:   "[✓]",
	Unchecked: "[ ]",
	Bullet:    "•",
	Arrow:     "➜",

	Sparkle: "✨",
	Package: "📦",
}

// ASCIISymbols provides ASCII-only fallbacks for compatibility
var ASCIISymbols = SymbolSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[?]",

	Folder: "[D]",
	File:   "[F]",
	Cloud:  "[C]",

	Checked:   "[x]",
	Unchecked: "[ ]",
	Bullet:    "*",
	Arrow:     "->",

	Sparkle: "*",
	Package: "[P]",
}

// CurrentSymbols holds the active symbol set based on terminal capabilities
var CurrentSymbols SymbolSet

// init determines which symbol set to use based on environment
func init() {
	CurrentSymbols = detectSymbolSet()
}

// detectSymbolSet determines the appropriate symbol set based on terminal capabilities
func detectSymbolSet() SymbolSet {
	// Check for explicit ASCII mode via environment variable
	if os.Getenv("DOTKEEPER_ASCII") == "1" || os.Getenv("DOTKEEPER_ASCII") == "true" {
		return ASCIISymbols
	}

	// Check TERM environment variable for known problematic terminals
	term := strings.ToLower(os.Getenv("TERM"))
	if term == "dumb" || term == "vt100" || strings.HasPrefix(term, "xterm-mono") {
		return ASCIISymbols
	}

	// SSH sessions without a UTF-8 locale get the ASCII set
	if os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_TTY") != "" {
		locale := strings.ToLower(os.Getenv("LANG"))
		if !strings.Contains(locale, "utf-8") && !strings.Contains(locale, "utf8") {
			return ASCIISymbols
		}
	}

	return UnicodeSymbols
}

// ForceASCII switches to ASCII symbols regardless of terminal detection
func ForceASCII() {
	CurrentSymbols = ASCIISymbols
}

// FormatSuccess formats a success message with the appropriate symbol
func FormatSuccess(message string) string {
	return CurrentSymbols.Success + " " + message
}

// FormatError formats an error message with the appropriate symbol
func FormatError(message string) string {
	return CurrentSymbols.Error + " " + message
}

// FormatWarning formats a warning message with the appropriate symbol
func FormatWarning(message string) string {
	return CurrentSymbols.Warning + " " + message
}
