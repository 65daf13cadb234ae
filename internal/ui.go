package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"dotkeeper/internal/setup"
)

// Styles
var (
	// Enhanced color palette - Tokyo Night inspired
	primaryColor    = lipgloss.Color("#7aa2f7") // Tokyo Night blue
	secondaryColor  = lipgloss.Color("#9ece6a") // Tokyo Night green
	warningColor    = lipgloss.Color("#e0af68") // Tokyo Night yellow
	errorColor      = lipgloss.Color("#f7768e") // Tokyo Night red
	successColor    = lipgloss.Color("#9ece6a") // Tokyo Night green
	textColor       = lipgloss.Color("#c0caf5") // Tokyo Night foreground
	dimColor        = lipgloss.Color("#565f89") // Tokyo Night comment
	backgroundColor = lipgloss.Color("#1a1b26") // Tokyo Night background
	borderColor     = lipgloss.Color("#414868") // Tokyo Night border

	asciiStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			Align(lipgloss.Center).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Align(lipgloss.Center).
			MarginBottom(1)

	menuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2).
			Foreground(textColor)

	selectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				PaddingRight(2).
				Background(primaryColor).
				Foreground(backgroundColor).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(2, 3).
			Margin(1)

	warningStyle = lipgloss.NewStyle().
			Foreground(backgroundColor).
			Background(warningColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(backgroundColor).
			Background(errorColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor)

	successStyle = lipgloss.NewStyle().
			Foreground(backgroundColor).
			Background(successColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(successColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Align(lipgloss.Center).
			Italic(true).
			MarginTop(2)

	infoBoxStyle = lipgloss.NewStyle().
			Background(borderColor).
			Foreground(textColor).
			Padding(0, 1).
			Margin(0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor)
)

// ASCII art for the program name
const asciiArt = ` ▌ ▗ ▌
 ▛▌▛▌▜▘▙▘█▌█▌▛▌█▌▛▘
 ▙▌▙▌▐▖▛▖▙▖▙▖▙▌▙▖▌
           ▌       `

// Render the main menu
func (m Model) renderMainMenu() string {
	var s strings.Builder

	header := m.renderHeader()
	s.WriteString(header + "\n\n")

	for i, choice := range m.choices {
		if m.cursor == i {
			s.WriteString(selectedMenuItemStyle.Render("❯ "+choice) + "\n")
		} else {
			s.WriteString(menuItemStyle.Render("  "+choice) + "\n")
		}
	}

	if m.message != "" {
		s.WriteString("\n" + subtitleStyle.Render(m.message))
	}

	help := m.renderHelp()
	s.WriteString("\n" + help)

	content := borderStyle.Width(m.width - 8).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Render backup menu
func (m Model) renderBackupMenu() string {
	var s strings.Builder

	ascii := asciiStyle.Render(asciiArt)
	s.WriteString(ascii + "\n")
	s.WriteString(titleStyle.Render("🚀 Backup Options") + "\n\n")

	for i, choice := range m.choices {
		if m.cursor == i {
			s.WriteString(selectedMenuItemStyle.Render("❯ "+choice) + "\n")
		} else {
			s.WriteString(menuItemStyle.Render("  "+choice) + "\n")
		}
	}

	info := infoBoxStyle.Render(`☁️ Drive Upload: stage configs, then push a timestamped archive
📁 Staging Only: stage configs locally, no cloud involved`)
	s.WriteString(info)

	help := m.renderHelp()
	s.WriteString("\n" + help)

	content := borderStyle.Width(m.width - 8).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Render restore menu
func (m Model) renderRestoreMenu() string {
	var s strings.Builder

	ascii := asciiStyle.Render(asciiArt)
	s.WriteString(ascii + "\n")
	s.WriteString(titleStyle.Render("🔄 Restore Options") + "\n\n")

	for i, choice := range m.choices {
		if m.cursor == i {
			s.WriteString(selectedMenuItemStyle.Render("❯ "+choice) + "\n")
		} else {
			s.WriteString(menuItemStyle.Render("  "+choice) + "\n")
		}
	}

	warning := warningStyle.Render("⚠️  Restore overwrites current configs (.bak copies are saved)")
	s.WriteString("\n" + warning)

	help := m.renderHelp()
	s.WriteString("\n" + help)

	content := borderStyle.Width(m.width - 8).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Render the installer step selection screen
func (m Model) renderSetup() string {
	var s strings.Builder

	ascii := asciiStyle.Render(asciiArt)
	s.WriteString(ascii + "\n")
	s.WriteString(titleStyle.Render("🛠️ System Setup") + "\n\n")

	for _, step := range setup.Steps() {
		box := CurrentSymbols.Unchecked
		style := menuItemStyle
		if m.setupSelection.IsSelected(step.ID) {
			box = CurrentSymbols.Checked
			style = menuItemStyle.Foreground(secondaryColor)
		}
		line := fmt.Sprintf("%d. %s %s", step.ID, box, step.Title)
		s.WriteString(style.Render(line) + "\n")
		s.WriteString(menuItemStyle.Foreground(dimColor).Render("     "+step.Description) + "\n")
	}

	s.WriteString("\n" + infoBoxStyle.Render(fmt.Sprintf("%d of %d steps selected", m.setupSelection.Count(), setup.StepCount())))

	if m.message != "" {
		s.WriteString("\n" + subtitleStyle.Render(m.message))
	}

	help := helpStyle.Render("1-7: toggle step • a: select all • n: select none • r: run selected • q: back")
	s.WriteString("\n" + help)

	content := borderStyle.Width(m.width - 8).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Render about screen
func (m Model) renderAbout() string {
	var s strings.Builder

	ascii := asciiStyle.Render(asciiArt)
	s.WriteString(ascii + "\n")
	s.WriteString(titleStyle.Render("ℹ️ About dotkeeper") + "\n\n")

	about := GetAboutText() + `

Powered by Bubble Tea & Lipgloss

Features:
• Backs up fish, Brave, Cursor, and Konsole configs
• Byte-for-byte staging, nothing transformed
• Timestamped Google Drive archives with retention
• Restores save .bak copies before overwriting
• Seven-step machine setup installer
• One operation at a time, strictly in order

Press any key to return to main menu`

	info := lipgloss.NewStyle().
		Foreground(textColor).
		Margin(0, 2).
		Align(lipgloss.Left).
		Render(about)

	s.WriteString(info)

	content := borderStyle.Width(m.width - 8).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Render confirmation dialog
func (m Model) renderConfirmation() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("⚠️  Confirmation Required") + "\n\n")

	confirmMsg := warningStyle.Render(m.confirmation)
	s.WriteString(confirmMsg + "\n\n")

	choices := []string{"✅ Yes, Continue", "❌ No, Cancel"}
	for i, choice := range choices {
		if m.cursor == i {
			s.WriteString(selectedMenuItemStyle.Render("❯ "+choice) + "\n")
		} else {
			s.WriteString(menuItemStyle.Render("  "+choice) + "\n")
		}
	}

	help := helpStyle.Render("↑/↓: navigate • enter: select • esc: cancel")
	s.WriteString("\n" + help)

	content := borderStyle.Width(m.width - 4).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Render progress screen
func (m Model) renderProgress() string {
	var s strings.Builder

	ascii := asciiStyle.Render(asciiArt)
	s.WriteString(ascii + "\n")
	title := titleStyle.Render(AppDesc)
	s.WriteString(title + "\n")
	subtitle := subtitleStyle.Render(GetSubtitle())
	s.WriteString(subtitle + "\n\n")

	if m.canceling {
		s.WriteString(titleStyle.Render("🛑 Canceling Operation") + "\n\n")
	} else {
		s.WriteString(titleStyle.Render("🔄 Operation in Progress") + "\n\n")
	}

	logPath := getLogFilePath()
	switch m.operation {
	case "cloud_backup":
		s.WriteString("📁 Operation: Backup + Drive Upload\n")
	case "local_backup":
		s.WriteString("📁 Operation: Backup to Staging\n")
	case "cloud_restore":
		s.WriteString("🔄 Operation: Drive Download + Restore\n")
	case "local_restore":
		s.WriteString("🔄 Operation: Restore from Staging\n")
	case "setup":
		s.WriteString("🛠️ Operation: System Setup\n")
	default:
		s.WriteString(fmt.Sprintf("Running: %s\n", m.operation))
	}
	s.WriteString("📋 Log: " + logPath + "\n\n")

	if !m.canceling {
		progressBar := m.renderProgressBar()
		s.WriteString(progressBar + "\n\n")
	}

	if m.message != "" {
		var statusStyle lipgloss.Style
		if m.canceling || strings.Contains(m.message, "Cancel") {
			statusStyle = warningStyle
		} else {
			statusStyle = lipgloss.NewStyle().
				Foreground(secondaryColor).
				Align(lipgloss.Center)
		}
		statusMsg := statusStyle.Render(m.message)
		s.WriteString(statusMsg + "\n")
	}

	var help string
	if m.canceling {
		help = helpStyle.Render("Please wait for cleanup to complete...")
	} else {
		help = helpStyle.Render("Please wait... • Ctrl+C: cancel")
	}
	s.WriteString("\n" + help)

	content := borderStyle.Width(m.width - 4).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Render progress bar with pulse animation
func (m Model) renderProgressBar() string {
	width := 50

	// Indeterminate progress (-1) shows a moving block instead of a percentage
	if m.progress < 0 {
		now := time.Now().Unix()
		pos := int(now/1) % width

		var bar strings.Builder
		for i := 0; i < width; i++ {
			if i == pos || i == (pos+1)%width || i == (pos+2)%width {
				bar.WriteString("█")
			} else {
				bar.WriteString("░")
			}
		}

		progressText := fmt.Sprintf("Progress: [%s] Working...", bar.String())

		return lipgloss.NewStyle().
			Foreground(primaryColor).
			Align(lipgloss.Center).
			Render(progressText)
	}

	percentage := fmt.Sprintf("%.0f%%", m.progress*100)
	filled := int(m.progress * float64(width))

	// Pulse position sweeps back and forth over the bar
	pulsePos := m.pulseFrame
	if pulsePos >= 10 {
		pulsePos = 20 - pulsePos
	}
	pulsePos = pulsePos * width / 10

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			if i == pulsePos || i == pulsePos+1 {
				bar.WriteString("▓")
			} else {
				bar.WriteString("█")
			}
		} else {
			if i == pulsePos || i == pulsePos+1 {
				bar.WriteString("▒")
			} else {
				bar.WriteString("░")
			}
		}
	}

	progressText := fmt.Sprintf("Progress: [%s] %s", bar.String(), percentage)

	return lipgloss.NewStyle().
		Foreground(primaryColor).
		Align(lipgloss.Center).
		Render(progressText)
}

// Render header with ASCII art
func (m Model) renderHeader() string {
	ascii := asciiStyle.Render(asciiArt)
	title := titleStyle.Render(AppDesc)
	subtitle := subtitleStyle.Render(GetSubtitle())

	return ascii + "\n" + title + "\n" + subtitle
}

// Render help text
func (m Model) renderHelp() string {
	return helpStyle.Render("↑/↓: navigate • enter: select • q: quit • esc: back")
}

// Render error screen that requires manual dismissal
func (m Model) renderError() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("❌ Error") + "\n\n")

	errorMsg := errorStyle.Render(m.message)
	s.WriteString(errorMsg + "\n\n")

	help := helpStyle.Render("📖 Please read the message above • Press ESC or any key when ready to continue")
	s.WriteString(help)

	content := borderStyle.Width(m.width - 8).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Render completion screen that requires manual dismissal
func (m Model) renderComplete() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("✅ Operation Complete") + "\n\n")

	if m.message != "" {
		s.WriteString(successStyle.Render(m.message) + "\n\n")
	}

	summary := GetOperationSummary()
	for _, line := range summary {
		s.WriteString(menuItemStyle.Render(CurrentSymbols.Bullet+" "+line) + "\n")
	}

	warnings := GetOperationWarnings()
	if len(warnings) > 0 {
		s.WriteString("\n" + warningStyle.Render(fmt.Sprintf("⚠️  %d warnings", len(warnings))) + "\n")
		for _, line := range warnings {
			s.WriteString(menuItemStyle.Foreground(warningColor).Render(CurrentSymbols.Bullet+" "+line) + "\n")
		}
	}

	help := helpStyle.Render("🎉 Press any key to continue")
	s.WriteString("\n" + help)

	content := borderStyle.Width(m.width - 8).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
