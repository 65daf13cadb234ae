// Package internal provides the core application model and state management for the dotkeeper TUI.
//
// This package implements the Bubble Tea model pattern for the interactive terminal user interface.
// The model handles:
//   - Application state management across different screens (main, backup, restore, setup, etc.)
//   - Message handling for user input, system events, and background operations
//   - Screen transitions and navigation logic
//   - Progress tracking for long-running operations (backup, restore, setup)
//   - Installer step selection with persisted preferences
//
// The main Model struct contains all UI state and implements the tea.Model interface
// for integration with the Bubble Tea framework.
package internal

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dotkeeper/internal/drive"
	"dotkeeper/internal/handlers"
	"dotkeeper/internal/screens"
	"dotkeeper/internal/setup"
	"dotkeeper/internal/state"
)

// Model represents the complete application state for the dotkeeper TUI.
// It implements the tea.Model interface and contains all data needed to
// render screens and handle user interactions.
type Model struct {
	// Screen and navigation state
	screen     screens.Screen // Current active screen
	lastScreen screens.Screen // Previous screen for back navigation
	cursor     int            // Current cursor/selection position
	choices    []string       // Available menu options for current screen

	// Selection and confirmation state
	confirmation string // Confirmation dialog text

	// Operation state
	progress  float64 // Progress percentage (0.0 to 1.0, or -1 for indeterminate)
	operation string  // Current operation identifier (e.g., "cloud_backup", "local_restore")
	message   string  // Status or error message to display
	canceling bool    // Flag indicating operation cancellation in progress

	// Display dimensions
	width  int // Terminal width for rendering
	height int // Terminal height for rendering

	// Animation state
	pulseFrame int // Current frame number for progress bar animation (0-19)

	// Error handling
	errorRequiresManualDismissal bool // True for critical errors needing user acknowledgment

	// Runtime configuration; nil when the environment is incomplete
	config    *Config
	configErr error

	// Installer step selection state
	setupSelection *setup.Selection

	// Menu handlers
	mainMenu    *handlers.MainMenuHandler
	backupMenu  *handlers.BackupMenuHandler
	restoreMenu *handlers.RestoreMenuHandler
}

// InitialModel creates and returns a new Model instance with default values.
// Previously saved installer selections are loaded so the setup screen opens
// the way the user left it.
func InitialModel(config *Config, configErr error) Model {
	sel := setup.NewSelection()
	if saved, err := LoadSetupConfig(); err == nil {
		sel.SetFrom(saved.StepSelections)
	}

	return Model{
		screen:         screens.ScreenMain,
		choices:        screens.MainMenuChoices,
		config:         config,
		configErr:      configErr,
		setupSelection: sel,
		mainMenu:       handlers.NewMainMenuHandler(),
		backupMenu:     handlers.NewBackupMenuHandler(),
		restoreMenu:    handlers.NewRestoreMenuHandler(),
		width:          100,
		height:         30,
	}
}

// Init implements tea.Model.Init() and returns any initial commands.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.Update() and handles all incoming messages.
// This is the central message router that processes user input, system events,
// background operation updates, and screen transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ProgressUpdate:
		return m.handleProgress(msg)

	case state.PulseAnimateMsg:
		m.pulseFrame = (m.pulseFrame + 1) % 20
		if m.screen == screens.ScreenProgress {
			return m, tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
				return state.PulseAnimateMsg{}
			})
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleProgress routes background operation updates into screen transitions.
func (m Model) handleProgress(msg ProgressUpdate) (tea.Model, tea.Cmd) {
	if msg.Error != nil {
		errorMsg := fmt.Sprintf("Error: %v", msg.Error)

		// Auth, network, and space problems need a human to look at them
		if strings.Contains(errorMsg, "INSUFFICIENT SPACE") ||
			strings.Contains(errorMsg, "credentials") ||
			strings.Contains(errorMsg, "token") ||
			strings.Contains(errorMsg, "Drive") ||
			strings.Contains(errorMsg, "archive") {
			m.message = errorMsg
			m.errorRequiresManualDismissal = true
			m.lastScreen = m.screen
			m.screen = screens.ScreenError
			m.progress = 0
			m.canceling = false
			return m, nil
		}

		m.message = errorMsg
		m.progress = 0
		m.canceling = false
		if msg.Done {
			return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
				return tea.KeyMsg{Type: tea.KeyEsc}
			})
		}
		return m, nil
	}

	if !m.canceling {
		m.progress = msg.Percentage
		m.message = msg.Message
	}

	if msg.Done || m.canceling {
		wasCanceling := m.canceling
		m.canceling = false

		if wasCanceling {
			m.message = "Operation canceled by user"
			return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
				return tea.KeyMsg{Type: tea.KeyEsc}
			})
		}

		m.lastScreen = m.screen
		m.screen = screens.ScreenComplete
		return m, nil
	}

	// Not done yet, keep polling
	if !m.canceling {
		return m, CheckOperationProgress()
	}
	return m, nil
}

// handleKey processes keyboard input for the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Error and completion screens dismiss on any key
	if m.screen == screens.ScreenError {
		resetOperationState()
		m.screen = screens.ScreenMain
		m.message = ""
		m.cursor = 0
		m.choices = screens.MainMenuChoices
		m.errorRequiresManualDismissal = false
		return m, nil
	}
	if m.screen == screens.ScreenComplete {
		resetOperationState()
		m.screen = screens.ScreenMain
		m.message = ""
		m.cursor = 0
		m.choices = screens.MainMenuChoices
		return m, nil
	}

	// Setup screen has its own keymap
	if m.screen == screens.ScreenSetup {
		return m.handleSetupKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		if m.screen == screens.ScreenMain {
			return m, tea.Quit
		}
		if m.screen == screens.ScreenProgress {
			m.canceling = true
			m.message = "Canceling operation... Please wait for cleanup to complete."
			CancelOperation()
			return m, nil
		}
		m.screen = screens.ScreenMain
		m.cursor = 0
		m.choices = screens.MainMenuChoices
		return m, nil

	case "esc":
		if m.screen != screens.ScreenMain && m.screen != screens.ScreenProgress {
			resetOperationState()
			m.screen = screens.ScreenMain
			m.cursor = 0
			m.choices = screens.MainMenuChoices
			m.message = ""
		}
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else if m.screen == screens.ScreenMain {
			m.cursor = len(m.choices) - 1
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		} else if m.screen == screens.ScreenMain {
			m.cursor = 0
		}
		return m, nil

	case "enter", " ":
		return m.handleSelection()
	}

	return m, nil
}

// handleSetupKey implements the installer keymap: 1-7 toggle a step,
// a selects all, n deselects all, r runs the selected steps, q goes back.
func (m Model) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "1", "2", "3", "4", "5", "6", "7":
		id := int(key[0] - '0')
		if _, err := m.setupSelection.Toggle(id); err == nil {
			m.saveSetupSelections()
		}
		return m, nil

	case "a", "A":
		m.setupSelection.SelectAll()
		m.saveSetupSelections()
		return m, nil

	case "n", "N":
		m.setupSelection.DeselectAll()
		m.saveSetupSelections()
		return m, nil

	case "r", "R":
		if m.setupSelection.Count() == 0 {
			m.message = "No steps selected, nothing to run"
			return m, nil
		}
		m.saveSetupSelections()
		m.operation = "setup"
		m.screen = screens.ScreenProgress
		m.progress = 0
		m.message = "Starting setup..."
		return m, tea.Batch(
			startSetup(m.setupSelection),
			CheckOperationProgress(),
			tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
				return state.PulseAnimateMsg{}
			}),
		)

	case "q", "esc", "ctrl+c":
		m.screen = screens.ScreenMain
		m.cursor = 0
		m.choices = screens.MainMenuChoices
		m.message = ""
		return m, nil
	}

	return m, nil
}

// saveSetupSelections persists the current step selections. Save failures are
// shown but never block the UI.
func (m *Model) saveSetupSelections() {
	if err := SaveSetupConfig(m.setupSelection.Map()); err != nil {
		m.message = fmt.Sprintf("⚠️ Failed to save selections: %v", err)
	} else {
		m.message = ""
	}
}

// handleSelection processes menu selections and handles screen transitions.
func (m Model) handleSelection() (tea.Model, tea.Cmd) {
	switch m.screen {
	case screens.ScreenMain:
		screen, operation, choices, cmd := m.mainMenu.HandleSelection(m.cursor)
		if cmd != nil {
			return m, cmd
		}
		m.screen = screen
		m.operation = operation
		if choices != nil {
			m.choices = choices
		}
		m.cursor = 0

	case screens.ScreenBackup:
		screen, operation, choices, _ := m.backupMenu.HandleSelection(m.cursor)
		return m.enterOperation(screen, operation, choices)

	case screens.ScreenRestore:
		screen, operation, choices, _ := m.restoreMenu.HandleSelection(m.cursor)
		return m.enterOperation(screen, operation, choices)

	case screens.ScreenConfirm:
		return m.handleConfirm()

	case screens.ScreenAbout:
		m.screen = screens.ScreenMain
		m.choices = screens.MainMenuChoices
		m.cursor = 0
	}

	return m, nil
}

// enterOperation moves into a backup or restore confirmation, checking that
// the environment is configured first.
func (m Model) enterOperation(screen screens.Screen, operation string, choices []string) (tea.Model, tea.Cmd) {
	if screen == screens.ScreenConfirm {
		if m.config == nil {
			m.message = fmt.Sprintf("Not configured: %v", m.configErr)
			m.errorRequiresManualDismissal = true
			m.lastScreen = m.screen
			m.screen = screens.ScreenError
			return m, nil
		}
		m.confirmation = m.confirmationText(operation)
		m.cursor = 0
	}

	m.screen = screen
	m.operation = operation
	if choices != nil {
		m.choices = choices
	}
	if screen == screens.ScreenMain {
		m.cursor = 0
	}
	return m, nil
}

// confirmationText builds the confirmation dialog body for an operation.
func (m Model) confirmationText(operation string) string {
	space := StagingUsageSummary(m.config.StagingRoot)
	if space != "" {
		space = "\n" + space
	}

	switch operation {
	case "cloud_backup":
		return fmt.Sprintf("Ready to back up fish, brave, cursor, and konsole\n\nStaging: %s\nUpload: new timestamped Drive archive (keeping %d)\n%s\nProceed with backup?",
			m.config.StagingRoot, drive.RetainedBackups, space)
	case "local_backup":
		return fmt.Sprintf("Ready to back up fish, brave, cursor, and konsole\n\nStaging: %s\nUpload: none (staging only)\n%s\nProceed with backup?",
			m.config.StagingRoot, space)
	case "cloud_restore":
		return fmt.Sprintf("Ready to restore fish, brave, cursor, and konsole\n\nSource: latest Drive archive via %s\n\n⚠️ This will OVERWRITE current configs (.bak copies are saved)\n\nProceed with restore?",
			m.config.StagingRoot)
	case "local_restore":
		return fmt.Sprintf("Ready to restore fish, brave, cursor, and konsole\n\nSource: %s\n\n⚠️ This will OVERWRITE current configs (.bak copies are saved)\n\nProceed with restore?",
			m.config.StagingRoot)
	}
	return "Proceed?"
}

// handleConfirm starts the confirmed operation or returns to the main menu.
func (m Model) handleConfirm() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case 0: // Yes
		m.screen = screens.ScreenProgress
		m.progress = 0
		m.message = "Starting operation..."
		m.confirmation = ""

		var op tea.Cmd
		switch m.operation {
		case "cloud_backup":
			op = startBackup(m.config, true)
		case "local_backup":
			op = startBackup(m.config, false)
		case "cloud_restore":
			op = startRestore(m.config, true)
		case "local_restore":
			op = startRestore(m.config, false)
		default:
			m.screen = screens.ScreenMain
			m.choices = screens.MainMenuChoices
			m.cursor = 0
			return m, nil
		}

		return m, tea.Batch(
			op,
			CheckOperationProgress(),
			tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
				return state.PulseAnimateMsg{}
			}),
		)

	case 1: // No
		resetOperationState()
		m.confirmation = ""
		m.operation = ""
		m.progress = 0
		m.screen = screens.ScreenMain
		m.choices = screens.MainMenuChoices
		m.cursor = 0
		m.message = ""
	}
	return m, nil
}

// View implements tea.Model.View() and delegates to per-screen renderers.
func (m Model) View() string {
	switch m.screen {
	case screens.ScreenMain:
		return m.renderMainMenu()
	case screens.ScreenBackup:
		return m.renderBackupMenu()
	case screens.ScreenRestore:
		return m.renderRestoreMenu()
	case screens.ScreenSetup:
		return m.renderSetup()
	case screens.ScreenAbout:
		return m.renderAbout()
	case screens.ScreenConfirm:
		return m.renderConfirmation()
	case screens.ScreenProgress:
		return m.renderProgress()
	case screens.ScreenError:
		return m.renderError()
	case screens.ScreenComplete:
		return m.renderComplete()
	default:
		return "Unknown screen"
	}
}
