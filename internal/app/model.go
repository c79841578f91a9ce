// Package app wires the pinboard UI: the entry list (settings surface) on
// the left, the side panel of pinned note tabs on the right, the command
// palette, and the toast/footer chrome.
package app

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/pinboard/internal/action"
	"github.com/marcus/pinboard/internal/palette"
	"github.com/marcus/pinboard/internal/pin"
	"github.com/marcus/pinboard/internal/preview"
	"github.com/marcus/pinboard/internal/settings"
	"github.com/marcus/pinboard/internal/vault"
	"github.com/marcus/pinboard/internal/workspace"
)

// FocusPane identifies which pane has keyboard focus.
type FocusPane int

const (
	PaneEntries FocusPane = iota
	PanePanel
)

// Model is the root Bubble Tea model.
type Model struct {
	set          *settings.Settings
	settingsPath string
	vault        *vault.Vault
	panel        *workspace.Panel
	registry     *workspace.Registry
	rec          *pin.Reconciler
	deb          *pin.Debouncer
	renderer     *preview.Renderer
	logger       *slog.Logger

	refreshCh   chan pin.RefreshRequestMsg
	vaultEvents <-chan vault.Event
	stopWatcher func()

	// UI state
	width, height int
	ready         bool
	focus         FocusPane
	cursor        int // entries list cursor

	showPalette bool
	palette     palette.Model

	entryModal *entryModal

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	// Startup notification carried from settings load, shown once ready.
	startupNotice string
}

// Options carries the collaborators main constructs.
type Options struct {
	Settings     *settings.Settings
	SettingsPath string
	Vault        *vault.Vault
	VaultEvents  <-chan vault.Event
	StopWatcher  func()
	Logger       *slog.Logger
	QuietWindow  time.Duration

	// StartupNotice, if non-empty, is toasted on first render (settings
	// load fell back to defaults).
	StartupNotice string
}

// New creates the application model.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	panel := workspace.NewPanel()
	registry := workspace.NewRegistry()
	rec := pin.New(opts.Settings, opts.Vault, panel, registry, logger)

	refreshCh := make(chan pin.RefreshRequestMsg, 1)
	deb := pin.NewDebouncer(opts.QuietWindow, refreshCh)

	m := &Model{
		set:           opts.Settings,
		settingsPath:  opts.SettingsPath,
		vault:         opts.Vault,
		panel:         panel,
		registry:      registry,
		rec:           rec,
		deb:           deb,
		renderer:      preview.New(opts.Vault),
		logger:        logger,
		refreshCh:     refreshCh,
		vaultEvents:   opts.VaultEvents,
		stopWatcher:   opts.StopWatcher,
		palette:       palette.New(),
		startupNotice: opts.StartupNotice,
	}

	rec.SetOpenFunc(func(e settings.NoteEntry) tea.Cmd {
		return func() tea.Msg { return OpenEntryMsg{Entry: e} }
	})
	return m
}

// Init starts the clock, the channel pumps, and the first reconciliation.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(),
		m.waitForRefresh(),
		RequestRefresh(),
	}
	if m.vaultEvents != nil {
		cmds = append(cmds, m.waitForVaultEvent())
	}
	return tea.Batch(cmds...)
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(message string, duration time.Duration, isError bool) {
	m.statusMsg = message
	m.statusExpiry = time.Now().Add(duration)
	m.statusIsError = isError
}

// ClearToast clears an expired toast message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// teardown releases everything the model owns: the pending debounce, the
// vault watcher, and all tracked leaves.
func (m *Model) teardown() {
	m.deb.Stop()
	if m.stopWatcher != nil {
		m.stopWatcher()
	}
	m.rec.Teardown()
}

// actions returns the full invocable action set: app-level commands plus
// the reconciler's per-entry open actions.
func (m *Model) actions() []action.Action {
	acts := []action.Action{
		{
			ID:       "add-entry",
			Name:     "Pin a Note",
			Category: action.CategoryEdit,
			Key:      "a",
			Handler:  func() tea.Cmd { return func() tea.Msg { return openAddModalMsg{} } },
		},
		{
			ID:       "refresh",
			Name:     "Refresh Pinned Tabs",
			Category: action.CategorySystem,
			Key:      "r",
			Handler:  func() tea.Cmd { return RequestRefresh() },
		},
		{
			ID:       "toggle-auto-pin",
			Name:     "Toggle Auto-Pin",
			Category: action.CategorySystem,
			Key:      "P",
			Handler:  func() tea.Cmd { return func() tea.Msg { return toggleAutoPinMsg{} } },
		},
	}
	return append(acts, m.rec.Actions()...)
}

// saveSettings persists the entry store; failures surface as a toast and
// leave the in-memory settings untouched.
func (m *Model) saveSettings() {
	if err := settings.SaveTo(m.settingsPath, m.set); err != nil {
		m.logger.Error("save settings failed", "err", err)
		m.ShowToast("Could not save settings: "+err.Error(), 5*time.Second, true)
	}
}

// mutateAndRefresh runs after every settings-surface mutation: persist,
// then schedule a debounced reconciliation.
func (m *Model) mutateAndRefresh() {
	m.saveSettings()
	m.deb.Trigger()
}
