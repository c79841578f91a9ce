// Package pin keeps the side panel's open leaves and the invocable action
// set in sync with the configured note entries.
package pin

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/pinboard/internal/action"
	"github.com/marcus/pinboard/internal/settings"
	"github.com/marcus/pinboard/internal/vault"
	"github.com/marcus/pinboard/internal/workspace"
)

// ActionIDPrefix prefixes every per-entry open action id; the suffix is the
// entry id.
const ActionIDPrefix = "open-note:"

// OpenFunc is invoked by a per-entry action; the app wires it to a command
// that runs OpenEntry and reports the result.
type OpenFunc func(entry settings.NoteEntry) tea.Cmd

// Reconciler makes live leaf and action state match the entry store.
type Reconciler struct {
	settings *settings.Settings
	vault    *vault.Vault
	panel    *workspace.Panel
	registry *workspace.Registry
	logger   *slog.Logger

	open    OpenFunc
	actions []action.Action
}

// New creates a reconciler over the given collaborators.
func New(s *settings.Settings, v *vault.Vault, p *workspace.Panel, r *workspace.Registry, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		settings: s,
		vault:    v,
		panel:    p,
		registry: r,
		logger:   logger,
	}
}

// SetOpenFunc wires the handler used by derived actions. The reconciler
// itself opens entries synchronously; actions go through the app loop so
// failures surface as toasts.
func (r *Reconciler) SetOpenFunc(fn OpenFunc) { r.open = fn }

// Registry exposes the leaf registry for layout-change sweeps.
func (r *Reconciler) Registry() *workspace.Registry { return r.registry }

// OpenEntry ensures one side-panel leaf shows the entry's note.
//
// Entries with empty or unresolvable paths are not actionable: they produce
// no leaf, no action, and no notification. An entry whose file is already
// open in the panel gets the existing leaf revealed and registered under
// the entry's id rather than a second leaf, so at most one leaf per
// distinct file is ever open regardless of how many entries share a path.
func (r *Reconciler) OpenEntry(e settings.NoteEntry) error {
	if strings.TrimSpace(e.Path) == "" {
		return nil
	}

	file, err := r.vault.Resolve(e.Path)
	if err != nil {
		// Configuration error: common mid-edit, intentionally quiet.
		r.logger.Debug("entry not actionable", "id", e.ID, "path", e.Path, "err", err)
		return nil
	}

	if existing := r.panel.FindByPath(file.Path); existing != nil {
		r.panel.Reveal(existing)
		r.registry.Register(e.ID, existing)
		return nil
	}

	if _, err := r.vault.Read(file); err != nil {
		return fmt.Errorf("open %s: %w", e.Label(), err)
	}

	leaf := r.panel.Open()
	leaf.File = file
	r.registry.Register(e.ID, leaf)
	if r.settings.AutoPinTabs {
		leaf.Pinned = true
	}
	return nil
}

// Refresh makes the panel's leaves and the action set match the entry
// store: tracked leaves are detached and the registry cleared, actions are
// re-derived, and every entry is re-opened sequentially in store order.
// Sequential ordering is required: each open's duplicate check depends on
// leaves opened earlier in the same pass already being registered in the
// panel.
//
// A single entry's failure is logged and reported but never aborts the
// pass; the returned slice holds the per-entry errors for notification.
func (r *Reconciler) Refresh() []error {
	for _, leaf := range r.registry.Tracked() {
		r.panel.Detach(leaf)
	}
	r.registry.Clear()

	r.rebuildActions()

	var errs []error
	for _, e := range r.settings.NoteEntries {
		if err := r.OpenEntry(e); err != nil {
			r.logger.Error("open entry failed", "id", e.ID, "path", e.Path, "err", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// Resync updates derived state after the vault's file set changed, without
// the detach-and-reopen cycle of Refresh: actions are re-derived, entries
// whose files appeared are opened, entries whose files vanished have their
// leaves detached. Leaves that survive keep their scroll state, and the
// active tab is restored afterwards.
func (r *Reconciler) Resync() []error {
	r.rebuildActions()

	active := r.panel.Active()
	var errs []error
	for _, e := range r.settings.NoteEntries {
		if strings.TrimSpace(e.Path) == "" {
			continue
		}

		if _, err := r.vault.Resolve(e.Path); err != nil {
			if leaf := r.registry.Leaf(e.ID); leaf != nil {
				r.panel.Detach(leaf)
				r.registry.Forget(e.ID)
			}
			continue
		}

		if leaf := r.registry.Leaf(e.ID); leaf != nil && r.panel.Contains(leaf) {
			continue
		}
		if err := r.OpenEntry(e); err != nil {
			r.logger.Error("open entry failed", "id", e.ID, "path", e.Path, "err", err)
			errs = append(errs, err)
		}
	}

	if active != nil && r.panel.Contains(active) {
		r.panel.Reveal(active)
	}
	return errs
}

// Teardown detaches all tracked leaves and clears the registry, without
// rebuilding anything. Used at shutdown.
func (r *Reconciler) Teardown() {
	for _, leaf := range r.registry.Tracked() {
		r.panel.Detach(leaf)
	}
	r.registry.Clear()
}

// Actions returns the current derived action set: one open action per entry
// with a non-empty path resolving to a real file.
func (r *Reconciler) Actions() []action.Action {
	out := make([]action.Action, len(r.actions))
	copy(out, r.actions)
	return out
}

func (r *Reconciler) rebuildActions() {
	r.actions = r.actions[:0]
	for _, e := range r.settings.NoteEntries {
		if strings.TrimSpace(e.Path) == "" {
			continue
		}
		if _, err := r.vault.Resolve(e.Path); err != nil {
			continue // silently skipped, not an error
		}
		entry := e
		a := action.Action{
			ID:          ActionIDPrefix + e.ID,
			Name:        fmt.Sprintf("Open %s in Sidebar", e.Label()),
			Description: e.Path,
			Category:    action.CategoryNotes,
		}
		if r.open != nil {
			a.Handler = func() tea.Cmd { return r.open(entry) }
		}
		r.actions = append(r.actions, a)
	}
}
