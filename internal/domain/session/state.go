// Package session models one client's interaction state: which file row is
// selected, which context menu is open and which modal is active. The state
// is never persisted; it lives for the lifetime of a connection and changes
// only through the named transitions below.
package session

// Modal identifies which dialog, if any, is open. The three dialogs are
// mutually exclusive.
type Modal string

const (
	ModalNone          Modal = ""
	ModalPreview       Modal = "preview"
	ModalRename        Modal = "rename"
	ModalConfirmDelete Modal = "confirm_delete"
)

// Menu is an open context menu anchored at pointer coordinates.
type Menu struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	TargetID string  `json:"target_id"`
}

// State is the interaction state machine. The zero value is the initial
// state: nothing selected, no menu, no modal.
type State struct {
	SelectedID  string `json:"selected_id,omitempty"`
	Menu        *Menu  `json:"menu,omitempty"`
	Modal       Modal  `json:"modal,omitempty"`
	ActiveID    string `json:"active_id,omitempty"` // file driving the open modal
	RenameDraft string `json:"rename_draft,omitempty"`
}

// Click selects a file row and closes any open context menu.
func (s *State) Click(id string) {
	s.SelectedID = id
	s.Menu = nil
}

// DoubleClick opens the preview for a file and closes any open menu.
func (s *State) DoubleClick(id string) {
	s.Menu = nil
	s.openModal(ModalPreview, id)
}

// RightClick selects the file and opens its context menu at the pointer.
// A right-click elsewhere simply replaces the previous menu.
func (s *State) RightClick(id string, x, y float64) {
	s.SelectedID = id
	s.Menu = &Menu{X: x, Y: y, TargetID: id}
}

// OutsideClick closes an open context menu. Clicks outside a modal backdrop
// are delivered as Dismiss, not here.
func (s *State) OutsideClick() {
	s.Menu = nil
}

// Escape closes the context menu if one is open, otherwise dismisses the
// active modal.
func (s *State) Escape() {
	if s.Menu != nil {
		s.Menu = nil
		return
	}
	s.Dismiss()
}

// OpenPreview opens the preview modal for a file, closing the menu.
func (s *State) OpenPreview(id string) {
	s.Menu = nil
	s.openModal(ModalPreview, id)
}

// OpenRename opens the rename dialog seeded with the file's current name.
func (s *State) OpenRename(id, currentName string) {
	s.Menu = nil
	s.openModal(ModalRename, id)
	s.RenameDraft = currentName
}

// OpenConfirmDelete opens the delete-forever confirmation.
func (s *State) OpenConfirmDelete(id string) {
	s.Menu = nil
	s.openModal(ModalConfirmDelete, id)
}

// SetRenameDraft tracks edits to the rename input. Ignored unless the rename
// dialog is open.
func (s *State) SetRenameDraft(draft string) {
	if s.Modal == ModalRename {
		s.RenameDraft = draft
	}
}

// CloseMenu closes the context menu without touching anything else. Menu
// actions that fire a mutation (star, trash, restore, download) end here.
func (s *State) CloseMenu() {
	s.Menu = nil
}

// Dismiss closes the active modal, whether by explicit close, backdrop click
// or a completed action.
func (s *State) Dismiss() {
	s.Modal = ModalNone
	s.ActiveID = ""
	s.RenameDraft = ""
}

// Reset clears every axis, as when navigating away from the view.
func (s *State) Reset() {
	*s = State{}
}

// openModal replaces whatever modal was active; the dialogs never stack.
func (s *State) openModal(m Modal, id string) {
	s.Modal = m
	s.ActiveID = id
	s.RenameDraft = ""
}
