/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package menu builds context-menu descriptors per target kind and routes
// chosen actions through a command table. Descriptors are pure data; the UI
// layer renders them however it likes.
package menu

import (
	"context"
	"fmt"

	"paneldesk/internal/domain"
	"paneldesk/internal/geom"
)

// Margin kept between a menu and the viewport edge.
const Margin = 8

// TargetKind classifies what was right-clicked.
type TargetKind string

const (
	TargetFileItem          TargetKind = "file_item"
	TargetFolderItem        TargetKind = "folder_item"
	TargetSectionHeader     TargetKind = "section_header"
	TargetStorageBackground TargetKind = "storage_background"
	TargetPageBackground    TargetKind = "page_background"
)

// ActionID identifies a menu action within its target kind.
type ActionID string

const (
	ActionOpen       ActionID = "open"
	ActionCopy       ActionID = "copy"
	ActionCut        ActionID = "cut"
	ActionPaste      ActionID = "paste"
	ActionShare      ActionID = "share"
	ActionDownload   ActionID = "download"
	ActionExtract    ActionID = "extract"
	ActionDelete     ActionID = "delete"
	ActionBringFront ActionID = "bring_front"
	ActionSendBack   ActionID = "send_back"
	ActionExportPDF  ActionID = "export_pdf"
	ActionNewFolder  ActionID = "new_folder"
	ActionUpload     ActionID = "upload"
	ActionSort       ActionID = "sort"
	ActionViewMode   ActionID = "view_mode"
	ActionAddSection ActionID = "add_section"
)

// Item is one entry of a menu. Arg carries a sub-choice such as a sort
// order, a view mode or a section content type.
type Item struct {
	Action   ActionID
	Label    string
	Arg      string
	Disabled bool
}

// Target identifies what a menu or a dispatched action applies to.
type Target struct {
	Kind      TargetKind
	SectionID int64
	PageID    int64
	Filename  string
}

// Descriptor is a complete menu for one target.
type Descriptor struct {
	Target Target
	Items  []Item
}

// Gates carries the clipboard state that enables or disables paste entries.
type Gates struct {
	FileClipboard    bool
	SectionClipboard bool
}

// ForFileItem builds the menu for a file inside a storage section. Zip
// archives additionally offer extraction.
func ForFileItem(target Target, gates Gates) Descriptor {
	items := []Item{
		{Action: ActionCopy, Label: "Copy"},
		{Action: ActionCut, Label: "Cut"},
		{Action: ActionPaste, Label: "Paste", Disabled: !gates.FileClipboard},
		{Action: ActionShare, Label: "Share"},
		{Action: ActionDownload, Label: "Download"},
	}
	if domain.IsZip(target.Filename) {
		items = append(items, Item{Action: ActionExtract, Label: "Extract Here"})
	}
	items = append(items, Item{Action: ActionDelete, Label: "Delete"})
	target.Kind = TargetFileItem
	return Descriptor{Target: target, Items: items}
}

// ForFolderItem builds the menu for a folder inside a storage section.
func ForFolderItem(target Target, gates Gates) Descriptor {
	target.Kind = TargetFolderItem
	return Descriptor{Target: target, Items: []Item{
		{Action: ActionOpen, Label: "Open"},
		{Action: ActionCopy, Label: "Copy"},
		{Action: ActionCut, Label: "Cut"},
		{Action: ActionPaste, Label: "Paste", Disabled: !gates.FileClipboard},
		{Action: ActionDelete, Label: "Delete"},
	}}
}

// ForSectionHeader builds the menu shown on a section's title bar.
func ForSectionHeader(target Target, gates Gates) Descriptor {
	target.Kind = TargetSectionHeader
	return Descriptor{Target: target, Items: []Item{
		{Action: ActionCopy, Label: "Copy Section"},
		{Action: ActionCut, Label: "Cut Section"},
		{Action: ActionPaste, Label: "Paste Section", Disabled: !gates.SectionClipboard},
		{Action: ActionBringFront, Label: "Bring to Front"},
		{Action: ActionSendBack, Label: "Send to Back"},
		{Action: ActionExportPDF, Label: "Export Page as PDF"},
		{Action: ActionDelete, Label: "Delete Section"},
	}}
}

// ForStorageBackground builds the menu for the empty area of a storage
// section, including an empty file list.
func ForStorageBackground(target Target, gates Gates) Descriptor {
	target.Kind = TargetStorageBackground
	items := []Item{
		{Action: ActionPaste, Label: "Paste", Disabled: !gates.FileClipboard},
		{Action: ActionNewFolder, Label: "New Folder"},
		{Action: ActionUpload, Label: "Upload File"},
	}
	for _, o := range domain.SortOrders() {
		items = append(items, Item{Action: ActionSort, Label: sortLabel(o), Arg: string(o)})
	}
	for _, m := range []domain.ViewMode{domain.ViewList, domain.ViewGrid, domain.ViewThumbnails, domain.ViewPreviews} {
		items = append(items, Item{Action: ActionViewMode, Label: viewLabel(m), Arg: string(m)})
	}
	return Descriptor{Target: target, Items: items}
}

// ForPageBackground builds the menu for empty canvas space.
func ForPageBackground(target Target, gates Gates) Descriptor {
	target.Kind = TargetPageBackground
	return Descriptor{Target: target, Items: []Item{
		{Action: ActionAddSection, Label: "Add Text Section", Arg: string(domain.ContentText)},
		{Action: ActionAddSection, Label: "Add Notepad", Arg: string(domain.ContentNotepad)},
		{Action: ActionAddSection, Label: "Add Image", Arg: string(domain.ContentImage)},
		{Action: ActionPaste, Label: "Paste Section", Disabled: !gates.SectionClipboard},
	}}
}

func sortLabel(o domain.SortOrder) string {
	switch o {
	case domain.SortNameAsc:
		return "Sort by Name (A-Z)"
	case domain.SortNameDesc:
		return "Sort by Name (Z-A)"
	case domain.SortSizeAsc:
		return "Sort by Size (smallest)"
	case domain.SortSizeDesc:
		return "Sort by Size (largest)"
	case domain.SortDateAsc:
		return "Sort by Date (oldest)"
	case domain.SortDateDesc:
		return "Sort by Date (newest)"
	}
	return string(o)
}

func viewLabel(m domain.ViewMode) string {
	switch m {
	case domain.ViewList:
		return "List View"
	case domain.ViewGrid:
		return "Grid View"
	case domain.ViewThumbnails:
		return "Thumbnail View"
	case domain.ViewPreviews:
		return "Preview View"
	}
	return string(m)
}

// OpenMenu is the single visible menu instance.
type OpenMenu struct {
	Descriptor Descriptor
	Pos        geom.Pt
}

// Manager enforces the single-instance rule and the one-shot dismissal.
type Manager struct {
	open *OpenMenu
}

// Open replaces any visible menu with a new one placed inside the viewport.
func (m *Manager) Open(d Descriptor, at geom.Pt, size, viewport geom.Size) *OpenMenu {
	m.Hide()
	m.open = &OpenMenu{
		Descriptor: d,
		Pos:        geom.FitInViewport(at, size, viewport, Margin),
	}
	return m.open
}

// Current returns the visible menu, or nil.
func (m *Manager) Current() *OpenMenu { return m.open }

// Hide removes the visible menu unconditionally.
func (m *Manager) Hide() { m.open = nil }

// DocumentClick is the one-shot dismissal hook: the first click anywhere
// after a menu opened closes it.
func (m *Manager) DocumentClick() { m.Hide() }

// Invocation is a chosen menu action on its target.
type Invocation struct {
	Target Target
	Action ActionID
	Arg    string
}

// Handler executes one command.
type Handler func(ctx context.Context, inv Invocation) error

type tableKey struct {
	kind   TargetKind
	action ActionID
}

// Table routes invocations by (target kind, action id).
type Table struct {
	handlers map[tableKey]Handler
}

func NewTable() *Table {
	return &Table{handlers: map[tableKey]Handler{}}
}

// Register binds a handler; rebinding an existing key replaces it.
func (t *Table) Register(kind TargetKind, action ActionID, h Handler) {
	t.handlers[tableKey{kind, action}] = h
}

// Dispatch runs the handler for an invocation.
func (t *Table) Dispatch(ctx context.Context, inv Invocation) error {
	h, ok := t.handlers[tableKey{inv.Target.Kind, inv.Action}]
	if !ok {
		return fmt.Errorf("no command for %s/%s", inv.Target.Kind, inv.Action)
	}
	return h(ctx, inv)
}
