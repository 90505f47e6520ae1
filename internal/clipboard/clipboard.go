/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package clipboard holds the two process-local clipboards: one for files
// inside storage sections, one for whole sections. Each is a singleton slot
// overwritten unconditionally by a new copy or cut; nothing ever touches the
// OS clipboard.
package clipboard

import (
	"encoding/json"

	"paneldesk/internal/domain"
)

// Offset applied to a pasted section relative to the source.
const PasteOffset = 20

// FileItem identifies a file held on the file clipboard.
type FileItem struct {
	SectionID int64
	Filename  string
	IsCut     bool
}

// FileClipboard is the single slot for copied or cut files.
type FileClipboard struct {
	item FileItem
	set  bool
}

// Copy places a file on the clipboard, replacing whatever was there.
func (c *FileClipboard) Copy(sectionID int64, filename string) {
	c.item = FileItem{SectionID: sectionID, Filename: filename}
	c.set = true
}

// Cut places a file on the clipboard marked for move.
func (c *FileClipboard) Cut(sectionID int64, filename string) {
	c.item = FileItem{SectionID: sectionID, Filename: filename, IsCut: true}
	c.set = true
}

// Get returns the held item, if any.
func (c *FileClipboard) Get() (FileItem, bool) { return c.item, c.set }

// Clear empties the slot. Called after a cut paste completes; copies stay so
// they can be pasted repeatedly.
func (c *FileClipboard) Clear() {
	c.item = FileItem{}
	c.set = false
}

// CompletePaste reports what a paste into targetSectionID must do with the
// source: whether the source file is deleted afterwards and whether the
// clipboard is consumed. Only a cut pasted into a different section deletes
// the source and consumes the slot; a cut pasted back into its own section
// is a plain copy and the slot stays populated.
func (c *FileClipboard) CompletePaste(targetSectionID int64) (deleteSource, consumed bool) {
	if !c.set || !c.item.IsCut {
		return false, false
	}
	if c.item.SectionID == targetSectionID {
		return false, false
	}
	c.Clear()
	return true, true
}

// SectionClipboard is the single slot for a copied or cut section.
type SectionClipboard struct {
	snapshot   domain.Section
	originalID int64
	isCut      bool
	set        bool
}

// snapshotOf deep-copies a section through its JSON form so later edits to
// the live section cannot leak into the clipboard.
func snapshotOf(sec domain.Section) domain.Section {
	data, err := json.Marshal(sec)
	if err != nil {
		return sec
	}
	var copied domain.Section
	if err := json.Unmarshal(data, &copied); err != nil {
		return sec
	}
	return copied
}

// Copy snapshots a section onto the clipboard.
func (c *SectionClipboard) Copy(sec domain.Section) {
	c.snapshot = snapshotOf(sec)
	c.originalID = sec.ID
	c.isCut = false
	c.set = true
}

// Cut snapshots a section and marks the original for removal on paste.
func (c *SectionClipboard) Cut(sec domain.Section) {
	c.snapshot = snapshotOf(sec)
	c.originalID = sec.ID
	c.isCut = true
	c.set = true
}

// Has reports whether the slot is filled.
func (c *SectionClipboard) Has() bool { return c.set }

// IsCut reports whether the held section came from a cut.
func (c *SectionClipboard) IsCut() bool { return c.set && c.isCut }

// OriginalID returns the id of the section the snapshot came from, for
// dimming the source of a cut.
func (c *SectionClipboard) OriginalID() int64 {
	if !c.set {
		return 0
	}
	return c.originalID
}

// PasteInto produces the section to create on the target page: the snapshot
// offset by PasteOffset with identity fields cleared. For a cut the original
// id to delete is returned and the slot is consumed; copies remain pastable.
func (c *SectionClipboard) PasteInto(pageID int64) (sec domain.Section, removeID int64, ok bool) {
	if !c.set {
		return domain.Section{}, 0, false
	}
	sec = snapshotOf(c.snapshot)
	sec.ID = 0
	sec.PageID = pageID
	sec.PositionX += PasteOffset
	sec.PositionY += PasteOffset
	if c.isCut {
		removeID = c.originalID
		c.Clear()
	}
	return sec, removeID, true
}

// Clear empties the slot.
func (c *SectionClipboard) Clear() {
	c.snapshot = domain.Section{}
	c.originalID = 0
	c.isCut = false
	c.set = false
}
