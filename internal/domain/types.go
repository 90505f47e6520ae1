/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for the dashboard: tabs contain
// pages, pages contain freeform sections positioned on a canvas. The JSON
// shapes mirror the backend REST contract.

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContentType selects a section's data shape and renderer.
type ContentType string

const (
	ContentText    ContentType = "text"
	ContentLink    ContentType = "link"
	ContentFile    ContentType = "file"
	ContentStorage ContentType = "storage"
	ContentNotepad ContentType = "notepad"
	ContentImage   ContentType = "image"
)

// Valid reports whether ct is one of the known content types.
func (ct ContentType) Valid() bool {
	switch ct {
	case ContentText, ContentLink, ContentFile, ContentStorage, ContentNotepad, ContentImage:
		return true
	}
	return false
}

// StorageType identifies the backing folder kind of a storage section.
type StorageType string

const (
	StorageLocal       StorageType = "local"
	StorageOneDrive    StorageType = "onedrive"
	StorageGoogleDrive StorageType = "googledrive"
	StorageICloud      StorageType = "icloud"
)

// ViewMode controls how a storage section lists its files.
type ViewMode string

const (
	ViewList       ViewMode = "list"
	ViewGrid       ViewMode = "grid"
	ViewThumbnails ViewMode = "thumbnails"
	ViewPreviews   ViewMode = "previews"
)

// CycleViewMode returns the next mode in the fixed rotation.
func CycleViewMode(m ViewMode) ViewMode {
	switch m {
	case ViewList:
		return ViewGrid
	case ViewGrid:
		return ViewThumbnails
	case ViewThumbnails:
		return ViewPreviews
	default:
		return ViewList
	}
}

// Tab is the top-level grouping containing pages.
type Tab struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	OrderIndex int    `json:"order_index"`
	Pages      []Page `json:"pages,omitempty"`
}

// Page is a container of sections, selected within a tab. Sections are lazy:
// they are fetched only when the page is selected.
type Page struct {
	ID         int64     `json:"id"`
	TabID      int64     `json:"tab_id"`
	Name       string    `json:"name"`
	OrderIndex int       `json:"order_index"`
	Sections   []Section `json:"sections,omitempty"`
}

// Section is a positioned, resizable panel with one content type.
// Geometry is in page-local pixels; OrderIndex doubles as the persisted
// z-order hint.
type Section struct {
	ID          int64       `json:"id"`
	PageID      int64       `json:"page_id"`
	Name        string      `json:"name"`
	ContentType ContentType `json:"content_type"`
	ContentData ContentData `json:"content_data"`
	Memo        string      `json:"memo,omitempty"`
	PositionX   float64     `json:"position_x"`
	PositionY   float64     `json:"position_y"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	OrderIndex  int         `json:"order_index"`
}

// ContentData is the variant payload keyed by the section's content type.
type ContentData interface {
	Type() ContentType
}

type TextContent struct {
	Text string `json:"text"`
}

func (TextContent) Type() ContentType { return ContentText }

type LinkContent struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (LinkContent) Type() ContentType { return ContentLink }

type FileContent struct {
	Filename string `json:"filename"`
	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size"`
	FileType string `json:"file_type"`
}

func (FileContent) Type() ContentType { return ContentFile }

type StorageContent struct {
	StorageType StorageType `json:"storage_type"`
	Path        string      `json:"path"`
	ViewMode    ViewMode    `json:"view_mode,omitempty"`
	SortOrder   SortOrder   `json:"sort_order,omitempty"`
}

func (StorageContent) Type() ContentType { return ContentStorage }

type NotepadContent struct {
	Text       string `json:"text"`
	BgColor    string `json:"bgColor,omitempty"`
	FontColor  string `json:"fontColor,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
	FontSize   string `json:"fontSize,omitempty"`
}

func (NotepadContent) Type() ContentType { return ContentNotepad }

type ImageContent struct {
	FilePath string `json:"file_path,omitempty"`
	Filename string `json:"filename,omitempty"`
	ImageURL string `json:"image_url"`
}

func (ImageContent) Type() ContentType { return ContentImage }

// DefaultContent returns the default payload for a content type, matching
// what the backend seeds on section creation.
func DefaultContent(ct ContentType) ContentData {
	switch ct {
	case ContentText:
		return &TextContent{}
	case ContentLink:
		return &LinkContent{URL: "#", Title: "New Link"}
	case ContentFile:
		return &FileContent{}
	case ContentStorage:
		return &StorageContent{StorageType: StorageLocal, ViewMode: ViewList, SortOrder: SortNameAsc}
	case ContentNotepad:
		return &NotepadContent{
			BgColor:    "#fff9c4",
			FontColor:  "#333333",
			FontFamily: "'Segoe UI', Tahoma, Geneva, Verdana, sans-serif",
			FontSize:   "14px",
		}
	case ContentImage:
		return &ImageContent{}
	}
	return nil
}

// decodeContent unmarshals raw content data for the given type. The backend
// stores content_data as a JSON string column, so both an object and a
// string-wrapped object are accepted.
func decodeContent(ct ContentType, raw json.RawMessage) (ContentData, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultContent(ct), nil
	}
	// Unwrap a string-encoded object.
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("unwrap content_data: %w", err)
		}
		if s == "" {
			return DefaultContent(ct), nil
		}
		raw = json.RawMessage(s)
	}
	dst := DefaultContent(ct)
	if dst == nil {
		return nil, fmt.Errorf("unknown content type %q", ct)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, fmt.Errorf("decode %s content: %w", ct, err)
	}
	return dst, nil
}

// sectionWire mirrors Section with raw content for two-phase decoding.
type sectionWire struct {
	ID          int64           `json:"id"`
	PageID      int64           `json:"page_id"`
	Name        string          `json:"name"`
	ContentType ContentType     `json:"content_type"`
	ContentData json.RawMessage `json:"content_data"`
	Memo        string          `json:"memo"`
	PositionX   float64         `json:"position_x"`
	PositionY   float64         `json:"position_y"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	OrderIndex  int             `json:"order_index"`
}

// UnmarshalJSON decodes the variant content according to content_type.
func (s *Section) UnmarshalJSON(data []byte) error {
	var w sectionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	content, err := decodeContent(w.ContentType, w.ContentData)
	if err != nil {
		return err
	}
	*s = Section{
		ID:          w.ID,
		PageID:      w.PageID,
		Name:        w.Name,
		ContentType: w.ContentType,
		ContentData: content,
		Memo:        w.Memo,
		PositionX:   w.PositionX,
		PositionY:   w.PositionY,
		Width:       w.Width,
		Height:      w.Height,
		OrderIndex:  w.OrderIndex,
	}
	return nil
}

// SetContentType switches the section's content type. Data is preserved only
// on a no-op change; any real switch resets to the new type's default.
func (s *Section) SetContentType(ct ContentType) {
	if ct == s.ContentType && s.ContentData != nil {
		return
	}
	s.ContentType = ct
	s.ContentData = DefaultContent(ct)
}

// Storage returns the storage payload, or nil when the section is not a
// storage section.
func (s *Section) Storage() *StorageContent {
	sc, _ := s.ContentData.(*StorageContent)
	return sc
}

// FileEntry is a remote file or folder inside a storage section. Listings are
// fetched fresh on every refresh and never cached across navigation.
type FileEntry struct {
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsDirectory bool      `json:"is_directory"`
}

// DirectoryListing is the host filesystem browse result.
type DirectoryListing struct {
	CurrentPath string   `json:"current_path"`
	ParentPath  string   `json:"parent_path"`
	Directories []string `json:"directories"`
}
