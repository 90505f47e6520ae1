/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"paneldesk/internal/backend"
	"paneldesk/internal/domain"
	"paneldesk/internal/nav"
	"paneldesk/internal/preview"
)

// storageOf returns a section and its storage payload, or an error when the
// section is not a storage section.
func (a *App) storageOf(id int64) (*domain.Section, *domain.StorageContent, error) {
	sec := a.Canvas.Section(id)
	if sec == nil {
		return nil, nil, fmt.Errorf("section %d not found", id)
	}
	sc := sec.Storage()
	if sc == nil {
		return nil, nil, fmt.Errorf("section %d is not a storage section", id)
	}
	return sec, sc, nil
}

// ConfigureStorage points a storage section at a folder. The path is
// validated before any network call; an empty path never leaves the client.
func (a *App) ConfigureStorage(ctx context.Context, id int64, st domain.StorageType, path string) error {
	_, sc, err := a.storageOf(id)
	if err != nil {
		return a.fail("configure storage", err)
	}
	if strings.TrimSpace(path) == "" {
		return a.fail("configure storage", errors.New("folder path must not be empty"))
	}
	next := *sc
	next.StorageType = st
	next.Path = path
	if err := domain.ValidateContent(domain.ContentStorage, &next); err != nil {
		return a.fail("configure storage", err)
	}
	if err := a.api.UpdateSection(ctx, id, backend.SectionPatch{ContentData: &next}); err != nil {
		return a.fail("configure storage", err)
	}
	*sc = next
	a.History.Drop(id)
	return a.RefreshFiles(ctx, id)
}

func (a *App) fetchListing(ctx context.Context, id int64) ([]domain.FileEntry, error) {
	_, sc, err := a.storageOf(id)
	if err != nil {
		return nil, err
	}
	entries, err := a.api.ListFiles(ctx, id, sc.Path)
	if err != nil {
		return nil, err
	}
	order := sc.SortOrder
	if order == "" {
		order = domain.SortNameAsc
	}
	domain.SortFiles(entries, order)
	return entries, nil
}

// RefreshFiles refetches and re-sorts a storage section's listing. Listings
// are always fetched fresh, never served from a cache.
func (a *App) RefreshFiles(ctx context.Context, id int64) error {
	entries, err := a.fetchListing(ctx, id)
	if err != nil {
		return a.fail("load files", err)
	}
	a.listings[id] = entries
	return nil
}

// Listing returns the last fetched listing of a storage section.
func (a *App) Listing(id int64) []domain.FileEntry { return a.listings[id] }

// CycleViewMode rotates list → grid → thumbnails → previews and persists it.
func (a *App) CycleViewMode(ctx context.Context, id int64) error {
	_, sc, err := a.storageOf(id)
	if err != nil {
		return a.fail("change view", err)
	}
	next := *sc
	next.ViewMode = domain.CycleViewMode(sc.ViewMode)
	if err := a.api.UpdateSection(ctx, id, backend.SectionPatch{ContentData: &next}); err != nil {
		return a.fail("change view", err)
	}
	*sc = next
	return nil
}

// SetViewMode persists an explicit view mode choice.
func (a *App) SetViewMode(ctx context.Context, id int64, mode domain.ViewMode) error {
	_, sc, err := a.storageOf(id)
	if err != nil {
		return a.fail("change view", err)
	}
	next := *sc
	next.ViewMode = mode
	if err := a.api.UpdateSection(ctx, id, backend.SectionPatch{ContentData: &next}); err != nil {
		return a.fail("change view", err)
	}
	*sc = next
	return nil
}

// SetSortOrder persists a sort order and re-sorts the current listing in
// place without refetching.
func (a *App) SetSortOrder(ctx context.Context, id int64, order domain.SortOrder) error {
	_, sc, err := a.storageOf(id)
	if err != nil {
		return a.fail("sort files", err)
	}
	next := *sc
	next.SortOrder = order
	if err := a.api.UpdateSection(ctx, id, backend.SectionPatch{ContentData: &next}); err != nil {
		return a.fail("sort files", err)
	}
	*sc = next
	if entries, ok := a.listings[id]; ok {
		domain.SortFiles(entries, order)
	}
	return nil
}

// UploadToStorage streams a file into the section's current folder and
// refreshes the listing.
func (a *App) UploadToStorage(ctx context.Context, id int64, filename string, r io.Reader) error {
	_, sc, err := a.storageOf(id)
	if err != nil {
		return a.fail("upload file", err)
	}
	if err := a.api.UploadSectionFile(ctx, id, sc.Path, filename, r); err != nil {
		return a.fail("upload file", err)
	}
	return a.RefreshFiles(ctx, id)
}

// DeleteFile removes a file after confirmation and refreshes the listing.
func (a *App) DeleteFile(ctx context.Context, id int64, name string) error {
	if !a.confirm(fmt.Sprintf("Delete %q?", name)) {
		return nil
	}
	if err := a.api.DeleteFile(ctx, id, name); err != nil {
		return a.fail("delete file", err)
	}
	return a.RefreshFiles(ctx, id)
}

// MoveFile moves a file into another storage section, the drag-between-
// sections path, and refreshes both listings.
func (a *App) MoveFile(ctx context.Context, fromID int64, name string, toID int64) error {
	if fromID == toID {
		return nil
	}
	if err := a.api.MoveFile(ctx, fromID, name, toID); err != nil {
		return a.fail("move file", err)
	}
	if err := a.RefreshFiles(ctx, fromID); err != nil {
		return err
	}
	return a.RefreshFiles(ctx, toID)
}

// ExtractZip unpacks an archive in place after confirmation and refreshes
// the listing on success.
func (a *App) ExtractZip(ctx context.Context, id int64, name string) error {
	if !domain.IsZip(name) {
		return a.fail("extract archive", fmt.Errorf("%q is not a zip archive", name))
	}
	if !a.confirm(fmt.Sprintf("Extract %q here?", name)) {
		return nil
	}
	if err := a.api.ExtractZip(ctx, id, name); err != nil {
		return a.fail("extract archive", err)
	}
	return a.RefreshFiles(ctx, id)
}

// NewFolder creates a folder in the section's current path and refreshes.
func (a *App) NewFolder(ctx context.Context, id int64, name string) error {
	_, sc, err := a.storageOf(id)
	if err != nil {
		return a.fail("create folder", err)
	}
	if strings.TrimSpace(name) == "" {
		return a.fail("create folder", errors.New("folder name must not be empty"))
	}
	if err := a.api.CreateDirectory(ctx, sc.Path, name); err != nil {
		return a.fail("create folder", err)
	}
	return a.RefreshFiles(ctx, id)
}

// BrowseDirectories lists host directories for the storage path picker.
func (a *App) BrowseDirectories(ctx context.Context, path string) (*domain.DirectoryListing, error) {
	listing, err := a.api.ListDirectories(ctx, path)
	if err != nil {
		return nil, a.fail("browse folders", err)
	}
	return listing, nil
}

// CloudStoragePaths returns the detected provider sync folders.
func (a *App) CloudStoragePaths(ctx context.Context) (map[string]string, error) {
	paths, err := a.api.CloudStoragePaths(ctx)
	if err != nil {
		return nil, a.fail("detect cloud folders", err)
	}
	return paths, nil
}

// DownloadURL returns the link that serves a file from a storage section.
func (a *App) DownloadURL(id int64, name string, attachment bool) string {
	return a.api.FileURL(id, name, attachment)
}

// --- folder navigation ---

// EnterFolder descends into a child folder: history advances, the new path
// is persisted into the section's content data, and the listing refreshes.
func (a *App) EnterFolder(ctx context.Context, id int64, name string) error {
	_, sc, err := a.storageOf(id)
	if err != nil {
		return a.fail("open folder", err)
	}
	next := a.History.EnterFolder(id, sc.Path, name)
	return a.persistPath(ctx, id, sc, next)
}

// FolderBack steps one level back; at the root the error surfaces and
// nothing changes.
func (a *App) FolderBack(ctx context.Context, id int64) error {
	_, sc, err := a.storageOf(id)
	if err != nil {
		return a.fail("go back", err)
	}
	prev, err := a.History.Back(id, sc.Path)
	if err != nil {
		if errors.Is(err, nav.ErrAtRoot) {
			a.errs("go back", err)
			return nil
		}
		return a.fail("go back", err)
	}
	return a.persistPath(ctx, id, sc, prev)
}

// FolderForward re-enters the folder left by FolderBack.
func (a *App) FolderForward(ctx context.Context, id int64) error {
	_, sc, err := a.storageOf(id)
	if err != nil {
		return a.fail("go forward", err)
	}
	next, ok := a.History.Forward(id)
	if !ok {
		return nil
	}
	return a.persistPath(ctx, id, sc, next)
}

// CanGoForward reports whether a forward step is available for a section.
func (a *App) CanGoForward(id int64) bool { return a.History.CanGoForward(id) }

// HandleBack routes a global back action: over a storage section it pops
// one folder level and reports the action consumed; otherwise it propagates
// so the shell may close.
func (a *App) HandleBack(ctx context.Context) bool {
	id, ok := a.Guard.Hovered()
	if !ok {
		return false
	}
	_ = a.FolderBack(ctx, id)
	return true
}

func (a *App) persistPath(ctx context.Context, id int64, sc *domain.StorageContent, path string) error {
	next := *sc
	next.Path = path
	if err := a.api.UpdateSection(ctx, id, backend.SectionPatch{ContentData: &next}); err != nil {
		return a.fail("save folder", err)
	}
	*sc = next
	return a.RefreshFiles(ctx, id)
}

// --- file clipboard ---

// CopyFile puts a file on the clipboard.
func (a *App) CopyFile(sectionID int64, name string) { a.FileClip.Copy(sectionID, name) }

// CutFile marks a file for move.
func (a *App) CutFile(sectionID int64, name string) { a.FileClip.Cut(sectionID, name) }

// PasteFile copies the held file into the target section; a cut from a
// different section deletes the source afterwards and clears the clipboard.
// Both listings refresh. An empty clipboard is a silent no-op.
func (a *App) PasteFile(ctx context.Context, targetID int64) error {
	item, ok := a.FileClip.Get()
	if !ok {
		return nil
	}
	if err := a.api.CopyFile(ctx, item.SectionID, item.Filename, targetID); err != nil {
		return a.fail("paste file", err)
	}
	deleteSource, _ := a.FileClip.CompletePaste(targetID)
	if deleteSource {
		if err := a.api.DeleteFile(ctx, item.SectionID, item.Filename); err != nil {
			return a.fail("remove cut file", err)
		}
	}
	if item.SectionID != targetID {
		if err := a.RefreshFiles(ctx, item.SectionID); err != nil {
			return err
		}
	}
	return a.RefreshFiles(ctx, targetID)
}

// FilePreview downloads an image file from a storage section and scales it
// to the bound of the section's view mode: PreviewSize in previews mode,
// ThumbSize otherwise.
func (a *App) FilePreview(ctx context.Context, id int64, name string) (image.Image, error) {
	_, sc, err := a.storageOf(id)
	if err != nil {
		return nil, err
	}
	if !domain.IsImageFile(name) {
		return nil, fmt.Errorf("%q is not a previewable image", name)
	}
	bound := preview.ThumbSize
	if sc.ViewMode == domain.ViewPreviews {
		bound = preview.PreviewSize
	}
	data, err := a.api.FetchSectionFile(ctx, id, name)
	if err != nil {
		return nil, a.fail("load preview", err)
	}
	img, err := preview.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, a.fail("load preview", err)
	}
	return preview.Scale(img, bound, bound), nil
}

// --- image sections ---

// UploadImage uploads an image and binds it to an image section.
func (a *App) UploadImage(ctx context.Context, id int64, filename string, r io.Reader) error {
	sec := a.Canvas.Section(id)
	if sec == nil || sec.ContentType != domain.ContentImage {
		return a.fail("upload image", fmt.Errorf("section %d is not an image section", id))
	}
	if !domain.IsImageFile(filename) {
		return a.fail("upload image", fmt.Errorf("%q is not a supported image", filename))
	}
	fc, err := a.api.UploadFile(ctx, filename, r)
	if err != nil {
		return a.fail("upload image", err)
	}
	content := &domain.ImageContent{
		FilePath: fc.FilePath,
		Filename: fc.Filename,
		ImageURL: fc.FilePath,
	}
	if err := a.api.UpdateSection(ctx, id, backend.SectionPatch{ContentData: content}); err != nil {
		return a.fail("upload image", err)
	}
	sec.ContentData = content
	return nil
}

// ClearImage detaches the image from a section after confirmation.
func (a *App) ClearImage(ctx context.Context, id int64) error {
	sec := a.Canvas.Section(id)
	if sec == nil || sec.ContentType != domain.ContentImage {
		return nil
	}
	if !a.confirm("Remove this image?") {
		return nil
	}
	content := &domain.ImageContent{}
	if err := a.api.UpdateSection(ctx, id, backend.SectionPatch{ContentData: content}); err != nil {
		return a.fail("remove image", err)
	}
	sec.ContentData = content
	return nil
}
