/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package controller

import (
	"context"

	"paneldesk/internal/domain"
	"paneldesk/internal/menu"
)

// Shell hooks the command table calls back into. All are optional; a nil
// hook makes the action a no-op.
type Shell struct {
	// OpenURL opens a link or an inline file view in the system browser.
	OpenURL func(url string)
	// Share surfaces a shareable link for a file.
	Share func(url string)
	// ExportPDF renders the given page to a PDF file.
	ExportPDF func(pageID int64)
	// RequestUpload asks the shell for a file to upload into a section.
	RequestUpload func(sectionID int64)
	// RequestFolderName asks for a new folder's name.
	RequestFolderName func(sectionID int64)
}

// SetShell installs the UI callbacks used by menu commands.
func (a *App) SetShell(s Shell) { a.shell = s }

// registerCommands binds every (target kind, action) pair the menus can
// produce. Menus and commands stay in lockstep: a descriptor item without a
// binding here is a bug surfaced by Dispatch.
func (a *App) registerCommands() {
	t := a.Commands

	// file items
	t.Register(menu.TargetFileItem, menu.ActionCopy, func(_ context.Context, inv menu.Invocation) error {
		a.CopyFile(inv.Target.SectionID, inv.Target.Filename)
		return nil
	})
	t.Register(menu.TargetFileItem, menu.ActionCut, func(_ context.Context, inv menu.Invocation) error {
		a.CutFile(inv.Target.SectionID, inv.Target.Filename)
		return nil
	})
	t.Register(menu.TargetFileItem, menu.ActionPaste, func(ctx context.Context, inv menu.Invocation) error {
		return a.PasteFile(ctx, inv.Target.SectionID)
	})
	t.Register(menu.TargetFileItem, menu.ActionShare, func(_ context.Context, inv menu.Invocation) error {
		if a.shell.Share != nil {
			a.shell.Share(a.DownloadURL(inv.Target.SectionID, inv.Target.Filename, false))
		}
		return nil
	})
	t.Register(menu.TargetFileItem, menu.ActionDownload, func(_ context.Context, inv menu.Invocation) error {
		if a.shell.OpenURL != nil {
			a.shell.OpenURL(a.DownloadURL(inv.Target.SectionID, inv.Target.Filename, true))
		}
		return nil
	})
	t.Register(menu.TargetFileItem, menu.ActionExtract, func(ctx context.Context, inv menu.Invocation) error {
		return a.ExtractZip(ctx, inv.Target.SectionID, inv.Target.Filename)
	})
	t.Register(menu.TargetFileItem, menu.ActionDelete, func(ctx context.Context, inv menu.Invocation) error {
		return a.DeleteFile(ctx, inv.Target.SectionID, inv.Target.Filename)
	})

	// folder items
	t.Register(menu.TargetFolderItem, menu.ActionOpen, func(ctx context.Context, inv menu.Invocation) error {
		return a.EnterFolder(ctx, inv.Target.SectionID, inv.Target.Filename)
	})
	t.Register(menu.TargetFolderItem, menu.ActionCopy, func(_ context.Context, inv menu.Invocation) error {
		a.CopyFile(inv.Target.SectionID, inv.Target.Filename)
		return nil
	})
	t.Register(menu.TargetFolderItem, menu.ActionCut, func(_ context.Context, inv menu.Invocation) error {
		a.CutFile(inv.Target.SectionID, inv.Target.Filename)
		return nil
	})
	t.Register(menu.TargetFolderItem, menu.ActionPaste, func(ctx context.Context, inv menu.Invocation) error {
		return a.PasteFile(ctx, inv.Target.SectionID)
	})
	t.Register(menu.TargetFolderItem, menu.ActionDelete, func(ctx context.Context, inv menu.Invocation) error {
		return a.DeleteFile(ctx, inv.Target.SectionID, inv.Target.Filename)
	})

	// section headers
	t.Register(menu.TargetSectionHeader, menu.ActionCopy, func(_ context.Context, inv menu.Invocation) error {
		a.CopySection(inv.Target.SectionID)
		return nil
	})
	t.Register(menu.TargetSectionHeader, menu.ActionCut, func(_ context.Context, inv menu.Invocation) error {
		a.CutSection(inv.Target.SectionID)
		return nil
	})
	t.Register(menu.TargetSectionHeader, menu.ActionPaste, func(ctx context.Context, inv menu.Invocation) error {
		return a.PasteSection(ctx)
	})
	t.Register(menu.TargetSectionHeader, menu.ActionBringFront, func(ctx context.Context, inv menu.Invocation) error {
		return a.Canvas.BringToFront(ctx, inv.Target.SectionID)
	})
	t.Register(menu.TargetSectionHeader, menu.ActionSendBack, func(ctx context.Context, inv menu.Invocation) error {
		return a.Canvas.SendToBack(ctx, inv.Target.SectionID)
	})
	t.Register(menu.TargetSectionHeader, menu.ActionExportPDF, func(_ context.Context, inv menu.Invocation) error {
		if a.shell.ExportPDF != nil && a.currentPage != nil {
			a.shell.ExportPDF(a.currentPage.ID)
		}
		return nil
	})
	t.Register(menu.TargetSectionHeader, menu.ActionDelete, func(ctx context.Context, inv menu.Invocation) error {
		return a.DeleteSection(ctx, inv.Target.SectionID)
	})

	// storage background and empty file lists
	t.Register(menu.TargetStorageBackground, menu.ActionPaste, func(ctx context.Context, inv menu.Invocation) error {
		return a.PasteFile(ctx, inv.Target.SectionID)
	})
	t.Register(menu.TargetStorageBackground, menu.ActionNewFolder, func(_ context.Context, inv menu.Invocation) error {
		if a.shell.RequestFolderName != nil {
			a.shell.RequestFolderName(inv.Target.SectionID)
		}
		return nil
	})
	t.Register(menu.TargetStorageBackground, menu.ActionUpload, func(_ context.Context, inv menu.Invocation) error {
		if a.shell.RequestUpload != nil {
			a.shell.RequestUpload(inv.Target.SectionID)
		}
		return nil
	})
	t.Register(menu.TargetStorageBackground, menu.ActionSort, func(ctx context.Context, inv menu.Invocation) error {
		return a.SetSortOrder(ctx, inv.Target.SectionID, domain.SortOrder(inv.Arg))
	})
	t.Register(menu.TargetStorageBackground, menu.ActionViewMode, func(ctx context.Context, inv menu.Invocation) error {
		return a.SetViewMode(ctx, inv.Target.SectionID, domain.ViewMode(inv.Arg))
	})

	// page background
	t.Register(menu.TargetPageBackground, menu.ActionAddSection, func(ctx context.Context, inv menu.Invocation) error {
		_, err := a.AddSection(ctx, domain.ContentType(inv.Arg))
		return err
	})
	t.Register(menu.TargetPageBackground, menu.ActionPaste, func(ctx context.Context, inv menu.Invocation) error {
		return a.PasteSection(ctx)
	})
}
