/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package controller owns the application state: the tab/page tree, the
// current page canvas, clipboards, folder histories and the command table.
// It expects single event-loop discipline; all mutation happens on the UI
// thread, and background fetches re-enter through the Dispatch callback.
package controller

import (
	"context"
	"fmt"

	"log/slog"

	"paneldesk/internal/backend"
	"paneldesk/internal/cache"
	"paneldesk/internal/canvas"
	"paneldesk/internal/clipboard"
	"paneldesk/internal/domain"
	"paneldesk/internal/geom"
	applog "paneldesk/internal/log"
	"paneldesk/internal/menu"
	"paneldesk/internal/nav"
)

// Confirmer asks the user to confirm a destructive action. A declined
// confirmation aborts the operation silently.
type Confirmer func(prompt string) bool

// ErrorSink surfaces a failed operation to the user, the alert analog.
type ErrorSink func(msg string, err error)

// Dispatch schedules fn onto the UI thread. Background goroutines must
// re-enter through it.
type Dispatch func(fn func())

// App is the root state object.
type App struct {
	log *slog.Logger
	api *backend.Client

	state  *cache.Store
	Canvas *canvas.Canvas

	FileClip    clipboard.FileClipboard
	SectionClip clipboard.SectionClipboard
	History     *nav.History
	Guard       nav.BackGuard
	Menus       menu.Manager
	Commands    *menu.Table

	tabs        []domain.Tab
	currentTab  int64
	currentPage *domain.Page

	// per storage section: current sorted listing
	listings map[int64][]domain.FileEntry

	locked   bool
	confirm  Confirmer
	errs     ErrorSink
	dispatch Dispatch
	shell    Shell
}

// Option configures the App seams.
type Option func(*App)

// WithConfirmer replaces the confirmation prompt (defaults to approve-all).
func WithConfirmer(c Confirmer) Option { return func(a *App) { a.confirm = c } }

// WithErrorSink replaces the error surface (defaults to logging only).
func WithErrorSink(e ErrorSink) Option { return func(a *App) { a.errs = e } }

// WithDispatch replaces the UI-thread dispatcher (defaults to inline calls).
func WithDispatch(d Dispatch) Option { return func(a *App) { a.dispatch = d } }

// WithGeometryReader installs the renderer's geometry read-back used to
// commit drags and resizes.
func WithGeometryReader(r canvas.GeometryReader) Option {
	return func(a *App) { a.Canvas = canvas.New(&canvasStore{a}, r) }
}

// New builds the application state around a backend client and the local
// state store. state may be nil, in which case nothing is remembered across
// restarts.
func New(api *backend.Client, state *cache.Store, opts ...Option) *App {
	a := &App{
		log:      applog.WithComponent("controller"),
		api:      api,
		state:    state,
		History:  nav.NewHistory(),
		Commands: menu.NewTable(),
		listings: map[int64][]domain.FileEntry{},
		confirm:  func(string) bool { return true },
		dispatch: func(fn func()) { fn() },
	}
	a.errs = func(msg string, err error) {
		a.log.Error(msg, slog.Any("err", err))
	}
	a.Canvas = canvas.New(&canvasStore{a}, nil)
	for _, opt := range opts {
		opt(a)
	}
	a.registerCommands()
	return a
}

// canvasStore adapts canvas persistence onto the section PUT endpoint.
type canvasStore struct{ app *App }

func (s *canvasStore) UpdateGeometry(ctx context.Context, id int64, r geom.Rect) error {
	return s.app.api.UpdateSection(ctx, id, backend.GeometryPatch(r.X, r.Y, r.W, r.H))
}

func (s *canvasStore) UpdateOrder(ctx context.Context, id int64, orderIndex int) error {
	return s.app.api.UpdateSection(ctx, id, backend.SectionPatch{OrderIndex: &orderIndex})
}

// fail logs, surfaces and wraps an operation failure.
func (a *App) fail(msg string, err error) error {
	a.errs(msg, err)
	return fmt.Errorf("%s: %w", msg, err)
}

// Tabs returns the loaded tab list.
func (a *App) Tabs() []domain.Tab { return a.tabs }

// CurrentTab returns the selected tab, or nil.
func (a *App) CurrentTab() *domain.Tab {
	for i := range a.tabs {
		if a.tabs[i].ID == a.currentTab {
			return &a.tabs[i]
		}
	}
	return nil
}

// CurrentPage returns the selected page with its sections, or nil.
func (a *App) CurrentPage() *domain.Page { return a.currentPage }

// Locked reports whether the subscription gate is closed. Nothing else in
// the client carries billing logic.
func (a *App) Locked() bool { return a.locked }

// VerifySession checks the stored token and the subscription state at
// startup. An invalid session locks the app.
func (a *App) VerifySession(ctx context.Context) error {
	info, err := a.api.VerifySession(ctx)
	if err != nil {
		return a.fail("verify session", err)
	}
	if !info.Valid {
		a.locked = true
		return nil
	}
	st, err := a.api.GetSubscriptionStatus(ctx)
	if err != nil {
		// status being unreachable does not lock a valid session
		a.log.Warn("subscription status unavailable", slog.Any("err", err))
		return nil
	}
	a.locked = !st.Active
	return nil
}

// LoadTabs fetches the tab tree and restores the last selection from the
// state store. Stale identifiers are discarded; with nothing restorable the
// first tab is selected.
func (a *App) LoadTabs(ctx context.Context) error {
	tabs, err := a.api.ListTabs(ctx)
	if err != nil {
		return a.fail("load tabs", err)
	}
	a.tabs = tabs
	if len(tabs) == 0 {
		a.currentTab = 0
		a.currentPage = nil
		return nil
	}

	wantTab := a.stateID(ctx, cache.KeyCurrentTab)
	wantPage := a.stateID(ctx, cache.KeyCurrentPage)
	tab := a.findTab(wantTab)
	if tab == nil {
		tab = &a.tabs[0]
		wantPage = 0
	}
	return a.selectTabPage(ctx, tab, wantPage)
}

func (a *App) stateID(ctx context.Context, key string) int64 {
	if a.state == nil {
		return 0
	}
	return a.state.GetID(ctx, key)
}

func (a *App) rememberID(ctx context.Context, key string, id int64) {
	if a.state == nil {
		return
	}
	if err := a.state.SetID(ctx, key, id); err != nil {
		a.log.Warn("remember selection failed", slog.String("key", key), slog.Any("err", err))
	}
}

func (a *App) findTab(id int64) *domain.Tab {
	for i := range a.tabs {
		if a.tabs[i].ID == id {
			return &a.tabs[i]
		}
	}
	return nil
}

// SelectTab switches tab and opens its remembered or first page.
func (a *App) SelectTab(ctx context.Context, id int64) error {
	tab := a.findTab(id)
	if tab == nil {
		return a.fail("select tab", fmt.Errorf("tab %d not found", id))
	}
	return a.selectTabPage(ctx, tab, a.stateID(ctx, cache.KeyCurrentPage))
}

func (a *App) selectTabPage(ctx context.Context, tab *domain.Tab, wantPage int64) error {
	a.currentTab = tab.ID
	a.rememberID(ctx, cache.KeyCurrentTab, tab.ID)

	var page *domain.Page
	for i := range tab.Pages {
		if tab.Pages[i].ID == wantPage {
			page = &tab.Pages[i]
			break
		}
	}
	if page == nil && len(tab.Pages) > 0 {
		page = &tab.Pages[0]
	}
	if page == nil {
		a.currentPage = nil
		a.Canvas.SetSections(nil)
		a.rememberID(ctx, cache.KeyCurrentPage, 0)
		return nil
	}
	return a.SelectPage(ctx, page.ID)
}

// SelectPage loads a page with its sections and rebuilds the canvas.
// Clipboard dim state and folder histories reset with the reload.
func (a *App) SelectPage(ctx context.Context, id int64) error {
	page, err := a.api.GetPage(ctx, id)
	if err != nil {
		return a.fail("load page", err)
	}
	a.currentPage = page
	a.Canvas.SetSections(page.Sections)
	a.History.Reset()
	a.listings = map[int64][]domain.FileEntry{}
	a.rememberID(ctx, cache.KeyCurrentPage, id)
	if a.state != nil {
		if err := a.state.SavePageSnapshot(ctx, page); err != nil {
			a.log.Warn("cache page snapshot failed", slog.Any("err", err))
		}
	}
	a.scheduleListings(ctx)
	return nil
}

// scheduleListings kicks off the listing fetch of every storage section
// after render, without blocking other sections.
func (a *App) scheduleListings(ctx context.Context) {
	for _, node := range a.Canvas.Render() {
		if !node.WantsListing {
			continue
		}
		id := node.Section.ID
		go func() {
			entries, err := a.fetchListing(ctx, id)
			a.dispatch(func() {
				if err != nil {
					a.log.Warn("listing fetch failed", slog.Int64("section", id), slog.Any("err", err))
					return
				}
				// apply only if the section still exists on the canvas
				if a.Canvas.Section(id) == nil {
					return
				}
				a.listings[id] = entries
			})
		}()
	}
}

// ReloadPage refetches the current page from scratch.
func (a *App) ReloadPage(ctx context.Context) error {
	if a.currentPage == nil {
		return nil
	}
	return a.SelectPage(ctx, a.currentPage.ID)
}

// CreateTab adds a tab and selects it.
func (a *App) CreateTab(ctx context.Context, name string) error {
	tab, err := a.api.CreateTab(ctx, name)
	if err != nil {
		return a.fail("create tab", err)
	}
	a.tabs = append(a.tabs, *tab)
	return a.selectTabPage(ctx, &a.tabs[len(a.tabs)-1], 0)
}

// DeleteTab removes a tab. Deleting the current tab clears the page and
// section state along with the remembered selection.
func (a *App) DeleteTab(ctx context.Context, id int64) error {
	if !a.confirm("Delete this tab and all its pages?") {
		return nil
	}
	if err := a.api.DeleteTab(ctx, id); err != nil {
		return a.fail("delete tab", err)
	}
	for i := range a.tabs {
		if a.tabs[i].ID == id {
			a.tabs = append(a.tabs[:i], a.tabs[i+1:]...)
			break
		}
	}
	if a.currentTab != id {
		return nil
	}
	a.currentTab = 0
	a.currentPage = nil
	a.Canvas.SetSections(nil)
	a.rememberID(ctx, cache.KeyCurrentTab, 0)
	a.rememberID(ctx, cache.KeyCurrentPage, 0)
	if len(a.tabs) > 0 {
		return a.selectTabPage(ctx, &a.tabs[0], 0)
	}
	return nil
}

// CreatePage adds a page to the current tab and selects it.
func (a *App) CreatePage(ctx context.Context, name string) error {
	tab := a.CurrentTab()
	if tab == nil {
		return a.fail("create page", fmt.Errorf("no tab selected"))
	}
	page, err := a.api.CreatePage(ctx, tab.ID, name)
	if err != nil {
		return a.fail("create page", err)
	}
	tab.Pages = append(tab.Pages, *page)
	return a.SelectPage(ctx, page.ID)
}

// DeletePage removes a page, its cached snapshot, and falls back to the
// tab's first remaining page.
func (a *App) DeletePage(ctx context.Context, id int64) error {
	if !a.confirm("Delete this page and all its sections?") {
		return nil
	}
	if err := a.api.DeletePage(ctx, id); err != nil {
		return a.fail("delete page", err)
	}
	if a.state != nil {
		_ = a.state.DeletePageSnapshot(ctx, id)
	}
	tab := a.CurrentTab()
	if tab != nil {
		for i := range tab.Pages {
			if tab.Pages[i].ID == id {
				tab.Pages = append(tab.Pages[:i], tab.Pages[i+1:]...)
				break
			}
		}
	}
	if a.currentPage == nil || a.currentPage.ID != id {
		return nil
	}
	a.currentPage = nil
	a.Canvas.SetSections(nil)
	a.rememberID(ctx, cache.KeyCurrentPage, 0)
	if tab != nil && len(tab.Pages) > 0 {
		return a.SelectPage(ctx, tab.Pages[0].ID)
	}
	return nil
}

// AddSection creates a section of the given type at the default spot and
// puts it on top of the canvas.
func (a *App) AddSection(ctx context.Context, ct domain.ContentType) (*domain.Section, error) {
	if a.currentPage == nil {
		return nil, a.fail("add section", fmt.Errorf("no page selected"))
	}
	content := domain.DefaultContent(ct)
	if err := domain.ValidateContent(ct, content); err != nil {
		return nil, a.fail("add section", err)
	}
	sec, err := a.api.CreateSection(ctx, backend.NewSectionRequest{
		PageID:      a.currentPage.ID,
		Name:        "New Section",
		ContentType: ct,
		ContentData: content,
		PositionX:   canvas.DefaultX,
		PositionY:   canvas.DefaultY,
		Width:       canvas.DefaultW,
		Height:      canvas.DefaultH,
	})
	if err != nil {
		return nil, a.fail("add section", err)
	}
	a.Canvas.Upsert(*sec)
	return sec, nil
}

// RenameSection persists a section title edit.
func (a *App) RenameSection(ctx context.Context, id int64, name string) error {
	sec := a.Canvas.Section(id)
	if sec == nil {
		return nil
	}
	if err := a.api.UpdateSection(ctx, id, backend.SectionPatch{Name: &name}); err != nil {
		return a.fail("rename section", err)
	}
	sec.Name = name
	return nil
}

// UpdateSectionMemo persists the memo field.
func (a *App) UpdateSectionMemo(ctx context.Context, id int64, memo string) error {
	sec := a.Canvas.Section(id)
	if sec == nil {
		return nil
	}
	if err := a.api.UpdateSection(ctx, id, backend.SectionPatch{Memo: &memo}); err != nil {
		return a.fail("save memo", err)
	}
	sec.Memo = memo
	return nil
}

// UpdateSectionContent validates and persists edited content data.
func (a *App) UpdateSectionContent(ctx context.Context, id int64, data domain.ContentData) error {
	sec := a.Canvas.Section(id)
	if sec == nil {
		return nil
	}
	if err := domain.ValidateContent(sec.ContentType, data); err != nil {
		return a.fail("save content", err)
	}
	if err := a.api.UpdateSection(ctx, id, backend.SectionPatch{ContentData: data}); err != nil {
		return a.fail("save content", err)
	}
	sec.ContentData = data
	return nil
}

// ChangeSectionType switches a section's content type. A no-op change keeps
// the data; a real switch resets it to the target default.
func (a *App) ChangeSectionType(ctx context.Context, id int64, ct domain.ContentType) error {
	sec := a.Canvas.Section(id)
	if sec == nil {
		return nil
	}
	if ct == sec.ContentType {
		return nil
	}
	if !ct.Valid() {
		return a.fail("change type", fmt.Errorf("unknown content type %q", ct))
	}
	content := domain.DefaultContent(ct)
	if err := a.api.UpdateSection(ctx, id, backend.SectionPatch{ContentType: &ct, ContentData: content}); err != nil {
		return a.fail("change type", err)
	}
	sec.SetContentType(ct)
	a.History.Drop(id)
	delete(a.listings, id)
	return nil
}

// DeleteSection removes a section after confirmation.
func (a *App) DeleteSection(ctx context.Context, id int64) error {
	if !a.confirm("Delete this section?") {
		return nil
	}
	if err := a.api.DeleteSection(ctx, id); err != nil {
		return a.fail("delete section", err)
	}
	a.Canvas.Remove(id)
	a.History.Drop(id)
	delete(a.listings, id)
	return nil
}

// CopySection snapshots a section for pasting.
func (a *App) CopySection(id int64) {
	sec := a.Canvas.Section(id)
	if sec == nil {
		return
	}
	if old := a.SectionClip.OriginalID(); old != 0 {
		a.Canvas.SetDimmed(old, false)
	}
	a.SectionClip.Copy(*sec)
}

// CutSection snapshots a section and dims the source until it is pasted.
func (a *App) CutSection(id int64) {
	sec := a.Canvas.Section(id)
	if sec == nil {
		return
	}
	if old := a.SectionClip.OriginalID(); old != 0 {
		a.Canvas.SetDimmed(old, false)
	}
	a.SectionClip.Cut(*sec)
	a.Canvas.SetDimmed(id, true)
}

// PasteSection creates the held section on the current page with the paste
// offset, deletes the original of a cut, and reloads the page. Stale
// references fail server-side and surface; there is no pre-validation.
func (a *App) PasteSection(ctx context.Context) error {
	if a.currentPage == nil {
		return nil
	}
	snap, removeID, ok := a.SectionClip.PasteInto(a.currentPage.ID)
	if !ok {
		return nil
	}
	_, err := a.api.CreateSection(ctx, backend.NewSectionRequest{
		PageID:      snap.PageID,
		Name:        snap.Name,
		ContentType: snap.ContentType,
		ContentData: snap.ContentData,
		Memo:        snap.Memo,
		PositionX:   snap.PositionX,
		PositionY:   snap.PositionY,
		Width:       snap.Width,
		Height:      snap.Height,
	})
	if err != nil {
		return a.fail("paste section", err)
	}
	if removeID != 0 {
		if err := a.api.DeleteSection(ctx, removeID); err != nil {
			return a.fail("remove cut section", err)
		}
	}
	return a.ReloadPage(ctx)
}

// MenuGates returns the clipboard gates for menu building.
func (a *App) MenuGates() menu.Gates {
	_, hasFile := a.FileClip.Get()
	return menu.Gates{FileClipboard: hasFile, SectionClipboard: a.SectionClip.Has()}
}
