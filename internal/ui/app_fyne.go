//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"net/url"
	"path/filepath"
	"sync"

	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"paneldesk/internal/backend"
	"paneldesk/internal/cache"
	appcanvas "paneldesk/internal/canvas"
	"paneldesk/internal/config"
	"paneldesk/internal/controller"
	"paneldesk/internal/crash"
	"paneldesk/internal/domain"
	"paneldesk/internal/export"
	"paneldesk/internal/geom"
	applog "paneldesk/internal/log"
	"paneldesk/internal/menu"
	"paneldesk/internal/preview"
)

const headerHeight = 24

// Run starts the Fyne-based desktop shell.
func Run() error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cfg, token, err := config.Load()
	if err != nil {
		return err
	}
	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}
	defer func() { crash.Recover(dataDir) }()

	fyneApp := app.NewWithID("paneldesk")
	w := fyneApp.NewWindow("PanelDesk")
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1200)
	winH := prefs.IntWithFallback("window.height", 800)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	api := backend.NewClient(cfg.Backend.BaseURL, token, cfg.Backend.EffectiveTimeout())
	store, err := cache.Open(dataDir)
	if err != nil {
		l.Warn("state store unavailable", slog.Any("err", err))
	}

	status := widget.NewLabel("Ready")
	dash := NewDashCanvas()

	appState := controller.New(api, store,
		controller.WithConfirmer(func(prompt string) bool {
			// commands run off the UI thread, so the dialog is shown via Do
			// and the answer is awaited here
			ok := make(chan bool, 1)
			fyne.Do(func() {
				dialog.ShowConfirm("Confirm", prompt, func(v bool) { ok <- v }, w)
			})
			return <-ok
		}),
		controller.WithErrorSink(func(msg string, err error) {
			fyne.Do(func() {
				dialog.ShowError(err, w)
				status.SetText(msg + " failed")
			})
		}),
		controller.WithDispatch(func(fn func()) { fyne.Do(fn) }),
		controller.WithGeometryReader(dash.SectionRect),
	)
	dash.app = appState
	dash.window = w

	appState.SetShell(controller.Shell{
		OpenURL: func(raw string) {
			if u, err := url.Parse(raw); err == nil {
				_ = fyneApp.OpenURL(u)
			}
		},
		Share: func(link string) {
			w.Clipboard().SetContent(link)
			status.SetText("Link copied to clipboard")
		},
		ExportPDF: func(pageID int64) {
			page := appState.CurrentPage()
			if page == nil {
				return
			}
			out := filepath.Join(dataDir, "exports", page.Name+".pdf")
			if err := export.ExportPagePDF(page, out, export.PDFOptions{}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Exported " + out)
		},
		RequestUpload: func(sectionID int64) {
			dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
				if err != nil || rc == nil {
					return
				}
				defer rc.Close()
				name := rc.URI().Name()
				if err := appState.UploadToStorage(context.Background(), sectionID, name, rc); err == nil {
					dash.Refresh()
				}
			}, w)
		},
		RequestFolderName: func(sectionID int64) {
			entry := widget.NewEntry()
			dialog.ShowForm("New Folder", "Create", "Cancel",
				[]*widget.FormItem{widget.NewFormItem("Name", entry)},
				func(ok bool) {
					if !ok {
						return
					}
					if err := appState.NewFolder(context.Background(), sectionID, entry.Text); err == nil {
						dash.Refresh()
					}
				}, w)
		},
	})

	// tab bar and page list
	tabSelect := widget.NewSelect(nil, nil)
	pageList := widget.NewList(
		func() int {
			if tab := appState.CurrentTab(); tab != nil {
				return len(tab.Pages)
			}
			return 0
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if tab := appState.CurrentTab(); tab != nil && int(i) < len(tab.Pages) {
				o.(*widget.Label).SetText(tab.Pages[i].Name)
			}
		},
	)
	refreshChrome := func() {
		names := make([]string, 0, len(appState.Tabs()))
		for _, t := range appState.Tabs() {
			names = append(names, t.Name)
		}
		tabSelect.Options = names
		if tab := appState.CurrentTab(); tab != nil {
			tabSelect.SetSelected(tab.Name)
		}
		tabSelect.Refresh()
		pageList.Refresh()
		dash.Refresh()
	}
	tabSelect.OnChanged = func(name string) {
		for _, t := range appState.Tabs() {
			if t.Name == name && (appState.CurrentTab() == nil || appState.CurrentTab().ID != t.ID) {
				if err := appState.SelectTab(context.Background(), t.ID); err == nil {
					refreshChrome()
				}
				return
			}
		}
	}
	pageList.OnSelected = func(i widget.ListItemID) {
		tab := appState.CurrentTab()
		if tab == nil || int(i) >= len(tab.Pages) {
			return
		}
		if err := appState.SelectPage(context.Background(), tab.Pages[i].ID); err == nil {
			dash.Refresh()
		}
	}

	left := container.NewBorder(
		container.NewVBox(widget.NewLabel("Tabs"), tabSelect, widget.NewSeparator(), widget.NewLabel("Pages")),
		nil, nil, nil, pageList)
	content := container.NewBorder(nil, status, left, nil, dash)
	w.SetContent(content)

	// restore persisted view preferences
	startCtx := context.Background()
	dash.theme = appState.Theme(startCtx)
	dash.showMemos = appState.ShowMemoField(startCtx)
	if appState.SidebarCollapsed(startCtx) {
		left.Hide()
	}
	setTheme := func(name string) {
		appState.SetTheme(context.Background(), name)
		dash.theme = name
		dash.Refresh()
	}
	w.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Sidebar", func() {
			collapsed := !appState.SidebarCollapsed(context.Background())
			appState.SetSidebarCollapsed(context.Background(), collapsed)
			if collapsed {
				left.Hide()
			} else {
				left.Show()
			}
		}),
		fyne.NewMenuItem("Show Memos", func() {
			show := !appState.ShowMemoField(context.Background())
			appState.SetShowMemoField(context.Background(), show)
			dash.showMemos = show
			dash.Refresh()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Light Theme", func() { setTheme("light") }),
		fyne.NewMenuItem("Dark Theme", func() { setTheme("dark") }),
	)))

	// backspace steps one folder up in the hovered storage section
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name != fyne.KeyBackspace {
			return
		}
		go func() {
			if appState.HandleBack(context.Background()) {
				fyne.Do(dash.Refresh)
			}
		}()
	})

	w.SetOnClosed(func() {
		prefs.SetInt("window.width", int(w.Canvas().Size().Width))
		prefs.SetInt("window.height", int(w.Canvas().Size().Height))
		if store != nil {
			_ = store.Close()
		}
	})

	go func() {
		ctx := context.Background()
		if err := appState.VerifySession(ctx); err != nil {
			l.Warn("session check failed", slog.Any("err", err))
		}
		if err := appState.LoadTabs(ctx); err != nil {
			l.Error("initial load failed", slog.Any("err", err))
			return
		}
		fyne.Do(refreshChrome)
	}()

	w.ShowAndRun()
	return nil
}

// DashCanvas renders the current page's sections as positioned boxes with a
// draggable header bar and right-click context menus.
type DashCanvas struct {
	widget.BaseWidget
	app    *controller.App
	window fyne.Window

	mu      sync.Mutex
	thumbs  map[string]image.Image
	pending map[string]struct{}

	// view preferences, read and written on the UI thread only
	theme     string
	showMemos bool
}

func NewDashCanvas() *DashCanvas {
	d := &DashCanvas{
		thumbs:  map[string]image.Image{},
		pending: map[string]struct{}{},
	}
	d.ExtendBaseWidget(d)
	return d
}

// thumbnail returns the cached scaled image for a storage-section file, or
// nil while the fetch is still in flight.
func (d *DashCanvas) thumbnail(sectionID int64, name string) image.Image {
	key := fmt.Sprintf("%d/%s", sectionID, name)
	d.mu.Lock()
	if img, ok := d.thumbs[key]; ok {
		d.mu.Unlock()
		return img
	}
	if _, busy := d.pending[key]; busy {
		d.mu.Unlock()
		return nil
	}
	d.pending[key] = struct{}{}
	d.mu.Unlock()
	go func() {
		img, err := d.app.FilePreview(context.Background(), sectionID, name)
		d.mu.Lock()
		delete(d.pending, key)
		if err == nil {
			d.thumbs[key] = img
		}
		d.mu.Unlock()
		if err == nil {
			fyne.Do(d.Refresh)
		}
	}()
	return nil
}

// SectionRect is the geometry read-back used to commit drags and resizes.
func (d *DashCanvas) SectionRect(id int64) (geom.Rect, bool) {
	if d.app == nil {
		return geom.Rect{}, false
	}
	sec := d.app.Canvas.Section(id)
	if sec == nil {
		return geom.Rect{}, false
	}
	return geom.R(sec.PositionX, sec.PositionY, sec.Width, sec.Height), true
}

func (d *DashCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := fynecanvas.NewRectangle(color.RGBA{R: 36, G: 38, B: 41, A: 255})
	return &dashRenderer{dc: d, bg: bg}
}

func (d *DashCanvas) MinSize() fyne.Size { return fyne.NewSize(800, 600) }

// hit returns the section under a position and whether it was the header.
func (d *DashCanvas) hit(pos fyne.Position) (int64, appcanvas.Region, bool) {
	if d.app == nil {
		return 0, appcanvas.RegionBody, false
	}
	nodes := d.app.Canvas.Render()
	// topmost first
	for i := len(nodes) - 1; i >= 0; i-- {
		sec := nodes[i].Section
		r := geom.R(sec.PositionX, sec.PositionY, sec.Width, sec.Height)
		p := geom.Pt{X: float64(pos.X), Y: float64(pos.Y)}
		if !r.Contains(p) {
			continue
		}
		if p.Y <= r.Y+headerHeight {
			return sec.ID, appcanvas.RegionHeader, true
		}
		return sec.ID, appcanvas.RegionBody, true
	}
	return 0, appcanvas.RegionBody, false
}

func (d *DashCanvas) Dragged(e *fyne.DragEvent) {
	if d.app == nil {
		return
	}
	p := geom.Pt{X: float64(e.Position.X), Y: float64(e.Position.Y)}
	if !d.app.Canvas.Dragging() {
		id, region, ok := d.hit(e.Position)
		if !ok || region != appcanvas.RegionHeader {
			return
		}
		d.app.Canvas.PointerDown(id, geom.Pt{X: p.X - float64(e.Dragged.DX), Y: p.Y - float64(e.Dragged.DY)}, region)
	}
	d.app.Canvas.PointerMove(p)
	d.Refresh()
}

func (d *DashCanvas) DragEnd() {
	if d.app == nil || !d.app.Canvas.Dragging() {
		return
	}
	go func() {
		_ = d.app.Canvas.PointerUp(context.Background())
		fyne.Do(d.Refresh)
	}()
}

// Tapped dismisses an open context menu, the one-shot hook.
func (d *DashCanvas) Tapped(*fyne.PointEvent) {
	if d.app == nil {
		return
	}
	d.app.Menus.DocumentClick()
}

// TappedSecondary opens the context menu for whatever is under the pointer.
func (d *DashCanvas) TappedSecondary(e *fyne.PointEvent) {
	if d.app == nil {
		return
	}
	gates := d.app.MenuGates()
	var desc menu.Descriptor
	if id, region, ok := d.hit(e.Position); ok {
		target := menu.Target{SectionID: id}
		sec := d.app.Canvas.Section(id)
		if region == appcanvas.RegionHeader || sec.ContentType != domain.ContentStorage {
			desc = menu.ForSectionHeader(target, gates)
		} else {
			desc = menu.ForStorageBackground(target, gates)
		}
	} else {
		page := d.app.CurrentPage()
		if page == nil {
			return
		}
		desc = menu.ForPageBackground(menu.Target{PageID: page.ID}, gates)
	}

	size := d.Size()
	open := d.app.Menus.Open(desc,
		geom.Pt{X: float64(e.Position.X), Y: float64(e.Position.Y)},
		geom.Size{W: 180, H: float64(28 * len(desc.Items))},
		geom.Size{W: float64(size.Width), H: float64(size.Height)})

	items := make([]*fyne.MenuItem, 0, len(open.Descriptor.Items))
	for _, it := range open.Descriptor.Items {
		it := it
		mi := fyne.NewMenuItem(it.Label, func() {
			d.app.Menus.Hide()
			go func() {
				_ = d.app.Commands.Dispatch(context.Background(), menu.Invocation{
					Target: open.Descriptor.Target,
					Action: it.Action,
					Arg:    it.Arg,
				})
				fyne.Do(d.Refresh)
			}()
		})
		mi.Disabled = it.Disabled
		items = append(items, mi)
	}
	pop := widget.NewPopUpMenu(fyne.NewMenu("", items...), d.window.Canvas())
	pop.ShowAtPosition(fyne.NewPos(float32(open.Pos.X), float32(open.Pos.Y)))
}

// Hover tracking keeps the back guard pointed at the storage section under
// the pointer, so a back keypress pops that section's folder history.

func (d *DashCanvas) MouseIn(e *desktop.MouseEvent) { d.trackHover(e.Position) }

func (d *DashCanvas) MouseMoved(e *desktop.MouseEvent) { d.trackHover(e.Position) }

func (d *DashCanvas) MouseOut() {
	if d.app != nil {
		d.app.Guard.SetHovered(0)
	}
}

func (d *DashCanvas) trackHover(pos fyne.Position) {
	if d.app == nil {
		return
	}
	if id, _, ok := d.hit(pos); ok {
		if sec := d.app.Canvas.Section(id); sec != nil && sec.ContentType == domain.ContentStorage {
			d.app.Guard.SetHovered(id)
			return
		}
	}
	d.app.Guard.SetHovered(0)
}

type dashRenderer struct {
	dc  *DashCanvas
	bg  *fynecanvas.Rectangle
	obj []fyne.CanvasObject
}

func (r *dashRenderer) rebuild() {
	if r.dc.theme == "light" {
		r.bg.FillColor = color.RGBA{R: 238, G: 240, B: 243, A: 255}
	} else {
		r.bg.FillColor = color.RGBA{R: 36, G: 38, B: 41, A: 255}
	}
	objs := []fyne.CanvasObject{r.bg}
	if r.dc.app != nil {
		for _, node := range r.dc.app.Canvas.Render() {
			sec := node.Section
			body := fynecanvas.NewRectangle(color.RGBA{R: 250, G: 250, B: 250, A: 255})
			body.StrokeColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
			body.StrokeWidth = 1
			if node.Dimmed {
				body.FillColor = color.RGBA{R: 250, G: 250, B: 250, A: 128}
				body.StrokeColor = color.RGBA{R: 120, G: 120, B: 120, A: 255}
			}
			body.Move(fyne.NewPos(float32(sec.PositionX), float32(sec.PositionY)))
			body.Resize(fyne.NewSize(float32(sec.Width), float32(sec.Height)))

			header := fynecanvas.NewRectangle(color.RGBA{R: 225, G: 228, B: 232, A: 255})
			header.Move(fyne.NewPos(float32(sec.PositionX), float32(sec.PositionY)))
			header.Resize(fyne.NewSize(float32(sec.Width), headerHeight))

			title := fynecanvas.NewText(sec.Name, color.RGBA{R: 20, G: 20, B: 20, A: 255})
			title.TextSize = 12
			title.Move(fyne.NewPos(float32(sec.PositionX)+6, float32(sec.PositionY)+4))

			objs = append(objs, body, header, title)
			if r.dc.showMemos && sec.Memo != "" {
				memo := fynecanvas.NewText(sec.Memo, color.RGBA{R: 110, G: 110, B: 110, A: 255})
				memo.TextSize = 10
				memo.Move(fyne.NewPos(float32(sec.PositionX)+6, float32(sec.PositionY)+headerHeight+2))
				objs = append(objs, memo)
			}
			objs = append(objs, r.fileThumbs(sec)...)
		}
	}
	r.obj = objs
}

// fileThumbs lays out scaled image previews in a simple grid for storage
// sections in the thumbnail and preview view modes.
func (r *dashRenderer) fileThumbs(sec *domain.Section) []fyne.CanvasObject {
	if sec.ContentType != domain.ContentStorage {
		return nil
	}
	sc := sec.Storage()
	if sc == nil || (sc.ViewMode != domain.ViewThumbnails && sc.ViewMode != domain.ViewPreviews) {
		return nil
	}
	cell := float32(preview.ThumbSize)
	if sc.ViewMode == domain.ViewPreviews {
		cell = float32(preview.PreviewSize)
	}
	const pad = 8
	var objs []fyne.CanvasObject
	x := float32(sec.PositionX) + pad
	y := float32(sec.PositionY) + headerHeight + pad
	for _, f := range r.dc.app.Listing(sec.ID) {
		if f.IsDirectory || !domain.IsImageFile(f.Name) {
			continue
		}
		if y+cell > float32(sec.PositionY+sec.Height) {
			break
		}
		if img := r.dc.thumbnail(sec.ID, f.Name); img != nil {
			ci := fynecanvas.NewImageFromImage(img)
			ci.FillMode = fynecanvas.ImageFillContain
			ci.Move(fyne.NewPos(x, y))
			ci.Resize(fyne.NewSize(cell, cell))
			objs = append(objs, ci)
		}
		x += cell + pad
		if x+cell > float32(sec.PositionX+sec.Width) {
			x = float32(sec.PositionX) + pad
			y += cell + pad
		}
	}
	return objs
}

func (r *dashRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
}

func (r *dashRenderer) MinSize() fyne.Size { return fyne.NewSize(800, 600) }

func (r *dashRenderer) Refresh() {
	r.rebuild()
	fynecanvas.Refresh(r.dc)
}

func (r *dashRenderer) Objects() []fyne.CanvasObject {
	if r.obj == nil {
		r.rebuild()
	}
	return r.obj
}

func (r *dashRenderer) Destroy() {}
