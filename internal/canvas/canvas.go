/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas implements the freeform page canvas: section placement,
// header drags, resize commits and z-ordering. The canvas owns only render
// state; persistence goes through the Persister seam and the rendered
// geometry is read back through a GeometryReader at commit time.
package canvas

import (
	"context"
	"fmt"
	"sort"

	"log/slog"

	"paneldesk/internal/domain"
	"paneldesk/internal/geom"
	applog "paneldesk/internal/log"
)

// Z-order base; every freshly rendered page starts counting here, and
// send-to-back uses the fixed floor.
const (
	zBase  = 1000
	zFloor = 1
)

// Defaults for newly created sections.
const (
	DefaultX = 50
	DefaultY = 50
	DefaultW = 300
	DefaultH = 200
)

// Region classifies where inside a section a pointer event landed.
type Region int

const (
	RegionBody Region = iota
	RegionHeader
)

// Persister saves canvas mutations. Implemented by the sync layer.
type Persister interface {
	UpdateGeometry(ctx context.Context, sectionID int64, r geom.Rect) error
	UpdateOrder(ctx context.Context, sectionID int64, orderIndex int) error
}

// GeometryReader returns the rendered rectangle of a section. Commits read
// the rendered geometry rather than the tracked pointer delta, so whatever
// the layout actually did is what gets persisted.
type GeometryReader func(sectionID int64) (geom.Rect, bool)

// RenderNode is the pure render descriptor for one section.
type RenderNode struct {
	Section *domain.Section
	Z       int
	Dimmed  bool // cut-to-clipboard visual state
	// WantsListing marks storage sections whose file listing should be
	// fetched after render, without blocking other nodes.
	WantsListing bool
}

type dragState struct {
	sectionID int64
	start     geom.Pt
	origin    geom.Rect
	current   geom.Rect
}

// Canvas is the state object for one rendered page.
type Canvas struct {
	log    *slog.Logger
	store  Persister
	reader GeometryReader

	sections []domain.Section
	z        map[int64]int
	zCounter int
	dimmed   map[int64]bool
	drag     *dragState
}

// New creates a canvas bound to a persister. reader may be nil, in which
// case commits fall back to the tracked drag rectangle.
func New(store Persister, reader GeometryReader) *Canvas {
	return &Canvas{
		log:      applog.WithComponent("canvas"),
		store:    store,
		reader:   reader,
		z:        map[int64]int{},
		dimmed:   map[int64]bool{},
		zCounter: zBase,
	}
}

// SetSections replaces the canvas content with a freshly loaded page. Render
// order is re-derived: sections sort by persisted order_index (id as a tie
// break) and receive ascending z values from the base counter.
func (c *Canvas) SetSections(sections []domain.Section) {
	c.sections = make([]domain.Section, len(sections))
	copy(c.sections, sections)
	sort.SliceStable(c.sections, func(i, j int) bool {
		if c.sections[i].OrderIndex != c.sections[j].OrderIndex {
			return c.sections[i].OrderIndex < c.sections[j].OrderIndex
		}
		return c.sections[i].ID < c.sections[j].ID
	})
	c.z = make(map[int64]int, len(c.sections))
	c.zCounter = zBase
	for i := range c.sections {
		c.z[c.sections[i].ID] = c.zCounter
		c.zCounter++
	}
	c.dimmed = map[int64]bool{}
	c.drag = nil
}

// Sections returns the live section slice in render order.
func (c *Canvas) Sections() []domain.Section { return c.sections }

// Section returns the section with the given id, or nil.
func (c *Canvas) Section(id int64) *domain.Section {
	for i := range c.sections {
		if c.sections[i].ID == id {
			return &c.sections[i]
		}
	}
	return nil
}

// Upsert inserts or replaces a section, assigning a fresh top z on insert.
func (c *Canvas) Upsert(sec domain.Section) {
	for i := range c.sections {
		if c.sections[i].ID == sec.ID {
			c.sections[i] = sec
			return
		}
	}
	c.sections = append(c.sections, sec)
	c.z[sec.ID] = c.zCounter
	c.zCounter++
}

// Remove drops a section from the canvas.
func (c *Canvas) Remove(id int64) {
	for i := range c.sections {
		if c.sections[i].ID == id {
			c.sections = append(c.sections[:i], c.sections[i+1:]...)
			break
		}
	}
	delete(c.z, id)
	delete(c.dimmed, id)
	if c.drag != nil && c.drag.sectionID == id {
		c.drag = nil
	}
}

// ZIndex returns the current render z of a section.
func (c *Canvas) ZIndex(id int64) int { return c.z[id] }

// SetDimmed toggles the cut visual state of a section.
func (c *Canvas) SetDimmed(id int64, on bool) {
	if on {
		c.dimmed[id] = true
	} else {
		delete(c.dimmed, id)
	}
}

// Rect returns a section's tracked rectangle, including an in-flight drag.
func (c *Canvas) Rect(id int64) (geom.Rect, bool) {
	if c.drag != nil && c.drag.sectionID == id {
		return c.drag.current, true
	}
	sec := c.Section(id)
	if sec == nil {
		return geom.Rect{}, false
	}
	return geom.R(sec.PositionX, sec.PositionY, sec.Width, sec.Height), true
}

// PointerDown starts a drag when the pointer lands in a section header.
// Body presses never start a move; they may end as a resize commit.
func (c *Canvas) PointerDown(id int64, p geom.Pt, region Region) {
	if region != RegionHeader {
		return
	}
	sec := c.Section(id)
	if sec == nil {
		return
	}
	origin := geom.R(sec.PositionX, sec.PositionY, sec.Width, sec.Height)
	c.drag = &dragState{sectionID: id, start: p, origin: origin, current: origin}
}

// Dragging reports whether a header drag is in progress.
func (c *Canvas) Dragging() bool { return c.drag != nil }

// PointerMove applies the drag delta. The top edge clamps at zero; the other
// page edges are open.
func (c *Canvas) PointerMove(p geom.Pt) {
	if c.drag == nil {
		return
	}
	d := c.drag
	d.current = d.origin.Translate(p.X-d.start.X, p.Y-d.start.Y).ClampTop()
	sec := c.Section(d.sectionID)
	if sec != nil {
		sec.PositionX = d.current.X
		sec.PositionY = d.current.Y
	}
}

// PointerUp ends a drag and persists the rendered geometry. On failure the
// moved geometry stays authoritative locally until the next full reload.
func (c *Canvas) PointerUp(ctx context.Context) error {
	if c.drag == nil {
		return nil
	}
	id := c.drag.sectionID
	tracked := c.drag.current
	c.drag = nil
	return c.commitGeometry(ctx, id, tracked)
}

// EndResize commits a body resize. Called on pointer-up outside the header;
// the rendered size is read back and persisted when it changed.
func (c *Canvas) EndResize(ctx context.Context, id int64) error {
	sec := c.Section(id)
	if sec == nil {
		return nil
	}
	r, ok := c.readGeometry(id, geom.R(sec.PositionX, sec.PositionY, sec.Width, sec.Height))
	if !ok {
		return nil
	}
	if r.W == sec.Width && r.H == sec.Height && r.X == sec.PositionX && r.Y == sec.PositionY {
		return nil
	}
	return c.commitGeometry(ctx, id, r)
}

func (c *Canvas) readGeometry(id int64, fallback geom.Rect) (geom.Rect, bool) {
	if c.reader != nil {
		if r, ok := c.reader(id); ok {
			return r.ClampTop(), true
		}
	}
	return fallback, true
}

func (c *Canvas) commitGeometry(ctx context.Context, id int64, tracked geom.Rect) error {
	sec := c.Section(id)
	if sec == nil {
		return nil
	}
	r, _ := c.readGeometry(id, tracked)
	sec.PositionX, sec.PositionY = r.X, r.Y
	sec.Width, sec.Height = r.W, r.H
	if err := c.store.UpdateGeometry(ctx, id, r); err != nil {
		c.log.Error("persist geometry failed", slog.Int64("section", id), slog.Any("err", err))
		return fmt.Errorf("save section position: %w", err)
	}
	return nil
}

// BringToFront raises a section above everything rendered so far and
// persists the new order index. Only explicit front/back actions persist
// order; plain renders never do.
func (c *Canvas) BringToFront(ctx context.Context, id int64) error {
	if c.Section(id) == nil {
		return nil
	}
	c.z[id] = c.zCounter
	c.zCounter++
	if err := c.store.UpdateOrder(ctx, id, c.z[id]); err != nil {
		c.log.Error("persist order failed", slog.Int64("section", id), slog.Any("err", err))
		return fmt.Errorf("save section order: %w", err)
	}
	return nil
}

// SendToBack drops a section to the fixed z floor and persists it.
func (c *Canvas) SendToBack(ctx context.Context, id int64) error {
	if c.Section(id) == nil {
		return nil
	}
	c.z[id] = zFloor
	if err := c.store.UpdateOrder(ctx, id, zFloor); err != nil {
		c.log.Error("persist order failed", slog.Int64("section", id), slog.Any("err", err))
		return fmt.Errorf("save section order: %w", err)
	}
	return nil
}

// Render produces the draw list sorted by z, lowest first. Storage sections
// are flagged so their listing fetch can be scheduled after render.
func (c *Canvas) Render() []RenderNode {
	nodes := make([]RenderNode, 0, len(c.sections))
	for i := range c.sections {
		sec := &c.sections[i]
		nodes = append(nodes, RenderNode{
			Section:      sec,
			Z:            c.z[sec.ID],
			Dimmed:       c.dimmed[sec.ID],
			WantsListing: sec.ContentType == domain.ContentStorage,
		})
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Z < nodes[j].Z })
	return nodes
}
