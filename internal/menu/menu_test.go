/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package menu

import (
	"context"
	"testing"

	"paneldesk/internal/geom"
)

func hasAction(items []Item, a ActionID) *Item {
	for i := range items {
		if items[i].Action == a {
			return &items[i]
		}
	}
	return nil
}

func TestFileItemMenuExtractOnlyForZip(t *testing.T) {
	plain := ForFileItem(Target{SectionID: 1, Filename: "a.txt"}, Gates{})
	if hasAction(plain.Items, ActionExtract) != nil {
		t.Fatalf("plain file offers extract")
	}
	zip := ForFileItem(Target{SectionID: 1, Filename: "backup.ZIP"}, Gates{})
	if hasAction(zip.Items, ActionExtract) == nil {
		t.Fatalf("zip file missing extract")
	}
	if zip.Target.Kind != TargetFileItem {
		t.Fatalf("kind = %s", zip.Target.Kind)
	}
}

func TestPasteGating(t *testing.T) {
	d := ForFolderItem(Target{SectionID: 1, Filename: "docs"}, Gates{})
	if p := hasAction(d.Items, ActionPaste); p == nil || !p.Disabled {
		t.Fatalf("paste must be disabled on empty clipboard")
	}
	d = ForFolderItem(Target{SectionID: 1, Filename: "docs"}, Gates{FileClipboard: true})
	if p := hasAction(d.Items, ActionPaste); p == nil || p.Disabled {
		t.Fatalf("paste must be enabled with a held file")
	}

	h := ForSectionHeader(Target{SectionID: 2}, Gates{FileClipboard: true})
	if p := hasAction(h.Items, ActionPaste); p == nil || !p.Disabled {
		t.Fatalf("section paste gates on the section clipboard, not the file one")
	}
}

func TestStorageBackgroundOffersAllSortsAndViews(t *testing.T) {
	d := ForStorageBackground(Target{SectionID: 3}, Gates{})
	sorts, views := 0, 0
	for _, it := range d.Items {
		switch it.Action {
		case ActionSort:
			sorts++
		case ActionViewMode:
			views++
		}
	}
	if sorts != 6 || views != 4 {
		t.Fatalf("sorts=%d views=%d", sorts, views)
	}
	if hasAction(d.Items, ActionNewFolder) == nil || hasAction(d.Items, ActionUpload) == nil {
		t.Fatalf("background menu incomplete")
	}
}

func TestPageBackgroundAddSectionTypes(t *testing.T) {
	d := ForPageBackground(Target{PageID: 4}, Gates{SectionClipboard: true})
	var args []string
	for _, it := range d.Items {
		if it.Action == ActionAddSection {
			args = append(args, it.Arg)
		}
	}
	if len(args) != 3 {
		t.Fatalf("add-section entries = %v", args)
	}
	if p := hasAction(d.Items, ActionPaste); p == nil || p.Disabled {
		t.Fatalf("section paste must be enabled")
	}
}

func TestManagerSingleInstanceAndClamping(t *testing.T) {
	var m Manager
	vp := geom.Size{W: 1000, H: 800}
	size := geom.Size{W: 180, H: 240}

	first := m.Open(ForPageBackground(Target{PageID: 1}, Gates{}), geom.Pt{X: 100, Y: 100}, size, vp)
	if m.Current() != first {
		t.Fatalf("menu not open")
	}
	// opening a second menu replaces the first
	second := m.Open(ForPageBackground(Target{PageID: 1}, Gates{}), geom.Pt{X: 950, Y: 700}, size, vp)
	if m.Current() != second {
		t.Fatalf("previous menu survived")
	}
	// overflow flips left/up of the click point
	if second.Pos != (geom.Pt{X: 770, Y: 460}) {
		t.Fatalf("clamped pos = %+v", second.Pos)
	}
	m.DocumentClick()
	if m.Current() != nil {
		t.Fatalf("click did not dismiss")
	}
}

func TestTableDispatch(t *testing.T) {
	tbl := NewTable()
	var got Invocation
	tbl.Register(TargetFileItem, ActionDelete, func(_ context.Context, inv Invocation) error {
		got = inv
		return nil
	})
	inv := Invocation{Target: Target{Kind: TargetFileItem, SectionID: 5, Filename: "a.txt"}, Action: ActionDelete}
	if err := tbl.Dispatch(context.Background(), inv); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got.Target.SectionID != 5 || got.Target.Filename != "a.txt" {
		t.Fatalf("handler got %+v", got)
	}
	// same action on another target kind is a different command
	err := tbl.Dispatch(context.Background(), Invocation{Target: Target{Kind: TargetFolderItem}, Action: ActionDelete})
	if err == nil {
		t.Fatalf("unbound command must fail")
	}
}
