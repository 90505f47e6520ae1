/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"testing"
)

func TestSectionUnmarshalVariants(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		check func(t *testing.T, s Section)
	}{
		{
			name: "text",
			body: `{"id":1,"page_id":2,"content_type":"text","content_data":{"text":"hello"},"position_x":10,"position_y":20,"width":300,"height":200}`,
			check: func(t *testing.T, s Section) {
				tc, ok := s.ContentData.(*TextContent)
				if !ok || tc.Text != "hello" {
					t.Fatalf("unexpected content: %#v", s.ContentData)
				}
			},
		},
		{
			name: "link",
			body: `{"id":1,"content_type":"link","content_data":{"url":"https://example.com","title":"Ex"}}`,
			check: func(t *testing.T, s Section) {
				lc, ok := s.ContentData.(*LinkContent)
				if !ok || lc.URL != "https://example.com" || lc.Title != "Ex" {
					t.Fatalf("unexpected content: %#v", s.ContentData)
				}
			},
		},
		{
			name: "storage string-wrapped",
			body: `{"id":3,"content_type":"storage","content_data":"{\"storage_type\":\"local\",\"path\":\"/data\",\"view_mode\":\"grid\"}"}`,
			check: func(t *testing.T, s Section) {
				sc := s.Storage()
				if sc == nil || sc.Path != "/data" || sc.ViewMode != ViewGrid {
					t.Fatalf("unexpected content: %#v", s.ContentData)
				}
			},
		},
		{
			name: "null content falls back to default",
			body: `{"id":4,"content_type":"link","content_data":null}`,
			check: func(t *testing.T, s Section) {
				lc, ok := s.ContentData.(*LinkContent)
				if !ok || lc.URL != "#" || lc.Title != "New Link" {
					t.Fatalf("expected link default, got %#v", s.ContentData)
				}
			},
		},
		{
			name: "notepad",
			body: `{"id":5,"content_type":"notepad","content_data":{"text":"memo","bgColor":"#ffcc80"}}`,
			check: func(t *testing.T, s Section) {
				nc, ok := s.ContentData.(*NotepadContent)
				if !ok || nc.Text != "memo" || nc.BgColor != "#ffcc80" {
					t.Fatalf("unexpected content: %#v", s.ContentData)
				}
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s Section
			if err := json.Unmarshal([]byte(c.body), &s); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			c.check(t, s)
		})
	}
}

func TestSectionMarshalRoundtrip(t *testing.T) {
	s := Section{
		ID:          9,
		PageID:      4,
		Name:        "links",
		ContentType: ContentLink,
		ContentData: &LinkContent{URL: "https://example.com", Title: "Ex"},
		PositionX:   50,
		PositionY:   60,
		Width:       300,
		Height:      200,
	}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Section
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	lc, ok := back.ContentData.(*LinkContent)
	if !ok || lc.URL != "https://example.com" {
		t.Fatalf("roundtrip lost content: %#v", back.ContentData)
	}
}

func TestSetContentTypeResetUnlessSame(t *testing.T) {
	s := Section{ContentType: ContentText, ContentData: &TextContent{Text: "keep me"}}

	// no-op change preserves data
	s.SetContentType(ContentText)
	if tc := s.ContentData.(*TextContent); tc.Text != "keep me" {
		t.Fatalf("no-op type change lost data: %#v", s.ContentData)
	}

	// real change resets to the target default
	s.SetContentType(ContentLink)
	lc, ok := s.ContentData.(*LinkContent)
	if !ok || lc.URL != "#" || lc.Title != "New Link" {
		t.Fatalf("expected link default, got %#v", s.ContentData)
	}
}

func TestDefaultContentShapes(t *testing.T) {
	for _, ct := range []ContentType{ContentText, ContentLink, ContentFile, ContentStorage, ContentNotepad, ContentImage} {
		d := DefaultContent(ct)
		if d == nil {
			t.Fatalf("no default for %s", ct)
		}
		if d.Type() != ct {
			t.Fatalf("default for %s reports %s", ct, d.Type())
		}
	}
	if DefaultContent(ContentType("bogus")) != nil {
		t.Fatalf("unknown type should have no default")
	}
}

func TestCycleViewMode(t *testing.T) {
	order := []ViewMode{ViewList, ViewGrid, ViewThumbnails, ViewPreviews, ViewList}
	for i := 0; i < len(order)-1; i++ {
		if got := CycleViewMode(order[i]); got != order[i+1] {
			t.Fatalf("CycleViewMode(%s) = %s, want %s", order[i], got, order[i+1])
		}
	}
	if got := CycleViewMode(ViewMode("")); got != ViewList {
		t.Fatalf("empty mode should cycle to list, got %s", got)
	}
}
