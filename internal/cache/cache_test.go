/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cache

import (
	"context"
	"errors"
	"testing"

	"paneldesk/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStateRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, KeyTheme, "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := s.Get(ctx, KeyTheme); v != "dark" {
		t.Fatalf("Get = %q", v)
	}
	// upsert overwrites
	if err := s.Set(ctx, KeyTheme, "light"); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	if v, _ := s.Get(ctx, KeyTheme); v != "light" {
		t.Fatalf("Get after upsert = %q", v)
	}
	if err := s.Delete(ctx, KeyTheme); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if v, _ := s.Get(ctx, KeyTheme); v != "" {
		t.Fatalf("deleted key reads %q", v)
	}
}

func TestIDHelpersTreatGarbageAsAbsent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if got := s.GetID(ctx, KeyCurrentTab); got != 0 {
		t.Fatalf("unset id = %d", got)
	}
	if err := s.SetID(ctx, KeyCurrentTab, 42); err != nil {
		t.Fatalf("SetID: %v", err)
	}
	if got := s.GetID(ctx, KeyCurrentTab); got != 42 {
		t.Fatalf("GetID = %d", got)
	}
	// corrupt value is read as absent
	if err := s.Set(ctx, KeyCurrentPage, "not-a-number"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := s.GetID(ctx, KeyCurrentPage); got != 0 {
		t.Fatalf("garbage id = %d", got)
	}
	// zero id clears the key
	if err := s.SetID(ctx, KeyCurrentTab, 0); err != nil {
		t.Fatalf("SetID(0): %v", err)
	}
	if v, _ := s.Get(ctx, KeyCurrentTab); v != "" {
		t.Fatalf("cleared key reads %q", v)
	}
}

func TestBoolToggles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if s.GetBool(ctx, KeySidebarCollapsed) {
		t.Fatalf("unset toggle must be false")
	}
	if err := s.SetBool(ctx, KeySidebarCollapsed, true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if !s.GetBool(ctx, KeySidebarCollapsed) {
		t.Fatalf("toggle lost")
	}
}

func TestPageSnapshotRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	page := &domain.Page{
		ID: 7, TabID: 1, Name: "Main",
		Sections: []domain.Section{{
			ID: 3, PageID: 7, Name: "Links", ContentType: domain.ContentLink,
			ContentData: &domain.LinkContent{URL: "https://example.com", Title: "Ex"},
			PositionX:   50, PositionY: 50, Width: 300, Height: 200,
		}},
	}
	if err := s.SavePageSnapshot(ctx, page); err != nil {
		t.Fatalf("SavePageSnapshot: %v", err)
	}
	got, err := s.LoadPageSnapshot(ctx, 7)
	if err != nil {
		t.Fatalf("LoadPageSnapshot: %v", err)
	}
	if got.Name != "Main" || len(got.Sections) != 1 {
		t.Fatalf("snapshot lost data: %+v", got)
	}
	lc, ok := got.Sections[0].ContentData.(*domain.LinkContent)
	if !ok || lc.URL != "https://example.com" {
		t.Fatalf("content not preserved: %#v", got.Sections[0].ContentData)
	}

	if err := s.DeletePageSnapshot(ctx, 7); err != nil {
		t.Fatalf("DeletePageSnapshot: %v", err)
	}
	if _, err := s.LoadPageSnapshot(ctx, 7); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestOpenRequiresDir(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("empty dir must fail")
	}
}
