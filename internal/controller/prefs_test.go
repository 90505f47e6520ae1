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
	"testing"
	"time"

	"paneldesk/internal/backend"
	"paneldesk/internal/cache"
)

func TestPrefsRoundTripAcrossRestart(t *testing.T) {
	fake := newFakeBackend(t)
	dir := t.TempDir()
	store, err := cache.Open(dir)
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	api := backend.NewClient(fake.srv.URL, "", 5*time.Second)
	ctx := context.Background()

	a := New(api, store)
	if got := a.Theme(ctx); got != DefaultTheme {
		t.Fatalf("default theme = %q", got)
	}
	if a.SidebarCollapsed(ctx) || a.ShowMemoField(ctx) {
		t.Fatalf("toggles must default to off")
	}
	a.SetTheme(ctx, "dark")
	a.SetSidebarCollapsed(ctx, true)
	a.SetShowMemoField(ctx, true)
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// a fresh app over the same store sees the persisted preferences
	store2, err := cache.Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = store2.Close() })
	b := New(api, store2)
	if got := b.Theme(ctx); got != "dark" {
		t.Fatalf("theme lost: %q", got)
	}
	if !b.SidebarCollapsed(ctx) {
		t.Fatalf("sidebar state lost")
	}
	if !b.ShowMemoField(ctx) {
		t.Fatalf("memo toggle lost")
	}
}

func TestPrefsWithoutStoreAreInert(t *testing.T) {
	fake := newFakeBackend(t)
	api := backend.NewClient(fake.srv.URL, "", 5*time.Second)
	ctx := context.Background()

	a := New(api, nil)
	a.SetTheme(ctx, "light")
	a.SetSidebarCollapsed(ctx, true)
	if got := a.Theme(ctx); got != DefaultTheme {
		t.Fatalf("stateless theme = %q", got)
	}
	if a.SidebarCollapsed(ctx) {
		t.Fatalf("stateless sidebar must report false")
	}
}
