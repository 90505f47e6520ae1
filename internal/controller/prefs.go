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

	"log/slog"

	"paneldesk/internal/cache"
)

// DefaultTheme is used until the user picks one.
const DefaultTheme = "system"

// Theme returns the persisted display theme: "system", "light" or "dark".
func (a *App) Theme(ctx context.Context) string {
	if a.state == nil {
		return DefaultTheme
	}
	v, err := a.state.Get(ctx, cache.KeyTheme)
	if err != nil || v == "" {
		return DefaultTheme
	}
	return v
}

// SetTheme persists the display theme across restarts.
func (a *App) SetTheme(ctx context.Context, theme string) {
	if a.state == nil {
		return
	}
	if err := a.state.Set(ctx, cache.KeyTheme, theme); err != nil {
		a.log.Warn("persist theme failed", slog.Any("err", err))
	}
}

// SidebarCollapsed reports whether the tab/page sidebar was hidden.
func (a *App) SidebarCollapsed(ctx context.Context) bool {
	return a.state != nil && a.state.GetBool(ctx, cache.KeySidebarCollapsed)
}

// SetSidebarCollapsed persists the sidebar visibility.
func (a *App) SetSidebarCollapsed(ctx context.Context, collapsed bool) {
	if a.state == nil {
		return
	}
	if err := a.state.SetBool(ctx, cache.KeySidebarCollapsed, collapsed); err != nil {
		a.log.Warn("persist sidebar state failed", slog.Any("err", err))
	}
}

// ShowMemoField reports whether section memos are shown on the canvas.
func (a *App) ShowMemoField(ctx context.Context) bool {
	return a.state != nil && a.state.GetBool(ctx, cache.KeyShowMemoField)
}

// SetShowMemoField persists the memo visibility toggle.
func (a *App) SetShowMemoField(ctx context.Context, show bool) {
	if a.state == nil {
		return
	}
	if err := a.state.SetBool(ctx, cache.KeyShowMemoField, show); err != nil {
		a.log.Warn("persist memo toggle failed", slog.Any("err", err))
	}
}
