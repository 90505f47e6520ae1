/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package nav tracks per-section folder navigation: an independent
// back/forward history for every storage section, plus the BackGuard that
// routes a global back action to the hovered section instead of leaving the
// app.
package nav

import (
	"errors"
	"strings"
)

// ErrAtRoot is reported when a back step has nowhere to go.
var ErrAtRoot = errors.New("cannot go back further")

// stack is one section's folder history. Invariant:
// 0 <= current < len(history).
type stack struct {
	history []string
	current int
}

// History is the registry of per-section navigation stacks. Stacks are
// created lazily on first navigation, seeded with the path current at that
// moment.
type History struct {
	stacks map[int64]*stack
}

func NewHistory() *History {
	return &History{stacks: map[int64]*stack{}}
}

func (h *History) stackFor(sectionID int64, currentPath string) *stack {
	s, ok := h.stacks[sectionID]
	if !ok {
		s = &stack{history: []string{currentPath}}
		h.stacks[sectionID] = s
	}
	return s
}

// EnterFolder records descending into a child folder and returns the new
// path. Any forward branch past the current position is discarded first.
func (h *History) EnterFolder(sectionID int64, currentPath, name string) string {
	s := h.stackFor(sectionID, currentPath)
	next := strings.TrimRight(currentPath, "/") + "/" + name
	s.history = append(s.history[:s.current+1], next)
	s.current = len(s.history) - 1
	return next
}

// Back steps one level back and returns the path to show. Without recorded
// history the parent is derived by stripping the last path segment; when
// that yields the same or an empty path, ErrAtRoot is returned.
func (h *History) Back(sectionID int64, currentPath string) (string, error) {
	s := h.stackFor(sectionID, currentPath)
	if s.current > 0 {
		s.current--
		return s.history[s.current], nil
	}
	parent := parentPath(currentPath)
	if parent == "" || parent == currentPath {
		return "", ErrAtRoot
	}
	// derived parents replace the sole entry so a later forward has a
	// consistent base
	s.history[0] = parent
	return parent, nil
}

// Forward re-enters the folder left by Back. It is a no-op at the newest
// entry; the second return reports whether a move happened.
func (h *History) Forward(sectionID int64) (string, bool) {
	s, ok := h.stacks[sectionID]
	if !ok || s.current >= len(s.history)-1 {
		return "", false
	}
	s.current++
	return s.history[s.current], true
}

// CanGoForward reports whether Forward would move.
func (h *History) CanGoForward(sectionID int64) bool {
	s, ok := h.stacks[sectionID]
	return ok && s.current < len(s.history)-1
}

// Drop forgets a section's history, used when the section is deleted or its
// storage path is reconfigured.
func (h *History) Drop(sectionID int64) {
	delete(h.stacks, sectionID)
}

// Reset clears all stacks, used on full page reload.
func (h *History) Reset() {
	h.stacks = map[int64]*stack{}
}

func parentPath(p string) string {
	trimmed := strings.TrimRight(p, "/")
	i := strings.LastIndex(trimmed, "/")
	if i <= 0 {
		return ""
	}
	return trimmed[:i]
}

// BackGuard decides what a global back action does: when the pointer is
// over a storage section, back pops one folder level there; otherwise it
// propagates and may leave the app.
type BackGuard struct {
	hovered int64
}

// SetHovered records the storage section under the pointer; zero clears it.
func (g *BackGuard) SetHovered(sectionID int64) { g.hovered = sectionID }

// Hovered returns the section a back action should target, if any.
func (g *BackGuard) Hovered() (int64, bool) {
	return g.hovered, g.hovered != 0
}
