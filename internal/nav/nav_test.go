/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package nav

import (
	"errors"
	"testing"
)

func TestEnterBackForward(t *testing.T) {
	h := NewHistory()

	p := h.EnterFolder(1, "/data", "docs")
	if p != "/data/docs" {
		t.Fatalf("enter = %q", p)
	}
	p = h.EnterFolder(1, p, "2025")
	if p != "/data/docs/2025" {
		t.Fatalf("enter = %q", p)
	}

	p, err := h.Back(1, p)
	if err != nil || p != "/data/docs" {
		t.Fatalf("back = %q, %v", p, err)
	}
	if !h.CanGoForward(1) {
		t.Fatalf("forward must be available after back")
	}
	p, ok := h.Forward(1)
	if !ok || p != "/data/docs/2025" {
		t.Fatalf("forward = %q, %v", p, ok)
	}
	if h.CanGoForward(1) {
		t.Fatalf("forward at newest entry must be unavailable")
	}
	if _, ok := h.Forward(1); ok {
		t.Fatalf("forward past the end must be a no-op")
	}
}

func TestEnterTruncatesForwardBranch(t *testing.T) {
	h := NewHistory()
	p := h.EnterFolder(1, "/data", "docs")
	p = h.EnterFolder(1, p, "old")
	p, _ = h.Back(1, p)

	// entering a new folder discards the stale forward branch
	p = h.EnterFolder(1, p, "new")
	if p != "/data/docs/new" {
		t.Fatalf("enter after back = %q", p)
	}
	if h.CanGoForward(1) {
		t.Fatalf("forward branch not truncated")
	}
}

func TestBackDerivesParentWithoutHistory(t *testing.T) {
	h := NewHistory()
	p, err := h.Back(3, "/data/docs/2025")
	if err != nil || p != "/data/docs" {
		t.Fatalf("derived back = %q, %v", p, err)
	}
}

func TestBackAtRoot(t *testing.T) {
	h := NewHistory()
	for _, path := range []string{"/data", "data", "/", ""} {
		h.Reset()
		if _, err := h.Back(1, path); !errors.Is(err, ErrAtRoot) {
			t.Fatalf("Back(%q) err = %v, want ErrAtRoot", path, err)
		}
	}
}

func TestStacksAreIndependent(t *testing.T) {
	h := NewHistory()
	h.EnterFolder(1, "/a", "x")
	h.EnterFolder(2, "/b", "y")

	p, err := h.Back(1, "/a/x")
	if err != nil || p != "/a" {
		t.Fatalf("back section 1 = %q, %v", p, err)
	}
	if !h.CanGoForward(1) || h.CanGoForward(2) {
		t.Fatalf("stacks leak between sections")
	}
}

func TestDropForgetsHistory(t *testing.T) {
	h := NewHistory()
	h.EnterFolder(1, "/a", "x")
	h.Drop(1)
	if h.CanGoForward(1) {
		t.Fatalf("dropped stack still alive")
	}
	// fresh stack derives the parent instead of stepping history
	p, err := h.Back(1, "/a/x")
	if err != nil || p != "/a" {
		t.Fatalf("back after drop = %q, %v", p, err)
	}
}

func TestBackGuard(t *testing.T) {
	var g BackGuard
	if _, ok := g.Hovered(); ok {
		t.Fatalf("empty guard must not intercept")
	}
	g.SetHovered(7)
	id, ok := g.Hovered()
	if !ok || id != 7 {
		t.Fatalf("hovered = %d, %v", id, ok)
	}
	g.SetHovered(0)
	if _, ok := g.Hovered(); ok {
		t.Fatalf("cleared guard must not intercept")
	}
}
