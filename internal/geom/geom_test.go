/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "testing"

func TestRectBasics(t *testing.T) {
	r := R(10, 20, 30, 40)
	if r.Min() != (Pt{10, 20}) || r.Max() != (Pt{40, 60}) {
		t.Fatalf("min/max wrong: %v %v", r.Min(), r.Max())
	}
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{40, 60}) || r.Contains(Pt{41, 60}) {
		t.Fatalf("contains wrong")
	}
}

func TestTranslateAndClampTop(t *testing.T) {
	r := R(50, 10, 300, 200).Translate(-100, -40)
	if r.X != -50 || r.Y != -30 {
		t.Fatalf("translate wrong: %+v", r)
	}
	r = r.ClampTop()
	if r.Y != 0 {
		t.Fatalf("top not clamped: %+v", r)
	}
	if r.X != -50 {
		t.Fatalf("left edge must stay free: %+v", r)
	}
}

func TestClampMin(t *testing.T) {
	r := R(0, 0, 20, 500).ClampMin(100, 80)
	if r.W != 100 || r.H != 500 {
		t.Fatalf("min size wrong: %+v", r)
	}
}

func TestFitInViewport(t *testing.T) {
	vp := Size{W: 1000, H: 800}
	box := Size{W: 200, H: 300}

	// plenty of room: opens at the point
	if got := FitInViewport(Pt{100, 100}, box, vp, 8); got != (Pt{100, 100}) {
		t.Fatalf("unexpected shift: %+v", got)
	}
	// overflow right: flips left of the point
	if got := FitInViewport(Pt{950, 100}, box, vp, 8); got != (Pt{750, 100}) {
		t.Fatalf("no right flip: %+v", got)
	}
	// overflow bottom: flips above the point
	if got := FitInViewport(Pt{100, 780}, box, vp, 8); got != (Pt{100, 480}) {
		t.Fatalf("no bottom flip: %+v", got)
	}
	// flipped box would leave the viewport: pinned to the margin
	if got := FitInViewport(Pt{100, 250}, Size{W: 200, H: 790}, vp, 8); got.Y != 8 {
		t.Fatalf("not pinned to margin: %+v", got)
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.23456, 2); got != 1.23 {
		t.Fatalf("Round = %v", got)
	}
	if got := Round(1.23456, -1); got != 1.23456 {
		t.Fatalf("negative places must be a no-op, got %v", got)
	}
}
