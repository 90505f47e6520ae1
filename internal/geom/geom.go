/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Basic 2D geometry for canvas layout. Float values use float64 to match the
// persisted section geometry.

import "math"

// Pt is a 2D point in page-local pixels.
type Pt struct{ X, Y float64 }

// Size is a width/height pair.
type Size struct{ W, H float64 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Translate returns the rect moved by dx,dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// ClampTop keeps the rect's top edge at or below y=0. Sections may hang off
// the left, right and bottom edges of the page but never above the top.
func (r Rect) ClampTop() Rect {
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}

// ClampMin enforces a minimum size without moving the min corner.
func (r Rect) ClampMin(minW, minH float64) Rect {
	if r.W < minW {
		r.W = minW
	}
	if r.H < minH {
		r.H = minH
	}
	return r
}

// FitInViewport positions a box of the given size so it opens at p but stays
// inside the viewport with the given margin. When the box would overflow the
// right or bottom edge it flips to the other side of p; if it still overflows
// it is pinned to the margin.
func FitInViewport(p Pt, box Size, viewport Size, margin float64) Pt {
	x, y := p.X, p.Y
	if x+box.W > viewport.W-margin {
		x = p.X - box.W
	}
	if y+box.H > viewport.H-margin {
		y = p.Y - box.H
	}
	if x < margin {
		x = margin
	}
	if y < margin {
		y = margin
	}
	return Pt{X: x, Y: y}
}

// Round rounds v to n decimal places deterministically.
func Round(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
