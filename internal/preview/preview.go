/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package preview scales images down for the thumbnail and preview view
// modes of storage sections.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	// register decoders for the formats the file list previews
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Thumbnail sizes in pixels, matching the two preview-capable view modes.
const (
	ThumbSize   = 96
	PreviewSize = 256
)

// FitWithin scales (w, h) to fit inside (maxW, maxH) preserving aspect
// ratio. Images already small enough keep their size.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// Scale resamples src to fit inside maxW x maxH.
func Scale(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	nw, nh := FitWithin(b.Dx(), b.Dy(), maxW, maxH)
	if nw == b.Dx() && nh == b.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// Decode reads any registered image format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// ThumbnailPNG decodes an image and writes a PNG thumbnail of the given
// bound (ThumbSize or PreviewSize).
func ThumbnailPNG(r io.Reader, w io.Writer, bound int) error {
	img, err := Decode(r)
	if err != nil {
		return err
	}
	if err := png.Encode(w, Scale(img, bound, bound)); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}
