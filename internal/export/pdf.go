/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a dashboard page to PDF: every section becomes an
// outlined box at its canvas position with its title and a short content
// summary.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"paneldesk/internal/domain"
)

// PDFOptions controls page export. Units are points; canvas pixels map 1:1.
type PDFOptions struct {
	// Margin added around the content extents.
	Margin float64
	// HeaderHeight of the title bar drawn atop each section box.
	HeaderHeight float64
}

const (
	defaultMargin = 24.0
	defaultHeader = 18.0
	// floor so an empty page still yields a usable document
	minPageW = 595.0 // A4 portrait width in points
	minPageH = 420.0
)

// ExportPagePDF writes a one-page PDF of the given dashboard page.
func ExportPagePDF(page *domain.Page, outPath string, opt PDFOptions) error {
	if page == nil {
		return fmt.Errorf("page is nil")
	}
	margin := opt.Margin
	if margin <= 0 {
		margin = defaultMargin
	}
	header := opt.HeaderHeight
	if header <= 0 {
		header = defaultHeader
	}

	w, h := contentExtents(page.Sections)
	w += 2 * margin
	h += 2 * margin
	if w < minPageW {
		w = minPageW
	}
	if h < minPageH {
		h = minPageH
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetTitle(page.Name, false)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: w, Ht: h})
	pdf.SetFont("Helvetica", "", 10)

	for i := range page.Sections {
		sec := &page.Sections[i]
		x := sec.PositionX + margin
		y := sec.PositionY + margin

		// body
		pdf.SetDrawColor(60, 60, 60)
		pdf.SetFillColor(250, 250, 250)
		pdf.SetLineWidth(0.8)
		pdf.Rect(x, y, sec.Width, sec.Height, "FD")

		// header bar with the section title
		pdf.SetFillColor(230, 230, 230)
		pdf.Rect(x, y, sec.Width, header, "FD")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(x+6, y+header-5, sec.Name)

		pdf.SetFont("Helvetica", "", 9)
		pdf.Text(x+6, y+header+12, summary(sec))
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func contentExtents(sections []domain.Section) (w, h float64) {
	for i := range sections {
		s := &sections[i]
		if right := s.PositionX + s.Width; right > w {
			w = right
		}
		if bottom := s.PositionY + s.Height; bottom > h {
			h = bottom
		}
	}
	return w, h
}

// summary produces the one-line content hint drawn under the header.
func summary(sec *domain.Section) string {
	switch c := sec.ContentData.(type) {
	case *domain.TextContent:
		return clip(c.Text, 80)
	case *domain.LinkContent:
		return c.Title + " - " + c.URL
	case *domain.FileContent:
		if c.Filename == "" {
			return "(no file)"
		}
		return c.Filename + " (" + domain.HumanSize(c.FileSize) + ")"
	case *domain.StorageContent:
		return string(c.StorageType) + ": " + c.Path
	case *domain.NotepadContent:
		return clip(c.Text, 80)
	case *domain.ImageContent:
		if c.Filename == "" {
			return "(no image)"
		}
		return c.Filename
	}
	return string(sec.ContentType)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
