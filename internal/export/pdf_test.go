/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"paneldesk/internal/domain"
)

func TestExportPagePDF(t *testing.T) {
	page := &domain.Page{
		ID: 1, Name: "Main",
		Sections: []domain.Section{
			{ID: 1, Name: "Notes", ContentType: domain.ContentText, ContentData: &domain.TextContent{Text: "hello"}, PositionX: 50, PositionY: 50, Width: 300, Height: 200},
			{ID: 2, Name: "Files", ContentType: domain.ContentStorage, ContentData: &domain.StorageContent{StorageType: domain.StorageLocal, Path: "/data"}, PositionX: 400, PositionY: 120, Width: 300, Height: 240},
		},
	}
	out := filepath.Join(t.TempDir(), "exports", "main.pdf")
	if err := ExportPagePDF(page, out, PDFOptions{}); err != nil {
		t.Fatalf("ExportPagePDF: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if len(data) < 500 {
		t.Fatalf("suspiciously small pdf: %d bytes", len(data))
	}
}

func TestExportEmptyPageUsesFloorSize(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportPagePDF(&domain.Page{ID: 2, Name: "Empty"}, out, PDFOptions{}); err != nil {
		t.Fatalf("ExportPagePDF: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("missing output: %v", err)
	}
}

func TestExportNilPage(t *testing.T) {
	if err := ExportPagePDF(nil, "x.pdf", PDFOptions{}); err == nil {
		t.Fatalf("nil page must fail")
	}
}

func TestSummaryClipsLongText(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	sec := &domain.Section{ContentType: domain.ContentText, ContentData: &domain.TextContent{Text: string(long)}}
	if got := summary(sec); len(got) != 83 {
		t.Fatalf("clip length = %d", len(got))
	}
}
