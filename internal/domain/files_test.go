/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"testing"
	"time"
)

func sampleEntries() []FileEntry {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []FileEntry{
		{Name: "report.pdf", Size: 4096, UpdatedAt: base.Add(2 * time.Hour)},
		{Name: "archive.zip", Size: 1024, UpdatedAt: base},
		{Name: "notes.txt", Size: 2048, UpdatedAt: base.Add(time.Hour)},
		{Name: "photos", IsDirectory: true, UpdatedAt: base},
	}
}

func names(entries []FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSortFilesDirectoriesFirst(t *testing.T) {
	cases := []struct {
		order SortOrder
		want  []string
	}{
		{SortNameAsc, []string{"photos", "archive.zip", "notes.txt", "report.pdf"}},
		{SortNameDesc, []string{"photos", "report.pdf", "notes.txt", "archive.zip"}},
		{SortSizeAsc, []string{"photos", "archive.zip", "notes.txt", "report.pdf"}},
		{SortSizeDesc, []string{"photos", "report.pdf", "notes.txt", "archive.zip"}},
		{SortDateAsc, []string{"photos", "archive.zip", "notes.txt", "report.pdf"}},
		{SortDateDesc, []string{"photos", "report.pdf", "notes.txt", "archive.zip"}},
		{SortOrder("bogus"), []string{"photos", "archive.zip", "notes.txt", "report.pdf"}},
	}
	for _, c := range cases {
		entries := sampleEntries()
		SortFiles(entries, c.order)
		got := names(entries)
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Fatalf("%s: got %v, want %v", c.order, got, c.want)
			}
		}
		if !entries[0].IsDirectory {
			t.Fatalf("%s: directory not first: %v", c.order, got)
		}
	}
}

func TestHumanSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, c := range cases {
		if got := HumanSize(c.in); got != c.want {
			t.Fatalf("HumanSize(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsZipAndImage(t *testing.T) {
	if !IsZip("Backup.ZIP") || IsZip("backup.tar") {
		t.Fatalf("IsZip misclassified")
	}
	if !IsImageFile("photo.JPG") || !IsImageFile("x.webp") || IsImageFile("doc.pdf") {
		t.Fatalf("IsImageFile misclassified")
	}
}
