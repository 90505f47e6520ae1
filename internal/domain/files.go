/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SortOrder selects how a storage section orders its file listing.
// Directories always sort before files regardless of the order.
type SortOrder string

const (
	SortNameAsc  SortOrder = "name_asc"
	SortNameDesc SortOrder = "name_desc"
	SortSizeAsc  SortOrder = "size_asc"
	SortSizeDesc SortOrder = "size_desc"
	SortDateAsc  SortOrder = "date_asc"
	SortDateDesc SortOrder = "date_desc"
)

// SortOrders lists the selectable orders in menu order.
func SortOrders() []SortOrder {
	return []SortOrder{SortNameAsc, SortNameDesc, SortSizeAsc, SortSizeDesc, SortDateAsc, SortDateDesc}
}

// SortFiles sorts entries in place: directories first, then files by the
// given order. An unknown order falls back to name_asc. Name comparisons are
// case-insensitive; ties keep name order for determinism.
func SortFiles(entries []FileEntry, order SortOrder) {
	less := func(a, b FileEntry) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
	switch order {
	case SortNameDesc:
		less = func(a, b FileEntry) bool {
			return strings.ToLower(a.Name) > strings.ToLower(b.Name)
		}
	case SortSizeAsc:
		less = func(a, b FileEntry) bool {
			if a.Size != b.Size {
				return a.Size < b.Size
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortSizeDesc:
		less = func(a, b FileEntry) bool {
			if a.Size != b.Size {
				return a.Size > b.Size
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortDateAsc:
		less = func(a, b FileEntry) bool {
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortDateDesc:
		less = func(a, b FileEntry) bool {
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDirectory != entries[j].IsDirectory {
			return entries[i].IsDirectory
		}
		return less(entries[i], entries[j])
	})
}

// IsZip reports whether the file name has a .zip extension.
func IsZip(name string) bool { return strings.HasSuffix(strings.ToLower(name), ".zip") }

// IsImageFile reports whether the name looks like a raster image the preview
// modes can render.
func IsImageFile(name string) bool {
	n := strings.ToLower(name)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp"} {
		if strings.HasSuffix(n, ext) {
			return true
		}
	}
	return false
}

// HumanSize renders a byte count the way the file list displays it.
func HumanSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d Bytes", bytes)
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}
