/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paneldesk/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "tok-123", 5*time.Second)
}

func TestListTabsSendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tabs" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("bad auth header %q", got)
		}
		json.NewEncoder(w).Encode([]domain.Tab{{ID: 1, Name: "Home", Pages: []domain.Page{{ID: 2, TabID: 1, Name: "Main"}}}})
	})
	tabs, err := c.ListTabs(context.Background())
	if err != nil {
		t.Fatalf("ListTabs: %v", err)
	}
	if len(tabs) != 1 || tabs[0].Name != "Home" || len(tabs[0].Pages) != 1 {
		t.Fatalf("unexpected tabs: %+v", tabs)
	}
}

func TestUpdateSectionPartialPatch(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/sections/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	})
	if err := c.UpdateSection(context.Background(), 7, GeometryPatch(12.5, 0, 300, 210)); err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	for _, key := range []string{"position_x", "position_y", "width", "height"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("patch missing %s: %v", key, got)
		}
	}
	for _, key := range []string{"name", "memo", "content_type", "content_data", "order_index"} {
		if _, ok := got[key]; ok {
			t.Fatalf("patch must omit untouched field %s: %v", key, got)
		}
	}
}

func TestCreateSectionDecodesContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["content_type"] != "link" {
			t.Errorf("unexpected content_type %v", req["content_type"])
		}
		w.Write([]byte(`{"id":11,"page_id":2,"content_type":"link","content_data":"{\"url\":\"#\",\"title\":\"New Link\"}","position_x":50,"position_y":50,"width":300,"height":200}`))
	})
	sec, err := c.CreateSection(context.Background(), NewSectionRequest{
		PageID: 2, Name: "New Section", ContentType: domain.ContentLink,
		ContentData: domain.DefaultContent(domain.ContentLink),
		PositionX:   50, PositionY: 50, Width: 300, Height: 200,
	})
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	lc, ok := sec.ContentData.(*domain.LinkContent)
	if !ok || lc.Title != "New Link" {
		t.Fatalf("string-wrapped content not decoded: %#v", sec.ContentData)
	}
}

func TestServerErrorMessageSurfaces(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"file already exists"}`))
	})
	err := c.DeleteFile(context.Background(), 3, "a.txt")
	if err == nil || !strings.Contains(err.Error(), "file already exists") {
		t.Fatalf("expected server error message, got %v", err)
	}
	if StatusCode(err) != http.StatusConflict {
		t.Fatalf("StatusCode = %d", StatusCode(err))
	}
}

func TestListFilesWithPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sections/5/files" || r.URL.Query().Get("path") != "docs/2025" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		w.Write([]byte(`[{"name":"q3.pdf","size":100,"updated_at":"2025-06-01T12:00:00Z","is_directory":false}]`))
	})
	entries, err := c.ListFiles(context.Background(), 5, "docs/2025")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "q3.pdf" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestUploadSectionFileMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer f.Close()
		if hdr.Filename != "notes.txt" {
			t.Errorf("filename %q", hdr.Filename)
		}
		w.Write([]byte("{}"))
	})
	err := c.UploadSectionFile(context.Background(), 5, "", "notes.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("UploadSectionFile: %v", err)
	}
}

func TestMoveFileBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sections/5/files/a%20b.txt/move" && r.URL.EscapedPath() != "/api/sections/5/files/a%20b.txt/move" {
			t.Errorf("unexpected path %s", r.URL.EscapedPath())
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["target_section_id"] != float64(9) {
			t.Errorf("bad body %v", body)
		}
		w.Write([]byte("{}"))
	})
	if err := c.MoveFile(context.Background(), 5, "a b.txt", 9); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
}

func TestVerifySessionUnauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	})
	info, err := c.VerifySession(context.Background())
	if err != nil {
		t.Fatalf("unauthorized must not be an error: %v", err)
	}
	if info.Valid {
		t.Fatalf("session must be invalid")
	}
}

func TestFileURL(t *testing.T) {
	c := NewClient("http://host:5001/", "", 0)
	got := c.FileURL(4, "my report.pdf", true)
	want := "http://host:5001/api/sections/4/files/my%20report.pdf?download=1"
	if got != want {
		t.Fatalf("FileURL = %q, want %q", got, want)
	}
}

func TestFetchSectionFileBytes(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/sections/4/files/photo.png" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("bad auth header %q", got)
		}
		w.Write(payload)
	})
	got, err := c.FetchSectionFile(context.Background(), 4, "photo.png")
	if err != nil {
		t.Fatalf("FetchSectionFile: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("bytes = %v", got)
	}
}

func TestFetchSectionFileNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no such file"}`))
	})
	if _, err := c.FetchSectionFile(context.Background(), 4, "gone.png"); err == nil {
		t.Fatalf("missing file must error")
	} else if StatusCode(err) != http.StatusNotFound {
		t.Fatalf("status = %d", StatusCode(err))
	}
}

func TestCreateSectionCarriesMemo(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"id":9,"page_id":1,"content_type":"text","content_data":{"text":""}}`))
	})
	_, err := c.CreateSection(context.Background(), NewSectionRequest{
		PageID:      1,
		Name:        "Notes",
		ContentType: domain.ContentText,
		ContentData: &domain.TextContent{},
		Memo:        "follow up Monday",
		Width:       300,
		Height:      200,
	})
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	if got["memo"] != "follow up Monday" {
		t.Fatalf("memo not sent: %v", got)
	}
}
