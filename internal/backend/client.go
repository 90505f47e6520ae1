/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package backend implements the HTTP client for the dashboard REST API.
// The client is the only path to persistent state; it never talks to the
// database directly.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"paneldesk/internal/domain"
)

// Client is the HTTP client for the dashboard backend.
type Client struct {
	BaseURL string
	Token   string // bearer token
	client  *http.Client
}

// NewClient creates a new backend client. baseURL may include a trailing
// slash; it will be normalized.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// apiError is a non-2xx response. The message prefers the server's `error`
// field when the body carries one.
type apiError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server %s %s: %s (%d)", e.Method, e.Path, e.Message, e.Status)
	}
	return fmt.Sprintf("server %s %s: status %d", e.Method, e.Path, e.Status)
}

// StatusCode returns the HTTP status of err when it is a backend response
// error, or 0 otherwise.
func StatusCode(err error) int {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into dest (which may be nil for fire-and-forget mutations).
func (c *Client) doJSON(ctx context.Context, method, path string, body, dest any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		rdr = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest any) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&envelope); err == nil {
			msg = envelope.Error
		}
		return &apiError{Status: resp.StatusCode, Method: req.Method, Path: req.URL.Path, Message: msg}
	}
	if dest == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(dest)
}

// --- tabs and pages ---

// ListTabs returns all tabs with their page lists.
func (c *Client) ListTabs(ctx context.Context) ([]domain.Tab, error) {
	var tabs []domain.Tab
	if err := c.doJSON(ctx, http.MethodGet, "/api/tabs", nil, &tabs); err != nil {
		return nil, err
	}
	return tabs, nil
}

// CreateTab creates a tab and returns the server's record.
func (c *Client) CreateTab(ctx context.Context, name string) (*domain.Tab, error) {
	var tab domain.Tab
	body := map[string]any{"name": name}
	if err := c.doJSON(ctx, http.MethodPost, "/api/tabs", body, &tab); err != nil {
		return nil, err
	}
	return &tab, nil
}

// DeleteTab removes a tab and everything under it.
func (c *Client) DeleteTab(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/tabs/%d", id), nil, nil)
}

// CreatePage creates a page inside a tab.
func (c *Client) CreatePage(ctx context.Context, tabID int64, name string) (*domain.Page, error) {
	var page domain.Page
	body := map[string]any{"tab_id": tabID, "name": name}
	if err := c.doJSON(ctx, http.MethodPost, "/api/pages", body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeletePage removes a page and its sections.
func (c *Client) DeletePage(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/pages/%d", id), nil, nil)
}

// GetPage fetches a page with its sections. Sections are loaded lazily, only
// when a page is selected.
func (c *Client) GetPage(ctx context.Context, id int64) (*domain.Page, error) {
	var page domain.Page
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/pages/%d", id), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// --- sections ---

// NewSectionRequest is the create payload for a section.
type NewSectionRequest struct {
	PageID      int64              `json:"page_id"`
	Name        string             `json:"name"`
	ContentType domain.ContentType `json:"content_type"`
	ContentData domain.ContentData `json:"content_data"`
	Memo        string             `json:"memo,omitempty"`
	PositionX   float64            `json:"position_x"`
	PositionY   float64            `json:"position_y"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
}

// CreateSection creates a section and returns the server's record.
func (c *Client) CreateSection(ctx context.Context, req NewSectionRequest) (*domain.Section, error) {
	var sec domain.Section
	if err := c.doJSON(ctx, http.MethodPost, "/api/sections", req, &sec); err != nil {
		return nil, err
	}
	return &sec, nil
}

// SectionPatch is a partial update; nil fields are left untouched by the
// server.
type SectionPatch struct {
	Name        *string             `json:"name,omitempty"`
	ContentType *domain.ContentType `json:"content_type,omitempty"`
	ContentData domain.ContentData  `json:"content_data,omitempty"`
	Memo        *string             `json:"memo,omitempty"`
	PositionX   *float64            `json:"position_x,omitempty"`
	PositionY   *float64            `json:"position_y,omitempty"`
	Width       *float64            `json:"width,omitempty"`
	Height      *float64            `json:"height,omitempty"`
	OrderIndex  *int                `json:"order_index,omitempty"`
}

// GeometryPatch builds a patch for the drag/resize commit path.
func GeometryPatch(x, y, w, h float64) SectionPatch {
	return SectionPatch{PositionX: &x, PositionY: &y, Width: &w, Height: &h}
}

// UpdateSection applies a partial update to a section.
func (c *Client) UpdateSection(ctx context.Context, id int64, patch SectionPatch) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/sections/%d", id), patch, nil)
}

// DeleteSection removes a section.
func (c *Client) DeleteSection(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/sections/%d", id), nil, nil)
}

// --- storage section files ---

// ListFiles fetches the file listing of a storage section. path selects a
// subdirectory relative to the section's configured root; empty means the
// root itself.
func (c *Client) ListFiles(ctx context.Context, sectionID int64, path string) ([]domain.FileEntry, error) {
	p := fmt.Sprintf("/api/sections/%d/files", sectionID)
	if path != "" {
		p += "?path=" + url.QueryEscape(path)
	}
	var entries []domain.FileEntry
	if err := c.doJSON(ctx, http.MethodGet, p, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UploadFile uploads through the generic endpoint used by file and image
// sections; the response describes the stored file.
func (c *Client) UploadFile(ctx context.Context, filename string, r io.Reader) (*domain.FileContent, error) {
	var fc domain.FileContent
	if err := c.uploadMultipart(ctx, "/api/upload", filename, r, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

// UploadSectionFile uploads a file into a storage section's current folder.
func (c *Client) UploadSectionFile(ctx context.Context, sectionID int64, path, filename string, r io.Reader) error {
	p := fmt.Sprintf("/api/sections/%d/files", sectionID)
	if path != "" {
		p += "?path=" + url.QueryEscape(path)
	}
	return c.uploadMultipart(ctx, p, filename, r, nil)
}

func (c *Client) uploadMultipart(ctx context.Context, path, filename string, r io.Reader, dest any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("buffer upload %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, dest)
}

// FileURL returns the URL that serves a file inline; with download set the
// server forces an attachment disposition.
func (c *Client) FileURL(sectionID int64, name string, download bool) string {
	u := fmt.Sprintf("%s/api/sections/%d/files/%s", c.BaseURL, sectionID, url.PathEscape(name))
	if download {
		u += "?download=1"
	}
	return u
}

// FetchSectionFile downloads a file's raw bytes, e.g. image data for the
// thumbnail and preview view modes.
func (c *Client) FetchSectionFile(ctx context.Context, sectionID int64, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FileURL(sectionID, name, false), nil)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apiError{Status: resp.StatusCode, Method: http.MethodGet, Path: req.URL.Path}
	}
	return io.ReadAll(resp.Body)
}

// DeleteFile removes a file from a storage section.
func (c *Client) DeleteFile(ctx context.Context, sectionID int64, name string) error {
	p := fmt.Sprintf("/api/sections/%d/files/%s", sectionID, url.PathEscape(name))
	return c.doJSON(ctx, http.MethodDelete, p, nil, nil)
}

// MoveFile moves a file into another storage section's folder.
func (c *Client) MoveFile(ctx context.Context, sectionID int64, name string, targetSectionID int64) error {
	p := fmt.Sprintf("/api/sections/%d/files/%s/move", sectionID, url.PathEscape(name))
	return c.doJSON(ctx, http.MethodPost, p, map[string]any{"target_section_id": targetSectionID}, nil)
}

// CopyFile copies a file into another storage section's folder.
func (c *Client) CopyFile(ctx context.Context, sectionID int64, name string, targetSectionID int64) error {
	p := fmt.Sprintf("/api/sections/%d/files/%s/copy", sectionID, url.PathEscape(name))
	return c.doJSON(ctx, http.MethodPost, p, map[string]any{"target_section_id": targetSectionID}, nil)
}

// ExtractZip unpacks an archive in place on the server.
func (c *Client) ExtractZip(ctx context.Context, sectionID int64, name string) error {
	p := fmt.Sprintf("/api/sections/%d/files/%s/extract", sectionID, url.PathEscape(name))
	return c.doJSON(ctx, http.MethodPost, p, nil, nil)
}

// --- host filesystem ---

// ListDirectories browses the host filesystem for the storage path picker.
func (c *Client) ListDirectories(ctx context.Context, path string) (*domain.DirectoryListing, error) {
	p := "/api/system/directories"
	if path != "" {
		p += "?path=" + url.QueryEscape(path)
	}
	var listing domain.DirectoryListing
	if err := c.doJSON(ctx, http.MethodGet, p, nil, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// CreateDirectory creates a folder on the host filesystem.
func (c *Client) CreateDirectory(ctx context.Context, path, name string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/system/directories", map[string]any{"path": path, "name": name}, nil)
}

// CloudStoragePaths returns the detected sync folders keyed by provider.
func (c *Client) CloudStoragePaths(ctx context.Context) (map[string]string, error) {
	var paths map[string]string
	if err := c.doJSON(ctx, http.MethodGet, "/api/system/cloud-storage-paths", nil, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// --- session ---

// SessionInfo is the verify response used for startup gating.
type SessionInfo struct {
	Valid bool   `json:"valid"`
	Email string `json:"email,omitempty"`
}

// VerifySession checks the stored token. An unauthorized response is
// reported as Valid=false, not as an error.
func (c *Client) VerifySession(ctx context.Context) (*SessionInfo, error) {
	var info SessionInfo
	err := c.doJSON(ctx, http.MethodGet, "/api/auth/verify", nil, &info)
	if err != nil {
		if StatusCode(err) == http.StatusUnauthorized {
			return &SessionInfo{Valid: false}, nil
		}
		return nil, err
	}
	return &info, nil
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// SubscriptionStatus is the billing state the client uses only to gate a
// lock overlay.
type SubscriptionStatus struct {
	Active bool   `json:"active"`
	Plan   string `json:"plan,omitempty"`
}

// GetSubscriptionStatus fetches the account's subscription state.
func (c *Client) GetSubscriptionStatus(ctx context.Context) (*SubscriptionStatus, error) {
	var st SubscriptionStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
