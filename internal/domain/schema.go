/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSON schemas for each content_data variant. The invariant is that a
// section's content_data shape always matches its content_type; ValidateContent
// is the gate applied before any create/update leaves the client.

var contentSchemas = map[ContentType]string{
	ContentText: `{
		"type": "object",
		"properties": {"text": {"type": "string"}},
		"required": ["text"],
		"additionalProperties": false
	}`,
	ContentLink: `{
		"type": "object",
		"properties": {"url": {"type": "string", "minLength": 1}, "title": {"type": "string"}},
		"required": ["url"],
		"additionalProperties": false
	}`,
	ContentFile: `{
		"type": "object",
		"properties": {
			"filename": {"type": "string"},
			"file_path": {"type": "string"},
			"file_size": {"type": "integer", "minimum": 0},
			"file_type": {"type": "string"}
		},
		"required": ["filename", "file_path"],
		"additionalProperties": false
	}`,
	ContentStorage: `{
		"type": "object",
		"properties": {
			"storage_type": {"enum": ["local", "onedrive", "googledrive", "icloud"]},
			"path": {"type": "string"},
			"view_mode": {"enum": ["list", "grid", "thumbnails", "previews"]},
			"sort_order": {"enum": ["name_asc", "name_desc", "size_asc", "size_desc", "date_asc", "date_desc"]}
		},
		"required": ["storage_type", "path"],
		"additionalProperties": false
	}`,
	ContentNotepad: `{
		"type": "object",
		"properties": {
			"text": {"type": "string"},
			"bgColor": {"type": "string"},
			"fontColor": {"type": "string"},
			"fontFamily": {"type": "string"},
			"fontSize": {"type": "string"}
		},
		"required": ["text"],
		"additionalProperties": false
	}`,
	ContentImage: `{
		"type": "object",
		"properties": {
			"file_path": {"type": "string"},
			"filename": {"type": "string"},
			"image_url": {"type": "string"}
		},
		"additionalProperties": false
	}`,
}

// ValidateContent checks that data is a valid payload for the content type.
// A nil payload is rejected; file sections may be created empty, which is
// allowed by treating the zero FileContent as valid.
func ValidateContent(ct ContentType, data ContentData) error {
	if !ct.Valid() {
		return fmt.Errorf("unknown content type %q", ct)
	}
	if data == nil {
		return fmt.Errorf("%s section has no content data", ct)
	}
	if data.Type() != ct {
		return fmt.Errorf("content data is %s, section is %s", data.Type(), ct)
	}
	doc, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal content data: %w", err)
	}
	schemaLoader := gojsonschema.NewStringLoader(contentSchemas[ct])
	docLoader := gojsonschema.NewBytesLoader(doc)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate %s content: %w", ct, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid %s content: %s", ct, strings.Join(msgs, "; "))
	}
	return nil
}
