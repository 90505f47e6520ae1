/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"strings"
	"testing"
)

func TestValidateContentAcceptsDefaults(t *testing.T) {
	for _, ct := range []ContentType{ContentText, ContentLink, ContentFile, ContentStorage, ContentNotepad, ContentImage} {
		if err := ValidateContent(ct, DefaultContent(ct)); err != nil {
			t.Fatalf("default %s content rejected: %v", ct, err)
		}
	}
}

func TestValidateContentRejectsMismatch(t *testing.T) {
	err := ValidateContent(ContentLink, &TextContent{Text: "x"})
	if err == nil || !strings.Contains(err.Error(), "content data is text") {
		t.Fatalf("expected mismatch error, got %v", err)
	}
}

func TestValidateContentRejectsNil(t *testing.T) {
	if err := ValidateContent(ContentText, nil); err == nil {
		t.Fatalf("nil content must be rejected")
	}
}

func TestValidateContentRejectsUnknownType(t *testing.T) {
	if err := ValidateContent(ContentType("widget"), &TextContent{}); err == nil {
		t.Fatalf("unknown type must be rejected")
	}
}

func TestValidateStorageEnums(t *testing.T) {
	good := &StorageContent{StorageType: StorageOneDrive, Path: "/sync", ViewMode: ViewThumbnails, SortOrder: SortSizeDesc}
	if err := ValidateContent(ContentStorage, good); err != nil {
		t.Fatalf("valid storage content rejected: %v", err)
	}
	bad := &StorageContent{StorageType: StorageType("dropbox"), Path: "/sync"}
	if err := ValidateContent(ContentStorage, bad); err == nil {
		t.Fatalf("unknown storage_type must be rejected")
	}
}

func TestValidateLinkRequiresURL(t *testing.T) {
	if err := ValidateContent(ContentLink, &LinkContent{Title: "no url"}); err == nil {
		t.Fatalf("empty url must be rejected")
	}
}
