/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"paneldesk/internal/backend"
	"paneldesk/internal/domain"
)

func newSectionsCmd() *cobra.Command {
	sections := &cobra.Command{
		Use:   "sections",
		Short: "Inspect and manage page sections",
	}

	sections.AddCommand(&cobra.Command{
		Use:   "add <page-id> <type>",
		Short: "Add a section with the type's default content",
		Long:  "Types: text, link, image, file, notepad, storage.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageID, err := parseID("page", args[0])
			if err != nil {
				return err
			}
			ct := domain.ContentType(args[1])
			data := domain.DefaultContent(ct)
			if data == nil {
				return fmt.Errorf("unknown content type %q", args[1])
			}
			api, err := apiClient()
			if err != nil {
				return err
			}
			sec, err := api.CreateSection(cmd.Context(), backend.NewSectionRequest{
				PageID:      pageID,
				Name:        "New Section",
				ContentType: ct,
				ContentData: data,
				PositionX:   50,
				PositionY:   50,
				Width:       300,
				Height:      200,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created section %d on page %d\n", sec.ID, pageID)
			return nil
		},
	})

	sections.AddCommand(&cobra.Command{
		Use:   "show <page-id> <section-id>",
		Short: "Print a section's content data as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageID, err := parseID("page", args[0])
			if err != nil {
				return err
			}
			secID, err := parseID("section", args[1])
			if err != nil {
				return err
			}
			api, err := apiClient()
			if err != nil {
				return err
			}
			page, err := api.GetPage(cmd.Context(), pageID)
			if err != nil {
				return err
			}
			for _, s := range page.Sections {
				if s.ID != secID {
					continue
				}
				buf, err := json.MarshalIndent(s.ContentData, "", "  ")
				if err != nil {
					return err
				}
				fmt.Printf("%d\t%s\t%s\n%s\n", s.ID, s.ContentType, s.Name, buf)
				return nil
			}
			return fmt.Errorf("section %d not found on page %d", secID, pageID)
		},
	})

	sections.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("section", args[0])
			if err != nil {
				return err
			}
			api, err := apiClient()
			if err != nil {
				return err
			}
			if err := api.DeleteSection(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("deleted section %d\n", id)
			return nil
		},
	})

	return sections
}
