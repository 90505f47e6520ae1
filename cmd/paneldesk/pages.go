/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s id must be numeric: %w", kind, err)
	}
	return id, nil
}

func newPagesCmd() *cobra.Command {
	pages := &cobra.Command{
		Use:   "pages",
		Short: "Inspect and manage dashboard pages",
	}

	pages.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a page and its sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("page", args[0])
			if err != nil {
				return err
			}
			api, err := apiClient()
			if err != nil {
				return err
			}
			page, err := api.GetPage(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("%d\t%s\n", page.ID, page.Name)
			for _, s := range page.Sections {
				fmt.Printf("\t%d\t%-10s\t%s\t(%.0f,%.0f %.0fx%.0f)\n",
					s.ID, s.ContentType, s.Name, s.PositionX, s.PositionY, s.Width, s.Height)
			}
			return nil
		},
	})

	pages.AddCommand(&cobra.Command{
		Use:   "create <tab-id> <name>",
		Short: "Create a page under a tab",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tabID, err := parseID("tab", args[0])
			if err != nil {
				return err
			}
			api, err := apiClient()
			if err != nil {
				return err
			}
			p, err := api.CreatePage(cmd.Context(), tabID, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("created page %d (%s)\n", p.ID, p.Name)
			return nil
		},
	})

	pages.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a page and all its sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("page", args[0])
			if err != nil {
				return err
			}
			api, err := apiClient()
			if err != nil {
				return err
			}
			if err := api.DeletePage(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("deleted page %d\n", id)
			return nil
		},
	})

	return pages
}
