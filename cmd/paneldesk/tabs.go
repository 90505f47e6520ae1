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

func newTabsCmd() *cobra.Command {
	tabs := &cobra.Command{
		Use:   "tabs",
		Short: "Inspect and manage dashboard tabs",
	}

	tabs.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tabs with their pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiClient()
			if err != nil {
				return err
			}
			all, err := api.ListTabs(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range all {
				fmt.Printf("%d\t%s\n", t.ID, t.Name)
				for _, p := range t.Pages {
					fmt.Printf("\t%d\t%s\n", p.ID, p.Name)
				}
			}
			return nil
		},
	})

	tabs.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiClient()
			if err != nil {
				return err
			}
			t, err := api.CreateTab(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("created tab %d (%s)\n", t.ID, t.Name)
			return nil
		},
	})

	tabs.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tab and all its pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("tab id must be numeric: %w", err)
			}
			api, err := apiClient()
			if err != nil {
				return err
			}
			if err := api.DeleteTab(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("deleted tab %d\n", id)
			return nil
		},
	})

	return tabs
}
