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

	"github.com/spf13/cobra"

	"paneldesk/internal/config"
)

func newSessionCmd() *cobra.Command {
	session := &cobra.Command{
		Use:   "session",
		Short: "Manage the stored backend session",
	}

	session.AddCommand(&cobra.Command{
		Use:   "login <token>",
		Short: "Store a session token in the system keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load()
			if err != nil {
				return err
			}
			if err := config.Save(cfg, args[0]); err != nil {
				return err
			}
			api, err := apiClient()
			if err != nil {
				return err
			}
			info, err := api.VerifySession(cmd.Context())
			if err != nil {
				return fmt.Errorf("token stored but verification failed: %w", err)
			}
			if !info.Valid {
				fmt.Println("token stored, but the backend rejected it")
				return nil
			}
			fmt.Println("logged in")
			return nil
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Invalidate the session and clear the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiClient()
			if err != nil {
				return err
			}
			// server-side invalidation is best effort, the local token always
			// gets cleared
			if err := api.Logout(cmd.Context()); err != nil {
				fmt.Println("warning: server logout failed:", err)
			}
			if err := config.ClearToken(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show session and subscription state",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := apiClient()
			if err != nil {
				return err
			}
			info, err := api.VerifySession(cmd.Context())
			if err != nil {
				return err
			}
			if !info.Valid {
				fmt.Println("session: invalid")
				return nil
			}
			fmt.Println("session: valid")
			sub, err := api.GetSubscriptionStatus(cmd.Context())
			if err != nil {
				fmt.Println("subscription: unknown:", err)
				return nil
			}
			if sub.Active {
				fmt.Printf("subscription: active (%s)\n", sub.Plan)
			} else {
				fmt.Println("subscription: inactive")
			}
			return nil
		},
	})

	return session
}
