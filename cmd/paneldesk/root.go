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

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"paneldesk/internal/backend"
	"paneldesk/internal/config"
	applog "paneldesk/internal/log"
	"paneldesk/internal/telemetry"
	"paneldesk/internal/ui"
	"paneldesk/internal/version"
)

// apiClient builds a backend client from the stored config plus any PD_* env
// overrides. A missing .env file is not an error.
func apiClient() (*backend.Client, error) {
	cfg, token, err := config.Load()
	if err != nil {
		return nil, err
	}
	return backend.NewClient(cfg.Backend.BaseURL, token, cfg.Backend.EffectiveTimeout()), nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paneldesk",
		Short:         "PanelDesk desktop dashboard client",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			applog.Init(applog.FromEnv())
			tcfg := telemetry.FromEnv()
			if dir, err := config.DataDir(); err == nil {
				tcfg.InstallDir = dir
			}
			telemetry.NewDefault(tcfg)
			applog.WithComponent("cli").Debug("start",
				slog.String("cmd", cmd.Name()), slog.Int("args", len(args)))
		},
	}

	root.AddCommand(
		newVersionCmd(),
		newUICmd(),
		newTabsCmd(),
		newPagesCmd(),
		newSectionsCmd(),
		newSessionCmd(),
		newExportCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the application version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.String())
		},
	}
}

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Launch the desktop UI (build with -tags fyne for the full UI)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run()
		},
	}
}
