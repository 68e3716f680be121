// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vreplay",
		Short: "Replay render scenarios against an in-memory host tree",
		Long: `Replay render scenarios against an in-memory host tree.

A scenario renders an old tree, patches it to a new tree and records every adapter call of the
patch. The recorded calls can be printed, checked against the expectations stored in the
scenario or written back to the scenario file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("color", "auto", "colorize output: auto, always or never")

	root.AddCommand(newReplayCmd())
	root.AddCommand(newLISCmd())
	return root
}

// paletteFor returns the palette selected by the --color flag of cmd.
func paletteFor(cmd *cobra.Command) (*palette, error) {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return nil, err
	}
	return newPalette(mode, cmd.OutOrStdout())
}
