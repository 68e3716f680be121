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
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"znkr.io/vdom/internal/lis"
)

func newLISCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lis remap...",
		Short: "Print the longest increasing subsequence of a remap array",
		Long: `Print the longest increasing subsequence of a remap array.

A remap array holds, for every child of the new sibling list, the old position plus one of the
child it was matched with or 0 for new children. The children at the printed indexes stay in
place during a keyed diff, all other matched children are moved.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			remap := make([]int, len(args))
			for i, arg := range args {
				v, err := strconv.Atoi(arg)
				if err != nil || v < 0 {
					return fmt.Errorf("invalid remap entry %q: must be a non-negative integer", arg)
				}
				remap[i] = v
			}
			p, err := paletteFor(cmd)
			if err != nil {
				return err
			}

			stable := lis.Indices(remap)
			marked := make([]string, len(remap))
			k := 0
			for i, v := range remap {
				s := strconv.Itoa(v)
				if k < len(stable) && stable[k] == i {
					s = p.ok(s)
					k++
				} else if v != 0 {
					s = p.fail(s)
				}
				marked[i] = s
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "remap:   %s\n", strings.Join(marked, " "))
			fmt.Fprintf(w, "indexes: %v\n", stable)
			fmt.Fprintf(w, "moves:   %d\n", moves(remap, stable))
			return nil
		},
	}
}

// moves returns the number of matched entries that aren't part of the stable subsequence.
func moves(remap, stable []int) int {
	n := 0
	for _, v := range remap {
		if v != 0 {
			n++
		}
	}
	return n - len(stable)
}
