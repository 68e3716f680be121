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

// Package lis computes longest strictly increasing subsequences of remap arrays.
//
// A remap array maps positions of a new sibling list to positions in the old list, shifted by one
// so that 0 can mark positions without an old counterpart. Entries that are 0 never take part in
// a subsequence.
//
// The algorithm is Algorithm A from Thomas G. Szymanski, “A Special Case of the Maximal Common
// Subsequence Problem,” Princeton TR #170 (January 1975), available at
// https://research.swtch.com/tgs170.pdf. It runs in O(n log n) time and O(n) space.
package lis

import "sort"

// Indices returns the indexes of a longest strictly increasing subsequence of the non-zero
// elements of a. The indexes are in ascending order. If there are multiple subsequences of the
// same length, the one ending in the smallest value is returned.
func Indices(a []int) []int {
	// tails[k] is the index of the smallest value that ends an increasing subsequence of length
	// k+1. The values a[tails[k]] are strictly increasing in k, which is what makes the binary
	// search possible.
	tails := make([]int, 0, len(a))
	prev := make([]int, len(a))
	for i, v := range a {
		if v == 0 {
			continue
		}
		k := sort.Search(len(tails), func(k int) bool {
			return a[tails[k]] >= v
		})
		if k > 0 {
			prev[i] = tails[k-1]
		} else {
			prev[i] = -1
		}
		if k == len(tails) {
			tails = append(tails, i)
		} else {
			tails[k] = i
		}
	}
	if len(tails) == 0 {
		return nil
	}

	out := make([]int, len(tails))
	for k, i := len(tails)-1, tails[len(tails)-1]; k >= 0; k-- {
		out[k] = i
		i = prev[i]
	}
	return out
}

// Length returns the length of a longest strictly increasing subsequence of the non-zero
// elements of a.
func Length(a []int) int {
	return len(Indices(a))
}
