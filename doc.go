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

// Package vdom reconciles virtual trees with a mutable host tree.
//
// A virtual tree is built from [VNode] values, usually with [Build] and [Text]. [Renderer.Render]
// makes a host tree match a virtual tree with as few host mutations as possible: nodes that keep
// their kind, tag and key are reused and patched in place, only changed attributes are written,
// and reordered children are moved instead of recreated. The host tree is mutated through an
// [Adapter], which makes the package independent of any particular host. See
// [znkr.io/vdom/memtree] for an in-memory host.
//
// Children are matched by key. Children with a "key" attribute use it as their key, all other
// children in a list of two or more use their position. The keyed diff patches a common prefix
// and suffix first and uses a longest increasing subsequence to find the children that don't
// need to move.
//
// Performance: Patching a list of N children is O(N log N) in time and O(N) in space. Moving a
// single child in a list of N children takes one host move.
//
// [znkr.io/vdom/memtree]: https://pkg.go.dev/znkr.io/vdom/memtree
package vdom
