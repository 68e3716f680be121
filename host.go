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

package vdom

// Adapter provides the primitives to mutate a host tree with nodes of type N.
//
// All primitives are expected to take effect immediately. AppendChild and InsertBefore must move
// a node that is already attached somewhere, the renderer relies on that to reposition children.
// An error from any primitive aborts the render pass.
type Adapter[N any] interface {
	CreateElement(tag string) (N, error)
	CreateText(text string) (N, error)

	SetAttribute(n N, name, value string) error
	RemoveAttribute(n N, name string) error

	// SetProperty assigns a live property. A nil value resets the property.
	SetProperty(n N, name string, value any) error

	SetStyle(n N, name, value string) error
	RemoveStyle(n N, name string) error

	SetText(n N, text string) error

	AppendChild(parent, child N) error
	InsertBefore(parent, child, anchor N) error
	RemoveChild(parent, child N) error
}
