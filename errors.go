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

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedKind is reported for nodes whose kind the renderer can't mount.
	ErrUnsupportedKind = errors.New("unsupported vnode kind")

	// ErrConcurrentRender is returned when a render is started on a mount point that is already
	// being rendered.
	ErrConcurrentRender = errors.New("concurrent render on mount point")

	// ErrDuplicateKey is reported when a sibling list contains the same user key twice and
	// [StrictKeys] is set.
	ErrDuplicateKey = errors.New("duplicate key")
)

// ShapeError reports a subtree that was skipped because its kind isn't supported.
//
// Shape errors don't abort a render pass. The skipped subtree has no host node, its siblings are
// rendered as usual.
type ShapeError struct {
	Op   string // Always "mount"; placeholders are mounted anew instead of patched.
	Kind Kind
	Path string // Position of the subtree as child indexes from the root, e.g. "/0/2".
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s %s at %s: %v", e.Op, e.Kind, e.Path, ErrUnsupportedKind)
}

func (e *ShapeError) Unwrap() error { return ErrUnsupportedKind }

// KeyError reports a duplicate user key in a sibling list.
type KeyError struct {
	Key  Key
	Path string // Position of the parent as child indexes from the root, e.g. "/0/2".
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("key %q at %s: %v", e.Key, e.Path, ErrDuplicateKey)
}

func (e *KeyError) Unwrap() error { return ErrDuplicateKey }

// AdapterError reports a failed host tree primitive. It aborts the render pass.
type AdapterError struct {
	Op   string // Name of the Adapter method, e.g. "InsertBefore".
	Path string
	Err  error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Op, e.Path, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }
