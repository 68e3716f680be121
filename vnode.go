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
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind classifies a [VNode].
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind -trimprefix=Kind
type Kind int

const (
	KindElement   Kind = iota // An element with a tag, attributes and children
	KindText                  // A text node
	KindComponent             // A component, not supported by the renderer
	KindFragment              // A group of children without a wrapper, not supported by the renderer
	KindTeleport              // Children rendered elsewhere, not supported by the renderer
)

// Shape classifies the children of a [VNode].
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Shape -trimprefix=Shape
type Shape int

const (
	ShapeNone   Shape = iota // No children
	ShapeSingle              // Exactly one child
	ShapeKeyed               // Two or more children, each with a key unique among its siblings
)

// Key is the identity of a child among its siblings.
//
// A key is either a user key, taken from the "key" attribute, or a synthetic key that is derived
// from the position of an unkeyed child in the children passed to [Build]. A user key is never
// equal to a synthetic key, whatever its value.
type Key struct {
	name      string
	pos       int
	synthetic bool
}

// UserKey returns the user key with the given name.
func UserKey(name string) Key { return Key{name: name} }

// IsZero reports whether k is the zero key, i.e. no key at all.
func (k Key) IsZero() bool { return k == Key{} }

// IsSynthetic reports whether k was derived from a position.
func (k Key) IsSynthetic() bool { return k.synthetic }

func (k Key) String() string {
	if k.synthetic {
		return "#" + strconv.Itoa(k.pos)
	}
	return k.name
}

// Attrs is an attribute bag.
//
// The "key" attribute is the identity of a node among its siblings and is never applied to the
// host node. The "style" attribute is a [Style], the "class" attribute a string. A nil value
// means that the attribute is absent.
type Attrs map[string]any

// Style maps CSS property names to values.
type Style map[string]string

// VNode describes one node of a virtual tree.
//
// A VNode is immutable after construction. The host node that corresponds to a VNode is not part
// of it; mounting and patching return a [Rendered] tree that pairs every VNode with its host node.
// It is therefore safe to reuse a VNode in multiple places or across renders.
type VNode struct {
	kind     Kind
	tag      string
	text     string
	key      Key
	attrs    Attrs
	shape    Shape
	children []child
}

// child is a child slot. The key belongs to the slot rather than to the child, because synthetic
// keys depend on the position in the parent.
type child struct {
	key  Key
	node *VNode
}

// Kind returns the kind of v.
func (v *VNode) Kind() Kind { return v.kind }

// Tag returns the tag of an element, the name of a component or the target of a teleport.
func (v *VNode) Tag() string { return v.tag }

// Text returns the content of a text node.
func (v *VNode) Text() string { return v.text }

// Key returns the user key of v or the zero key if v doesn't have one.
func (v *VNode) Key() Key { return v.key }

// Attr returns the value of an attribute.
func (v *VNode) Attr(name string) (any, bool) {
	val, ok := v.attrs[name]
	if s, isStyle := val.(Style); isStyle {
		return maps.Clone(s), ok
	}
	return val, ok
}

// Attrs returns the attributes of v in name order.
func (v *VNode) Attrs() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, name := range sortedKeys(v.attrs) {
			val, _ := v.Attr(name)
			if !yield(name, val) {
				return
			}
		}
	}
}

// Shape returns the shape of the children of v.
func (v *VNode) Shape() Shape { return v.shape }

// Len returns the number of children of v.
func (v *VNode) Len() int { return len(v.children) }

// Child returns the i-th child of v.
func (v *VNode) Child(i int) *VNode { return v.children[i].node }

// ChildKey returns the key of the i-th child slot of v. For children with a user key this is the
// user key, for all other children of a keyed list it's a synthetic key, and for a single child
// it's the zero key unless the child has a user key.
func (v *VNode) ChildKey(i int) Key { return v.children[i].key }

// Children returns the children of v.
func (v *VNode) Children() []*VNode {
	out := make([]*VNode, len(v.children))
	for i, c := range v.children {
		out[i] = c.node
	}
	return out
}

func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	var sb strings.Builder
	switch v.kind {
	case KindText:
		sb.WriteString(strconv.Quote(v.text))
	case KindElement, KindComponent, KindTeleport:
		sb.WriteRune('<')
		sb.WriteString(v.tag)
		if !v.key.IsZero() {
			sb.WriteString(" key=")
			sb.WriteString(v.key.String())
		}
		sb.WriteRune('>')
	case KindFragment:
		sb.WriteString("<>")
	default:
		panic("never reached")
	}
	return sb.String()
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}
