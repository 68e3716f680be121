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
	"fmt"
	"maps"
	"reflect"
	"strconv"
	"strings"
)

// Build returns an element with the given tag, attributes and children.
//
// The children are classified as follows:
//
//   - No children or a single nil child: the element has no children.
//   - A single *VNode: the element has a single child.
//   - A single []*VNode or []any: the slice is used as the sequence of children.
//   - Two or more children: the arguments are used as the sequence of children.
//   - Any other value: the value is converted to a string and wrapped in a text node.
//
// A sequence with no children results in [ShapeNone], one with a single child is unwrapped to
// [ShapeSingle] and one with two or more children results in [ShapeKeyed]. In a keyed sequence,
// children without a "key" attribute receive a synthetic key derived from their position in the
// sequence. Nil entries are skipped, but they count as a position. This way, a child that is
// included conditionally doesn't change the synthetic keys of the children that follow it.
//
// Build doesn't retain attrs or the children slice.
func Build(tag string, attrs Attrs, children ...any) *VNode {
	v := &VNode{
		kind: KindElement,
		tag:  tag,
	}
	v.attrs, v.key = normalizeAttrs(attrs)
	v.shape, v.children = normalizeChildren(children)
	return v
}

// Text returns a text node.
func Text(s string) *VNode {
	return &VNode{
		kind: KindText,
		text: s,
	}
}

// Fragment returns a group of children without a wrapper element.
//
// Fragments are not supported by the [Renderer] yet; rendering one reports an error wrapping
// [ErrUnsupportedKind].
func Fragment(children ...any) *VNode {
	v := &VNode{kind: KindFragment}
	v.shape, v.children = normalizeChildren(children)
	return v
}

// Component returns a component node.
//
// Components are not supported by the [Renderer] yet; rendering one reports an error wrapping
// [ErrUnsupportedKind].
func Component(name string, attrs Attrs) *VNode {
	v := &VNode{
		kind: KindComponent,
		tag:  name,
	}
	v.attrs, v.key = normalizeAttrs(attrs)
	return v
}

// Teleport returns a node whose children are rendered into the target instead of the parent.
//
// Teleports are not supported by the [Renderer] yet; rendering one reports an error wrapping
// [ErrUnsupportedKind].
func Teleport(target string, children ...any) *VNode {
	v := &VNode{
		kind: KindTeleport,
		tag:  target,
	}
	v.shape, v.children = normalizeChildren(children)
	return v
}

func normalizeAttrs(attrs Attrs) (Attrs, Key) {
	if len(attrs) == 0 {
		return nil, Key{}
	}
	out := make(Attrs, len(attrs))
	var key Key
	for name, val := range attrs {
		switch name {
		case "key":
			if val != nil {
				key = Key{name: propToString(val)}
			}
			continue
		case "style":
			val = normalizeStyle(val)
		case "class":
			val = normalizeClass(val)
		}
		out[name] = val
	}
	if len(out) == 0 {
		out = nil
	}
	return out, key
}

func normalizeStyle(val any) any {
	switch val := val.(type) {
	case nil:
		return nil
	case Style:
		return maps.Clone(val)
	case map[string]string:
		return Style(maps.Clone(val))
	case map[string]any:
		s := make(Style, len(val))
		for k, v := range val {
			if v != nil {
				s[k] = propToString(v)
			}
		}
		return s
	default:
		return parseStyle(propToString(val))
	}
}

// parseStyle parses a list of CSS declarations, e.g. "color: red; width: 10px".
func parseStyle(decls string) Style {
	s := make(Style)
	for decl := range strings.SplitSeq(decls, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		if name != "" {
			s[name] = value
		}
	}
	return s
}

func normalizeClass(val any) any {
	switch val := val.(type) {
	case nil:
		return nil
	case string:
		return val
	case []string:
		return strings.Join(val, " ")
	default:
		return propToString(val)
	}
}

func normalizeChildren(children []any) (Shape, []child) {
	if len(children) == 1 {
		switch c := children[0].(type) {
		case nil:
			return ShapeNone, nil
		case []*VNode:
			seq := make([]any, len(c))
			for i, n := range c {
				if n != nil {
					seq[i] = n
				}
			}
			return normalizeSequence(seq)
		case []any:
			return normalizeSequence(c)
		default:
			n := toVNode(c)
			if n == nil {
				return ShapeNone, nil
			}
			return ShapeSingle, []child{{key: n.key, node: n}}
		}
	}
	return normalizeSequence(children)
}

func normalizeSequence(seq []any) (Shape, []child) {
	var out []child
	for i, c := range seq {
		n := toVNode(c)
		if n == nil {
			continue
		}
		key := n.key
		if key.IsZero() {
			key = Key{pos: i, synthetic: true}
		}
		out = append(out, child{key: key, node: n})
	}
	switch len(out) {
	case 0:
		return ShapeNone, nil
	case 1:
		// A single child keeps its user key only.
		out[0].key = out[0].node.key
		return ShapeSingle, out
	default:
		return ShapeKeyed, out
	}
}

// toVNode converts a child value to a VNode. It returns nil for nil values.
func toVNode(c any) *VNode {
	switch c := c.(type) {
	case nil:
		return nil
	case *VNode:
		return c
	case []*VNode, []any:
		// Nested sequences are fragments.
		return Fragment(c)
	default:
		return Text(propToString(c))
	}
}

// propsEqual compares two attribute values for equality.
func propsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case Style:
		bv, ok := b.(Style)
		return ok && maps.Equal(av, bv)
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// propToString converts an attribute value to the string that is written to the host node.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
