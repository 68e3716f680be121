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

package memtree

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// HTML returns n and its descendants as HTML.
//
// Attributes are written in name order, followed by live properties as :name="value" and the
// inline style. Every element gets a closing tag.
func (n *Node) HTML() string {
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

// InnerHTML returns the descendants of n as HTML.
func (n *Node) InnerHTML() string {
	var sb strings.Builder
	for _, c := range n.children {
		c.writeHTML(&sb)
	}
	return sb.String()
}

func (n *Node) writeHTML(sb *strings.Builder) {
	if n.isText {
		sb.WriteString(escapeHTML(n.text))
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.tag)
	for _, name := range slices.Sorted(maps.Keys(n.attrs)) {
		writeAttr(sb, name, n.attrs[name])
	}
	for _, name := range slices.Sorted(maps.Keys(n.props)) {
		writeAttr(sb, ":"+name, fmt.Sprint(n.props[name]))
	}
	if len(n.style) > 0 {
		var decls []string
		for _, name := range slices.Sorted(maps.Keys(n.style)) {
			decls = append(decls, name+": "+n.style[name])
		}
		writeAttr(sb, "style", strings.Join(decls, "; "))
	}
	sb.WriteByte('>')
	for _, c := range n.children {
		c.writeHTML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.tag)
	sb.WriteByte('>')
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	if value == "" {
		return
	}
	sb.WriteString(`="`)
	sb.WriteString(escapeAttr(value))
	sb.WriteByte('"')
}

// escapeHTML escapes text for inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr escapes text for inclusion in a quoted attribute value. Whitespace other than a plain
// space is escaped, too.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteString(escapeHTML(string(r)))
		}
	}
	return buf.String()
}
