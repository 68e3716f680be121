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

// Package memtree implements an in-memory host tree for [vdom.Renderer].
//
// The tree follows the DOM model closely enough to test reconciliation: elements have attributes,
// live properties, inline styles and children, text nodes have content, and appending or
// inserting an attached node moves it. Every node gets a sequential ID when it's created, which
// makes node identity visible in test output.
package memtree

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

var (
	// ErrNotChild is returned when a node is expected to be a child of a parent but isn't.
	ErrNotChild = errors.New("node is not a child of parent")

	// ErrHierarchy is returned when an insertion would make a node its own ancestor.
	ErrHierarchy = errors.New("node can't be inserted into its own subtree")

	// ErrNodeType is returned when an element operation is applied to a text node or vice versa.
	ErrNodeType = errors.New("wrong node type")
)

// Node is an element or text node.
type Node struct {
	id       int
	tag      string
	text     string
	isText   bool
	attrs    map[string]string
	props    map[string]any
	style    map[string]string
	parent   *Node
	children []*Node
}

// ID returns the sequential ID of n.
func (n *Node) ID() int { return n.id }

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.isText }

// Tag returns the tag of an element or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the content of a text node.
func (n *Node) Text() string { return n.text }

// Attr returns the value of an attribute.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attrs returns a copy of all attributes.
func (n *Node) Attrs() map[string]string { return maps.Clone(n.attrs) }

// Prop returns the value of a live property.
func (n *Node) Prop(name string) (any, bool) {
	v, ok := n.props[name]
	return v, ok
}

// Style returns the value of a style property.
func (n *Node) Style(name string) (string, bool) {
	v, ok := n.style[name]
	return v, ok
}

// Parent returns the parent of n or nil if n is detached.
func (n *Node) Parent() *Node { return n.parent }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// Children returns the children of n.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// String returns a short description of n, e.g. li@3 for an element or "hello"@4 for a text node.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.isText {
		return strconv.Quote(n.text) + "@" + strconv.Itoa(n.id)
	}
	return n.tag + "@" + strconv.Itoa(n.id)
}

func (n *Node) indexOf(child *Node) int {
	return slices.Index(n.children, child)
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	i := p.indexOf(n)
	p.children = slices.Delete(p.children, i, i+1)
	n.parent = nil
}

// contains reports whether other is n or a descendant of n.
func (n *Node) contains(other *Node) bool {
	for ; other != nil; other = other.parent {
		if other == n {
			return true
		}
	}
	return false
}

// Document creates and mutates nodes. It implements vdom.Adapter[*Node].
//
// A Document is not safe for concurrent use.
type Document struct {
	nextID int
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Created returns the number of nodes created so far.
func (d *Document) Created() int { return d.nextID }

func (d *Document) newNode() *Node {
	d.nextID++
	return &Node{id: d.nextID}
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) (*Node, error) {
	if tag == "" {
		return nil, errors.New("create element: empty tag")
	}
	n := d.newNode()
	n.tag = tag
	return n, nil
}

// CreateText returns a new detached text node.
func (d *Document) CreateText(text string) (*Node, error) {
	n := d.newNode()
	n.isText = true
	n.text = text
	return n, nil
}

func element(op string, n *Node) error {
	if n == nil || n.isText {
		return fmt.Errorf("%s %v: %w", op, n, ErrNodeType)
	}
	return nil
}

// SetAttribute sets an attribute of an element.
func (d *Document) SetAttribute(n *Node, name, value string) error {
	if err := element("set attribute", n); err != nil {
		return err
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	return nil
}

// RemoveAttribute removes an attribute of an element.
func (d *Document) RemoveAttribute(n *Node, name string) error {
	if err := element("remove attribute", n); err != nil {
		return err
	}
	delete(n.attrs, name)
	return nil
}

// SetProperty assigns a live property of an element. A nil value resets the property.
func (d *Document) SetProperty(n *Node, name string, value any) error {
	if err := element("set property", n); err != nil {
		return err
	}
	if value == nil {
		delete(n.props, name)
		return nil
	}
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
	return nil
}

// SetStyle sets a style property of an element.
func (d *Document) SetStyle(n *Node, name, value string) error {
	if err := element("set style", n); err != nil {
		return err
	}
	if n.style == nil {
		n.style = make(map[string]string)
	}
	n.style[name] = value
	return nil
}

// RemoveStyle removes a style property of an element.
func (d *Document) RemoveStyle(n *Node, name string) error {
	if err := element("remove style", n); err != nil {
		return err
	}
	delete(n.style, name)
	return nil
}

// SetText replaces the content of a text node.
func (d *Document) SetText(n *Node, text string) error {
	if n == nil || !n.isText {
		return fmt.Errorf("set text %v: %w", n, ErrNodeType)
	}
	n.text = text
	return nil
}

// AppendChild appends child to the children of parent. If child is attached, it's moved.
func (d *Document) AppendChild(parent, child *Node) error {
	if err := d.checkInsert("append child", parent, child); err != nil {
		return err
	}
	child.detach()
	child.parent = parent
	parent.children = append(parent.children, child)
	return nil
}

// InsertBefore inserts child into the children of parent before anchor. If child is attached,
// it's moved.
func (d *Document) InsertBefore(parent, child, anchor *Node) error {
	if err := d.checkInsert("insert before", parent, child); err != nil {
		return err
	}
	if anchor == nil || anchor.parent != parent {
		return fmt.Errorf("insert before %v: anchor %v: %w", parent, anchor, ErrNotChild)
	}
	if child == anchor {
		return nil
	}
	child.detach()
	child.parent = parent
	i := parent.indexOf(anchor)
	parent.children = slices.Insert(parent.children, i, child)
	return nil
}

// RemoveChild detaches child from parent.
func (d *Document) RemoveChild(parent, child *Node) error {
	if parent == nil || child == nil || child.parent != parent {
		return fmt.Errorf("remove child %v from %v: %w", child, parent, ErrNotChild)
	}
	child.detach()
	return nil
}

func (d *Document) checkInsert(op string, parent, child *Node) error {
	if err := element(op, parent); err != nil {
		return err
	}
	if child == nil {
		return fmt.Errorf("%s %v: nil child: %w", op, parent, ErrNodeType)
	}
	if child.contains(parent) {
		return fmt.Errorf("%s %v into %v: %w", op, child, parent, ErrHierarchy)
	}
	return nil
}
