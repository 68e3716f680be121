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

// patchProps applies the difference between the attribute bags prev and next to a host node. A
// nil prev applies all of next.
func (p *pass[N]) patchProps(node N, prev, next Attrs) error {
	for _, name := range sortedKeys(next) {
		val := next[name]
		if propsEqual(prev[name], val) {
			continue
		}
		if err := p.patchProp(node, name, prev[name], val); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(prev) {
		if _, ok := next[name]; ok || prev[name] == nil {
			continue
		}
		if err := p.patchProp(node, name, prev[name], nil); err != nil {
			return err
		}
	}
	return nil
}

// patchProp updates a single attribute from prev to next. A nil value means absent.
func (p *pass[N]) patchProp(node N, name string, prev, next any) error {
	switch {
	case name == "key":
		return nil
	case name == "style":
		prevStyle, _ := prev.(Style)
		nextStyle, _ := next.(Style)
		return p.patchStyle(node, prevStyle, nextStyle)
	case p.cfg.DOMProperties[name]:
		if err := p.host.SetProperty(node, name, next); err != nil {
			return p.adapterError("SetProperty", err)
		}
		if next == nil {
			p.stats.AttrsRemoved++
		} else {
			p.stats.AttrsSet++
		}
		return nil
	}

	prevStr, prevSet := attrValue(prev)
	nextStr, nextSet := attrValue(next)
	switch {
	case nextSet && (!prevSet || prevStr != nextStr):
		if err := p.host.SetAttribute(node, name, nextStr); err != nil {
			return p.adapterError("SetAttribute", err)
		}
		p.stats.AttrsSet++
	case !nextSet && prevSet:
		if err := p.host.RemoveAttribute(node, name); err != nil {
			return p.adapterError("RemoveAttribute", err)
		}
		p.stats.AttrsRemoved++
	}
	return nil
}

// attrValue returns the string written to the host for an attribute value and whether the
// attribute is present at all. Booleans follow HTML semantics: true is present and empty, false
// is absent.
func attrValue(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case bool:
		return "", v
	default:
		return propToString(v), true
	}
}

// patchStyle merges style properties. Only changed properties are written.
func (p *pass[N]) patchStyle(node N, prev, next Style) error {
	for _, name := range sortedKeys(next) {
		val := next[name]
		if old, ok := prev[name]; ok && old == val {
			continue
		}
		if err := p.host.SetStyle(node, name, val); err != nil {
			return p.adapterError("SetStyle", err)
		}
		p.stats.AttrsSet++
	}
	for _, name := range sortedKeys(prev) {
		if _, ok := next[name]; ok {
			continue
		}
		if err := p.host.RemoveStyle(node, name); err != nil {
			return p.adapterError("RemoveStyle", err)
		}
		p.stats.AttrsRemoved++
	}
	return nil
}
