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
	"log/slog"

	"znkr.io/vdom/internal/lis"
)

// patchChildren reconciles the children of old with the children of next below parent.
func (p *pass[N]) patchChildren(old *Rendered[N], next *VNode, parent N) ([]*Rendered[N], error) {
	prev := old.children
	if next.shape == ShapeKeyed {
		if err := p.checkKeys(next); err != nil {
			return nil, err
		}
	}

	switch old.vnode.shape {
	case ShapeNone:
		switch next.shape {
		case ShapeNone:
			return nil, nil
		case ShapeSingle, ShapeKeyed:
			return p.mountAll(parent, next.children)
		}

	case ShapeSingle:
		switch next.shape {
		case ShapeNone:
			return nil, p.remove(parent, prev[0])
		case ShapeSingle:
			c := next.children[0]
			var (
				r   *Rendered[N]
				err error
			)
			if p.same(prev[0], c) {
				r, err = p.patchAt(0, prev[0], c, parent)
			} else {
				p.enter(0)
				r, err = p.replace(prev[0], c.node, c.key, parent)
				p.leave()
			}
			if err != nil {
				return nil, err
			}
			return []*Rendered[N]{r}, nil
		case ShapeKeyed:
			if err := p.remove(parent, prev[0]); err != nil {
				return nil, err
			}
			return p.mountAll(parent, next.children)
		}

	case ShapeKeyed:
		switch next.shape {
		case ShapeNone:
			return nil, p.removeAll(parent, prev)
		case ShapeSingle:
			if err := p.removeAll(parent, prev); err != nil {
				return nil, err
			}
			return p.mountAll(parent, next.children)
		case ShapeKeyed:
			return p.patchKeyed(prev, next.children, parent)
		}
	}
	panic("never reached")
}

// patchKeyed reconciles two keyed sibling lists.
//
// Children with a common prefix or suffix are patched in place. For the remaining range, old
// children are matched with new children by key. Of the matched children, those that are part of
// the longest subsequence that is already in order stay where they are, all others are moved.
func (p *pass[N]) patchKeyed(prev []*Rendered[N], next []child, parent N) ([]*Rendered[N], error) {
	out := make([]*Rendered[N], len(next))
	i, e1, e2 := 0, len(prev)-1, len(next)-1

	var err error
	for i <= e1 && i <= e2 && p.same(prev[i], next[i]) {
		if out[i], err = p.patchAt(i, prev[i], next[i], parent); err != nil {
			return nil, err
		}
		i++
	}
	for i <= e1 && i <= e2 && p.same(prev[e1], next[e2]) {
		if out[e2], err = p.patchAt(e2, prev[e1], next[e2], parent); err != nil {
			return nil, err
		}
		e1--
		e2--
	}

	switch {
	case i > e1:
		anchor := firstMounted(out[e2+1:])
		for j := i; j <= e2; j++ {
			if out[j], err = p.mountAt(j, next[j], parent, anchor); err != nil {
				return nil, err
			}
		}
		return out, nil

	case i > e2:
		return out, p.removeAll(parent, prev[i:e1+1])
	}

	s := i
	toPatch := e2 - s + 1
	keyToNew := make(map[Key]int, toPatch)
	for j := s; j <= e2; j++ {
		k := next[j].key
		if _, dup := keyToNew[k]; dup {
			p.log.WarnContext(p.ctx, "duplicate key", "key", k.String(), "path", p.pathString())
		}
		keyToNew[k] = j
	}

	// remap[t] is the old index + 1 of the child that new child s+t was matched with or 0.
	remap := make([]int, toPatch)
	patched := 0
	moved := false
	maxSoFar := 0
	for oi := s; oi <= e1; oi++ {
		o := prev[oi]
		if patched >= toPatch {
			if err := p.remove(parent, o); err != nil {
				return nil, err
			}
			continue
		}
		j, ok := keyToNew[o.key]
		if !ok || remap[j-s] != 0 || !p.same(o, next[j]) {
			if err := p.remove(parent, o); err != nil {
				return nil, err
			}
			continue
		}
		remap[j-s] = oi + 1
		if j >= maxSoFar {
			maxSoFar = j
		} else {
			moved = true
		}
		if out[j], err = p.patchAt(j, o, next[j], parent); err != nil {
			return nil, err
		}
		patched++
	}

	var stable []int
	if moved {
		stable = lis.Indices(remap)
	}
	if p.log.Enabled(p.ctx, slog.LevelDebug) {
		p.log.DebugContext(p.ctx, "keyed diff",
			"path", p.pathString(),
			"old", e1-s+1,
			"new", toPatch,
			"matched", patched,
			"moved", moved,
			"stable", len(stable),
		)
	}

	k := len(stable) - 1
	anchor := firstMounted(out[e2+1:])
	for t := toPatch - 1; t >= 0; t-- {
		j := s + t
		switch {
		case remap[t] == 0:
			if out[j], err = p.mountAt(j, next[j], parent, anchor); err != nil {
				return nil, err
			}
		case moved && (k < 0 || stable[k] != t):
			p.enter(j)
			err = p.move(parent, out[j], anchor)
			p.leave()
			if err != nil {
				return nil, err
			}
		case moved:
			k--
		}
		if out[j].mounted {
			anchor = out[j]
		}
	}
	return out, nil
}

// same reports whether old can be patched to match c.
func (p *pass[N]) same(old *Rendered[N], c child) bool {
	return old.mounted &&
		old.key == c.key &&
		old.vnode.kind == c.node.kind &&
		old.vnode.tag == c.node.tag
}

// checkKeys reports a duplicate user key among the children of v if [StrictKeys] is set.
func (p *pass[N]) checkKeys(v *VNode) error {
	if !p.cfg.StrictKeys || v.shape != ShapeKeyed {
		return nil
	}
	seen := make(map[Key]bool, len(v.children))
	for _, c := range v.children {
		if c.key.IsSynthetic() {
			continue
		}
		if seen[c.key] {
			return &KeyError{Key: c.key, Path: p.pathString()}
		}
		seen[c.key] = true
	}
	return nil
}

// firstMounted returns the first mounted node in rs or nil.
func firstMounted[N any](rs []*Rendered[N]) *Rendered[N] {
	for _, r := range rs {
		if r.mounted {
			return r
		}
	}
	return nil
}
