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

// patch updates the host tree rendered from old to match next and returns the new rendered tree.
func (p *pass[N]) patch(old *Rendered[N], next *VNode, key Key, parent N) (*Rendered[N], error) {
	if !old.mounted {
		// Placeholders have no host node to patch.
		return p.mount(next, key, parent, nil)
	}
	if old.vnode == next && !old.holes {
		if old.key == key {
			return old, nil
		}
		r := *old
		r.key = key
		return &r, nil
	}
	if old.vnode.kind != next.kind || old.vnode.tag != next.tag {
		return p.replace(old, next, key, parent)
	}

	switch next.kind {
	case KindElement:
		r := &Rendered[N]{vnode: next, key: key, node: old.node, mounted: true}
		if err := p.patchProps(old.node, old.vnode.attrs, next.attrs); err != nil {
			return nil, err
		}
		children, err := p.patchChildren(old, next, old.node)
		if err != nil {
			return nil, err
		}
		r.children = children
		r.holes = hasHoles(children)
		p.stats.Patched++
		return r, nil

	case KindText:
		if old.vnode.text != next.text {
			if err := p.host.SetText(old.node, next.text); err != nil {
				return nil, p.adapterError("SetText", err)
			}
			p.stats.TextsSet++
		}
		p.stats.Patched++
		return &Rendered[N]{vnode: next, key: key, node: old.node, mounted: true}, nil

	case KindComponent, KindFragment, KindTeleport:
		// Nodes of these kinds are never mounted.
		panic("never reached")

	default:
		panic("never reached")
	}
}

// patchAt patches the i-th child slot of a parent.
func (p *pass[N]) patchAt(i int, old *Rendered[N], c child, parent N) (*Rendered[N], error) {
	p.enter(i)
	defer p.leave()
	return p.patch(old, c.node, c.key, parent)
}

// replace mounts next in place of old.
func (p *pass[N]) replace(old *Rendered[N], next *VNode, key Key, parent N) (*Rendered[N], error) {
	r, err := p.mount(next, key, parent, old)
	if err != nil {
		return nil, err
	}
	if err := p.remove(parent, old); err != nil {
		return nil, err
	}
	p.stats.Replaced++
	return r, nil
}

// hasHoles reports whether any of the subtrees rs contains a node that isn't mounted.
func hasHoles[N any](rs []*Rendered[N]) bool {
	for _, r := range rs {
		if !r.mounted || r.holes {
			return true
		}
	}
	return false
}
