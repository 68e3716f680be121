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

// mount materializes v and inserts it into parent before the host node of before. If before is
// nil or not mounted, the new node is appended.
func (p *pass[N]) mount(v *VNode, key Key, parent N, before *Rendered[N]) (*Rendered[N], error) {
	r, err := p.create(v, key)
	if err != nil || !r.mounted {
		return r, err
	}
	if err := p.insert(parent, r.node, before); err != nil {
		return nil, err
	}
	p.stats.Mounted++
	return r, nil
}

// create materializes v into a detached host node.
func (p *pass[N]) create(v *VNode, key Key) (*Rendered[N], error) {
	r := &Rendered[N]{vnode: v, key: key}
	switch v.kind {
	case KindElement:
		if err := p.checkKeys(v); err != nil {
			return nil, err
		}
		node, err := p.host.CreateElement(v.tag)
		if err != nil {
			return nil, p.adapterError("CreateElement", err)
		}
		if err := p.patchProps(node, nil, v.attrs); err != nil {
			return nil, err
		}
		r.children = make([]*Rendered[N], len(v.children))
		for i, c := range v.children {
			p.enter(i)
			cr, err := p.create(c.node, c.key)
			if err == nil && cr.mounted {
				if err = p.host.AppendChild(node, cr.node); err != nil {
					err = p.adapterError("AppendChild", err)
				}
			}
			p.leave()
			if err != nil {
				return nil, err
			}
			r.children[i] = cr
		}
		r.node = node
		r.holes = hasHoles(r.children)

	case KindText:
		node, err := p.host.CreateText(v.text)
		if err != nil {
			return nil, p.adapterError("CreateText", err)
		}
		r.node = node

	case KindComponent, KindFragment, KindTeleport:
		p.unsupported(v)
		return r, nil

	default:
		panic("never reached")
	}
	r.mounted = true
	p.stats.Created++
	return r, nil
}

// mountAt mounts the i-th child slot of a parent.
func (p *pass[N]) mountAt(i int, c child, parent N, before *Rendered[N]) (*Rendered[N], error) {
	p.enter(i)
	defer p.leave()
	return p.mount(c.node, c.key, parent, before)
}

// mountAll appends all children to parent.
func (p *pass[N]) mountAll(parent N, children []child) ([]*Rendered[N], error) {
	out := make([]*Rendered[N], len(children))
	for i, c := range children {
		r, err := p.mountAt(i, c, parent, nil)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (p *pass[N]) insert(parent, node N, before *Rendered[N]) error {
	if before != nil && before.mounted {
		if err := p.host.InsertBefore(parent, node, before.node); err != nil {
			return p.adapterError("InsertBefore", err)
		}
		return nil
	}
	if err := p.host.AppendChild(parent, node); err != nil {
		return p.adapterError("AppendChild", err)
	}
	return nil
}

// move repositions an already mounted node.
func (p *pass[N]) move(parent N, r *Rendered[N], before *Rendered[N]) error {
	if !r.mounted {
		return nil
	}
	if err := p.insert(parent, r.node, before); err != nil {
		return err
	}
	p.stats.Moved++
	return nil
}

// remove detaches the host node of r from parent. The host nodes of descendants go with it.
func (p *pass[N]) remove(parent N, r *Rendered[N]) error {
	if !r.mounted {
		return nil
	}
	if err := p.host.RemoveChild(parent, r.node); err != nil {
		return p.adapterError("RemoveChild", err)
	}
	p.stats.Removed++
	return nil
}

func (p *pass[N]) removeAll(parent N, rs []*Rendered[N]) error {
	for _, r := range rs {
		if err := p.remove(parent, r); err != nil {
			return err
		}
	}
	return nil
}
