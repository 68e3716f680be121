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
	"context"
	"errors"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"znkr.io/vdom/internal/config"
)

// Rendered pairs a [VNode] with the host node it was rendered to.
//
// A Rendered tree mirrors the VNode tree it was created from: the i-th child of a Rendered node
// belongs to the i-th child of its VNode. Nodes that couldn't be rendered (see [ShapeError]) are
// part of the tree, but they are not mounted.
type Rendered[N any] struct {
	vnode    *VNode
	key      Key
	node     N
	mounted  bool
	holes    bool // some descendant isn't mounted
	children []*Rendered[N]
}

// VNode returns the VNode that was rendered.
func (r *Rendered[N]) VNode() *VNode { return r.vnode }

// Key returns the key of the child slot r occupies in its parent.
func (r *Rendered[N]) Key() Key { return r.key }

// Node returns the host node or the zero value if r isn't mounted.
func (r *Rendered[N]) Node() N { return r.node }

// Mounted reports whether r has a host node.
func (r *Rendered[N]) Mounted() bool { return r.mounted }

// Len returns the number of children of r.
func (r *Rendered[N]) Len() int { return len(r.children) }

// Child returns the i-th child of r.
func (r *Rendered[N]) Child(i int) *Rendered[N] { return r.children[i] }

// Children returns the children of r.
func (r *Rendered[N]) Children() []*Rendered[N] { return slices.Clone(r.children) }

// All returns r and all its descendants in depth-first pre-order.
func (r *Rendered[N]) All() iter.Seq[*Rendered[N]] {
	return func(yield func(*Rendered[N]) bool) {
		r.walk(yield)
	}
}

func (r *Rendered[N]) walk(yield func(*Rendered[N]) bool) bool {
	if !yield(r) {
		return false
	}
	for _, c := range r.children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// MountPoint is a host node that a virtual tree is rendered into.
//
// A mount point remembers the tree rendered into it last, which is the starting point for the
// next render. Only one render may run on a mount point at any time.
type MountPoint[N any] struct {
	node  N
	tree  *Rendered[N]
	stale []N // root host nodes left behind by aborted passes
	stats Stats
	busy  atomic.Bool
}

// NewMountPoint returns a mount point for the given host node.
func NewMountPoint[N any](node N) *MountPoint[N] {
	return &MountPoint[N]{node: node}
}

// Node returns the host node of the mount point.
func (m *MountPoint[N]) Node() N { return m.node }

// Tree returns the currently rendered tree or nil if nothing is rendered.
func (m *MountPoint[N]) Tree() *Rendered[N] { return m.tree }

// Stats returns the statistics of the last render pass.
func (m *MountPoint[N]) Stats() Stats { return m.stats }

// Renderer reconciles virtual trees with a host tree.
type Renderer[N any] struct {
	host Adapter[N]
	cfg  config.Config
}

// NewRenderer returns a renderer that uses host to mutate the host tree.
func NewRenderer[N any](host Adapter[N], opts ...Option) *Renderer[N] {
	return &Renderer[N]{
		host: host,
		cfg:  config.FromOptions(opts),
	}
}

// Render is shorthand for RenderContext(context.Background(), v, mp).
func (r *Renderer[N]) Render(v *VNode, mp *MountPoint[N]) error {
	return r.RenderContext(context.Background(), v, mp)
}

// RenderContext makes the host tree below mp match v.
//
//   - If nothing was rendered into mp before, v is mounted.
//   - If v is nil, the previously rendered tree is removed.
//   - Otherwise, the previously rendered tree is patched to match v, reusing host nodes wherever
//     the kind, tag and key of a node didn't change.
//
// A render pass always runs to completion, ctx is only passed on to observers.
//
// Subtrees that can't be rendered are skipped; the pass continues and the returned error joins
// one [*ShapeError] per skipped subtree. An [*AdapterError] or a [*KeyError] aborts the pass. In
// that case, the host tree is left as is and mp forgets the previous tree, the next render mounts
// from scratch. The host node of the previous root stays attached until then: the next mount
// inserts the new root in its place and removes it, rendering nil removes it.
//
// RenderContext returns [ErrConcurrentRender] if another render on mp is in progress.
func (r *Renderer[N]) RenderContext(ctx context.Context, v *VNode, mp *MountPoint[N]) error {
	if !mp.busy.CompareAndSwap(false, true) {
		return ErrConcurrentRender
	}
	defer mp.busy.Store(false)

	p := &pass[N]{
		ctx:  ctx,
		host: r.host,
		cfg:  &r.cfg,
		log:  r.cfg.Logger,
	}
	p.stats.Start = time.Now()
	tree, err := p.run(v, mp)
	p.stats.Duration = time.Since(p.stats.Start)
	p.stats.Errors = len(p.errs)

	if err != nil {
		if old := mp.tree; old != nil && old.mounted {
			mp.stale = append(mp.stale, old.node)
		}
		mp.tree = nil
		p.log.ErrorContext(ctx, "render pass aborted", "err", err)
	} else {
		mp.tree = tree
		err = errors.Join(p.errs...)
	}
	mp.stats = p.stats
	p.log.DebugContext(ctx, "render pass done",
		"mode", p.mode,
		"mounted", p.stats.Mounted,
		"created", p.stats.Created,
		"patched", p.stats.Patched,
		"replaced", p.stats.Replaced,
		"moved", p.stats.Moved,
		"removed", p.stats.Removed,
		"errors", p.stats.Errors,
		"duration", p.stats.Duration,
	)

	for _, o := range r.cfg.Observers {
		o.ObserveRender(ctx, p.stats, err)
	}
	return err
}

// pass holds the state of a single render pass.
type pass[N any] struct {
	ctx   context.Context
	host  Adapter[N]
	cfg   *config.Config
	log   *slog.Logger
	mode  string // "mount", "patch", "unmount" or "noop"
	stats Stats
	errs  []error // errors that didn't abort the pass
	path  []int   // child indexes of the node being processed
}

func (p *pass[N]) run(v *VNode, mp *MountPoint[N]) (*Rendered[N], error) {
	old := mp.tree
	switch {
	case old == nil && v == nil && len(mp.stale) > 0:
		p.mode = "unmount"
		return nil, p.removeStale(mp)
	case old == nil && v == nil:
		p.mode = "noop"
		return nil, nil
	case old == nil:
		p.mode = "mount"
		var before *Rendered[N]
		if len(mp.stale) > 0 {
			before = &Rendered[N]{node: mp.stale[0], mounted: true}
		}
		r, err := p.mount(v, Key{}, mp.node, before)
		if err != nil {
			return nil, err
		}
		if err := p.removeStale(mp); err != nil {
			if r.mounted {
				mp.stale = append(mp.stale, r.node)
			}
			return nil, err
		}
		return r, nil
	case v == nil:
		p.mode = "unmount"
		return nil, p.remove(mp.node, old)
	default:
		p.mode = "patch"
		return p.patch(old, v, Key{}, mp.node)
	}
}

// removeStale removes the root host nodes left behind by aborted passes.
func (p *pass[N]) removeStale(mp *MountPoint[N]) error {
	for len(mp.stale) > 0 {
		if err := p.host.RemoveChild(mp.node, mp.stale[0]); err != nil {
			return p.adapterError("RemoveChild", err)
		}
		p.stats.Removed++
		mp.stale = mp.stale[1:]
	}
	return nil
}

func (p *pass[N]) enter(i int) { p.path = append(p.path, i) }
func (p *pass[N]) leave()      { p.path = p.path[:len(p.path)-1] }

func (p *pass[N]) pathString() string {
	if len(p.path) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, i := range p.path {
		sb.WriteRune('/')
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}

func (p *pass[N]) adapterError(op string, err error) error {
	return &AdapterError{Op: op, Path: p.pathString(), Err: err}
}

// unsupported records a skipped subtree.
func (p *pass[N]) unsupported(v *VNode) {
	err := &ShapeError{Op: "mount", Kind: v.kind, Path: p.pathString()}
	p.log.WarnContext(p.ctx, "skipping subtree", "err", err)
	p.errs = append(p.errs, err)
}
