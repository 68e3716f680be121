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

// Package vdomtest provides test helpers for code that uses [vdom.Renderer].
package vdomtest

import (
	"fmt"
	"strconv"
	"strings"

	"znkr.io/vdom"
)

// Op identifies an adapter primitive.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op -trimprefix=Op
type Op int

const (
	OpCreateElement Op = iota
	OpCreateText
	OpSetAttribute
	OpRemoveAttribute
	OpSetProperty
	OpSetStyle
	OpRemoveStyle
	OpSetText
	OpAppendChild
	OpInsertBefore
	OpRemoveChild
)

// Recorder decorates an adapter and records every call.
//
// Each call is recorded as a line with the name of the primitive followed by its arguments, e.g.
// "InsertBefore ul@1 li@4 li@2". Nodes are formatted with %v, so the recorded lines are most
// useful with a node type that has a String method.
type Recorder[N any] struct {
	host     vdom.Adapter[N]
	lines    []string
	counts   [OpRemoveChild + 1]int
	failures map[Op]failure
}

type failure struct {
	nth int
	err error
}

var _ vdom.Adapter[any] = (*Recorder[any])(nil)

// NewRecorder returns a recorder that delegates to host.
func NewRecorder[N any](host vdom.Adapter[N]) *Recorder[N] {
	return &Recorder[N]{host: host}
}

// Lines returns the recorded calls.
func (r *Recorder[N]) Lines() []string {
	return append([]string(nil), r.lines...)
}

// String returns the recorded calls, one per line.
func (r *Recorder[N]) String() string {
	var sb strings.Builder
	for _, l := range r.lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Count returns the number of recorded calls of the given primitives. Without arguments, it
// returns the number of all recorded calls.
func (r *Recorder[N]) Count(ops ...Op) int {
	if len(ops) == 0 {
		return len(r.lines)
	}
	n := 0
	for _, op := range ops {
		n += r.counts[op]
	}
	return n
}

// Mutations returns the number of recorded calls that change the host tree structure or the
// content of a node, i.e. all calls except CreateElement and CreateText.
func (r *Recorder[N]) Mutations() int {
	return len(r.lines) - r.counts[OpCreateElement] - r.counts[OpCreateText]
}

// Reset forgets all recorded calls. Failures registered with FailOn stay in place, but their
// call count restarts.
func (r *Recorder[N]) Reset() {
	r.lines = nil
	r.counts = [OpRemoveChild + 1]int{}
}

// FailOn makes the nth call (starting at 1) of op fail with err instead of reaching the
// decorated adapter. Calls are counted from the last Reset.
func (r *Recorder[N]) FailOn(op Op, nth int, err error) {
	if r.failures == nil {
		r.failures = make(map[Op]failure)
	}
	r.failures[op] = failure{nth: nth, err: err}
}

// record logs a call and returns the error registered for it, if any.
func (r *Recorder[N]) record(op Op, args ...any) error {
	r.counts[op]++
	var sb strings.Builder
	sb.WriteString(op.String())
	for _, a := range args {
		sb.WriteByte(' ')
		sb.WriteString(formatArg(a))
	}
	if f, ok := r.failures[op]; ok && f.nth == r.counts[op] {
		sb.WriteString(" !")
		r.lines = append(r.lines, sb.String())
		return f.err
	}
	r.lines = append(r.lines, sb.String())
	return nil
}

func formatArg(a any) string {
	switch a := a.(type) {
	case string:
		return strconv.Quote(a)
	case fmt.Stringer:
		return a.String()
	default:
		return fmt.Sprint(a)
	}
}

// named is an argument that is written without quotes.
type named string

func (n named) String() string { return string(n) }

func (r *Recorder[N]) CreateElement(tag string) (N, error) {
	if err := r.record(OpCreateElement, named(tag)); err != nil {
		var zero N
		return zero, err
	}
	n, err := r.host.CreateElement(tag)
	if err == nil {
		r.lines[len(r.lines)-1] += " => " + formatArg(n)
	}
	return n, err
}

func (r *Recorder[N]) CreateText(text string) (N, error) {
	if err := r.record(OpCreateText, text); err != nil {
		var zero N
		return zero, err
	}
	n, err := r.host.CreateText(text)
	if err == nil {
		r.lines[len(r.lines)-1] += " => " + formatArg(n)
	}
	return n, err
}

func (r *Recorder[N]) SetAttribute(n N, name, value string) error {
	if err := r.record(OpSetAttribute, n, named(name), value); err != nil {
		return err
	}
	return r.host.SetAttribute(n, name, value)
}

func (r *Recorder[N]) RemoveAttribute(n N, name string) error {
	if err := r.record(OpRemoveAttribute, n, named(name)); err != nil {
		return err
	}
	return r.host.RemoveAttribute(n, name)
}

func (r *Recorder[N]) SetProperty(n N, name string, value any) error {
	if err := r.record(OpSetProperty, n, named(name), value); err != nil {
		return err
	}
	return r.host.SetProperty(n, name, value)
}

func (r *Recorder[N]) SetStyle(n N, name, value string) error {
	if err := r.record(OpSetStyle, n, named(name), value); err != nil {
		return err
	}
	return r.host.SetStyle(n, name, value)
}

func (r *Recorder[N]) RemoveStyle(n N, name string) error {
	if err := r.record(OpRemoveStyle, n, named(name)); err != nil {
		return err
	}
	return r.host.RemoveStyle(n, name)
}

func (r *Recorder[N]) SetText(n N, text string) error {
	if err := r.record(OpSetText, n, text); err != nil {
		return err
	}
	return r.host.SetText(n, text)
}

func (r *Recorder[N]) AppendChild(parent, child N) error {
	if err := r.record(OpAppendChild, parent, child); err != nil {
		return err
	}
	return r.host.AppendChild(parent, child)
}

func (r *Recorder[N]) InsertBefore(parent, child, anchor N) error {
	if err := r.record(OpInsertBefore, parent, child, anchor); err != nil {
		return err
	}
	return r.host.InsertBefore(parent, child, anchor)
}

func (r *Recorder[N]) RemoveChild(parent, child N) error {
	if err := r.record(OpRemoveChild, parent, child); err != nil {
		return err
	}
	return r.host.RemoveChild(parent, child)
}
