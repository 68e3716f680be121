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

// Package scenario reads, runs and writes render scenarios.
//
// A scenario is a txtar archive that describes a single patch. The archive comment describes the
// scenario, the files are sections:
//
//	-- old --     yaml tree that is rendered first (empty for nothing)
//	-- new --     yaml tree that the first tree is patched to (empty for nothing)
//	-- ops --     adapter calls of the patch, one per line
//	-- html --    the host tree after the patch
//	-- errors --  errors reported by the patch, one per line (optional)
//
// Lines of the archive comment that start with '#' are pragmas that configure the renderer:
//
//	#strict-keys: true
//	#dom-properties: value, checked
//
// A yaml tree node is a mapping with the fields tag, text, key, attrs, style, class, kind and
// children. A node without a tag is a text node, a scalar is shorthand for a text node. A null
// child is skipped, but keeps its position.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
	"znkr.io/vdom"
	"znkr.io/vdom/memtree"
	"znkr.io/vdom/vdomtest"
)

// Node is the yaml description of a VNode.
type Node struct {
	Kind     string            `yaml:"kind,omitempty"`
	Tag      string            `yaml:"tag,omitempty"`
	Text     string            `yaml:"text,omitempty"`
	Key      string            `yaml:"key,omitempty"`
	Attrs    map[string]any    `yaml:"attrs,omitempty"`
	Style    map[string]string `yaml:"style,omitempty"`
	Class    string            `yaml:"class,omitempty"`
	Children []*Node           `yaml:"children,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		n.Text = value.Value
		return nil
	}
	type plain Node
	return value.Decode((*plain)(n))
}

func (n *Node) kind() string {
	switch {
	case n.Kind != "":
		return n.Kind
	case n.Tag == "":
		return "text"
	default:
		return "element"
	}
}

// Build returns the VNode described by n. A nil node results in a nil VNode.
func (n *Node) Build() (*vdom.VNode, error) {
	if n == nil {
		return nil, nil
	}
	children := make([]any, len(n.Children))
	for i, c := range n.Children {
		v, err := c.Build()
		if err != nil {
			return nil, err
		}
		if v != nil {
			children[i] = v
		}
	}

	switch kind := n.kind(); kind {
	case "text":
		return vdom.Text(n.Text), nil
	case "element":
		return vdom.Build(n.Tag, n.attrs(), children), nil
	case "fragment":
		return vdom.Fragment(children), nil
	case "component":
		return vdom.Component(n.Tag, n.attrs()), nil
	case "teleport":
		return vdom.Teleport(n.Tag, children), nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}
}

func (n *Node) attrs() vdom.Attrs {
	attrs := make(vdom.Attrs, len(n.Attrs)+3)
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	if n.Key != "" {
		attrs["key"] = n.Key
	}
	if n.Style != nil {
		attrs["style"] = n.Style
	}
	if n.Class != "" {
		attrs["class"] = n.Class
	}
	return attrs
}

// Scenario is a single patch with its expected outcome.
type Scenario struct {
	Name    string
	Comment []byte
	Old     *Node
	New     *Node
	Ops     []string
	HTML    string
	Errors  []string

	opts           []vdom.Option
	oldSrc, newSrc []byte
}

// Parse parses a scenario archive.
func Parse(name string, data []byte) (*Scenario, error) {
	ar := txtar.Parse(data)
	s := &Scenario{Name: name, Comment: ar.Comment}
	opts, err := parsePragmas(ar.Comment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	s.opts = opts
	var hasNew bool
	for _, f := range ar.Files {
		var err error
		switch f.Name {
		case "old":
			s.oldSrc = f.Data
			s.Old, err = parseTree(f.Data)
		case "new":
			hasNew = true
			s.newSrc = f.Data
			s.New, err = parseTree(f.Data)
		case "ops":
			s.Ops = lines(f.Data)
		case "html":
			s.HTML = strings.TrimSuffix(string(f.Data), "\n")
		case "errors":
			s.Errors = lines(f.Data)
		default:
			err = fmt.Errorf("unknown section %q", f.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	if !hasNew {
		return nil, fmt.Errorf("%s: missing section %q", name, "new")
	}
	return s, nil
}

// Load reads and parses a scenario file.
func Load(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(filepath.Base(filename), data)
}

func parsePragmas(comment []byte) ([]vdom.Option, error) {
	var opts []vdom.Option
	for _, line := range lines(comment) {
		line, ok := strings.CutPrefix(line, "#")
		if !ok {
			continue
		}
		k, v, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("missing ':' in pragma line %q", line)
		}
		switch k, v := strings.TrimSpace(k), strings.TrimSpace(v); k {
		case "strict-keys":
			switch v {
			case "true":
				opts = append(opts, vdom.StrictKeys())
			case "false":
				// do nothing
			default:
				return nil, fmt.Errorf("invalid value for strict-keys: %q", v)
			}
		case "dom-properties":
			var names []string
			for name := range strings.SplitSeq(v, ",") {
				if name = strings.TrimSpace(name); name != "" {
					names = append(names, name)
				}
			}
			opts = append(opts, vdom.DOMProperties(names...))
		default:
			return nil, fmt.Errorf("unknown pragma %q", k)
		}
	}
	return opts, nil
}

func parseTree(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var n *Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("failed to parse tree: %w", err)
	}
	return n, nil
}

func lines(data []byte) []string {
	s := strings.TrimSuffix(string(data), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func joinLines(ls []string) []byte {
	if len(ls) == 0 {
		return nil
	}
	return []byte(strings.Join(ls, "\n") + "\n")
}

// Format returns s as a txtar archive. The trees are written as they were parsed.
func (s *Scenario) Format() ([]byte, error) {
	oldSrc, err := source(s.oldSrc, s.Old)
	if err != nil {
		return nil, err
	}
	newSrc, err := source(s.newSrc, s.New)
	if err != nil {
		return nil, err
	}
	ar := &txtar.Archive{
		Comment: s.Comment,
		Files: []txtar.File{
			{Name: "old", Data: oldSrc},
			{Name: "new", Data: newSrc},
			{Name: "ops", Data: joinLines(s.Ops)},
			{Name: "html", Data: []byte(s.HTML + "\n")},
		},
	}
	if len(s.Errors) > 0 {
		ar.Files = append(ar.Files, txtar.File{Name: "errors", Data: joinLines(s.Errors)})
	}
	return txtar.Format(ar), nil
}

func source(src []byte, n *Node) ([]byte, error) {
	if src != nil || n == nil {
		return src, nil
	}
	data, err := yaml.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to format tree: %w", err)
	}
	return data, nil
}

// Result is the outcome of running a scenario.
type Result struct {
	Ops    []string
	HTML   string
	Errors []string
	Stats  vdom.Stats
}

// Update replaces the expected outcome of s with res.
func (s *Scenario) Update(res *Result) {
	s.Ops = res.Ops
	s.HTML = res.HTML
	s.Errors = res.Errors
}

// Run renders the old tree into an empty memtree document and patches it to the new tree. The
// result describes the patch only. The options are applied after the pragmas of the scenario.
//
// Errors of the patch are part of the result. Run only returns an error if a tree is invalid or
// if rendering the old tree fails.
func (s *Scenario) Run(opts ...vdom.Option) (*Result, error) {
	oldTree, err := s.Old.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: old: %w", s.Name, err)
	}
	newTree, err := s.New.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: new: %w", s.Name, err)
	}

	doc := memtree.NewDocument()
	body, err := doc.CreateElement("body")
	if err != nil {
		return nil, err
	}
	rec := vdomtest.NewRecorder[*memtree.Node](doc)
	r := vdom.NewRenderer[*memtree.Node](rec, append(slices.Clone(s.opts), opts...)...)
	mp := vdom.NewMountPoint(body)

	if err := r.Render(oldTree, mp); err != nil && mp.Tree() == nil {
		return nil, fmt.Errorf("%s: rendering old tree: %w", s.Name, err)
	}
	rec.Reset()
	err = r.Render(newTree, mp)
	return &Result{
		Ops:    rec.Lines(),
		HTML:   body.InnerHTML(),
		Errors: errorLines(err),
		Stats:  mp.Stats(),
	}, nil
}

func errorLines(err error) []string {
	if err == nil {
		return nil
	}
	errs := []error{err}
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		errs = u.Unwrap()
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

// LoadDir loads all scenarios matching dir/*.test.
func LoadDir(dir string) ([]*Scenario, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.test"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no scenarios found in " + dir)
	}
	var out []*Scenario
	for _, f := range files {
		s, err := Load(f)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
