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

package scenario

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/vdom"
)

const listScenario = `Reorder a list.
-- old --
tag: ul
children:
  - {tag: li, key: a, children: [a]}
  - {tag: li, key: b, children: [b]}
-- new --
tag: ul
children:
  - {tag: li, key: b, children: [b]}
  - {tag: li, key: a, children: [a]}
-- ops --
InsertBefore ul@2 li@5 li@3
-- html --
<ul><li>b</li><li>a</li></ul>
`

func TestParse(t *testing.T) {
	s, err := Parse("list.test", []byte(listScenario))
	if err != nil {
		t.Fatal(err)
	}
	want := &Node{
		Tag: "ul",
		Children: []*Node{
			{Tag: "li", Key: "a", Children: []*Node{{Text: "a"}}},
			{Tag: "li", Key: "b", Children: []*Node{{Text: "b"}}},
		},
	}
	if diff := cmp.Diff(want, s.Old); diff != "" {
		t.Errorf("old tree is different [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"InsertBefore ul@2 li@5 li@3"}, s.Ops); diff != "" {
		t.Errorf("ops are different [-want,+got]:\n%s", diff)
	}
	if got, want := s.HTML, "<ul><li>b</li><li>a</li></ul>"; got != want {
		t.Errorf("HTML = %q, want %q", got, want)
	}
	if got, want := string(s.Comment), "Reorder a list.\n"; got != want {
		t.Errorf("Comment = %q, want %q", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "missing-new",
			data: "-- old --\n",
			want: `missing section "new"`,
		},
		{
			name: "unknown-section",
			data: "-- new --\n-- diff --\n",
			want: `unknown section "diff"`,
		},
		{
			name: "invalid-yaml",
			data: "-- new --\ntag: [\n",
			want: "failed to parse tree",
		},
		{
			name: "unknown-pragma",
			data: "#fast: true\n-- new --\n",
			want: `unknown pragma "fast"`,
		},
		{
			name: "invalid-pragma",
			data: "#strict-keys\n-- new --\n",
			want: "missing ':'",
		},
		{
			name: "invalid-pragma-value",
			data: "#strict-keys: maybe\n-- new --\n",
			want: "invalid value for strict-keys",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.name, []byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse(...) = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	s, err := Parse("list.test", []byte(listScenario))
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Format()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(listScenario, string(got)); diff != "" {
		t.Errorf("Format() is different [-want,+got]:\n%s", diff)
	}
}

func TestFormatConstructed(t *testing.T) {
	s := &Scenario{
		New:  &Node{Tag: "p", Children: []*Node{{Text: "hi"}}},
		Ops:  []string{"CreateElement p => p@2"},
		HTML: "<p>hi</p>",
	}
	data, err := s.Format()
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse("constructed", data)
	if err != nil {
		t.Fatalf("failed to parse formatted scenario: %v\n%s", err, data)
	}
	if back.Old != nil {
		t.Errorf("Old = %+v, want nil", back.Old)
	}
	if diff := cmp.Diff(s.New, back.New); diff != "" {
		t.Errorf("new tree is different [-want,+got]:\n%s", diff)
	}
}

func TestBuild(t *testing.T) {
	n := &Node{
		Tag:   "div",
		Key:   "k",
		Class: "box",
		Style: map[string]string{"color": "red"},
		Attrs: map[string]any{"id": "x", "hidden": true},
		Children: []*Node{
			{Text: "hello"},
			nil,
			{Tag: "span"},
		},
	}
	v, err := n.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v.Key().String(), "k"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
	if got, want := v.Shape(), vdom.ShapeKeyed; got != want {
		t.Errorf("Shape() = %v, want %v", got, want)
	}
	if got, want := v.Len(), 2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	// The nil child keeps its position.
	if got, want := v.ChildKey(1).String(), "#2"; got != want {
		t.Errorf("ChildKey(1) = %q, want %q", got, want)
	}
	wantAttrs := map[string]any{
		"class":  "box",
		"style":  vdom.Style{"color": "red"},
		"id":     "x",
		"hidden": true,
	}
	if diff := cmp.Diff(wantAttrs, maps.Collect(v.Attrs())); diff != "" {
		t.Errorf("Attrs() are different [-want,+got]:\n%s", diff)
	}
}

func TestBuildKinds(t *testing.T) {
	tests := []struct {
		node *Node
		want vdom.Kind
	}{
		{&Node{Text: "x"}, vdom.KindText},
		{&Node{Tag: "p"}, vdom.KindElement},
		{&Node{Kind: "fragment"}, vdom.KindFragment},
		{&Node{Kind: "component", Tag: "Widget"}, vdom.KindComponent},
		{&Node{Kind: "teleport", Tag: "#modal"}, vdom.KindTeleport},
	}
	for _, tt := range tests {
		v, err := tt.node.Build()
		if err != nil {
			t.Fatal(err)
		}
		if v.Kind() != tt.want {
			t.Errorf("Build(%+v).Kind() = %v, want %v", tt.node, v.Kind(), tt.want)
		}
	}

	if _, err := (&Node{Kind: "portal"}).Build(); err == nil {
		t.Error("Build() with unknown kind succeeded, want error")
	}
}

func TestRun(t *testing.T) {
	s, err := Parse("list.test", []byte(listScenario))
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s.Ops, got.Ops); diff != "" {
		t.Errorf("ops are different [-want,+got]:\n%s", diff)
	}
	if got.HTML != s.HTML {
		t.Errorf("HTML = %q, want %q", got.HTML, s.HTML)
	}
	if got.Stats.Moved != 1 || got.Stats.Patched != 5 {
		t.Errorf("Stats = %+v, want 1 move and 5 patches", got.Stats)
	}
}

func TestRunOptions(t *testing.T) {
	const data = `#dom-properties: draft
-- old --
{tag: input, attrs: {draft: a}}
-- new --
{tag: input, attrs: {draft: b}}
`
	s, err := Parse("props", []byte(data))
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Run()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{`SetProperty input@2 draft "b"`}, got.Ops); diff != "" {
		t.Errorf("ops are different [-want,+got]:\n%s", diff)
	}

	got, err = s.Run(vdom.StrictKeys())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Errors) != 0 {
		t.Errorf("Errors = %q, want none", got.Errors)
	}
}

func TestRunInvalidTree(t *testing.T) {
	s := &Scenario{Name: "bad", New: &Node{Kind: "portal"}}
	if _, err := s.Run(); err == nil {
		t.Error("Run() succeeded, want error")
	}
}

func TestErrorLines(t *testing.T) {
	if got := errorLines(nil); got != nil {
		t.Errorf("errorLines(nil) = %q, want nil", got)
	}
	err := errors.Join(errors.New("a"), errors.New("b"))
	if diff := cmp.Diff([]string{"a", "b"}, errorLines(err)); diff != "" {
		t.Errorf("errorLines(...) is different [-want,+got]:\n%s", diff)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadDir(dir); err == nil {
		t.Error("LoadDir(empty) succeeded, want error")
	}
	if err := os.WriteFile(filepath.Join(dir, "list.test"), []byte(listScenario), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "list.test" {
		t.Errorf("LoadDir(...) = %v, want a single scenario named list.test", got)
	}
}
