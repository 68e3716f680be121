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

package vdomtest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/vdom/memtree"
)

func TestRecorder(t *testing.T) {
	rec := NewRecorder[*memtree.Node](memtree.NewDocument())

	ul, err := rec.CreateElement("ul")
	if err != nil {
		t.Fatal(err)
	}
	li, err := rec.CreateElement("li")
	if err != nil {
		t.Fatal(err)
	}
	txt, err := rec.CreateText("a")
	if err != nil {
		t.Fatal(err)
	}
	for _, err := range []error{
		rec.SetAttribute(li, "id", "x"),
		rec.SetProperty(li, "value", 1),
		rec.SetStyle(li, "color", "red"),
		rec.AppendChild(li, txt),
		rec.SetText(txt, "b"),
		rec.AppendChild(ul, li),
		rec.RemoveStyle(li, "color"),
		rec.RemoveAttribute(li, "id"),
		rec.RemoveChild(ul, li),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		`CreateElement ul => ul@1`,
		`CreateElement li => li@2`,
		`CreateText "a" => "a"@3`,
		`SetAttribute li@2 id "x"`,
		`SetProperty li@2 value 1`,
		`SetStyle li@2 color "red"`,
		`AppendChild li@2 "a"@3`,
		`SetText "a"@3 "b"`,
		`AppendChild ul@1 li@2`,
		`RemoveStyle li@2 color`,
		`RemoveAttribute li@2 id`,
		`RemoveChild ul@1 li@2`,
	}
	if diff := cmp.Diff(want, rec.Lines()); diff != "" {
		t.Errorf("Lines() result is different [-want,+got]:\n%s", diff)
	}
	if got := rec.Count(); got != len(want) {
		t.Errorf("Count() = %d, want %d", got, len(want))
	}
	if got := rec.Count(OpCreateElement, OpCreateText); got != 3 {
		t.Errorf("Count(OpCreateElement, OpCreateText) = %d, want 3", got)
	}
	if got := rec.Count(OpAppendChild); got != 2 {
		t.Errorf("Count(OpAppendChild) = %d, want 2", got)
	}
	if got := rec.Mutations(); got != 9 {
		t.Errorf("Mutations() = %d, want 9", got)
	}

	rec.Reset()
	if got := rec.Count(); got != 0 {
		t.Errorf("Count() after Reset = %d, want 0", got)
	}
	if rec.String() != "" {
		t.Errorf("String() after Reset = %q, want empty", rec.String())
	}
}

func TestFailOn(t *testing.T) {
	errBoom := errors.New("boom")
	doc := memtree.NewDocument()
	rec := NewRecorder[*memtree.Node](doc)
	rec.FailOn(OpCreateElement, 2, errBoom)

	if _, err := rec.CreateElement("a"); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if _, err := rec.CreateElement("b"); !errors.Is(err, errBoom) {
		t.Fatalf("second call returned %v, want %v", err, errBoom)
	}
	if _, err := rec.CreateElement("c"); err != nil {
		t.Fatalf("third call failed: %v", err)
	}
	if got := doc.Created(); got != 2 {
		t.Errorf("failed call reached the adapter: %d nodes created, want 2", got)
	}

	want := "CreateElement a => a@1\nCreateElement b !\nCreateElement c => c@2\n"
	if diff := cmp.Diff(want, rec.String()); diff != "" {
		t.Errorf("String() result is different [-want,+got]:\n%s", diff)
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreateElement, "CreateElement"},
		{OpInsertBefore, "InsertBefore"},
		{OpRemoveChild, "RemoveChild"},
		{Op(42), "Op(42)"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", int(tt.op), got, tt.want)
		}
	}
}
