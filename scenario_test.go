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

package vdom_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/vdom/internal/scenario"
)

var update = flag.Bool("update", false, "update golden files")

func TestScenarios(t *testing.T) {
	scenarios, err := scenario.LoadDir("testdata")
	if err != nil {
		t.Fatalf("failed to load scenarios: %v", err)
	}
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			t.Parallel()
			got, err := s.Run()
			if err != nil {
				t.Fatal(err)
			}
			if *update {
				s.Update(got)
				data, err := s.Format()
				if err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join("testdata", s.Name), data, 0o644); err != nil {
					t.Fatalf("error writing golden file: %v", err)
				}
				return
			}
			if diff := cmp.Diff(s.Ops, got.Ops); diff != "" {
				t.Errorf("ops are different [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(s.HTML, got.HTML); diff != "" {
				t.Errorf("html is different [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(s.Errors, got.Errors); diff != "" {
				t.Errorf("errors are different [-want,+got]:\n%s", diff)
			}
		})
	}
}
