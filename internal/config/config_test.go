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

package config_test

import (
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"znkr.io/vdom"
	"znkr.io/vdom/internal/config"
)

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "strict-keys",
			opts: []config.Option{
				vdom.StrictKeys(),
			},
			want: config.Config{
				DOMProperties: config.Default.DOMProperties,
				StrictKeys:    true,
			},
		},
		{
			name: "dom-properties",
			opts: []config.Option{
				vdom.DOMProperties("scrollTop", "volume"),
			},
			want: config.Config{
				DOMProperties: map[string]bool{
					"value":         true,
					"checked":       true,
					"selected":      true,
					"muted":         true,
					"indeterminate": true,
					"scrollTop":     true,
					"volume":        true,
				},
			},
		},
		{
			name: "everything",
			opts: []config.Option{
				vdom.DOMProperties("volume"),
				vdom.StrictKeys(),
			},
			want: config.Config{
				DOMProperties: map[string]bool{
					"value":         true,
					"checked":       true,
					"selected":      true,
					"muted":         true,
					"indeterminate": true,
					"volume":        true,
				},
				StrictKeys: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts)
			if got.Logger == nil {
				t.Errorf("FromOptions(...) returned a nil logger")
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(config.Config{}, "Logger")); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptionsDoesNotModifyDefault(t *testing.T) {
	_ = config.FromOptions([]config.Option{vdom.DOMProperties("volume")})
	if config.Default.DOMProperties["volume"] {
		t.Errorf("DOMProperties modified config.Default")
	}
}

func TestFromOptionsLogger(t *testing.T) {
	logger := slog.Default()
	got := config.FromOptions([]config.Option{vdom.WithLogger(logger)})
	if got.Logger != logger {
		t.Errorf("WithLogger(...) did not set the logger")
	}
}
