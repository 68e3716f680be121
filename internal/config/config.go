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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// vdom.Option.
package config

import (
	"context"
	"log/slog"
	"maps"
	"time"
)

// Config collects all configurable parameters for a renderer.
type Config struct {
	// DOMProperties is the set of attribute names that are assigned as live properties instead of
	// being set as attributes.
	DOMProperties map[string]bool

	// If set, a duplicate user key in a sibling list aborts the render pass.
	StrictKeys bool

	// Logger receives debug and warning records. It is never nil after FromOptions.
	Logger *slog.Logger

	// Observers are notified after every render pass.
	Observers []Observer
}

// Default is the default configuration.
var Default = Config{
	DOMProperties: map[string]bool{
		"value":         true,
		"checked":       true,
		"selected":      true,
		"muted":         true,
		"indeterminate": true,
	},
	StrictKeys: false,
	Logger:     nil,
	Observers:  nil,
}

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config)

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option) Config {
	cfg := Default
	// Options may add to the property set, never modify the shared default.
	cfg.DOMProperties = maps.Clone(Default.DOMProperties)
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// Stats describes the work done by a single render pass.
type Stats struct {
	Start    time.Time     // Start of the pass.
	Duration time.Duration // Wall time of the pass.

	Mounted  int // Subtrees mounted into an existing parent.
	Created  int // Host nodes created, including descendants of mounted subtrees.
	Patched  int // Node pairs reconciled in place.
	Replaced int // Nodes replaced because kind or tag changed.
	Moved    int // Existing host nodes repositioned.
	Removed  int // Subtrees removed from their parent.

	AttrsSet     int // Attribute, property and style writes.
	AttrsRemoved int // Attribute, property and style removals.
	TextsSet     int // Text content updates.

	Errors int // Subtrees skipped because of an error.
}

// Observer is notified about every completed render pass.
type Observer interface {
	ObserveRender(ctx context.Context, stats Stats, err error)
}
