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
	"log/slog"

	"znkr.io/vdom/internal/config"
)

// Option configures the behavior of a [Renderer].
type Option = config.Option

// Stats describes the work done by a single render pass.
type Stats = config.Stats

// Observer is notified about every completed render pass. See [WithObserver].
type Observer = config.Observer

// WithLogger sets the logger for debug and warning records. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config.Config) {
		cfg.Logger = logger
	}
}

// WithObserver adds an observer that is notified after every render pass, successful or not.
// Observers are called synchronously in the order they were added.
func WithObserver(o Observer) Option {
	return func(cfg *config.Config) {
		cfg.Observers = append(cfg.Observers, o)
	}
}

// DOMProperties adds attribute names that are assigned as live properties with
// [Adapter.SetProperty] instead of being set as attributes. The default set is "value",
// "checked", "selected", "muted" and "indeterminate".
func DOMProperties(names ...string) Option {
	return func(cfg *config.Config) {
		for _, name := range names {
			cfg.DOMProperties[name] = true
		}
	}
}

// StrictKeys makes a duplicate user key in a sibling list an error that aborts the render pass.
//
// By default, duplicate keys are logged and reconciled on a best-effort basis: only one of the
// children sharing a key is matched, the others are removed or mounted fresh.
func StrictKeys() Option {
	return func(cfg *config.Config) {
		cfg.StrictKeys = true
	}
}
