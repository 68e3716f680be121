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

// Package instrument provides [vdom.Observer] implementations that export render statistics to
// Prometheus and OpenTelemetry.
//
// Observers are added to a renderer with [vdom.WithObserver]:
//
//	r := vdom.NewRenderer[*memtree.Node](doc,
//	    vdom.WithObserver(instrument.NewMetrics(instrument.WithNamespace("myapp"))),
//	    vdom.WithObserver(instrument.NewTracing()),
//	)
package instrument

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"znkr.io/vdom"
)

// Render outcomes used as the status label.
const (
	StatusSuccess = "success" // The pass completed without errors.
	StatusPartial = "partial" // The pass completed, but skipped unsupported subtrees.
	StatusError   = "error"   // The pass was aborted.
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vdom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for the render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vdom",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is an observer that records render passes as Prometheus metrics.
//
// Metrics collected:
//   - vdom_renders_total: Counter of render passes by status (success, partial, error)
//   - vdom_render_duration_seconds: Histogram of render pass durations
//   - vdom_node_ops_total: Counter of host tree operations by kind (mounted, created, patched,
//     replaced, moved, removed, attrs_set, attrs_removed, texts_set)
type Metrics struct {
	renders  *prometheus.CounterVec
	duration prometheus.Histogram
	nodeOps  *prometheus.CounterVec
}

var _ vdom.Observer = (*Metrics)(nil)

// NewMetrics creates the metrics and registers them with the configured registry. It panics if
// the metrics are already registered, use [WithRegistry] or [WithNamespace] to create more than
// one instance.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		nodeOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "node_ops_total",
			Help:        "Total number of host tree operations by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),
	}
}

// ObserveRender implements [vdom.Observer].
func (m *Metrics) ObserveRender(_ context.Context, stats vdom.Stats, err error) {
	m.renders.WithLabelValues(Status(err)).Inc()
	m.duration.Observe(stats.Duration.Seconds())
	for _, c := range counters(stats) {
		if c.value > 0 {
			m.nodeOps.WithLabelValues(c.name).Add(float64(c.value))
		}
	}
}

// Status classifies the result of a render pass.
func Status(err error) string {
	var (
		ae *vdom.AdapterError
		ke *vdom.KeyError
	)
	switch {
	case err == nil:
		return StatusSuccess
	case errors.As(err, &ae), errors.As(err, &ke):
		return StatusError
	default:
		return StatusPartial
	}
}

type counter struct {
	name  string
	value int
}

func counters(stats vdom.Stats) []counter {
	return []counter{
		{"mounted", stats.Mounted},
		{"created", stats.Created},
		{"patched", stats.Patched},
		{"replaced", stats.Replaced},
		{"moved", stats.Moved},
		{"removed", stats.Removed},
		{"attrs_set", stats.AttrsSet},
		{"attrs_removed", stats.AttrsRemoved},
		{"texts_set", stats.TextsSet},
	}
}
