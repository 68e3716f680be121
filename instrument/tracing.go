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

package instrument

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"znkr.io/vdom"
)

const defaultTracerName = "znkr.io/vdom"

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer obtained from the global provider
	// (default: "znkr.io/vdom"). It's ignored if Tracer is set.
	TracerName string

	// Tracer overrides the tracer from the global provider.
	Tracer trace.Tracer

	// SpanName is the name of the span of each render pass (default: "vdom.render").
	SpanName string
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer trace.Tracer) TracingOption {
	return func(c *TracingConfig) {
		c.Tracer = tracer
	}
}

// WithSpanName sets the span name.
func WithSpanName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.SpanName = name
	}
}

// Tracing is an observer that records a span for every render pass.
//
// The span starts and ends with the render pass and carries the pass statistics as attributes.
// Failed passes record the error and set the span status to error. The span is a child of the
// span in the context passed to [vdom.Renderer.RenderContext].
type Tracing struct {
	tracer   trace.Tracer
	spanName string
}

var _ vdom.Observer = (*Tracing)(nil)

// NewTracing creates a tracing observer. Without [WithTracer], the tracer is resolved from the
// global OpenTelemetry tracer provider.
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{
		TracerName: defaultTracerName,
		SpanName:   "vdom.render",
	}
	for _, opt := range opts {
		opt(&config)
	}
	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{tracer: tracer, spanName: config.SpanName}
}

// ObserveRender implements [vdom.Observer].
func (t *Tracing) ObserveRender(ctx context.Context, stats vdom.Stats, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("vdom.status", Status(err)),
		attribute.Int("vdom.errors", stats.Errors),
	}
	for _, c := range counters(stats) {
		attrs = append(attrs, attribute.Int("vdom."+c.name, c.value))
	}

	_, span := t.tracer.Start(ctx, t.spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(stats.Start),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(stats.Start.Add(stats.Duration)))
}
