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

package instrument_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"znkr.io/vdom"
	"znkr.io/vdom/instrument"
	"znkr.io/vdom/memtree"
	"znkr.io/vdom/vdomtest"
)

// gather returns the values of all counters and the sample counts of all histograms by metric
// name and label values.
func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}
	out := make(map[string]float64)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			name := f.GetName()
			for _, l := range m.GetLabel() {
				name += "/" + l.GetName() + "=" + l.GetValue()
			}
			switch f.GetType() {
			case dto.MetricType_COUNTER:
				out[name] = m.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				out[name] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

type fixture struct {
	rec *vdomtest.Recorder[*memtree.Node]
	r   *vdom.Renderer[*memtree.Node]
	mp  *vdom.MountPoint[*memtree.Node]
}

func newFixture(t *testing.T, obs vdom.Observer) *fixture {
	t.Helper()
	doc := memtree.NewDocument()
	body, err := doc.CreateElement("body")
	if err != nil {
		t.Fatal(err)
	}
	rec := vdomtest.NewRecorder[*memtree.Node](doc)
	return &fixture{
		rec: rec,
		r:   vdom.NewRenderer[*memtree.Node](rec, vdom.WithObserver(obs)),
		mp:  vdom.NewMountPoint(body),
	}
}

func list(keys ...string) *vdom.VNode {
	var items []*vdom.VNode
	for _, k := range keys {
		items = append(items, vdom.Build("li", vdom.Attrs{"key": k, "class": "item"}, k))
	}
	return vdom.Build("ul", nil, items)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := instrument.NewMetrics(
		instrument.WithRegistry(reg),
		instrument.WithNamespace("test"),
		instrument.WithSubsystem("ui"),
		instrument.WithBuckets([]float64{0.001, 0.1}),
		instrument.WithConstLabels(prometheus.Labels{"app": "demo"}),
	)
	f := newFixture(t, m)

	if err := f.r.Render(list("a", "b"), f.mp); err != nil {
		t.Fatal(err)
	}
	if err := f.r.Render(list("b", "a"), f.mp); err != nil {
		t.Fatal(err)
	}
	if err := f.r.Render(vdom.Build("ul", nil, vdom.Component("C", nil), "x"), f.mp); err == nil {
		t.Fatal("rendering a component succeeded, want error")
	}
	f.rec.FailOn(vdomtest.OpCreateElement, 1, errors.New("boom"))
	f.rec.Reset()
	if err := f.r.Render(vdom.Build("p", nil), f.mp); err == nil {
		t.Fatal("rendering with a failing adapter succeeded, want error")
	}

	// Counters that were never incremented aren't exported.
	want := map[string]float64{
		"test_ui_renders_total/app=demo/status=success": 2,
		"test_ui_renders_total/app=demo/status=partial": 1,
		"test_ui_renders_total/app=demo/status=error":   1,
		"test_ui_render_duration_seconds/app=demo":      4,
		"test_ui_node_ops_total/app=demo/op=mounted":    2,
		"test_ui_node_ops_total/app=demo/op=created":    6,
		"test_ui_node_ops_total/app=demo/op=patched":    6,
		"test_ui_node_ops_total/app=demo/op=moved":      1,
		"test_ui_node_ops_total/app=demo/op=removed":    2,
		"test_ui_node_ops_total/app=demo/op=attrs_set":  2,
	}
	got := gather(t, reg)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("metrics are different [-want,+got]:\n%s", diff)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, instrument.StatusSuccess},
		{&vdom.ShapeError{Op: "mount", Kind: vdom.KindFragment, Path: "/"}, instrument.StatusPartial},
		{errors.Join(&vdom.ShapeError{}, &vdom.ShapeError{}), instrument.StatusPartial},
		{&vdom.AdapterError{Op: "AppendChild", Err: errors.New("boom")}, instrument.StatusError},
		{&vdom.KeyError{Key: vdom.UserKey("a")}, instrument.StatusError},
	}
	for _, tt := range tests {
		if got := instrument.Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
