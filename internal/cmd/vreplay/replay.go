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

package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"znkr.io/vdom"
	"znkr.io/vdom/internal/scenario"
)

type replayOptions struct {
	check         bool
	update        bool
	html          bool
	strictKeys    bool
	domProperties []string
}

func (o *replayOptions) renderOptions() []vdom.Option {
	var opts []vdom.Option
	if o.strictKeys {
		opts = append(opts, vdom.StrictKeys())
	}
	if len(o.domProperties) > 0 {
		opts = append(opts, vdom.DOMProperties(o.domProperties...))
	}
	return opts
}

func newReplayCmd() *cobra.Command {
	var opts replayOptions
	cmd := &cobra.Command{
		Use:   "replay [flags] files...",
		Short: "Replay scenarios and print the adapter calls of each patch",
		Long: `Replay scenarios and print the adapter calls of each patch.

With --check, the recorded calls, the resulting HTML and the reported errors are compared with the
expectations stored in each scenario and the command fails if any of them differ. With --update,
the expectations are replaced with the recorded outcome.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.check && opts.update {
				return fmt.Errorf("--check and --update are mutually exclusive")
			}
			p, err := paletteFor(cmd)
			if err != nil {
				return err
			}
			return replay(cmd.OutOrStdout(), p, args, &opts)
		},
	}
	cmd.Flags().BoolVar(&opts.check, "check", false, "compare the outcome with the expectations in each scenario")
	cmd.Flags().BoolVar(&opts.update, "update", false, "write the outcome back to each scenario")
	cmd.Flags().BoolVar(&opts.html, "html", false, "print the host tree after the patch")
	cmd.Flags().BoolVar(&opts.strictKeys, "strict-keys", false, "treat duplicate keys as errors")
	cmd.Flags().StringSliceVar(&opts.domProperties, "dom-properties", nil, "additional attributes to set as properties")
	return cmd
}

func replay(w io.Writer, p *palette, files []string, opts *replayOptions) error {
	failed := 0
	for _, filename := range files {
		s, err := scenario.Load(filename)
		if err != nil {
			return err
		}
		res, err := s.Run(opts.renderOptions()...)
		if err != nil {
			return err
		}

		switch {
		case opts.check:
			diff := outcomeDiff(s, res)
			if diff == "" {
				fmt.Fprintf(w, "%s %s\n", p.ok("ok  "), filename)
				continue
			}
			failed++
			fmt.Fprintf(w, "%s %s\n", p.fail("FAIL"), filename)
			fmt.Fprintf(w, "%s", diff)

		case opts.update:
			s.Update(res)
			data, err := s.Format()
			if err != nil {
				return err
			}
			if err := os.WriteFile(filename, data, 0o644); err != nil {
				return fmt.Errorf("failed to write scenario: %w", err)
			}
			fmt.Fprintf(w, "%s %s\n", p.ok("updated"), filename)

		default:
			printResult(w, p, filename, res, opts.html)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(files))
	}
	return nil
}

func outcomeDiff(s *scenario.Scenario, res *scenario.Result) string {
	var out string
	if !slices.Equal(s.Ops, res.Ops) {
		out += "ops [-want,+got]:\n" + cmp.Diff(s.Ops, res.Ops)
	}
	if s.HTML != res.HTML {
		out += "html [-want,+got]:\n" + cmp.Diff(s.HTML, res.HTML)
	}
	if !slices.Equal(s.Errors, res.Errors) {
		out += "errors [-want,+got]:\n" + cmp.Diff(s.Errors, res.Errors)
	}
	return out
}

func printResult(w io.Writer, p *palette, filename string, res *scenario.Result, html bool) {
	fmt.Fprintln(w, p.bold("== "+filename))
	for _, line := range res.Ops {
		fmt.Fprintln(w, p.op(line))
	}
	for _, line := range res.Errors {
		fmt.Fprintln(w, p.fail("error: "+line))
	}
	if html {
		fmt.Fprintln(w, res.HTML)
	}
	st := res.Stats
	fmt.Fprintln(w, p.faint(fmt.Sprintf("%d calls, %d created, %d patched, %d moved, %d removed",
		len(res.Ops), st.Created, st.Patched, st.Moved, st.Removed)))
}
