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
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

type palette struct {
	enabled bool
	r       *lipgloss.Renderer
}

func newPalette(mode string, w io.Writer) (*palette, error) {
	p := &palette{r: lipgloss.NewRenderer(w)}
	switch mode {
	case "always":
		p.enabled = true
	case "never":
		p.enabled = false
	case "auto":
		p.enabled = isTerminal(w)
	default:
		return nil, fmt.Errorf("invalid value for --color: %q", mode)
	}
	if p.enabled {
		p.r.SetColorProfile(termenv.ANSI)
	} else {
		p.r.SetColorProfile(termenv.Ascii)
	}
	return p, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *palette) paint(color, s string) string {
	if !p.enabled {
		return s
	}
	return p.r.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}

func (p *palette) bold(s string) string {
	if !p.enabled {
		return s
	}
	return p.r.NewStyle().Bold(true).Render(s)
}

func (p *palette) ok(s string) string    { return p.paint("2", s) }
func (p *palette) fail(s string) string  { return p.paint("1", s) }
func (p *palette) faint(s string) string { return p.paint("8", s) }

// op colors a recorded adapter call by the kind of change it makes.
func (p *palette) op(line string) string {
	name, _, _ := strings.Cut(line, " ")
	switch {
	case strings.HasPrefix(name, "Create"):
		return p.paint("2", line)
	case strings.HasPrefix(name, "Remove"):
		return p.paint("1", line)
	case name == "InsertBefore" || name == "AppendChild":
		return p.paint("6", line)
	default:
		return p.paint("3", line)
	}
}
