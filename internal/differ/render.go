// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/yudai/gojsondiff/formatter"
)

// RenderOptions controls Render.
type RenderOptions struct {
	// Title is printed above the diff when set.
	Title string

	// Color enables ANSI styling.
	Color bool

	// ShowUnchanged prints unchanged cells instead of collapsing them.
	ShowUnchanged bool
}

// paint styles one string.
type paint func(string) string

type styles struct {
	header    paint
	removed   paint
	added     paint
	removedHi paint
	addedHi   paint
	faint     paint
}

func newStyles(color bool) styles {
	if !color {
		plain := func(s string) string { return s }
		return styles{header: plain, removed: plain, added: plain, removedHi: plain, addedHi: plain, faint: plain}
	}

	render := func(style lipgloss.Style) paint {
		return func(s string) string { return style.Render(s) }
	}

	red, green := lipgloss.Color("#d73a49"), lipgloss.Color("#28a745")
	return styles{
		header:    render(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6be00"))),
		removed:   render(lipgloss.NewStyle().Foreground(red)),
		added:     render(lipgloss.NewStyle().Foreground(green)),
		removedHi: render(lipgloss.NewStyle().Bold(true).Foreground(red)),
		addedHi:   render(lipgloss.NewStyle().Bold(true).Foreground(green)),
		faint:     render(lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))),
	}
}

// Render writes a human readable rendering of r to w.
func Render(w io.Writer, r *Result, opts RenderOptions) error {
	st := newStyles(opts.Color)
	var b strings.Builder

	if opts.Title != "" {
		b.WriteString(st.header(opts.Title) + "\n")
	}

	if !r.Changed() {
		b.WriteString("The notebooks are identical.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	s := r.Summary()
	fmt.Fprintf(&b, "%d modified, %d added, %d removed, %d unchanged\n",
		s.Modified, s.Added, s.Removed, s.Unchanged)

	collapsed := 0
	flush := func() {
		if collapsed > 0 {
			b.WriteString(st.faint(fmt.Sprintf("... %d unchanged cell(s)", collapsed)) + "\n")
			collapsed = 0
		}
	}

	for _, cd := range r.Cells {
		if cd.State == Unchanged && !opts.ShowUnchanged {
			collapsed++
			continue
		}
		flush()

		b.WriteString("\n" + st.header(cellHeader(cd)) + "\n")

		switch cd.State {
		case Unchanged:
			writeLines(&b, " ", cd.base.Lines(), st.faint)
		case Added:
			writeLines(&b, "+", cd.remote.Lines(), st.added)
		case Removed:
			writeLines(&b, "-", cd.base.Lines(), st.removed)
		case Modified:
			if err := writeModified(&b, cd, st, opts.Color); err != nil {
				return err
			}
		}
	}
	flush()

	if r.metaJSON != nil {
		b.WriteString("\n" + st.header("notebook metadata") + "\n")
		text, err := formatter.NewAsciiFormatter(r.metaLeft, formatter.AsciiFormatterConfig{Coloring: opts.Color}).Format(r.metaJSON)
		if err != nil {
			return fmt.Errorf("failed to render metadata diff: %w", err)
		}
		b.WriteString(text)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func cellHeader(cd CellDiff) string {
	switch cd.State {
	case Added:
		return fmt.Sprintf("## added %s cell at %d", cd.CellType, cd.RemoteIndex)
	case Removed:
		return fmt.Sprintf("## removed %s cell %d", cd.CellType, cd.BaseIndex)
	case Modified:
		return fmt.Sprintf("## modified %s cell %d -> %d", cd.CellType, cd.BaseIndex, cd.RemoteIndex)
	default:
		return fmt.Sprintf("## %s cell %d", cd.CellType, cd.BaseIndex)
	}
}

func writeLines(b *strings.Builder, prefix string, lines []string, style paint) {
	for _, line := range lines {
		b.WriteString(style(prefix+" "+strings.TrimSuffix(line, "\n")) + "\n")
	}
}

func writeModified(b *strings.Builder, cd CellDiff, st styles, color bool) error {
	a, c := cd.base.Lines(), cd.remote.Lines()

	if len(cd.Source) > 0 {
		for _, oc := range lineOpCodes(a, c) {
			switch oc.Tag {
			case 'e':
				writeLines(b, " ", a[oc.I1:oc.I2], st.faint)
			case 'd':
				writeLines(b, "-", a[oc.I1:oc.I2], st.removed)
			case 'i':
				writeLines(b, "+", c[oc.J1:oc.J2], st.added)
			case 'r':
				if color && oc.I2-oc.I1 == oc.J2-oc.J1 {
					for k := 0; k < oc.I2-oc.I1; k++ {
						old, cur := inlineDiff(a[oc.I1+k], c[oc.J1+k], st)
						b.WriteString(st.removed("- ") + old + "\n")
						b.WriteString(st.added("+ ") + cur + "\n")
					}
					continue
				}
				writeLines(b, "-", a[oc.I1:oc.I2], st.removed)
				writeLines(b, "+", c[oc.J1:oc.J2], st.added)
			}
		}
	}

	if cd.jsonDiff != nil {
		text, err := formatter.NewAsciiFormatter(cd.left, formatter.AsciiFormatterConfig{Coloring: color}).Format(cd.jsonDiff)
		if err != nil {
			return fmt.Errorf("failed to render cell %d diff: %w", cd.BaseIndex, err)
		}
		b.WriteString(text)
	}

	return nil
}

// inlineDiff renders one replaced line pair with the changed characters
// emphasized on each side.
func inlineDiff(old, cur string, st styles) (string, string) {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(strings.TrimSuffix(old, "\n"), strings.TrimSuffix(cur, "\n"), false))

	var left, right strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			left.WriteString(st.removed(d.Text))
			right.WriteString(st.added(d.Text))
		case diffmatchpatch.DiffDelete:
			left.WriteString(st.removedHi(d.Text))
		case diffmatchpatch.DiffInsert:
			right.WriteString(st.addedHi(d.Text))
		}
	}
	return left.String(), right.String()
}

// Lines exposes a cell's source lines for callers rendering their own views.
func (cd CellDiff) Lines() (base, remote []string) {
	if cd.base != nil {
		base = cd.base.Lines()
	}
	if cd.remote != nil {
		remote = cd.remote.Lines()
	}
	return base, remote
}
