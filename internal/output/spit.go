// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/prctl/prctl/internal/attrs"
	"github.com/prctl/prctl/internal/config"
	"github.com/prctl/prctl/internal/filters"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "yaml", "raw"}

// Options controls how a result set is shaped and rendered.
type Options struct {
	Format  string
	Filter  string
	Sort    string
	Local   bool
	Color   bool
	Titles  bool
	Padding int
	Header  string
	Footer  string
}

// OptionsFrom reads the common output flags from cmd. Header and footer come
// from the command's Metadata when set.
func OptionsFrom(cmd *cli.Command) Options {
	opts := Options{
		Format:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Local:   cmd.Bool("local"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: int(cmd.Int("padding")),
	}
	if h, ok := cmd.Metadata["header"].(string); ok {
		opts.Header = h
	}
	if f, ok := cmd.Metadata["footer"].(string); ok {
		opts.Footer = f
	}
	return opts
}

// InterfaceToString renders a result value for a table cell. Zero values
// render as emptyValue, "" by default.
func InterfaceToString(value any, emptyValue ...string) string {
	empty := ""
	if len(emptyValue) > 0 {
		empty = emptyValue[0]
	}

	switch v := value.(type) {
	case nil:
		return empty
	case string:
		if v == "" {
			return empty
		}
		return v
	case bool:
		if !v {
			return empty
		}
		return "true"
	case int:
		if v == 0 {
			return empty
		}
		return strconv.Itoa(v)
	case int64:
		if v == 0 {
			return empty
		}
		return strconv.FormatInt(v, 10)
	case float64:
		// Result numbers are ids and counts.
		if v == 0 {
			return empty
		}
		return fmt.Sprintf("%.0f", v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		if s := string(b); s != "[]" && s != "{}" && s != "null" {
			return s
		}
		return empty
	}
}

// SliceDiceSpit filters, transforms, sorts and renders raw, a JSON array of
// result rows, according to opts. Raw format writes raw untouched.
func SliceDiceSpit(raw []byte, al attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Format == "raw" {
		_, err := w.Write(raw)
		return err
	}

	rows := filters.FilterDataset(gjson.ParseBytes(raw), al, opts.Filter)

	for i := range al {
		if opts.Local {
			al[i].TransformSpec += "t"
		}
	}
	for _, row := range rows {
		for i := range al {
			if al[i].Key != attrs.Global && al[i].TransformSpec != "" {
				row[al[i].OutputKey] = al[i].Transform(row[al[i].OutputKey])
			}
		}
	}

	SortDataset(rows, opts.Sort)

	switch opts.Format {
	case "json":
		b, err := json.Marshal(visible(rows, al))
		if err != nil {
			return fmt.Errorf("failed to marshal json output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(visible(rows, al))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml output: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		TableWriter(rows, al, opts, w)
		return nil
	}
}

// visible drops the columns of excluded attrs.
func visible(rows []map[string]any, al attrs.AttrList) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		v := make(map[string]any, len(row))
		for _, attr := range al {
			if attr.Include {
				v[attr.OutputKey] = row[attr.OutputKey]
			}
		}
		out = append(out, v)
	}
	return out
}

// TableWriter renders rows as a borderless table of the included attrs.
func TableWriter(rows []map[string]any, al attrs.AttrList, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	if len(rows) == 0 {
		log.Debug("no rows to render")
		return
	}

	var (
		headerStyle = lipgloss.NewStyle().Bold(true)
		evenStyle   = lipgloss.NewStyle()
		oddStyle    = lipgloss.NewStyle()
	)
	if opts.Color {
		header, even, odd := getColors("colors")
		headerStyle = headerStyle.Foreground(header)
		evenStyle = evenStyle.Foreground(even)
		oddStyle = oddStyle.Foreground(odd)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(al))
		for _, attr := range al {
			if attr.Include {
				line = append(line, InterfaceToString(row[attr.OutputKey], "-"))
			}
		}
		cells = append(cells, line)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := oddStyle
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenStyle
			}
			if col > 0 {
				style = style.PaddingLeft(opts.Padding)
			}
			return style
		}).
		Rows(cells...)

	if opts.Titles {
		t = t.Headers(al.Columns()...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns the table colors, preferring colors.title, colors.even
// and colors.odd from the config file over defaults picked for the terminal
// background.
func getColors(key string) (header, even, odd color.Color) {
	dark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	pick := func(name, light, darkDefault string) color.Color {
		if c, err := config.GetString(key + "." + name); err == nil && c != "" {
			return lipgloss.Color(c)
		}
		if dark {
			return lipgloss.Color(darkDefault)
		}
		return lipgloss.Color(light)
	}

	return pick("title", "#b08800", "#f6be00"),
		pick("even", "#333333", "#ffffff"),
		pick("odd", "#0088a0", "#00c8f0")
}
