// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package notebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Cell types.
const (
	Code     = "code"
	Markdown = "markdown"
	Raw      = "raw"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported nbformat")
	ErrUnknownCellType   = errors.New("unknown cell type")
)

// ParseError reports a notebook body that could not be parsed.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "invalid notebook: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Notebook is a parsed nbformat 4 document.
type Notebook struct {
	Cells         []Cell
	Metadata      map[string]any
	NBFormat      int
	NBFormatMinor int

	// Raw is the document as generic JSON, exactly as it was given.
	Raw map[string]any
}

// Cell is one notebook cell. Source is the joined cell text.
type Cell struct {
	ID             string
	CellType       string
	Source         string
	Outputs        []any
	Metadata       map[string]any
	ExecutionCount *int64
}

// Lines splits Source into lines, each keeping its trailing newline.
func (c Cell) Lines() []string {
	return SplitLines(c.Source)
}

// Fingerprint is equal for two cells exactly when their type, source,
// outputs, metadata and execution count are equal.
func (c Cell) Fingerprint() string {
	var b strings.Builder
	b.WriteString(c.CellType)
	b.WriteByte(0)
	b.WriteString(c.Source)
	b.WriteByte(0)
	for _, part := range []any{c.Outputs, c.Metadata, c.ExecutionCount} {
		// Map keys are marshalled sorted, so this is stable.
		data, _ := json.Marshal(part)
		b.Write(data)
		b.WriteByte(0)
	}
	return b.String()
}

// Parse parses a notebook body. A blank body is an empty notebook, which is
// how a file that does not exist on one side of a change is represented.
func Parse(body string) (*Notebook, error) {
	if strings.TrimSpace(body) == "" {
		return empty(), nil
	}

	var doc struct {
		Cells         []rawCell      `json:"cells"`
		Metadata      map[string]any `json:"metadata"`
		NBFormat      int            `json:"nbformat"`
		NBFormatMinor int            `json:"nbformat_minor"`
	}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc.NBFormat != 4 {
		return nil, &ParseError{Err: fmt.Errorf("%w: %d", ErrUnsupportedFormat, doc.NBFormat)}
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	nb := &Notebook{
		Cells:         make([]Cell, 0, len(doc.Cells)),
		Metadata:      orEmpty(doc.Metadata),
		NBFormat:      doc.NBFormat,
		NBFormatMinor: doc.NBFormatMinor,
		Raw:           raw,
	}

	for i, rc := range doc.Cells {
		switch rc.CellType {
		case Code, Markdown, Raw:
		default:
			return nil, &ParseError{Err: fmt.Errorf("cell %d: %w: %q", i, ErrUnknownCellType, rc.CellType)}
		}

		outputs := make([]any, 0, len(rc.Outputs))
		for _, o := range rc.Outputs {
			outputs = append(outputs, normalizeOutput(o))
		}

		nb.Cells = append(nb.Cells, Cell{
			ID:             rc.ID,
			CellType:       rc.CellType,
			Source:         string(rc.Source),
			Outputs:        outputs,
			Metadata:       orEmpty(rc.Metadata),
			ExecutionCount: rc.ExecutionCount,
		})
	}

	return nb, nil
}

type rawCell struct {
	ID             string           `json:"id"`
	CellType       string           `json:"cell_type"`
	Source         multiline        `json:"source"`
	Outputs        []map[string]any `json:"outputs"`
	Metadata       map[string]any   `json:"metadata"`
	ExecutionCount *int64           `json:"execution_count"`
}

// multiline is an nbformat text field: a string or a list of strings.
type multiline string

func (m *multiline) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = multiline(s)
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("text must be a string or a list of strings: %w", err)
	}
	*m = multiline(strings.Join(lines, ""))
	return nil
}

// normalizeOutput joins list-of-lines text fields so that the string and list
// spellings of the same output compare equal.
func normalizeOutput(o map[string]any) map[string]any {
	if o == nil {
		return map[string]any{}
	}
	if text, ok := joinLines(o["text"]); ok {
		o["text"] = text
	}
	if data, ok := o["data"].(map[string]any); ok {
		for mime, v := range data {
			if text, ok := joinLines(v); ok {
				data[mime] = text
			}
		}
	}
	return o
}

func joinLines(v any) (string, bool) {
	list, ok := v.([]any)
	if !ok {
		return "", false
	}
	var b strings.Builder
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return "", false
		}
		b.WriteString(s)
	}
	return b.String(), true
}

// SplitLines splits s after every newline. The last line has no newline
// when s does not end with one. An empty string has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func empty() *Notebook {
	return &Notebook{
		Cells:         []Cell{},
		Metadata:      map[string]any{},
		NBFormat:      4,
		NBFormatMinor: 5,
		Raw: map[string]any{
			"cells":          []any{},
			"metadata":       map[string]any{},
			"nbformat":       float64(4),
			"nbformat_minor": float64(5),
		},
	}
}

// RawCell returns cell i as generic JSON, as it appeared in the document.
func (nb *Notebook) RawCell(i int) any {
	cells, _ := nb.Raw["cells"].([]any)
	if i < 0 || i >= len(cells) {
		return nil
	}
	return cells[i]
}
