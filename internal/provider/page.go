// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Mapping is one decoded JSON object from a provider payload.
type Mapping = map[string]any

// ErrUnexpectedShape is returned by DecodePage when the body is valid JSON
// but neither an object nor an array of objects.
var ErrUnexpectedShape = errors.New("payload is not an object or a list of objects")

// Page is the decoded body of one response: either a single object or a list
// of objects. The zero value is an empty list.
type Page struct {
	single Mapping
	many   []Mapping
	isOne  bool
}

// Single wraps one object.
func Single(m Mapping) Page {
	return Page{single: m, isOne: true}
}

// Many wraps a list of objects.
func Many(ms []Mapping) Page {
	return Page{many: ms}
}

// IsSingle reports whether the page carried a single object.
func (p Page) IsSingle() bool {
	return p.isOne
}

// Object returns the single object of the page, if it is one.
func (p Page) Object() (Mapping, bool) {
	return p.single, p.isOne
}

// Sequence returns the page as a list. A single object becomes a one element
// list. The returned slice is always freshly allocated.
func (p Page) Sequence() []Mapping {
	if p.isOne {
		return []Mapping{p.single}
	}
	out := make([]Mapping, len(p.many))
	copy(out, p.many)
	return out
}

// Len is the number of objects Sequence would return.
func (p Page) Len() int {
	if p.isOne {
		return 1
	}
	return len(p.many)
}

// DecodePage decodes a response body into a Page.
func DecodePage(body []byte) (Page, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Page{}, fmt.Errorf("empty body: %w", ErrUnexpectedShape)
	}

	switch trimmed[0] {
	case '{':
		var m Mapping
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return Page{}, err
		}
		return Single(m), nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return Page{}, err
		}
		items := make([]Mapping, 0, len(raw))
		for i, r := range raw {
			var m Mapping
			if err := json.Unmarshal(r, &m); err != nil || m == nil {
				return Page{}, fmt.Errorf("element %d: %w", i, ErrUnexpectedShape)
			}
			items = append(items, m)
		}
		return Many(items), nil
	default:
		// Let the decoder report syntax errors; valid scalars are a shape error.
		var v any
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return Page{}, err
		}
		return Page{}, ErrUnexpectedShape
	}
}
