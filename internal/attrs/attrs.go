// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/prctl/prctl/internal/log"
)

// Global is the key that applies its transform spec to every attr.
const Global = "*"

var lengthRe = regexp.MustCompile(`-?\d+`)

// Attr is one column of command output. Key is a dotted path into each result
// row, OutputKey the column title and TransformSpec a compact list of value
// transformations (t local time, T time ago, l lower, u upper, N truncate,
// -N elide the middle).
type Attr struct {
	Key           string `yaml:"key" json:"Key"`
	Include       bool   `yaml:"include" json:"Include"`
	OutputKey     string `yaml:"outputKey" json:"OutputKey"`
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the transform spec to value. Only strings are changed.
func (a *Attr) Transform(value any) any {
	s, ok := value.(string)
	if !ok || a.TransformSpec == "" {
		return value
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		s = transformTime(s, strings.Contains(a.TransformSpec, "T"))
	}

	// The last case letter wins so a per-attr spec overrides the global one.
	lower := strings.LastIndexAny(a.TransformSpec, "lL")
	upper := strings.LastIndexAny(a.TransformSpec, "uU")
	switch {
	case lower > upper:
		s = strings.ToLower(s)
	case upper > lower:
		s = strings.ToUpper(s)
	}

	if m := lengthRe.FindAllString(a.TransformSpec, -1); len(m) > 0 {
		n, _ := strconv.Atoi(m[len(m)-1])
		s = truncate(s, n)
	}

	log.Tracef("transformed %s: %q", a.Key, s)
	return s
}

func transformTime(s string, ago bool) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	if ago {
		return humanize.Time(t)
	}
	return t.Local().Format("2006-01-02T15:04:05MST")
}

// truncate cuts s to n runes. A negative n keeps both ends joined by "..".
func truncate(s string, n int) string {
	r := []rune(s)
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if len(r) <= abs {
		return s
	}
	if n >= 0 {
		return string(r[:n])
	}
	side := abs/2 - 1
	if side < 1 {
		return string(r[:abs])
	}
	return string(r[:side]) + ".." + string(r[len(r)-side:])
}

// AttrList is the ordered set of attrs a command renders.
type AttrList []Attr

// Set parses a comma-separated --attrs value. Each entry is
// key[:outputKey[:transform]]; a leading ! keeps the attr for filtering and
// sorting but hides it from output. An entry naming an existing attr updates
// it in place.
func (a *AttrList) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" || value == Global {
		return nil
	}

	for _, spec := range strings.Split(value, ",") {
		if strings.TrimSpace(spec) == "" {
			continue
		}
		attr, err := parse(spec)
		if err != nil {
			return err
		}

		if i := a.index(attr.Key); i >= 0 {
			(*a)[i].Include = attr.Include
			(*a)[i].OutputKey = attr.OutputKey
			(*a)[i].TransformSpec = attr.TransformSpec
			continue
		}
		*a = append(*a, attr)
	}

	log.Debugf("attrs: %s", a.String())
	return nil
}

func parse(spec string) (Attr, error) {
	fields := strings.Split(spec, ":")
	if len(fields) > 3 {
		return Attr{}, fmt.Errorf("invalid attr spec %q", spec)
	}

	attr := Attr{Include: true}
	key := strings.TrimSpace(fields[0])
	if strings.HasPrefix(key, "!") {
		attr.Include = false
		key = key[1:]
	}
	// Keys are rooted at the result object either way.
	key = strings.TrimPrefix(key, ".")
	if key == "" {
		return Attr{}, fmt.Errorf("invalid attr spec %q: empty key", spec)
	}
	if key == Global {
		attr.Include = false
	}
	attr.Key = key

	attr.OutputKey = key[strings.LastIndex(key, ".")+1:]
	if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
		attr.OutputKey = strings.TrimSpace(fields[1])
	}
	if len(fields) > 2 {
		attr.TransformSpec = strings.TrimSpace(fields[2])
	}
	return attr, nil
}

func (a AttrList) index(key string) int {
	for i := range a {
		if a[i].Key == key || a[i].OutputKey == key {
			return i
		}
	}
	return -1
}

// SetGlobalTransformSpec prepends the transform spec of the "*" attr, if any,
// to every attr.
func (a *AttrList) SetGlobalTransformSpec() error {
	i := a.index(Global)
	if i < 0 || (*a)[i].TransformSpec == "" {
		return nil
	}
	spec := (*a)[i].TransformSpec
	for j := range *a {
		(*a)[j].TransformSpec = spec + "," + (*a)[j].TransformSpec
	}
	return nil
}

// Lookup returns the attr whose output key is name.
func (a AttrList) Lookup(name string) (Attr, bool) {
	for _, attr := range a {
		if attr.OutputKey == name {
			return attr, true
		}
	}
	return Attr{}, false
}

// Columns returns the output keys of the included attrs.
func (a AttrList) Columns() []string {
	cols := make([]string, 0, len(a))
	for _, attr := range a {
		if attr.Include {
			cols = append(cols, attr.OutputKey)
		}
	}
	return cols
}

// String returns the list in key:outputKey:transform form.
func (a *AttrList) String() string {
	parts := make([]string, 0, len(*a))
	for _, attr := range *a {
		parts = append(parts, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(parts, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
