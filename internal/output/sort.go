// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"cmp"
	"slices"
	"strings"
)

type sortKey struct {
	field         string
	descending    bool
	caseSensitive bool
}

// parseSortSpec reads "-field" as descending and "!field" as case sensitive.
// The prefixes combine in that order: "-!title".
func parseSortSpec(spec string) []sortKey {
	var keys []sortKey
	for _, f := range strings.Split(spec, ",") {
		f = strings.TrimSpace(f)
		k := sortKey{}
		if rest, ok := strings.CutPrefix(f, "-"); ok {
			k.descending, f = true, rest
		}
		if rest, ok := strings.CutPrefix(f, "!"); ok {
			k.caseSensitive, f = true, rest
		}
		if f == "" {
			continue
		}
		k.field = f
		keys = append(keys, k)
	}
	return keys
}

// SortDataset orders rows by the comma-separated fields in spec. Numbers
// compare numerically, everything else as strings. The sort is stable.
func SortDataset(rows []map[string]any, spec string) {
	keys := parseSortSpec(spec)
	if len(keys) == 0 {
		return
	}

	slices.SortStableFunc(rows, func(a, b map[string]any) int {
		for _, k := range keys {
			c := compareValues(a[k.field], b[k.field], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.descending {
				return -c
			}
			return c
		}
		return 0
	})
}

func compareValues(a, b any, caseSensitive bool) int {
	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	}

	s, t := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		s, t = strings.ToLower(s), strings.ToLower(t)
	}
	return strings.Compare(s, t)
}
