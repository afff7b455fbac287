// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var segmentRe = regexp.MustCompile(`^([A-Za-z0-9_-]+)(?:\[(\d+|\*)?\])?$`)

// Drill walks a dotted path such as "head.repo.full_name" or "labels[0].name"
// through row. A segment without an index that lands on a single element
// array unwraps it. "[]" or "[*]" keeps the whole array and applies the rest
// of the path to each element. A missing key or bad index yields an empty
// result.
func Drill(row gjson.Result, path string) gjson.Result {
	if path == "" {
		return row
	}
	segments := strings.Split(path, ".")
	current := row

	for i, seg := range segments {
		m := segmentRe.FindStringSubmatch(seg)
		if m == nil {
			return gjson.Result{}
		}

		current = current.Get(m[1])
		if !current.IsArray() {
			if m[2] != "" {
				return gjson.Result{}
			}
			continue
		}

		items := current.Array()
		switch {
		case m[2] == "*" || (m[2] == "" && strings.HasSuffix(seg, "]")):
			return fanOut(items, strings.Join(segments[i+1:], "."))
		case m[2] != "":
			n, _ := strconv.Atoi(m[2])
			if n >= len(items) {
				return gjson.Result{}
			}
			current = items[n]
		case len(items) == 1:
			current = items[0]
		}
	}

	return current
}

// DrillString is Drill over a raw JSON document.
func DrillString(doc, path string) gjson.Result {
	return Drill(gjson.Parse(doc), path)
}

func fanOut(items []gjson.Result, rest string) gjson.Result {
	if rest == "" {
		return arrayOf(items)
	}
	picked := make([]gjson.Result, 0, len(items))
	for _, item := range items {
		if v := Drill(item, rest); v.Exists() {
			picked = append(picked, v)
		}
	}
	return arrayOf(picked)
}

func arrayOf(items []gjson.Result) gjson.Result {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(item.Raw)
	}
	b.WriteByte(']')
	return gjson.Parse(b.String())
}
