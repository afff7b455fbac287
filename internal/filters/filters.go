// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/prctl/prctl/internal/attrs"
	"github.com/prctl/prctl/internal/driller"
)

// DelimEnv overrides the "," between filter expressions.
const DelimEnv = "PRCTL_FILTER_DELIM"

// An expression is [_]key[!]op[value] where op is one of = ~ ^ < > @ /.
var expressionRe = regexp.MustCompile(`^(_)?([^!=~^<>@/]*)(!?[=~^<>@/])?(.*)$`)

// Filter is one parsed --filter expression. ServerSide filters are handed to
// the API as search qualifiers and skipped when filtering results locally.
type Filter struct {
	Key        string `yaml:"key" json:"Key"`
	Negate     bool   `yaml:"negate" json:"Negate"`
	Operand    string `yaml:"operand" json:"Operand"`
	ServerSide bool   `yaml:"serverSide" json:"ServerSide"`
	Value      string `yaml:"value" json:"Value"`
}

// Qualifier renders a server-side filter as a search qualifier.
func (f Filter) Qualifier() string {
	q := f.Key + ":" + f.Value
	if f.Negate {
		q = "-" + q
	}
	return q
}

// BuildFilters parses a filter spec. Malformed expressions are logged and
// skipped.
func BuildFilters(spec string) []Filter {
	if strings.TrimSpace(spec) == "" {
		return nil
	}

	delim := ","
	if d, ok := os.LookupEnv(DelimEnv); ok && d != "" {
		delim = d
	}

	var out []Filter
	for _, expr := range strings.Split(spec, delim) {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}
		m := expressionRe.FindStringSubmatch(expr)
		key := strings.TrimSpace(m[2])
		if key == "" {
			log.Errorf("invalid filter: empty key in %q", expr)
			continue
		}
		if m[3] == "" {
			log.Errorf("invalid filter: no operand in %q", expr)
			continue
		}
		out = append(out, Filter{
			Key:        key,
			Negate:     strings.HasPrefix(m[3], "!"),
			Operand:    strings.TrimPrefix(m[3], "!"),
			ServerSide: m[1] == "_",
			Value:      m[4],
		})
	}
	return out
}

// ServerSide returns the search qualifiers of the server-side filters in spec.
func ServerSide(spec string) []string {
	var qs []string
	for _, f := range BuildFilters(spec) {
		if f.ServerSide {
			qs = append(qs, f.Qualifier())
		}
	}
	return qs
}

// FilterDataset keeps the rows of candidates, a JSON array, that pass every
// local filter in spec and projects each onto al's output keys.
func FilterDataset(candidates gjson.Result, al attrs.AttrList, spec string) []map[string]any {
	filters := BuildFilters(spec)
	rows := []map[string]any{}

	candidates.ForEach(func(_, row gjson.Result) bool {
		if !Match(row, al, filters) {
			return true
		}
		projected := make(map[string]any, len(al))
		for _, attr := range al {
			if attr.Key == attrs.Global {
				continue
			}
			projected[attr.OutputKey] = driller.Drill(row, attr.Key).Value()
		}
		rows = append(rows, projected)
		return true
	})

	return rows
}

// Match reports whether row passes all local filters. A filter key names an
// output key in al or, failing that, a path into the row.
func Match(row gjson.Result, al attrs.AttrList, filters []Filter) bool {
	for _, f := range filters {
		if f.ServerSide {
			continue
		}

		path := f.Key
		if attr, ok := al.Lookup(f.Key); ok {
			path = attr.Key
		}

		v := driller.Drill(row, path)
		if !v.Exists() || v.Type == gjson.Null {
			return false
		}

		if !check(v, f) {
			return false
		}
	}
	return true
}

func check(v gjson.Result, f Filter) bool {
	switch {
	case v.Type == gjson.Number:
		return checkNumber(v.Float(), f)
	case v.IsArray() || v.IsObject():
		return checkContains(v, f)
	default:
		return checkString(v.String(), f)
	}
}

func checkNumber(n float64, f Filter) bool {
	target, err := strconv.ParseFloat(strings.TrimSpace(f.Value), 64)
	if err != nil {
		return checkString(strconv.FormatFloat(n, 'f', -1, 64), f)
	}

	var ok bool
	switch f.Operand {
	case "=", "~":
		ok = n == target
	case ">":
		ok = n > target
	case "<":
		ok = n < target
	default:
		return checkString(strconv.FormatFloat(n, 'f', -1, 64), f)
	}
	return ok != f.Negate
}

func checkContains(v gjson.Result, f Filter) bool {
	if f.Operand != "@" {
		log.Errorf("unsupported operand %q for %s", f.Operand, f.Key)
		return false
	}

	found := false
	if v.IsObject() {
		found = v.Get(gjson.Escape(f.Value)).Exists()
	} else {
		v.ForEach(func(_, item gjson.Result) bool {
			found = item.String() == f.Value
			return !found
		})
	}
	return found != f.Negate
}

func checkString(s string, f Filter) bool {
	var ok bool
	switch f.Operand {
	case "=":
		ok = s == f.Value
	case "~":
		ok = strings.EqualFold(s, f.Value)
	case "^":
		ok = strings.HasPrefix(s, f.Value)
	case ">":
		ok = s > f.Value
	case "<":
		ok = s < f.Value
	case "@":
		ok = strings.Contains(s, f.Value)
	case "/":
		re, err := regexp.Compile(f.Value)
		if err != nil {
			log.Errorf("invalid regex %q: %v", f.Value, err)
			return false
		}
		ok = re.MatchString(s)
	default:
		log.Error(fmt.Sprintf("unsupported operand %q", f.Operand))
		return false
	}
	return ok != f.Negate
}
