// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/prctl/prctl/internal/attrs"
)

const files = `[
	{"name":"analysis.ipynb","status":"modified","additions":12,"deletions":3,"labels":["nb","data"],"meta":{"kernel":"python3"}},
	{"name":"README.md","status":"modified","additions":1,"deletions":0,"labels":[],"meta":{}},
	{"name":"plots/new.ipynb","status":"added","additions":40,"deletions":0,"labels":["nb"],"meta":{"kernel":"ir"}},
	{"name":"old.py","status":"removed","additions":0,"deletions":9,"labels":null,"meta":null}
]`

func fileAttrs(t *testing.T) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	require.NoError(t, al.Set("name,status,additions:adds,!deletions"))
	return al
}

func names(rows []map[string]any) []any {
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, r["name"])
	}
	return out
}

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []Filter
	}{
		{"empty", "", nil},
		{"equal", "status=added", []Filter{{Key: "status", Operand: "=", Value: "added"}}},
		{"negated", "status!=added", []Filter{{Key: "status", Operand: "=", Negate: true, Value: "added"}}},
		{"server side", "_repo=o/r", []Filter{{Key: "repo", Operand: "=", ServerSide: true, Value: "o/r"}}},
		{"empty value", "name=", []Filter{{Key: "name", Operand: "="}}},
		{"several", "name^a, adds>5", []Filter{
			{Key: "name", Operand: "^", Value: "a"},
			{Key: "adds", Operand: ">", Value: "5"},
		}},
		{"missing key skipped", "=x,status=added", []Filter{{Key: "status", Operand: "=", Value: "added"}}},
		{"missing operand skipped", "status", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestBuildFilters_Delimiter(t *testing.T) {
	t.Setenv(DelimEnv, ";")
	got := BuildFilters("name@a,b;status=added")
	require.Len(t, got, 2)
	assert.Equal(t, "a,b", got[0].Value)
}

func TestServerSide(t *testing.T) {
	assert.Equal(t, []string{"repo:o/r", "-label:wip"}, ServerSide("_repo=o/r,title@nb,_label!=wip"))
	assert.Empty(t, ServerSide("title@nb"))
}

func TestFilterDataset(t *testing.T) {
	al := fileAttrs(t)
	data := gjson.Parse(files)

	tests := []struct {
		name string
		spec string
		want []any
	}{
		{"no filter", "", []any{"analysis.ipynb", "README.md", "plots/new.ipynb", "old.py"}},
		{"equal", "status=added", []any{"plots/new.ipynb"}},
		{"ignore case", "status~MODIFIED", []any{"analysis.ipynb", "README.md"}},
		{"prefix", "name^plots/", []any{"plots/new.ipynb"}},
		{"substring", "name@.ipynb", []any{"analysis.ipynb", "plots/new.ipynb"}},
		{"regex", `name/\.py$`, []any{"old.py"}},
		{"negated regex", `name!/\.ipynb$`, []any{"README.md", "old.py"}},
		{"numeric via output key", "adds>10", []any{"analysis.ipynb", "plots/new.ipynb"}},
		{"numeric hidden attr", "deletions<1", []any{"README.md", "plots/new.ipynb"}},
		{"numeric equal", "adds=1", []any{"README.md"}},
		{"list membership", "labels@nb", []any{"analysis.ipynb", "plots/new.ipynb"}},
		{"object membership", "meta@kernel", []any{"analysis.ipynb", "plots/new.ipynb"}},
		{"nested path", "meta.kernel=ir", []any{"plots/new.ipynb"}},
		{"null fails", "labels!@nb", []any{"README.md"}},
		{"all must pass", "status=modified,adds>5", []any{"analysis.ipynb"}},
		{"server side ignored", "_repo=o/r", []any{"analysis.ipynb", "README.md", "plots/new.ipynb", "old.py"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterDataset(data, al, tt.spec)))
		})
	}
}

func TestFilterDataset_Projection(t *testing.T) {
	rows := FilterDataset(gjson.Parse(files), fileAttrs(t), "status=added")
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]any{
		"name":      "plots/new.ipynb",
		"status":    "added",
		"adds":      float64(40),
		"deletions": float64(0),
	}, rows[0])
}

func TestFilterDataset_Empty(t *testing.T) {
	rows := FilterDataset(gjson.Parse(`[]`), fileAttrs(t), "")
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
