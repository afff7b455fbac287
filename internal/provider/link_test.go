// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextLink(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"empty", "", "", false},
		{"next only", `<next-url>; rel="next"`, "next-url", true},
		{"prev only", `<prev-url>; rel="prev"`, "", false},
		{"next among others", `<p>; rel="prev", <n>; rel="next", <l>; rel="last"`, "n", true},
		{"wrong attribute name", `<next-url>; next="next"`, "", false},
		{"unquoted rel", `<next-url>; rel=next`, "next-url", true},
		{"absolute url", `<https://api.github.com/user/repos?page=3&per_page=100>; rel="next"`,
			"https://api.github.com/user/repos?page=3&per_page=100", true},
		{"no brackets", `next-url; rel="next"`, "", false},
		{"uppercase attribute", `<n>; REL="next"`, "n", true},
		{"space separated relations", `<n>; rel="next last"`, "n", true},
		{"next listed second", `<p>; rel="prev", <n>; rel="last  next"`, "n", true},
		{"next as a prefix only", `<n>; rel="nextpage last"`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextLink(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLinkHeader(t *testing.T) {
	header := `<https://h/a?page=2>; rel="next", <https://h/a?page=9>; rel="last"; title="end"`

	links := ParseLinkHeader(header)
	assert.Len(t, links, 2)

	assert.Equal(t, "https://h/a?page=2", links[0].URL)
	assert.Equal(t, "next", links[0].Rel)

	assert.Equal(t, "https://h/a?page=9", links[1].URL)
	assert.Equal(t, "last", links[1].Rel)
	assert.Equal(t, "end", links[1].Params["title"])
}
