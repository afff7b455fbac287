// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"slices"
	"strings"
)

// Link is one entry of a Link response header.
type Link struct {
	URL    string
	Rel    string
	Params map[string]string
}

// ParseLinkHeader splits a header of the form
//
//	<https://host/a?page=2>; rel="next", <https://host/a?page=9>; rel="last"
//
// into its entries. Entries without a <url> are skipped.
func ParseLinkHeader(header string) []Link {
	var links []Link

	rest := header
	for {
		start := strings.IndexByte(rest, '<')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], '>')
		if end < 0 {
			break
		}
		end += start

		link := Link{
			URL:    strings.TrimSpace(rest[start+1 : end]),
			Params: map[string]string{},
		}
		rest = rest[end+1:]

		params := rest
		if next := strings.IndexByte(rest, '<'); next >= 0 {
			params = rest[:next]
		}

		for _, param := range strings.Split(params, ";") {
			key, value, ok := strings.Cut(param, "=")
			if !ok {
				continue
			}
			key = strings.ToLower(strings.TrimSpace(key))
			value = strings.TrimSpace(value)
			value = strings.TrimSpace(strings.TrimSuffix(value, ","))
			value = strings.Trim(value, `"`)
			link.Params[key] = value
			if key == "rel" {
				link.Rel = value
			}
		}

		links = append(links, link)
	}

	return links
}

// NextLink returns the URL of the entry whose rel lists "next", if any. A rel
// may hold several space-separated relations. Any other relation, or a
// "next" carried by another attribute, is ignored.
func NextLink(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	for _, l := range ParseLinkHeader(header) {
		if l.URL != "" && slices.Contains(strings.Fields(l.Rel), "next") {
			return l.URL, true
		}
	}
	return "", false
}
