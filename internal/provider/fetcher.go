// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"context"
	"strconv"
	"strings"

	"github.com/apex/log"
)

// DefaultPageSize is the page size requested on the first page.
const DefaultPageSize = 100

// Fetcher aggregates every page of a logical GET into one ordered list.
type Fetcher struct {
	Provider Provider
	PageSize int
}

// NewFetcher returns a Fetcher over p using DefaultPageSize.
func NewFetcher(p Provider) *Fetcher {
	return &Fetcher{Provider: p, PageSize: DefaultPageSize}
}

// WithPageSize stamps the page size query parameter onto link.
func WithPageSize(link string, size int) string {
	sep := "?"
	if strings.Contains(link, "?") {
		sep = "&"
	}
	return link + sep + "per_page=" + strconv.Itoa(size)
}

// Fetch follows link and every rel="next" link after it, concatenating the
// pages in fetch order. Only the first request carries the page size; next
// links are used verbatim. The first failure aborts and nothing partial is
// returned.
func (f *Fetcher) Fetch(ctx context.Context, link string) ([]Mapping, error) {
	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	results := []Mapping{}
	next := WithPageSize(link, size)

	for page := 1; next != ""; page++ {
		current := next

		p, n, err := f.Provider.FetchPage(ctx, current)
		if err != nil {
			fe := Classify(current, err)
			log.WithError(fe.Err).Debugf("%s: page %d of %s failed: %s", f.Provider.Name(), page, link, fe.Kind)
			return nil, fe
		}

		results = append(results, p.Sequence()...)
		log.Debugf("%s: page: %d, items: %d, total: %d", f.Provider.Name(), page, p.Len(), len(results))

		next = n
	}

	return results, nil
}

// FetchOne fetches link and returns its first object. It is meant for
// endpoints that answer with a single object.
func (f *Fetcher) FetchOne(ctx context.Context, link string) (Mapping, error) {
	items, err := f.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, Malformed(link, ErrUnexpectedShape)
	}
	return items[0], nil
}
