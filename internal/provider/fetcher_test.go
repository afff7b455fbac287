// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package provider

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedPage struct {
	page Page
	next string
	err  error
}

// scripted answers FetchPage from a fixed table and records every link asked for.
type scripted struct {
	mu    sync.Mutex
	pages map[string]scriptedPage
	calls []string
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) AuthHeader() (string, string) { return "Authorization", "token t" }

func (s *scripted) FetchPage(ctx context.Context, link string) (Page, string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, link)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Page{}, "", err
	}

	sp, ok := s.pages[link]
	if !ok {
		return Page{}, "", Upstream(404, link)
	}
	return sp.page, sp.next, sp.err
}

func TestFetch_SinglePage(t *testing.T) {
	p := &scripted{pages: map[string]scriptedPage{
		"user?per_page=100": {page: Single(Mapping{"login": "octocat"})},
	}}

	got, err := NewFetcher(p).Fetch(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, []Mapping{{"login": "octocat"}}, got)
	assert.Equal(t, []string{"user?per_page=100"}, p.calls)
}

func TestFetch_FollowsNextInOrder(t *testing.T) {
	p := &scripted{pages: map[string]scriptedPage{
		"repos?per_page=100": {page: Many([]Mapping{{"n": 1}, {"n": 2}}), next: "https://h/repos?page=2"},
		"https://h/repos?page=2": {page: Single(Mapping{"n": 3}), next: "https://h/repos?page=3"},
		"https://h/repos?page=3": {page: Many([]Mapping{{"n": 4}})},
	}}

	got, err := NewFetcher(p).Fetch(context.Background(), "repos")
	require.NoError(t, err)
	assert.Equal(t, []Mapping{{"n": 1}, {"n": 2}, {"n": 3}, {"n": 4}}, got)

	// Page size is only stamped on the first request.
	assert.Equal(t, []string{
		"repos?per_page=100",
		"https://h/repos?page=2",
		"https://h/repos?page=3",
	}, p.calls)
}

func TestFetch_EmptyResult(t *testing.T) {
	p := &scripted{pages: map[string]scriptedPage{
		"search?q=x&per_page=100": {page: Many(nil)},
	}}

	got, err := NewFetcher(p).Fetch(context.Background(), "search?q=x")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetch_AbortsWithoutPartialResult(t *testing.T) {
	p := &scripted{pages: map[string]scriptedPage{
		"a?per_page=100": {page: Many([]Mapping{{"n": 1}}), next: "a2"},
		"a2":             {err: Upstream(502, "a2")},
		"a3":             {page: Many([]Mapping{{"n": 3}})},
	}}

	got, err := NewFetcher(p).Fetch(context.Background(), "a")
	assert.Nil(t, got)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindUpstream, fe.Kind)
	assert.Equal(t, 502, fe.Status)
	assert.Equal(t, []string{"a?per_page=100", "a2"}, p.calls)
}

func TestFetch_ForeignErrorBecomesUnknown(t *testing.T) {
	p := &scripted{pages: map[string]scriptedPage{
		"a?per_page=100": {err: errors.New("connection reset")},
	}}

	_, err := NewFetcher(p).Fetch(context.Background(), "a")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindUnknown, fe.Kind)
	assert.Equal(t, "Unknown error in a?per_page=100", fe.Error())
}

func TestFetch_CustomPageSize(t *testing.T) {
	p := &scripted{pages: map[string]scriptedPage{
		"a?per_page=5": {page: Many(nil)},
	}}

	f := &Fetcher{Provider: p, PageSize: 5}
	_, err := f.Fetch(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a?per_page=5"}, p.calls)
}

func TestFetchOne(t *testing.T) {
	p := &scripted{pages: map[string]scriptedPage{
		"pr?per_page=100":    {page: Single(Mapping{"number": 1})},
		"empty?per_page=100": {page: Many(nil)},
	}}
	f := NewFetcher(p)

	got, err := f.FetchOne(context.Background(), "pr")
	require.NoError(t, err)
	assert.Equal(t, Mapping{"number": 1}, got)

	_, err = f.FetchOne(context.Background(), "empty")
	code, _ := Status(err)
	assert.Equal(t, 400, code)
}

func TestFetch_Cancelled(t *testing.T) {
	p := &scripted{pages: map[string]scriptedPage{
		"a?per_page=100": {page: Single(Mapping{})},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(p).Fetch(ctx, "a")
	code, _ := Status(err)
	assert.Equal(t, 500, code)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithPageSize(t *testing.T) {
	assert.Equal(t, "user?per_page=100", WithPageSize("user", 100))
	assert.Equal(t, "search/issues?q=a&per_page=100", WithPageSize("search/issues?q=a", 100))
}
