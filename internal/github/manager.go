// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/prctl/prctl/internal/differ"
	"github.com/prctl/prctl/internal/provider"
)

// Filter selects which open pull requests ListPRs returns.
type Filter string

const (
	FilterCreated  Filter = "created"
	FilterAssigned Filter = "assigned"
)

var (
	ErrInvalidFilter  = errors.New("invalid pull request filter")
	ErrEmptyComment   = errors.New("comment text is empty")
	ErrMissingCommit  = errors.New("new comment thread needs a commit id")
	ErrNoHeadRepo     = errors.New("pull request has no head repository")
	ErrNoDownloadLink = errors.New("contents response has no download_url")
)

// ParseFilter validates a filter name.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterCreated, FilterAssigned:
		return f, nil
	case "":
		return FilterCreated, nil
	default:
		return "", fmt.Errorf("%w: %q (want created or assigned)", ErrInvalidFilter, s)
	}
}

// Client is what the Manager needs from a provider: paginated GETs plus
// one-shot calls.
type Client interface {
	provider.Provider
	provider.Doer
}

// Manager implements the pull-request operations on top of a Client.
type Manager struct {
	client  Client
	fetcher *provider.Fetcher
}

// NewManager returns a Manager over client.
func NewManager(client Client) *Manager {
	return &Manager{client: client, fetcher: provider.NewFetcher(client)}
}

// CurrentUser returns the authenticated user.
func (m *Manager) CurrentUser(ctx context.Context) (User, error) {
	obj, err := m.fetcher.FetchOne(ctx, "user")
	if err != nil {
		return User{}, err
	}
	return User{Username: view(obj).Get("login").String()}, nil
}

// ListPRs returns the open pull requests created by or assigned to username.
// An empty username means the authenticated user. Extra search qualifiers
// such as "repo:octo/demo" narrow the query server side.
func (m *Manager) ListPRs(ctx context.Context, username string, filter Filter, qualifiers ...string) ([]PullRequest, error) {
	var qualifier string
	switch filter {
	case FilterCreated:
		qualifier = "author"
	case FilterAssigned:
		qualifier = "assignee"
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, filter)
	}

	if username == "" {
		user, err := m.CurrentUser(ctx)
		if err != nil {
			return nil, err
		}
		username = user.Username
	}

	link := "search/issues?q=+state:open+type:pr+" + qualifier + ":" + url.QueryEscape(username)
	for _, q := range qualifiers {
		if q = strings.TrimSpace(q); q != "" {
			link += "+" + url.QueryEscape(q)
		}
	}

	pages, err := m.fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}

	prs := []PullRequest{}
	for _, page := range pages {
		view(page).Get("items").ForEach(func(_, item gjson.Result) bool {
			prs = append(prs, PullRequest{
				ID:         item.Get("pull_request.url").String(),
				Title:      item.Get("title").String(),
				Body:       item.Get("body").String(),
				InternalID: item.Get("id").Int(),
				Link:       item.Get("html_url").String(),
				UpdatedAt:  item.Get("updated_at").String(),
			})
			return true
		})
	}

	log.Debugf("ListPRs: user: %s, filter: %s, count: %d", username, filter, len(prs))

	return prs, nil
}

// ListFiles returns the files changed by a pull request.
func (m *Manager) ListFiles(ctx context.Context, prID string) ([]File, error) {
	prLink, err := PRLink(prID)
	if err != nil {
		return nil, err
	}

	items, err := m.fetcher.Fetch(ctx, prLink+"/files")
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(items))
	for _, item := range items {
		v := view(item)
		files = append(files, File{
			Name:      v.Get("filename").String(),
			Status:    v.Get("status").String(),
			Additions: v.Get("additions").Int(),
			Deletions: v.Get("deletions").Int(),
		})
	}

	return files, nil
}

// Links returns the contents API URLs of filename at the base and head
// commits of a pull request.
func (m *Manager) Links(ctx context.Context, prID, filename string) (FileLinks, error) {
	prLink, err := PRLink(prID)
	if err != nil {
		return FileLinks{}, err
	}

	obj, err := m.fetcher.FetchOne(ctx, prLink)
	if err != nil {
		return FileLinks{}, err
	}
	v := view(obj)

	headRepo := v.Get("head.repo.url").String()
	if headRepo == "" {
		return FileLinks{}, provider.Malformed(prLink, ErrNoHeadRepo)
	}

	return FileLinks{
		BaseURL:  contentsLink(v.Get("base.repo.url").String(), filename, v.Get("base.sha").String()),
		HeadURL:  contentsLink(headRepo, filename, v.Get("head.sha").String()),
		CommitID: v.Get("head.sha").String(),
	}, nil
}

func contentsLink(repoURL, filename, ref string) string {
	return strings.TrimRight(repoURL, "/") + "/contents/" + escapePath(filename) + "?ref=" + url.QueryEscape(ref)
}

// LinkContent follows a contents API URL to the file's raw text.
func (m *Manager) LinkContent(ctx context.Context, contentsURL string) (string, error) {
	obj, err := m.fetcher.FetchOne(ctx, contentsURL)
	if err != nil {
		return "", err
	}

	download := view(obj).Get("download_url").String()
	if download == "" {
		return "", provider.Malformed(contentsURL, ErrNoDownloadLink)
	}

	resp, err := m.client.Do(ctx, provider.Request{Method: http.MethodGet, Link: download, Raw: true})
	if err != nil {
		return "", err
	}

	return string(resp.Body), nil
}

// FileContent returns filename at both ends of a pull request. The two sides
// are fetched concurrently. A side where the file does not exist (added or
// removed in the pull request) is empty.
func (m *Manager) FileContent(ctx context.Context, prID, filename string) (FileContent, error) {
	links, err := m.Links(ctx, prID, filename)
	if err != nil {
		return FileContent{}, err
	}

	fc := FileContent{CommitID: links.CommitID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		content, err := m.sideContent(gctx, "base", links.BaseURL)
		fc.BaseContent = content
		return err
	})
	g.Go(func() error {
		content, err := m.sideContent(gctx, "head", links.HeadURL)
		fc.HeadContent = content
		return err
	})

	if err := g.Wait(); err != nil {
		return FileContent{}, err
	}
	return fc, nil
}

func (m *Manager) sideContent(ctx context.Context, side, link string) (string, error) {
	content, err := m.LinkContent(ctx, link)
	if provider.IsNotFound(err) {
		log.Debugf("FileContent: no %s content at %s", side, link)
		return "", nil
	}
	return content, err
}

// FileComments returns the review comments on filename in posting order.
func (m *Manager) FileComments(ctx context.Context, prID, filename string) ([]Comment, error) {
	prLink, err := PRLink(prID)
	if err != nil {
		return nil, err
	}

	items, err := m.fetcher.Fetch(ctx, prLink+"/comments")
	if err != nil {
		return nil, err
	}

	comments := []Comment{}
	for _, item := range items {
		v := view(item)
		if v.Get("path").String() != filename {
			continue
		}
		comments = append(comments, commentFrom(v))
	}

	return comments, nil
}

// PostFileComment adds a review comment to filename, either as a reply or as
// a new thread at a diff position.
func (m *Manager) PostFileComment(ctx context.Context, prID, filename string, c NewComment) (Comment, error) {
	if strings.TrimSpace(c.Text) == "" {
		return Comment{}, ErrEmptyComment
	}

	prLink, err := PRLink(prID)
	if err != nil {
		return Comment{}, err
	}

	var body map[string]any
	if c.InReplyTo != 0 {
		body = map[string]any{
			"body":        c.Text,
			"in_reply_to": c.InReplyTo,
		}
	} else {
		if c.CommitID == "" {
			return Comment{}, ErrMissingCommit
		}
		body = map[string]any{
			"body":      c.Text,
			"commit_id": c.CommitID,
			"path":      filename,
			"position":  c.Position,
		}
	}

	link := prLink + "/comments"
	resp, err := m.client.Do(ctx, provider.Request{Method: http.MethodPost, Link: link, Body: body})
	if err != nil {
		return Comment{}, err
	}

	page, err := provider.DecodePage(resp.Body)
	if err != nil {
		return Comment{}, provider.Malformed(link, err)
	}
	obj, ok := page.Object()
	if !ok {
		return Comment{}, provider.Malformed(link, provider.ErrUnexpectedShape)
	}

	return commentFrom(view(obj)), nil
}

// FileNBDiff computes the structural diff between two notebook bodies.
func (m *Manager) FileNBDiff(ctx context.Context, previous, current string) (*differ.Result, error) {
	return differ.Diff(ctx, previous, current)
}

func commentFrom(v gjson.Result) Comment {
	return Comment{
		ID:          v.Get("id").Int(),
		LineNumber:  v.Get("position").Int(),
		Text:        v.Get("body").String(),
		UpdatedAt:   v.Get("updated_at").String(),
		UserName:    v.Get("user.login").String(),
		UserPic:     v.Get("user.avatar_url").String(),
		InReplyToID: v.Get("in_reply_to_id").Int(),
	}
}

// view re-encodes a decoded payload so fields can be read with gjson paths.
func view(m provider.Mapping) gjson.Result {
	data, err := json.Marshal(m)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.ParseBytes(data)
}
