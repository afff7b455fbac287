// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/prctl/prctl/internal/provider"
	"github.com/prctl/prctl/internal/version"
)

const (
	// DefaultAPIURL is the public GitHub REST endpoint.
	DefaultAPIURL = "https://api.github.com"

	mediaType = "application/vnd.github.v3+json"
)

var ErrNoToken = errors.New("no GitHub access token")

// Provider implements provider.Provider and provider.Doer for GitHub.
type Provider struct {
	token   string
	baseURL string
	client  *http.Client
}

// Option customizes a Provider.
type Option func(p *Provider)

// WithBaseURL points the provider at a GitHub Enterprise host or a test server.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the pooled cleanhttp client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		if client != nil {
			p.client = client
		}
	}
}

// New returns a Provider authenticating with token.
func New(token string, opts ...Option) (*Provider, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNoToken
	}

	p := &Provider{
		token:   token,
		baseURL: DefaultAPIURL,
		client:  cleanhttp.DefaultPooledClient(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.baseURL = strings.TrimRight(p.baseURL, "/")

	log.Debugf("github provider: base: %s", p.baseURL)

	return p, nil
}

func (p *Provider) Name() string {
	return "github"
}

// BaseURL is the API root every relative link is joined to.
func (p *Provider) BaseURL() string {
	return p.baseURL
}

func (p *Provider) AuthHeader() (string, string) {
	return "Authorization", "token " + p.token
}

// Resolve turns a relative API link into an absolute URL. Absolute links are
// returned unchanged.
func (p *Provider) Resolve(link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return p.baseURL + "/" + strings.TrimLeft(link, "/")
}

// Do sends one request and returns the raw answer. Non-2xx answers become
// upstream FetchErrors; transport failures become unknown ones.
func (p *Provider) Do(ctx context.Context, r provider.Request) (*provider.Response, error) {
	link := p.Resolve(r.Link)

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, provider.Unknown(link, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, link, body)
	if err != nil {
		return nil, provider.Unknown(link, err)
	}

	key, value := p.AuthHeader()
	req.Header.Set(key, value)
	req.Header.Set("User-Agent", version.UserAgent())
	if !r.Raw {
		req.Header.Set("Accept", mediaType)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debugf("%s %s", method, link)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, provider.Unknown(link, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.Unknown(link, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debugf("%s %s: status %d: %s", method, link, resp.StatusCode, snippet(data))
		return nil, provider.Upstream(resp.StatusCode, link)
	}

	return &provider.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// FetchPage GETs one page of link.
func (p *Provider) FetchPage(ctx context.Context, link string) (provider.Page, string, error) {
	resp, err := p.Do(ctx, provider.Request{Method: http.MethodGet, Link: link})
	if err != nil {
		return provider.Page{}, "", err
	}

	page, err := provider.DecodePage(resp.Body)
	if err != nil {
		return provider.Page{}, "", provider.Malformed(p.Resolve(link), err)
	}

	next, _ := provider.NextLink(resp.Header.Get("Link"))

	return page, next, nil
}

func snippet(data []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(data))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
