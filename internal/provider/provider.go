// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"context"
	"net/http"
)

// Provider is one hosting vendor. Implementations must be safe for
// concurrent use; the Fetcher holds no state between calls.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// AuthHeader returns the header name and value that authenticate every
	// request to the provider.
	AuthHeader() (string, string)

	// FetchPage issues one GET for link and returns the decoded page plus the
	// next page link, which is empty when there is none. Errors are
	// *FetchError.
	FetchPage(ctx context.Context, link string) (Page, string, error)
}

// Request is a single non-paginated call.
type Request struct {
	Method string
	Link   string
	Body   any
	// Raw asks for the body as-is, without the vendor JSON media type.
	Raw bool
}

// Response is the undecoded answer to a Request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Doer is implemented by providers that also support one-shot calls such as
// posting a comment or downloading raw file content.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}
