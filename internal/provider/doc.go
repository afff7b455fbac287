// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package provider holds the hosting-provider abstraction and the paginated
// fetch loop built on top of it. A Provider knows how to authenticate, issue
// one page request and find the next page; the Fetcher aggregates pages into
// a single ordered result and never needs to know which vendor it talks to.
//
// Every failure crossing this package's boundary is a *FetchError, which maps
// onto an HTTP status through Status.
package provider
