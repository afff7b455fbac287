// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package github is the GitHub variant of provider.Provider plus the
// pull-request Manager built on it.
//
// The Provider speaks the REST v3 API: token authentication, the vendor JSON
// media type and Link header pagination. The Manager turns raw API payloads
// into the small records the CLI prints: the current user, open pull
// requests, changed files, file contents at the base and head commits, and
// review comments.
package github
