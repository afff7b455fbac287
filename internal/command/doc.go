// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the prctl CLI. Query commands (user, prs, files,
// content, comments, comment) share one runner that fetches through
// github.Manager and prints through the output pipeline. nbdiff and review
// render notebook diffs.
package command
