// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller resolves dotted attribute paths against JSON result rows so
// that --attrs, --filter and --sort can reach nested pull-request fields.
package driller
