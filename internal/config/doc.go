// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads the optional prctl.yaml file and exposes dotted-key
// getters with command namespacing (e.g. "prs.filter_by" before "filter_by").
package config
