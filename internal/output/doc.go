// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output shapes command results for the terminal. Results arrive as a
// JSON array of rows and leave as a table, JSON, YAML or the raw document
// after --filter, --attrs transforms and --sort have been applied.
package output
