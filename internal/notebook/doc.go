// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package notebook parses Jupyter notebooks in nbformat 4.
package notebook
