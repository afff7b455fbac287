// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes and renders structural differences between two
// versions of a Jupyter notebook.
//
// Cells are aligned first: cells whose whole content is equal anchor the
// alignment, and the cells between anchors are paired by type and source
// similarity. Paired cells are reported as modified and carry sub-diffs of
// their source lines and of their outputs, metadata and execution count.
//
// The result is available both as a per-cell summary and as an nbdime style
// patch list against the previous notebook.
package differ
