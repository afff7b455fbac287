// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
	lcs "github.com/yudai/golcs"

	"github.com/prctl/prctl/internal/notebook"
)

// State is how a cell changed between the two notebooks.
type State string

const (
	Unchanged State = "unchanged"
	Added     State = "added"
	Removed   State = "removed"
	Modified  State = "modified"
)

// CellDiff describes one aligned cell. BaseIndex is -1 for added cells and
// RemoteIndex is -1 for removed ones.
type CellDiff struct {
	State       State  `json:"state"`
	BaseIndex   int    `json:"base_index"`
	RemoteIndex int    `json:"remote_index"`
	CellType    string `json:"cell_type"`

	// Source holds the line ops of a modified cell's source.
	Source []Op `json:"source,omitempty"`

	// Delta is a jsondiffpatch delta of the outputs, metadata and
	// execution_count of a modified cell.
	Delta map[string]any `json:"delta,omitempty"`

	base     *notebook.Cell
	remote   *notebook.Cell
	ops      []Op
	jsonDiff gojsondiff.Diff
	left     map[string]any
}

// Result is the structural diff of two notebooks.
type Result struct {
	// Base is the previous notebook as generic JSON. Diff applies to it.
	Base map[string]any `json:"base"`

	Cells []CellDiff `json:"cells"`

	// Metadata is a jsondiffpatch delta of the notebook metadata, if changed.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Diff is the nbdime patch list that turns Base into the current notebook.
	Diff []Op `json:"diff"`

	metaJSON gojsondiff.Diff
	metaLeft map[string]any
}

// Changed reports whether the notebooks differ at all.
func (r *Result) Changed() bool {
	return len(r.Diff) > 0
}

// Summary counts cells per state.
type Summary struct {
	Unchanged int `json:"unchanged"`
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
}

func (r *Result) Summary() Summary {
	var s Summary
	for _, c := range r.Cells {
		switch c.State {
		case Unchanged:
			s.Unchanged++
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		case Modified:
			s.Modified++
		}
	}
	return s
}

// Diff compares two notebook bodies. Either body failing to parse yields a
// *notebook.ParseError. Identical inputs always produce identical results.
func Diff(ctx context.Context, previous, current string) (*Result, error) {
	prev, err := notebook.Parse(previous)
	if err != nil {
		return nil, fmt.Errorf("previous notebook: %w", err)
	}
	curr, err := notebook.Parse(current)
	if err != nil {
		return nil, fmt.Errorf("current notebook: %w", err)
	}

	matches, err := align(ctx, prev.Cells, curr.Cells)
	if err != nil {
		return nil, err
	}

	differ := gojsondiff.New()
	res := &Result{Base: prev.Raw, Cells: make([]CellDiff, 0, len(matches))}

	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cd := CellDiff{State: m.state, BaseIndex: m.base, RemoteIndex: m.remote}
		if m.base >= 0 {
			cd.base = &prev.Cells[m.base]
			cd.CellType = cd.base.CellType
		}
		if m.remote >= 0 {
			cd.remote = &curr.Cells[m.remote]
			cd.CellType = cd.remote.CellType
		}

		if cd.State == Modified {
			if err := cd.compare(ctx, differ); err != nil {
				return nil, err
			}
			if len(cd.ops) == 0 {
				cd.State = Unchanged
			}
		}

		res.Cells = append(res.Cells, cd)
	}

	res.Diff = []Op{}
	if ops := cellOps(res.Cells, prev, curr); len(ops) > 0 {
		res.Diff = append(res.Diff, Op{Op: OpPatch, Key: "cells", Diff: ops})
	}

	metaDiff := differ.CompareObjects(prev.Metadata, curr.Metadata)
	if metaDiff.Modified() {
		delta, err := formatter.NewDeltaFormatter().FormatAsJson(metaDiff)
		if err != nil {
			return nil, fmt.Errorf("failed to format metadata delta: %w", err)
		}
		res.Metadata = delta
		res.metaJSON = metaDiff
		res.metaLeft = prev.Metadata
		res.Diff = append(res.Diff, Op{Op: OpPatch, Key: "metadata", Diff: objectOps(metaDiff.Deltas(), curr.Metadata)})
	}

	if prev.NBFormatMinor != curr.NBFormatMinor {
		res.Diff = append(res.Diff, Op{Op: OpReplace, Key: "nbformat_minor", Value: curr.NBFormatMinor})
	}

	sortOps(res.Diff)

	log.Debugf("nbdiff: base cells: %d, remote cells: %d, summary: %+v", len(prev.Cells), len(curr.Cells), res.Summary())

	return res, nil
}

// compare fills in the sub-diffs of a modified cell.
func (cd *CellDiff) compare(ctx context.Context, differ *gojsondiff.Differ) error {
	if src := sourceOps(cd.base.Lines(), cd.remote.Lines()); len(src) > 0 {
		cd.Source = src
		cd.ops = append(cd.ops, Op{Op: OpPatch, Key: "source", Diff: src})
	}

	left, right := fields(cd.base), fields(cd.remote)
	diff := differ.CompareObjects(left, right)
	if !diff.Modified() {
		return nil
	}

	delta, err := formatter.NewDeltaFormatter().FormatAsJson(diff)
	if err != nil {
		return fmt.Errorf("failed to format cell delta: %w", err)
	}
	cd.Delta = delta
	cd.jsonDiff = diff
	cd.left = left

	if left["execution_count"] != right["execution_count"] {
		cd.ops = append(cd.ops, Op{Op: OpReplace, Key: "execution_count", Value: right["execution_count"]})
	}

	meta := differ.CompareObjects(cd.base.Metadata, cd.remote.Metadata)
	if meta.Modified() {
		cd.ops = append(cd.ops, Op{Op: OpPatch, Key: "metadata", Diff: objectOps(meta.Deltas(), cd.remote.Metadata)})
	}

	outputs, err := outputOps(ctx, cd.base.Outputs, cd.remote.Outputs)
	if err != nil {
		return err
	}
	if len(outputs) > 0 {
		cd.ops = append(cd.ops, Op{Op: OpPatch, Key: "outputs", Diff: outputs})
	}

	sortOps(cd.ops)
	return nil
}

// fields is the part of a cell compared as JSON rather than as text.
func fields(c *notebook.Cell) map[string]any {
	var count any
	if c.ExecutionCount != nil {
		count = float64(*c.ExecutionCount)
	}
	return map[string]any{
		"outputs":         c.Outputs,
		"metadata":        c.Metadata,
		"execution_count": count,
	}
}

// outputOps aligns two output lists on whole-output equality and reports the
// gaps as range ops.
func outputOps(ctx context.Context, a, b []any) ([]Op, error) {
	left, right := fingerprints(a), fingerprints(b)

	pairs, err := lcs.New(left, right).IndexPairsContext(ctx)
	if err != nil {
		return nil, err
	}
	pairs = append(pairs, lcs.IndexPair{Left: len(a), Right: len(b)})

	var ops []Op
	i, j := 0, 0
	for _, p := range pairs {
		if p.Left > i {
			ops = append(ops, Op{Op: OpRemoveRange, Key: i, Length: p.Left - i})
		}
		if p.Right > j {
			ops = append(ops, Op{Op: OpAddRange, Key: p.Left, ValueList: append([]any(nil), b[j:p.Right]...)})
		}
		i, j = p.Left+1, p.Right+1
	}

	return ops, nil
}

func fingerprints(items []any) []interface{} {
	out := make([]interface{}, len(items))
	for i, item := range items {
		data, _ := json.Marshal(item)
		out[i] = string(data)
	}
	return out
}

// cellOps builds the nbdime ops of the cells list. Removed runs become one
// removerange, added runs one addrange keyed by the base cell they precede.
func cellOps(cells []CellDiff, prev, curr *notebook.Notebook) []Op {
	var ops []Op

	nextBase := func(k int) int {
		for ; k < len(cells); k++ {
			if cells[k].BaseIndex >= 0 {
				return cells[k].BaseIndex
			}
		}
		return len(prev.Cells)
	}

	for k := 0; k < len(cells); k++ {
		cd := cells[k]
		switch cd.State {
		case Removed:
			n := 1
			for k+1 < len(cells) && cells[k+1].State == Removed && cells[k+1].BaseIndex == cd.BaseIndex+n {
				n++
				k++
			}
			ops = append(ops, Op{Op: OpRemoveRange, Key: cd.BaseIndex, Length: n})
		case Added:
			values := []any{curr.RawCell(cd.RemoteIndex)}
			for k+1 < len(cells) && cells[k+1].State == Added {
				k++
				values = append(values, curr.RawCell(cells[k].RemoteIndex))
			}
			ops = append(ops, Op{Op: OpAddRange, Key: nextBase(k + 1), ValueList: values})
		case Modified:
			ops = append(ops, Op{Op: OpPatch, Key: cd.BaseIndex, Diff: cd.ops})
		}
	}

	return ops
}
