// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"

	"github.com/pmezard/go-difflib/difflib"
	lcs "github.com/yudai/golcs"

	"github.com/prctl/prctl/internal/notebook"
)

// similarityThreshold is the minimum source similarity for two cells between
// anchors to be reported as one modified cell.
const similarityThreshold = 0.5

type match struct {
	state  State
	base   int
	remote int
}

// align matches base cells to remote cells. The result lists every cell of
// both sides exactly once, in document order.
func align(ctx context.Context, base, remote []notebook.Cell) ([]match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	left := make([]interface{}, len(base))
	for i, c := range base {
		left[i] = c.Fingerprint()
	}
	right := make([]interface{}, len(remote))
	for i, c := range remote {
		right[i] = c.Fingerprint()
	}

	anchors, err := lcs.New(left, right).IndexPairsContext(ctx)
	if err != nil {
		return nil, err
	}

	bounds := make([]lcs.IndexPair, 0, len(anchors)+1)
	bounds = append(bounds, anchors...)
	bounds = append(bounds, lcs.IndexPair{Left: len(base), Right: len(remote)})

	matches := make([]match, 0, max(len(base), len(remote)))
	b, r := 0, 0
	for _, anchor := range bounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		matches = append(matches, pairGap(base, remote, b, anchor.Left, r, anchor.Right)...)
		if anchor.Left < len(base) {
			matches = append(matches, match{state: Unchanged, base: anchor.Left, remote: anchor.Right})
		}
		b, r = anchor.Left+1, anchor.Right+1
	}

	return matches, nil
}

// pairGap matches the cells base[b0:b1] and remote[r0:r1] that lie between two
// anchors. Pairs keep document order on both sides.
func pairGap(base, remote []notebook.Cell, b0, b1, r0, r1 int) []match {
	var pairs [][2]int

	if b1-b0 == 1 && r1-r0 == 1 {
		if base[b0].CellType == remote[r0].CellType {
			pairs = append(pairs, [2]int{b0, r0})
		}
	} else {
		next := r0
		for i := b0; i < b1; i++ {
			for j := next; j < r1; j++ {
				if base[i].CellType == remote[j].CellType && similarity(base[i], remote[j]) >= similarityThreshold {
					pairs = append(pairs, [2]int{i, j})
					next = j + 1
					break
				}
			}
		}
	}

	var out []match
	i, j := b0, r0
	for _, p := range pairs {
		for ; i < p[0]; i++ {
			out = append(out, match{state: Removed, base: i, remote: -1})
		}
		for ; j < p[1]; j++ {
			out = append(out, match{state: Added, base: -1, remote: j})
		}
		out = append(out, match{state: Modified, base: p[0], remote: p[1]})
		i, j = p[0]+1, p[1]+1
	}
	for ; i < b1; i++ {
		out = append(out, match{state: Removed, base: i, remote: -1})
	}
	for ; j < r1; j++ {
		out = append(out, match{state: Added, base: -1, remote: j})
	}

	return out
}

// similarity is the difflib ratio of two cell sources. Short cells are
// compared by character, longer ones by line.
func similarity(a, b notebook.Cell) float64 {
	la, lb := a.Lines(), b.Lines()
	if len(la) <= 2 && len(lb) <= 2 {
		la, lb = chars(a.Source), chars(b.Source)
	}
	return difflib.NewMatcherWithJunk(la, lb, false, nil).Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
