// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/pmezard/go-difflib/difflib"
)

// lineOpCodes runs difflib over two line lists without its popularity
// heuristic, which would otherwise treat common lines as junk.
func lineOpCodes(a, b []string) []difflib.OpCode {
	return difflib.NewMatcherWithJunk(a, b, false, nil).GetOpCodes()
}

// sourceOps turns a line diff into sequence ops keyed by base line.
func sourceOps(a, b []string) []Op {
	var ops []Op

	for _, oc := range lineOpCodes(a, b) {
		switch oc.Tag {
		case 'i':
			ops = append(ops, Op{Op: OpAddRange, Key: oc.I1, ValueList: lines(b[oc.J1:oc.J2])})
		case 'd':
			ops = append(ops, Op{Op: OpRemoveRange, Key: oc.I1, Length: oc.I2 - oc.I1})
		case 'r':
			ops = append(ops,
				Op{Op: OpAddRange, Key: oc.I1, ValueList: lines(b[oc.J1:oc.J2])},
				Op{Op: OpRemoveRange, Key: oc.I1, Length: oc.I2 - oc.I1},
			)
		}
	}

	return ops
}

func lines(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
