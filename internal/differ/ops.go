// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/yudai/gojsondiff"
)

// Patch operation names.
const (
	OpAdd         = "add"
	OpRemove      = "remove"
	OpReplace     = "replace"
	OpPatch       = "patch"
	OpAddRange    = "addrange"
	OpRemoveRange = "removerange"
)

// Op is one nbdime diff entry. Key is an int for sequences and a string for
// mappings. Which of the other fields is meaningful depends on Op.
type Op struct {
	Op        string
	Key       any
	Value     any
	ValueList []any
	Length    int
	Diff      []Op
}

func (o Op) MarshalJSON() ([]byte, error) {
	m := map[string]any{"op": o.Op, "key": o.Key}
	switch o.Op {
	case OpAdd, OpReplace:
		m["value"] = o.Value
	case OpAddRange:
		m["valuelist"] = o.ValueList
	case OpRemoveRange:
		m["length"] = o.Length
	case OpPatch:
		m["diff"] = o.Diff
	}
	return json.Marshal(m)
}

// objectOps converts gojsondiff object deltas into mapping ops. right is the
// new value of the mapping; it supplies replacement values for nested arrays.
func objectOps(deltas []gojsondiff.Delta, right map[string]any) []Op {
	ops := make([]Op, 0, len(deltas))

	for _, delta := range deltas {
		switch d := delta.(type) {
		case *gojsondiff.Object:
			key := d.PostPosition().String()
			inner, _ := right[key].(map[string]any)
			ops = append(ops, Op{Op: OpPatch, Key: key, Diff: objectOps(d.Deltas, inner)})
		case *gojsondiff.Array:
			key := d.PostPosition().String()
			ops = append(ops, Op{Op: OpReplace, Key: key, Value: right[key]})
		case *gojsondiff.Added:
			ops = append(ops, Op{Op: OpAdd, Key: d.PostPosition().String(), Value: d.Value})
		case *gojsondiff.Deleted:
			ops = append(ops, Op{Op: OpRemove, Key: d.PrePosition().String()})
		case *gojsondiff.TextDiff:
			ops = append(ops, Op{Op: OpReplace, Key: d.PostPosition().String(), Value: d.NewValue})
		case *gojsondiff.Modified:
			ops = append(ops, Op{Op: OpReplace, Key: d.PostPosition().String(), Value: d.NewValue})
		}
	}

	sortOps(ops)
	return ops
}

// sortOps orders ops by key. Insertions sort before other ops on the same
// sequence key.
func sortOps(ops []Op) {
	sort.SliceStable(ops, func(i, j int) bool {
		ki, kj := keyString(ops[i].Key), keyString(ops[j].Key)
		if ki != kj {
			ii, iok := ops[i].Key.(int)
			ij, jok := ops[j].Key.(int)
			if iok && jok {
				return ii < ij
			}
			return ki < kj
		}
		return ops[i].Op == OpAddRange && ops[j].Op != OpAddRange
	})
}

func keyString(k any) string {
	switch v := k.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}
