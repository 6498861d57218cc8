// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Logos Core Team
package manifest

import (
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// ctyToGo converts a decoded HCL value into the loose Go representation the
// descriptor layer works with: strings, numbers, bools, []any and
// map[string]any. Numbers that fit an int64 convert to int64 so that version
// fields round-trip without a float suffix.
func ctyToGo(val cty.Value) any {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString()
	case ty == cty.Bool:
		return val.True()
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i
		}
		f, _ := bf.Float64()
		return f
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, ctyToGo(ev))
		}
		return out
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			out[kv.AsString()] = ctyToGo(ev)
		}
		return out
	default:
		return nil
	}
}
