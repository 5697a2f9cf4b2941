// Copyright 2026 The Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

// UTxO is the ledger's unspent-output map. It is treated as an immutable
// value throughout the rule pipeline: every operation below returns a new
// map rather than mutating its receiver, so a UTXO in one branch of a
// property test never observes another branch's changes.
type UTxO map[TxIn]UTxOOut

// SingletonUTxO builds a UTxO map with exactly one entry.
func SingletonUTxO(in TxIn, out UTxOOut) UTxO {
	return UTxO{in: out}
}

// Domain returns the set of inputs present in u.
func (u UTxO) Domain() map[TxIn]struct{} {
	out := make(map[TxIn]struct{}, len(u))
	for in := range u {
		out[in] = struct{}{}
	}
	return out
}

// Range returns the outputs present in u, in no particular order.
func (u UTxO) Range() []UTxOOut {
	out := make([]UTxOOut, 0, len(u))
	for _, o := range u {
		out = append(out, o)
	}
	return out
}

// Restrict returns the sub-map of u whose domain is limited to ins.
func (u UTxO) Restrict(ins map[TxIn]struct{}) UTxO {
	out := make(UTxO, len(ins))
	for in := range ins {
		if o, ok := u[in]; ok {
			out[in] = o
		}
	}
	return out
}

// Exclude returns u with every input in ins removed.
func (u UTxO) Exclude(ins map[TxIn]struct{}) UTxO {
	out := make(UTxO, len(u))
	for in, o := range u {
		if _, drop := ins[in]; !drop {
			out[in] = o
		}
	}
	return out
}

// RestrictRange returns the sub-map of u whose keys fall within [lo, hi]
// under the same total order SortedTxIns uses (byte-compare Id, then
// Index), inclusive of both bounds.
func (u UTxO) RestrictRange(lo, hi TxIn) UTxO {
	out := make(UTxO)
	for in, o := range u {
		if compareTxIn(lo, in) <= 0 && compareTxIn(in, hi) <= 0 {
			out[in] = o
		}
	}
	return out
}

// Size returns the number of entries in u.
func (u UTxO) Size() int { return len(u) }

// ContainsKey reports whether in is present in u.
func (u UTxO) ContainsKey(in TxIn) bool {
	_, ok := u[in]
	return ok
}

// InsertIfAbsent returns u with (in, out) added only if in is not already
// present; if in is already a key, u is returned unchanged (as a copy).
func (u UTxO) InsertIfAbsent(in TxIn, out UTxOOut) UTxO {
	result := make(UTxO, len(u)+1)
	for k, v := range u {
		result[k] = v
	}
	if _, exists := result[in]; !exists {
		result[in] = out
	}
	return result
}

// RemoveKey returns u with in removed, or u unchanged (as a copy) if in was
// never a key.
func (u UTxO) RemoveKey(in TxIn) UTxO {
	return u.Exclude(map[TxIn]struct{}{in: {}})
}

// UnionLeftBiased returns the union of u and other; on key collision u's
// entry wins.
func (u UTxO) UnionLeftBiased(other UTxO) UTxO {
	out := make(UTxO, len(u)+len(other))
	for in, o := range other {
		out[in] = o
	}
	for in, o := range u {
		out[in] = o
	}
	return out
}

// Override returns the union of u and other; on key collision other's
// entry wins. This is the operation the UTXO rule uses to apply a
// transaction body, since a freshly produced output must always replace
// whatever a (disjoint, by construction) prior entry happened to occupy.
func (u UTxO) Override(other UTxO) UTxO {
	out := make(UTxO, len(u)+len(other))
	for in, o := range u {
		out[in] = o
	}
	for in, o := range other {
		out[in] = o
	}
	return out
}

// Lookup resolves a single input, reporting whether it is present.
func (u UTxO) Lookup(in TxIn) (UTxOOut, bool) {
	o, ok := u[in]
	return o, ok
}

// Resolve resolves every input in ins present in u, for use by the witness
// engine and balance check; inputs absent from u are simply omitted, since
// their absence is itself reported by the UTXO rule's input-existence
// check.
func (u UTxO) Resolve(ins []TxIn) map[TxIn]UTxOOut {
	out := make(map[TxIn]UTxOOut, len(ins))
	for _, in := range ins {
		if o, ok := u[in]; ok {
			out[in] = o
		}
	}
	return out
}

// TotalValue sums the Value carried by every output in u's range.
func (u UTxO) TotalValue() (Value, error) {
	total := ZeroValue()
	for _, o := range u {
		v, err := o.Value.ToValue()
		if err != nil {
			return Value{}, err
		}
		total = total.Add(v)
	}
	return total, nil
}

// ApplyTxBody returns the UTxO that results from consuming a body's inputs
// and adding its outputs: (u `Exclude` inputs) `Override` outputs.
func (u UTxO) ApplyTxBody(body *TxBody) UTxO {
	consumed := make(map[TxIn]struct{}, len(body.TxInputs))
	for _, in := range body.TxInputs {
		consumed[in] = struct{}{}
	}
	return u.Exclude(consumed).Override(body.Txouts())
}
