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

import (
	"bytes"
	"maps"
	"math/big"
	"slices"
	"strings"

	icbor "github.com/bariscicek/cardano-ledger-specs/internal/cbor"
)

// PolicyID identifies a minting policy. The zero value is the reserved
// null policy of the base asset (ada/lovelace).
type PolicyID = Blake2b224

// AssetID names one component of a multi-asset Value: a policy and an
// asset name under that policy. The base asset uses the zero PolicyID and
// an empty name.
type AssetID struct {
	Policy PolicyID
	Name   icbor.ByteString
}

func (a AssetID) isBase() bool {
	return a.Policy == PolicyID{} && len(a.Name.Bytes()) == 0
}

func compareAssetID(a, b AssetID) int {
	if c := bytes.Compare(a.Policy.Bytes(), b.Policy.Bytes()); c != 0 {
		return c
	}
	return bytes.Compare(a.Name.Bytes(), b.Name.Bytes())
}

// Value is a finite mapping from AssetID to a signed integer quantity.
// It forms a commutative monoid under Add with Zero as the identity.
// The zero Value (nil receiver methods notwithstanding) always behaves as
// the additive identity.
type Value struct {
	amounts map[AssetID]*big.Int
}

// ZeroValue returns the additive identity of the Value monoid.
func ZeroValue() Value {
	return Value{}
}

// OfCoin lifts a coin quantity into a Value with only a base-asset component.
func OfCoin(coin *big.Int) Value {
	if coin == nil || coin.Sign() == 0 {
		return Value{}
	}
	return Value{amounts: map[AssetID]*big.Int{{}: new(big.Int).Set(coin)}}
}

// CoinOf projects the base-asset component out of a Value.
func (v Value) CoinOf() *big.Int {
	if v.amounts == nil {
		return new(big.Int)
	}
	amt, ok := v.amounts[AssetID{}]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(amt)
}

// WithAsset returns a new Value with the given asset's quantity set,
// replacing any existing quantity for that asset.
func (v Value) WithAsset(policy PolicyID, name []byte, amount *big.Int) Value {
	out := v.clone()
	id := AssetID{Policy: policy, Name: icbor.NewByteString(name)}
	if amount == nil || amount.Sign() == 0 {
		delete(out.amounts, id)
	} else {
		out.amounts[id] = new(big.Int).Set(amount)
	}
	return out
}

// Asset returns the quantity of the named asset, or zero if absent.
func (v Value) Asset(policy PolicyID, name []byte) *big.Int {
	if v.amounts == nil {
		return new(big.Int)
	}
	id := AssetID{Policy: policy, Name: icbor.NewByteString(name)}
	amt, ok := v.amounts[id]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(amt)
}

// Assets returns the non-zero components sorted by (policy, name).
func (v Value) Assets() []AssetID {
	ids := slices.Collect(maps.Keys(v.amounts))
	slices.SortFunc(ids, compareAssetID)
	return ids
}

func (v Value) clone() Value {
	out := Value{amounts: make(map[AssetID]*big.Int, len(v.amounts))}
	for id, amt := range v.amounts {
		out.amounts[id] = new(big.Int).Set(amt)
	}
	return out
}

// Add returns v + other, componentwise.
func (v Value) Add(other Value) Value {
	out := v.clone()
	for id, amt := range other.amounts {
		if existing, ok := out.amounts[id]; ok {
			existing.Add(existing, amt)
			if existing.Sign() == 0 {
				delete(out.amounts, id)
			}
		} else if amt.Sign() != 0 {
			out.amounts[id] = new(big.Int).Set(amt)
		}
	}
	return out
}

// Negate returns -v, componentwise.
func (v Value) Negate() Value {
	out := Value{amounts: make(map[AssetID]*big.Int, len(v.amounts))}
	for id, amt := range v.amounts {
		out.amounts[id] = new(big.Int).Neg(amt)
	}
	return out
}

// Sub returns v - other, componentwise.
func (v Value) Sub(other Value) Value {
	return v.Add(other.Negate())
}

// Leq reports whether v <= other componentwise, treating an absent
// component in either operand as zero.
func (v Value) Leq(other Value) bool {
	ids := make(map[AssetID]struct{})
	for id := range v.amounts {
		ids[id] = struct{}{}
	}
	for id := range other.amounts {
		ids[id] = struct{}{}
	}
	for id := range ids {
		a := v.componentOf(id)
		b := other.componentOf(id)
		if a.Cmp(b) > 0 {
			return false
		}
	}
	return true
}

// Eq reports whether v and other have identical components.
func (v Value) Eq(other Value) bool {
	return v.Leq(other) && other.Leq(v)
}

func (v Value) componentOf(id AssetID) *big.Int {
	if amt, ok := v.amounts[id]; ok {
		return amt
	}
	return new(big.Int)
}

// IsPositive reports whether every component of v is strictly positive.
// The zero Value (no components at all) is not positive.
func (v Value) IsPositive() bool {
	if len(v.amounts) == 0 {
		return false
	}
	for _, amt := range v.amounts {
		if amt.Sign() <= 0 {
			return false
		}
	}
	return true
}

// IsZero reports whether v has no non-zero components.
func (v Value) IsZero() bool {
	return len(v.amounts) == 0
}

// HasNegative reports whether any component of v is negative.
func (v Value) HasNegative() bool {
	for _, amt := range v.amounts {
		if amt.Sign() < 0 {
			return true
		}
	}
	return false
}

// HasNonBaseAsset reports whether v carries any component other than the
// base asset.
func (v Value) HasNonBaseAsset() bool {
	for id := range v.amounts {
		if !id.isBase() {
			return true
		}
	}
	return false
}

// String renders a stable, sorted, human-readable form of v.
func (v Value) String() string {
	ids := v.Assets()
	if len(ids) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		if id.isBase() {
			b.WriteString("coin=")
		} else {
			b.WriteString(id.Policy.String())
			b.WriteByte('.')
			b.WriteString(id.Name.String())
			b.WriteByte('=')
		}
		b.WriteString(v.amounts[id].String())
	}
	b.WriteByte('}')
	return b.String()
}
