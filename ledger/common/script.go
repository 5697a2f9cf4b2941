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
	"fmt"

	icbor "github.com/bariscicek/cardano-ledger-specs/internal/cbor"
)

// ScriptHash identifies a NativeScript by the hash of its canonical
// encoding, and doubles as an asset policy ID for minting scripts.
type ScriptHash = Blake2b224

// ScriptTag discriminates the variants of NativeScript.
type ScriptTag uint

const (
	ScriptPubkey ScriptTag = iota
	ScriptAll
	ScriptAny
	ScriptNofK
	ScriptInvalidBefore
	ScriptInvalidHereafter
)

// NativeScript is a multi-signature / timelock script: the only script
// class this ledger core evaluates (see spec Non-goals).
type NativeScript struct {
	Tag         ScriptTag
	KeyHash     Blake2b224    // ScriptPubkey
	Scripts     []NativeScript // ScriptAll, ScriptAny, ScriptNofK
	N           uint          // ScriptNofK
	Slot        uint64        // ScriptInvalidBefore, ScriptInvalidHereafter
}

// Hash returns the script's identifying hash, computed over its canonical
// CBOR encoding tagged with the native-script discriminant.
func (s NativeScript) Hash() ScriptHash {
	data, err := icbor.Encode(scriptCborForm(s))
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding native script: %s", err))
	}
	// The witness-script hash domain-separates from other hash purposes
	// with a leading tag byte, mirroring how Cardano derives script hashes
	// per script language.
	tagged := append([]byte{0x00}, data...)
	return Blake2b224Hash(tagged)
}

func scriptCborForm(s NativeScript) any {
	switch s.Tag {
	case ScriptPubkey:
		return []any{uint(0), s.KeyHash.Bytes()}
	case ScriptAll:
		return []any{uint(1), scriptListCborForm(s.Scripts)}
	case ScriptAny:
		return []any{uint(2), scriptListCborForm(s.Scripts)}
	case ScriptNofK:
		return []any{uint(3), s.N, scriptListCborForm(s.Scripts)}
	case ScriptInvalidBefore:
		return []any{uint(4), s.Slot}
	case ScriptInvalidHereafter:
		return []any{uint(5), s.Slot}
	default:
		panic("unknown native script tag")
	}
}

func scriptListCborForm(scripts []NativeScript) []any {
	ret := make([]any, len(scripts))
	for i, sc := range scripts {
		ret[i] = scriptCborForm(sc)
	}
	return ret
}

// ScriptContext carries the information a NativeScript needs to evaluate:
// the current slot and the set of key hashes with a valid witness.
type ScriptContext struct {
	Slot           uint64
	WitnessedKeys  map[Blake2b224]struct{}
}

// Evaluate reports whether the script is discharged given the context.
func (s NativeScript) Evaluate(ctx ScriptContext) bool {
	switch s.Tag {
	case ScriptPubkey:
		_, ok := ctx.WitnessedKeys[s.KeyHash]
		return ok
	case ScriptAll:
		for _, sub := range s.Scripts {
			if !sub.Evaluate(ctx) {
				return false
			}
		}
		return true
	case ScriptAny:
		for _, sub := range s.Scripts {
			if sub.Evaluate(ctx) {
				return true
			}
		}
		return false
	case ScriptNofK:
		count := uint(0)
		for _, sub := range s.Scripts {
			if sub.Evaluate(ctx) {
				count++
			}
		}
		return count >= s.N
	case ScriptInvalidBefore:
		return ctx.Slot >= s.Slot
	case ScriptInvalidHereafter:
		return ctx.Slot < s.Slot
	default:
		return false
	}
}

// RequiredKeyHashes returns every key hash a ScriptPubkey leaf of s could
// require, used to compute the full set of witnesses a script family might
// need regardless of which disjunct is actually satisfied.
func (s NativeScript) RequiredKeyHashes() []Blake2b224 {
	switch s.Tag {
	case ScriptPubkey:
		return []Blake2b224{s.KeyHash}
	case ScriptAll, ScriptAny, ScriptNofK:
		var out []Blake2b224
		for _, sub := range s.Scripts {
			out = append(out, sub.RequiredKeyHashes()...)
		}
		return out
	default:
		return nil
	}
}
