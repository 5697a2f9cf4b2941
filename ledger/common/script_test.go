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

package common_test

import (
	"testing"

	"github.com/bariscicek/cardano-ledger-specs/ledger/common"
	"github.com/stretchr/testify/assert"
)

func key(n byte) common.Blake2b224 {
	return common.NewBlake2b224([]byte{n})
}

func TestNativeScriptPubkey(t *testing.T) {
	k := key(1)
	s := common.NativeScript{Tag: common.ScriptPubkey, KeyHash: k}

	assert.True(t, s.Evaluate(common.ScriptContext{WitnessedKeys: map[common.Blake2b224]struct{}{k: {}}}))
	assert.False(t, s.Evaluate(common.ScriptContext{WitnessedKeys: map[common.Blake2b224]struct{}{}}))
	assert.Equal(t, []common.Blake2b224{k}, s.RequiredKeyHashes())
}

func TestNativeScriptAllAnyNofK(t *testing.T) {
	k1, k2, k3 := key(1), key(2), key(3)
	leaves := []common.NativeScript{
		{Tag: common.ScriptPubkey, KeyHash: k1},
		{Tag: common.ScriptPubkey, KeyHash: k2},
		{Tag: common.ScriptPubkey, KeyHash: k3},
	}
	all := common.NativeScript{Tag: common.ScriptAll, Scripts: leaves}
	any := common.NativeScript{Tag: common.ScriptAny, Scripts: leaves}
	nOfK := common.NativeScript{Tag: common.ScriptNofK, N: 2, Scripts: leaves}

	onlyK1 := common.ScriptContext{WitnessedKeys: map[common.Blake2b224]struct{}{k1: {}}}
	twoOfThree := common.ScriptContext{WitnessedKeys: map[common.Blake2b224]struct{}{k1: {}, k2: {}}}
	allThree := common.ScriptContext{WitnessedKeys: map[common.Blake2b224]struct{}{k1: {}, k2: {}, k3: {}}}

	assert.False(t, all.Evaluate(onlyK1))
	assert.True(t, all.Evaluate(allThree))

	assert.True(t, any.Evaluate(onlyK1))
	assert.False(t, any.Evaluate(common.ScriptContext{}))

	assert.False(t, nOfK.Evaluate(onlyK1))
	assert.True(t, nOfK.Evaluate(twoOfThree))
}

func TestNativeScriptTimelock(t *testing.T) {
	before := common.NativeScript{Tag: common.ScriptInvalidBefore, Slot: 100}
	after := common.NativeScript{Tag: common.ScriptInvalidHereafter, Slot: 100}

	assert.False(t, before.Evaluate(common.ScriptContext{Slot: 50}))
	assert.True(t, before.Evaluate(common.ScriptContext{Slot: 150}))

	assert.True(t, after.Evaluate(common.ScriptContext{Slot: 50}))
	assert.False(t, after.Evaluate(common.ScriptContext{Slot: 150}))
}

func TestNativeScriptHashStable(t *testing.T) {
	s := common.NativeScript{Tag: common.ScriptPubkey, KeyHash: key(9)}
	assert.Equal(t, s.Hash(), s.Hash())

	other := common.NativeScript{Tag: common.ScriptPubkey, KeyHash: key(10)}
	assert.NotEqual(t, s.Hash(), other.Hash())
}
