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

import "math/big"

// ProtocolParameters holds the subset of consensus parameters the ledger
// core needs to validate transactions: fee coefficients, deposit amounts,
// and the minimum UTxO / pool cost floors.
type ProtocolParameters struct {
	MinFeeA          uint64 // linear fee coefficient, per byte
	MinFeeB          uint64 // constant fee coefficient
	KeyDeposit       uint64 // stake key registration deposit
	PoolDeposit      uint64 // pool registration deposit
	MinUTxOValue     uint64 // minimum coin a UTxO output must carry
	MinPoolCost      uint64 // minimum declared pool operating cost
	MaxTxSize        uint64 // maximum serialized transaction size in bytes
	PoolRetireMaxEpoch uint64 // furthest epoch ahead a pool may schedule retirement
}

// MinFee computes the minimum required fee for a transaction of the given
// serialized size, following the standard linear fee formula: a*size + b.
func (p ProtocolParameters) MinFee(txSizeBytes uint64) *big.Int {
	a := new(big.Int).SetUint64(p.MinFeeA)
	size := new(big.Int).SetUint64(txSizeBytes)
	b := new(big.Int).SetUint64(p.MinFeeB)
	return a.Mul(a, size).Add(a, b)
}

// ProtocolParameterUpdate proposes a change to protocol parameters,
// effective from the named epoch. The ledger core validates only that an
// update certificate is well-formed and vkey-witnessed by every voting
// genesis delegate named in GenesisDelegateKeys; applying its content is
// out of scope (see Non-goals).
type ProtocolParameterUpdate struct {
	Epoch      uint64
	Parameters ProtocolParameters
	// GenesisDelegateKeys names the genesis delegate key hashes that must
	// each supply a vkey witness for the enclosing transaction.
	GenesisDelegateKeys []Blake2b224
}
