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

// Environment carries the information a rule invocation needs that is not
// part of the persisted state: the current slot, the transaction's
// position within its block, protocol parameters, the network tag, and
// the pools currently registered (needed to decide whether a pool
// registration certificate is new or a re-registration).
type Environment struct {
	Slot        uint64
	TxIx        uint64
	Params      ProtocolParameters
	Network     uint8
	StakePools  map[PoolKeyHash]struct{}
	CurrentEpoch uint64
}

// UTxOState is the persisted state the UTXO rule threads: the live UTxO,
// the running total of undischarged deposits, accumulated fees, and any
// pending protocol-parameter update.
type UTxOState struct {
	Utxo      UTxO
	Deposited *big.Int
	Fees      *big.Int
	Ppup      *ProtocolParameterUpdate
}

// NewUTxOState builds an empty UTxOState over the given initial UTxO.
func NewUTxOState(utxo UTxO) UTxOState {
	return UTxOState{Utxo: utxo, Deposited: new(big.Int), Fees: new(big.Int)}
}

// Clone returns a UTxOState sharing no mutable structure with the receiver.
func (s UTxOState) Clone() UTxOState {
	utxo := make(UTxO, len(s.Utxo))
	for in, out := range s.Utxo {
		utxo[in] = out
	}
	out := UTxOState{
		Utxo:      utxo,
		Deposited: new(big.Int).Set(s.Deposited),
		Fees:      new(big.Int).Set(s.Fees),
	}
	if s.Ppup != nil {
		u := *s.Ppup
		out.Ppup = &u
	}
	return out
}

// DelegationState is the persisted delegation-side state: registered stake
// credentials, their delegations and reward balances, registered pools and
// their deposits, and pools scheduled to retire.
type DelegationState struct {
	Registered   map[Credential]struct{}
	Delegations  map[Credential]PoolKeyHash
	Rewards      map[Credential]*big.Int
	Pools        map[PoolKeyHash]PoolRegistrationCertificate
	PoolDeposits map[PoolKeyHash]*big.Int
	Retiring     map[PoolKeyHash]uint64
}

// NewDelegationState builds an empty DelegationState.
func NewDelegationState() DelegationState {
	return DelegationState{
		Registered:   map[Credential]struct{}{},
		Delegations:  map[Credential]PoolKeyHash{},
		Rewards:      map[Credential]*big.Int{},
		Pools:        map[PoolKeyHash]PoolRegistrationCertificate{},
		PoolDeposits: map[PoolKeyHash]*big.Int{},
		Retiring:     map[PoolKeyHash]uint64{},
	}
}

// Clone returns a DelegationState sharing no mutable structure with the
// receiver.
func (s DelegationState) Clone() DelegationState {
	out := DelegationState{
		Registered:   make(map[Credential]struct{}, len(s.Registered)),
		Delegations:  make(map[Credential]PoolKeyHash, len(s.Delegations)),
		Rewards:      make(map[Credential]*big.Int, len(s.Rewards)),
		Pools:        make(map[PoolKeyHash]PoolRegistrationCertificate, len(s.Pools)),
		PoolDeposits: make(map[PoolKeyHash]*big.Int, len(s.PoolDeposits)),
		Retiring:     make(map[PoolKeyHash]uint64, len(s.Retiring)),
	}
	for k, v := range s.Registered {
		out.Registered[k] = v
	}
	for k, v := range s.Delegations {
		out.Delegations[k] = v
	}
	for k, v := range s.Rewards {
		out.Rewards[k] = new(big.Int).Set(v)
	}
	for k, v := range s.Pools {
		out.Pools[k] = v
	}
	for k, v := range s.PoolDeposits {
		out.PoolDeposits[k] = new(big.Int).Set(v)
	}
	for k, v := range s.Retiring {
		out.Retiring[k] = v
	}
	return out
}

// LedgerState is the composite state LEDGER threads through a transaction:
// the UTxO side and the delegation side.
type LedgerState struct {
	UTxOState       UTxOState
	DelegationState DelegationState
}

// Clone returns a LedgerState sharing no mutable structure with the
// receiver.
func (s LedgerState) Clone() LedgerState {
	return LedgerState{
		UTxOState:       s.UTxOState.Clone(),
		DelegationState: s.DelegationState.Clone(),
	}
}
