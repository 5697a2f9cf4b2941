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

package shelley

import "github.com/bariscicek/cardano-ledger-specs/ledger/common"

// ApplyLEDGER is the sole top-level entry point for applying a transaction:
// it runs UTXOW (which internally runs UTXO) and, on success, DELEGS.
// A failure from either stage leaves the pre-state untouched and the
// failure surfaced wrapped in the relevant outer variant.
func ApplyLEDGER(
	env common.Environment,
	state common.LedgerState,
	tx *common.Transaction,
) (common.LedgerState, error) {
	utxoState, err := ApplyUTXOW(env, state.UTxOState, tx)
	if err != nil {
		return state, common.UtxowFailure{Err: err}
	}

	delegState, err := ApplyDELEGS(env, state.DelegationState, tx)
	if err != nil {
		return state, common.DelegsFailure{Err: err}
	}

	return common.LedgerState{UTxOState: utxoState, DelegationState: delegState}, nil
}
