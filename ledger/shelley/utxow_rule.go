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

import (
	"github.com/bariscicek/cardano-ledger-specs/ledger/common"
)

// ApplyUTXOW checks witness sufficiency and metadata consistency, then
// delegates to ApplyUTXO. A failure from ApplyUTXO is surfaced wrapped as
// common.UtxoFailure, per spec §4.G.
func ApplyUTXOW(env common.Environment, state common.UTxOState, tx *common.Transaction) (common.UTxOState, error) {
	body := tx.Body
	id := tx.Id()
	resolved := state.Utxo.Resolve(body.TxInputs)

	var invalidWitnesses []common.VKeyWitness
	verified := make(map[common.Blake2b224]struct{})
	for _, w := range tx.Witnesses.VKeyWitnesses {
		if w.Verify(id) {
			verified[w.KeyHash()] = struct{}{}
		} else {
			invalidWitnesses = append(invalidWitnesses, w)
		}
	}

	required := common.RequiredKeyHashes(body, resolved)
	var missingVKeys []common.Blake2b224
	for h := range required {
		if _, ok := verified[h]; !ok {
			missingVKeys = append(missingVKeys, h)
		}
	}

	needed := common.ScriptsNeeded(body, resolved)
	provided := tx.Witnesses.ScriptsByHash()
	var missingScripts, extraScripts []common.ScriptHash
	for h := range needed {
		if _, ok := provided[h]; !ok {
			missingScripts = append(missingScripts, h)
		}
	}
	for h := range provided {
		if _, ok := needed[h]; !ok {
			extraScripts = append(extraScripts, h)
		}
	}

	scriptCtx := common.ScriptContext{Slot: env.Slot, WitnessedKeys: verified}
	var failedScripts []common.ScriptHash
	for h, s := range provided {
		if _, isNeeded := needed[h]; isNeeded && !s.Evaluate(scriptCtx) {
			failedScripts = append(failedScripts, h)
		}
	}

	err := common.RunChecks(
		func() error {
			if len(invalidWitnesses) > 0 {
				return common.InvalidWitnessesUTXOWError{Invalid: invalidWitnesses}
			}
			return nil
		},
		func() error {
			if len(missingVKeys) > 0 {
				return common.MissingVKeyWitnessesUTXOWError{Missing: missingVKeys}
			}
			return nil
		},
		func() error { return checkMetadata(body, tx.Metadata) },
		func() error {
			if len(missingScripts) > 0 {
				return common.MissingScriptWitnessesUTXOWError{Missing: missingScripts}
			}
			return nil
		},
		func() error {
			if len(extraScripts) > 0 {
				return common.ExtraneousScriptWitnessesUTXOWError{Extra: extraScripts}
			}
			return nil
		},
		func() error {
			if len(failedScripts) > 0 {
				return common.ScriptWitnessNotValidatingUTXOWError{Failed: failedScripts}
			}
			return nil
		},
	)
	if err != nil {
		return state, err
	}

	next, utxoErr := ApplyUTXO(env, state, tx)
	if utxoErr != nil {
		return state, common.UtxoFailure{Err: utxoErr}
	}
	return next, nil
}

func checkMetadata(body *common.TxBody, metadata common.Metadata) error {
	switch {
	case body.TxMetadataHash != nil && metadata == nil:
		return common.MissingTxMetadataError{}
	case body.TxMetadataHash == nil && metadata != nil:
		return common.MissingTxBodyMetadataHashError{}
	case body.TxMetadataHash != nil && metadata != nil:
		actual := metadata.Hash()
		if actual != *body.TxMetadataHash {
			return common.ConflictingMetadataHashError{Declared: *body.TxMetadataHash, Actual: actual}
		}
	}
	return nil
}
