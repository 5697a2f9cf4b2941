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

// Package shelley assembles the era-specific rule engines (UTXO, UTXOW,
// DELEGS/DELPL/POOL, LEDGER) over the data model and algebra in
// ledger/common.
package shelley

import (
	"math/big"

	"github.com/bariscicek/cardano-ledger-specs/ledger/common"
)

// ApplyUTXO validates tx against state under env and, if every check
// passes, returns the successor UTxOState. On failure the pre-state is
// returned unchanged alongside a common.ValidationErrors listing every
// independent failure detected in this pass.
func ApplyUTXO(env common.Environment, state common.UTxOState, tx *common.Transaction) (common.UTxOState, error) {
	body := tx.Body
	resolved := state.Utxo.Resolve(body.TxInputs)

	var missing []common.TxIn
	for _, in := range body.TxInputs {
		if _, ok := resolved[in]; !ok {
			missing = append(missing, in)
		}
	}

	txSize, sizeErr := tx.EncodedSize()

	consumed, produced, valueErr := computeConservation(env, state, body, resolved)

	var offenders []common.TxOut
	for _, o := range body.TxOutputs {
		if o.Value.CoinOf().Cmp(new(big.Int).SetUint64(env.Params.MinUTxOValue)) < 0 || !o.Value.IsPositive() {
			offenders = append(offenders, o)
		}
	}

	var wrongNetworkOutputs []common.Address
	for _, o := range body.TxOutputs {
		if !o.Address.IsRewardAccount() && o.Address.Network != env.Network {
			wrongNetworkOutputs = append(wrongNetworkOutputs, o.Address)
		}
	}
	var wrongNetworkWithdrawals []common.Address
	for addr := range body.TxWithdrawals {
		if addr.Network != env.Network {
			wrongNetworkWithdrawals = append(wrongNetworkWithdrawals, addr)
		}
	}

	err := common.RunChecks(
		func() error {
			if len(body.TxInputs) == 0 {
				return common.InputSetEmptyUTxOError{}
			}
			return nil
		},
		func() error {
			if env.Slot > body.TxTTL {
				return common.ExpiredUTxOError{Ttl: body.TxTTL, Slot: env.Slot}
			}
			return nil
		},
		func() error {
			if len(missing) > 0 {
				return common.BadInputsUTxOError{Missing: missing}
			}
			return nil
		},
		func() error {
			if sizeErr != nil {
				return sizeErr
			}
			minFee := env.Params.MinFee(uint64(txSize))
			if body.Fee().Cmp(minFee) < 0 {
				return common.FeeTooSmallUTxOError{Required: minFee, Actual: body.Fee()}
			}
			return nil
		},
		func() error {
			if valueErr != nil {
				return valueErr
			}
			if !consumed.Eq(produced) {
				return common.ValueNotConservedUTxOError{Consumed: consumed, Produced: produced}
			}
			return nil
		},
		func() error {
			if len(offenders) > 0 {
				return common.OutputTooSmallUTxOError{Offenders: offenders}
			}
			return nil
		},
		func() error {
			if sizeErr == nil && uint64(txSize) > env.Params.MaxTxSize && env.Params.MaxTxSize > 0 {
				return common.MaxTxSizeUTxOError{Actual: uint64(txSize), Max: env.Params.MaxTxSize}
			}
			return nil
		},
		func() error {
			if len(wrongNetworkOutputs) > 0 {
				return common.WrongNetworkError{Expected: env.Network, Offenders: wrongNetworkOutputs}
			}
			return nil
		},
		func() error {
			if len(wrongNetworkWithdrawals) > 0 {
				return common.WrongNetworkWithdrawalError{Expected: env.Network, Offenders: wrongNetworkWithdrawals}
			}
			return nil
		},
	)
	if err != nil {
		return state, err
	}

	next := state.Clone()
	next.Utxo = state.Utxo.ApplyTxBody(body)
	next.Deposited = new(big.Int).Add(next.Deposited, totalDeposits(env, body))
	next.Fees = new(big.Int).Add(next.Fees, body.Fee())
	if body.TxUpdate != nil {
		u := *body.TxUpdate
		next.Ppup = &u
	}
	return next, nil
}

// computeConservation implements spec §4.F.5: consumed inputs plus
// withdrawals plus certificate refunds plus forge must equal produced
// outputs plus fee plus certificate deposits.
func computeConservation(
	env common.Environment,
	state common.UTxOState,
	body *common.TxBody,
	resolved map[common.TxIn]common.UTxOOut,
) (consumed, produced common.Value, err error) {
	consumed = common.ZeroValue()
	for _, out := range resolved {
		v, verr := out.Value.ToValue()
		if verr != nil {
			return common.Value{}, common.Value{}, verr
		}
		consumed = consumed.Add(v)
	}
	withdrawalTotal := new(big.Int)
	for _, amt := range body.TxWithdrawals {
		withdrawalTotal.Add(withdrawalTotal, amt)
	}
	consumed = consumed.Add(common.OfCoin(withdrawalTotal))
	consumed = consumed.Add(common.OfCoin(refundsOf(env, body)))
	consumed = consumed.Add(body.TxForge)

	produced = common.ZeroValue()
	for _, o := range body.TxOutputs {
		produced = produced.Add(o.Value)
	}
	produced = produced.Add(common.OfCoin(body.Fee()))
	produced = produced.Add(common.OfCoin(totalDeposits(env, body)))
	return consumed, produced, nil
}

// totalDeposits sums keyDeposit for each stake registration and poolDeposit
// for each pool registration certificate targeting a pool not already in
// env.StakePools.
func totalDeposits(env common.Environment, body *common.TxBody) *big.Int {
	total := new(big.Int)
	for _, c := range body.TxCertificates {
		switch v := c.(type) {
		case common.StakeRegistrationCertificate:
			total.Add(total, new(big.Int).SetUint64(env.Params.KeyDeposit))
		case common.PoolRegistrationCertificate:
			if _, exists := env.StakePools[v.Operator]; !exists {
				total.Add(total, new(big.Int).SetUint64(env.Params.PoolDeposit))
			}
		}
	}
	return total
}

// refundsOf sums keyDeposit for each deregistration certificate present in
// the body. This is the UTXO-level approximation of §4.F.5; DELEGS
// separately checks that each deregistration targets a registered,
// empty-balance credential.
func refundsOf(env common.Environment, body *common.TxBody) *big.Int {
	total := new(big.Int)
	for _, c := range body.TxCertificates {
		if _, ok := c.(common.StakeDeregistrationCertificate); ok {
			total.Add(total, new(big.Int).SetUint64(env.Params.KeyDeposit))
		}
	}
	return total
}
