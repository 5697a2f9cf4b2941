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
	"math/big"

	"github.com/bariscicek/cardano-ledger-specs/ledger/common"
)

// ApplyDELEGS iterates a transaction's certificates in order, applying
// DELPL to each and checking the withdrawal map against current reward
// balances. It returns the successor DelegationState, or the pre-state
// with the failures collected so far.
func ApplyDELEGS(env common.Environment, state common.DelegationState, tx *common.Transaction) (common.DelegationState, error) {
	body := tx.Body
	next := state.Clone()

	var errs common.ValidationErrors
	for _, cert := range body.TxCertificates {
		s, err := applyDELPL(env, next, cert)
		if err != nil {
			errs = append(errs, common.DelplFailure{Err: err})
			continue
		}
		next = s
	}

	if diff := withdrawalDiff(next, body.TxWithdrawals); len(diff) > 0 {
		errs = append(errs, common.WithdrawalsNotInRewardsDELEGSError{Diff: diff})
	} else {
		for addr, amt := range body.TxWithdrawals {
			cred := addr.Staking.Credential
			bal := next.Rewards[cred]
			if bal == nil {
				bal = new(big.Int)
			}
			next.Rewards[cred] = new(big.Int).Sub(bal, amt)
		}
	}

	if len(errs) > 0 {
		return state, errs
	}
	return next, nil
}

// withdrawalDiff reports, for each withdrawal whose declared amount does
// not equal the credential's current reward balance, the (declared -
// actual) difference.
func withdrawalDiff(state common.DelegationState, withdrawals map[common.Address]*big.Int) map[common.Address]*big.Int {
	diff := make(map[common.Address]*big.Int)
	for addr, amt := range withdrawals {
		bal := state.Rewards[addr.Staking.Credential]
		if bal == nil {
			bal = new(big.Int)
		}
		if amt.Cmp(bal) != 0 {
			diff[addr] = new(big.Int).Sub(amt, bal)
		}
	}
	return diff
}

// applyDELPL dispatches a single certificate to DELEG or POOL.
func applyDELPL(env common.Environment, state common.DelegationState, cert common.Certificate) (common.DelegationState, error) {
	switch c := cert.(type) {
	case common.StakeRegistrationCertificate, common.StakeDeregistrationCertificate, common.StakeDelegationCertificate:
		s, err := applyDELEG(state, c)
		if err != nil {
			return state, common.DelegFailure{Err: err}
		}
		return s, nil
	case common.PoolRegistrationCertificate, common.PoolRetirementCertificate:
		s, err := applyPOOL(env, state, c)
		if err != nil {
			return state, common.PoolFailure{Err: err}
		}
		return s, nil
	default:
		return state, common.WrongCertificateTypeDELEGError{Certificate: cert}
	}
}

func applyDELEG(state common.DelegationState, cert common.Certificate) (common.DelegationState, error) {
	next := state.Clone()
	switch c := cert.(type) {
	case common.StakeRegistrationCertificate:
		if _, exists := next.Registered[c.StakeCredential]; exists {
			return state, common.StakeKeyAlreadyRegisteredDELEGError{Credential: c.StakeCredential}
		}
		next.Registered[c.StakeCredential] = struct{}{}
		next.Rewards[c.StakeCredential] = new(big.Int)
		return next, nil
	case common.StakeDeregistrationCertificate:
		if _, exists := next.Registered[c.StakeCredential]; !exists {
			return state, common.StakeKeyNotRegisteredDELEGError{Credential: c.StakeCredential}
		}
		bal := next.Rewards[c.StakeCredential]
		if bal == nil {
			bal = new(big.Int)
		}
		if bal.Sign() != 0 {
			return state, common.RewardAccountNotEmptyDELEGError{Credential: c.StakeCredential, Balance: bal}
		}
		delete(next.Registered, c.StakeCredential)
		delete(next.Delegations, c.StakeCredential)
		delete(next.Rewards, c.StakeCredential)
		return next, nil
	case common.StakeDelegationCertificate:
		if _, exists := next.Registered[c.StakeCredential]; !exists {
			return state, common.StakeKeyNotRegisteredDELEGError{Credential: c.StakeCredential}
		}
		if _, exists := next.Pools[c.PoolKeyHash]; !exists {
			return state, common.StakeDelegationImpossibleDELEGError{Pool: c.PoolKeyHash}
		}
		next.Delegations[c.StakeCredential] = c.PoolKeyHash
		return next, nil
	default:
		return state, common.WrongCertificateTypeDELEGError{Certificate: cert}
	}
}

func applyPOOL(env common.Environment, state common.DelegationState, cert common.Certificate) (common.DelegationState, error) {
	next := state.Clone()
	switch c := cert.(type) {
	case common.PoolRegistrationCertificate:
		if c.Cost < env.Params.MinPoolCost {
			return state, common.StakePoolCostTooLowPOOLError{Declared: c.Cost, Minimum: env.Params.MinPoolCost}
		}
		if c.Margin == nil || c.Margin.Sign() < 0 || c.Margin.Cmp(big.NewRat(1, 1)) > 0 {
			return state, common.PoolMarginInvalidPOOLError{Margin: c.Margin}
		}
		if _, exists := next.Pools[c.Operator]; !exists {
			next.PoolDeposits[c.Operator] = new(big.Int).SetUint64(env.Params.PoolDeposit)
		}
		next.Pools[c.Operator] = c
		delete(next.Retiring, c.Operator)
		return next, nil
	case common.PoolRetirementCertificate:
		if c.RetireEpoch <= env.CurrentEpoch || c.RetireEpoch > env.CurrentEpoch+env.Params.PoolRetireMaxEpoch {
			return state, common.PoolRetirementEpochInvalidPOOLError{
				Requested:    c.RetireEpoch,
				CurrentEpoch: env.CurrentEpoch,
				MaxEpoch:     env.CurrentEpoch + env.Params.PoolRetireMaxEpoch,
			}
		}
		next.Retiring[c.PoolKeyHash] = c.RetireEpoch
		return next, nil
	default:
		return state, common.WrongCertificateTypeDELEGError{Certificate: cert}
	}
}
