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
	"math/big"
)

// ValidationErrors collects every independent failure a single rule
// invocation detected. Rules do not stop at the first failure on checks
// that are independent of one another; they only stop early when a later
// check cannot be evaluated meaningfully given an earlier one (e.g. there
// is no fee bound to check against a body that failed to decode).
type ValidationErrors []error

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	s := fmt.Sprintf("%d validation failures:", len(e))
	for _, err := range e {
		s += "\n  - " + err.Error()
	}
	return s
}

// Unwrap exposes the individual failures to errors.Is / errors.As.
func (e ValidationErrors) Unwrap() []error { return e }

// --- Structural ---

// InputSetEmptyUTxOError indicates a transaction spends no inputs.
type InputSetEmptyUTxOError struct{}

func (InputSetEmptyUTxOError) Error() string { return "transaction input set is empty" }

// MaxTxSizeUTxOError indicates a transaction exceeds the maximum size.
type MaxTxSizeUTxOError struct {
	Actual, Max uint64
}

func (e MaxTxSizeUTxOError) Error() string {
	return fmt.Sprintf("transaction size %d exceeds maximum %d", e.Actual, e.Max)
}

// OutputTooSmallUTxOError names outputs that are below the minimum coin
// value or are not strictly positive componentwise.
type OutputTooSmallUTxOError struct {
	Offenders []TxOut
}

func (e OutputTooSmallUTxOError) Error() string {
	return fmt.Sprintf("%d output(s) below minimum value or non-positive", len(e.Offenders))
}

// OutputBootAddrAttrsTooBigError indicates a Byron-style bootstrap address
// attribute payload exceeded its size bound. Retained for taxonomy
// completeness; this ledger core issues only Shelley addresses and never
// produces this error itself.
type OutputBootAddrAttrsTooBigError struct{}

func (OutputBootAddrAttrsTooBigError) Error() string {
	return "bootstrap address attributes too large"
}

// --- Temporal ---

// ExpiredUTxOError indicates the current slot is past the transaction's ttl.
type ExpiredUTxOError struct {
	Ttl, Slot uint64
}

func (e ExpiredUTxOError) Error() string {
	return fmt.Sprintf("transaction ttl %d expired at slot %d", e.Ttl, e.Slot)
}

// --- Referential ---

// BadInputsUTxOError names inputs the transaction spends that are not in
// the current UTxO.
type BadInputsUTxOError struct {
	Missing []TxIn
}

func (e BadInputsUTxOError) Error() string {
	return fmt.Sprintf("%d input(s) not found in UTxO", len(e.Missing))
}

// --- Economic ---

// FeeTooSmallUTxOError indicates the declared fee is below the minimum.
type FeeTooSmallUTxOError struct {
	Required, Actual *big.Int
}

func (e FeeTooSmallUTxOError) Error() string {
	return fmt.Sprintf("fee %s below required minimum %s", e.Actual, e.Required)
}

// ValueNotConservedUTxOError indicates consumed and produced value differ.
type ValueNotConservedUTxOError struct {
	Consumed, Produced Value
}

func (e ValueNotConservedUTxOError) Error() string {
	return fmt.Sprintf("value not conserved: consumed %s, produced %s", e.Consumed, e.Produced)
}

// StakePoolCostTooLowPOOLError indicates a pool's declared cost is below
// the protocol minimum.
type StakePoolCostTooLowPOOLError struct {
	Declared, Minimum uint64
}

func (e StakePoolCostTooLowPOOLError) Error() string {
	return fmt.Sprintf("pool cost %d below minimum %d", e.Declared, e.Minimum)
}

// --- Authorization ---

// InvalidWitnessesUTXOWError names vkey witnesses whose signature does not
// verify.
type InvalidWitnessesUTXOWError struct {
	Invalid []VKeyWitness
}

func (e InvalidWitnessesUTXOWError) Error() string {
	return fmt.Sprintf("%d invalid vkey witness(es)", len(e.Invalid))
}

// MissingVKeyWitnessesUTXOWError names key hashes with no accompanying
// vkey witness.
type MissingVKeyWitnessesUTXOWError struct {
	Missing []Blake2b224
}

func (e MissingVKeyWitnessesUTXOWError) Error() string {
	return fmt.Sprintf("%d missing vkey witness(es)", len(e.Missing))
}

// MissingScriptWitnessesUTXOWError names script hashes required but absent
// from the witness set.
type MissingScriptWitnessesUTXOWError struct {
	Missing []ScriptHash
}

func (e MissingScriptWitnessesUTXOWError) Error() string {
	return fmt.Sprintf("%d missing script witness(es)", len(e.Missing))
}

// ExtraneousScriptWitnessesUTXOWError names scripts present in the witness
// set that no part of the transaction required.
type ExtraneousScriptWitnessesUTXOWError struct {
	Extra []ScriptHash
}

func (e ExtraneousScriptWitnessesUTXOWError) Error() string {
	return fmt.Sprintf("%d extraneous script witness(es)", len(e.Extra))
}

// ScriptWitnessNotValidatingUTXOWError names scripts that were provided but
// evaluated to failure.
type ScriptWitnessNotValidatingUTXOWError struct {
	Failed []ScriptHash
}

func (e ScriptWitnessNotValidatingUTXOWError) Error() string {
	return fmt.Sprintf("%d script witness(es) failed to validate", len(e.Failed))
}

// --- Delegation ---

// StakeKeyAlreadyRegisteredDELEGError indicates a registration certificate
// targets an already-registered credential.
type StakeKeyAlreadyRegisteredDELEGError struct {
	Credential Credential
}

func (e StakeKeyAlreadyRegisteredDELEGError) Error() string {
	return fmt.Sprintf("stake credential %s already registered", e.Credential)
}

// StakeKeyNotRegisteredDELEGError indicates a certificate references a
// credential that is not registered.
type StakeKeyNotRegisteredDELEGError struct {
	Credential Credential
}

func (e StakeKeyNotRegisteredDELEGError) Error() string {
	return fmt.Sprintf("stake credential %s not registered", e.Credential)
}

// StakeDelegationImpossibleDELEGError indicates a delegation certificate
// targets a pool that is not registered.
type StakeDelegationImpossibleDELEGError struct {
	Pool PoolKeyHash
}

func (e StakeDelegationImpossibleDELEGError) Error() string {
	return fmt.Sprintf("delegation target pool %s not registered", e.Pool)
}

// WrongCertificateTypeDELEGError indicates a certificate of an unsupported
// or unexpected type reached DELEG.
type WrongCertificateTypeDELEGError struct {
	Certificate Certificate
}

func (e WrongCertificateTypeDELEGError) Error() string {
	return fmt.Sprintf("unexpected certificate type %T in DELEG", e.Certificate)
}

// WithdrawalsNotInRewardsDELEGSError names the withdrawal accounts whose
// declared amount does not match the current reward balance.
type WithdrawalsNotInRewardsDELEGSError struct {
	Diff map[Address]*big.Int
}

func (e WithdrawalsNotInRewardsDELEGSError) Error() string {
	return fmt.Sprintf("%d withdrawal(s) do not match reward balance", len(e.Diff))
}

// RewardAccountNotEmptyDELEGError indicates a deregistration certificate
// targets a credential whose reward account still holds a balance.
type RewardAccountNotEmptyDELEGError struct {
	Credential Credential
	Balance    *big.Int
}

func (e RewardAccountNotEmptyDELEGError) Error() string {
	return fmt.Sprintf("reward account for %s has non-zero balance %s", e.Credential, e.Balance)
}

// PoolRetirementEpochInvalidPOOLError indicates a retirement certificate's
// epoch falls outside the allowed window.
type PoolRetirementEpochInvalidPOOLError struct {
	Requested, CurrentEpoch, MaxEpoch uint64
}

func (e PoolRetirementEpochInvalidPOOLError) Error() string {
	return fmt.Sprintf(
		"pool retirement epoch %d outside allowed window (%d, %d]",
		e.Requested, e.CurrentEpoch, e.MaxEpoch,
	)
}

// PoolMarginInvalidPOOLError indicates a pool's declared margin is outside
// [0, 1].
type PoolMarginInvalidPOOLError struct {
	Margin *big.Rat
}

func (e PoolMarginInvalidPOOLError) Error() string {
	return fmt.Sprintf("pool margin %s outside [0, 1]", e.Margin.FloatString(4))
}

// --- Metadata ---

// MissingTxMetadataError indicates a body declares a metadata hash but no
// metadata accompanies the transaction.
type MissingTxMetadataError struct{}

func (MissingTxMetadataError) Error() string { return "transaction body declares metadata hash but metadata is absent" }

// MissingTxBodyMetadataHashError indicates metadata accompanies a
// transaction whose body declares no metadata hash.
type MissingTxBodyMetadataHashError struct{}

func (MissingTxBodyMetadataHashError) Error() string {
	return "transaction metadata present but body declares no metadata hash"
}

// ConflictingMetadataHashError indicates the metadata's hash does not match
// the body's declared hash.
type ConflictingMetadataHashError struct {
	Declared, Actual Blake2b256
}

func (e ConflictingMetadataHashError) Error() string {
	return fmt.Sprintf("metadata hash mismatch: declared %s, actual %s", e.Declared, e.Actual)
}

// --- Network ---

// WrongNetworkError names output addresses that do not match the
// environment's network.
type WrongNetworkError struct {
	Expected  uint8
	Offenders []Address
}

func (e WrongNetworkError) Error() string {
	return fmt.Sprintf("%d output address(es) do not match network %d", len(e.Offenders), e.Expected)
}

// WrongNetworkWithdrawalError names withdrawal reward accounts that do not
// match the environment's network.
type WrongNetworkWithdrawalError struct {
	Expected  uint8
	Offenders []Address
}

func (e WrongNetworkWithdrawalError) Error() string {
	return fmt.Sprintf("%d withdrawal account(s) do not match network %d", len(e.Offenders), e.Expected)
}
