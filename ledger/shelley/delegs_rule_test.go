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

package shelley_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/bariscicek/cardano-ledger-specs/ledger/common"
	"github.com/bariscicek/cardano-ledger-specs/ledger/shelley"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stakeCred(seed byte) common.Credential {
	return common.NewKeyHashCredential(common.NewBlake2b224([]byte{seed}))
}

func txWithCerts(certs ...common.Certificate) *common.Transaction {
	return &common.Transaction{Body: &common.TxBody{TxCertificates: certs, TxForge: common.ZeroValue()}}
}

func TestDELEGRegistrationThenDeregistration(t *testing.T) {
	cred := stakeCred(1)
	state := common.NewDelegationState()
	env := baseEnv()

	next, err := shelley.ApplyDELEGS(env, state, txWithCerts(common.StakeRegistrationCertificate{StakeCredential: cred}))
	require.NoError(t, err)
	_, registered := next.Registered[cred]
	assert.True(t, registered)

	final, err := shelley.ApplyDELEGS(env, next, txWithCerts(common.StakeDeregistrationCertificate{StakeCredential: cred}))
	require.NoError(t, err)
	_, stillRegistered := final.Registered[cred]
	assert.False(t, stillRegistered)
}

func TestDELEGDoubleRegistrationFails(t *testing.T) {
	cred := stakeCred(2)
	env := baseEnv()
	state := common.NewDelegationState()
	next, err := shelley.ApplyDELEGS(env, state, txWithCerts(common.StakeRegistrationCertificate{StakeCredential: cred}))
	require.NoError(t, err)

	_, err = shelley.ApplyDELEGS(env, next, txWithCerts(common.StakeRegistrationCertificate{StakeCredential: cred}))
	require.Error(t, err)
	var alreadyReg common.StakeKeyAlreadyRegisteredDELEGError
	assert.True(t, errors.As(err, &alreadyReg))
}

func TestDELEGDeregistrationWithNonZeroBalanceFails(t *testing.T) {
	cred := stakeCred(3)
	env := baseEnv()
	state := common.NewDelegationState()
	next, err := shelley.ApplyDELEGS(env, state, txWithCerts(common.StakeRegistrationCertificate{StakeCredential: cred}))
	require.NoError(t, err)
	next.Rewards[cred] = big.NewInt(5)

	_, err = shelley.ApplyDELEGS(env, next, txWithCerts(common.StakeDeregistrationCertificate{StakeCredential: cred}))
	require.Error(t, err)
	var notEmpty common.RewardAccountNotEmptyDELEGError
	assert.True(t, errors.As(err, &notEmpty))
}

func TestDELEGDelegationRequiresRegisteredPool(t *testing.T) {
	cred := stakeCred(4)
	pool := common.NewBlake2b224([]byte{9})
	env := baseEnv()
	state := common.NewDelegationState()
	next, err := shelley.ApplyDELEGS(env, state, txWithCerts(common.StakeRegistrationCertificate{StakeCredential: cred}))
	require.NoError(t, err)

	_, err = shelley.ApplyDELEGS(env, next, txWithCerts(common.StakeDelegationCertificate{StakeCredential: cred, PoolKeyHash: pool}))
	require.Error(t, err)
	var impossible common.StakeDelegationImpossibleDELEGError
	assert.True(t, errors.As(err, &impossible))
}

func TestPOOLRegistrationBelowMinCostFails(t *testing.T) {
	env := baseEnv()
	state := common.NewDelegationState()
	cert := common.PoolRegistrationCertificate{
		Operator: common.NewBlake2b224([]byte{1}),
		Cost:     10,
		Margin:   big.NewRat(1, 10),
	}
	_, err := shelley.ApplyDELEGS(env, state, txWithCerts(cert))
	require.Error(t, err)
	var tooLow common.StakePoolCostTooLowPOOLError
	assert.True(t, errors.As(err, &tooLow))
}

func TestPOOLRegistrationDepositsOnceOnly(t *testing.T) {
	env := baseEnv()
	pool := common.NewBlake2b224([]byte{2})
	cert := common.PoolRegistrationCertificate{
		Operator: pool,
		Cost:     env.Params.MinPoolCost,
		Margin:   big.NewRat(1, 10),
	}
	state := common.NewDelegationState()
	next, err := shelley.ApplyDELEGS(env, state, txWithCerts(cert))
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).SetUint64(env.Params.PoolDeposit), next.PoolDeposits[pool])

	env.StakePools = map[common.PoolKeyHash]struct{}{pool: {}}
	reReg, err := shelley.ApplyDELEGS(env, next, txWithCerts(cert))
	require.NoError(t, err)
	assert.Equal(t, next.PoolDeposits[pool], reReg.PoolDeposits[pool])
}

func TestPOOLRetirementEpochWindow(t *testing.T) {
	env := baseEnv()
	env.CurrentEpoch = 5
	pool := common.NewBlake2b224([]byte{3})
	state := common.NewDelegationState()
	state.Pools[pool] = common.PoolRegistrationCertificate{Operator: pool, Cost: env.Params.MinPoolCost, Margin: big.NewRat(0, 1)}

	_, err := shelley.ApplyDELEGS(env, state, txWithCerts(common.PoolRetirementCertificate{PoolKeyHash: pool, RetireEpoch: 5}))
	require.Error(t, err)
	var invalidEpoch common.PoolRetirementEpochInvalidPOOLError
	assert.True(t, errors.As(err, &invalidEpoch))

	next, err := shelley.ApplyDELEGS(env, state, txWithCerts(common.PoolRetirementCertificate{PoolKeyHash: pool, RetireEpoch: 10}))
	require.NoError(t, err)
	assert.Equal(t, uint64(10), next.Retiring[pool])
}

func TestDELEGSWithdrawalMismatchFails(t *testing.T) {
	cred := stakeCred(6)
	addr := common.NewRewardAddress(common.NetworkTestnet, cred)
	env := baseEnv()
	state := common.NewDelegationState()
	state.Registered[cred] = struct{}{}
	state.Rewards[cred] = big.NewInt(5)

	tx := &common.Transaction{Body: &common.TxBody{
		TxForge:       common.ZeroValue(),
		TxWithdrawals: map[common.Address]*big.Int{addr: big.NewInt(999)},
	}}
	_, err := shelley.ApplyDELEGS(env, state, tx)
	require.Error(t, err)
	var mismatch common.WithdrawalsNotInRewardsDELEGSError
	assert.True(t, errors.As(err, &mismatch))
}
