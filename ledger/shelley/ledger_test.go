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
	"crypto/ed25519"
	"errors"
	"math/big"
	"testing"

	"github.com/bariscicek/cardano-ledger-specs/ledger/common"
	"github.com/bariscicek/cardano-ledger-specs/ledger/shelley"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The scenarios below follow the worked examples in the design
// document's fixed parameter set (a=1, b=1, keyDep=100, poolDep=250,
// minUTxO=100, minPoolCost=100). Fee and required-fee values are not
// asserted against literal byte-derived constants, since this
// implementation's canonical encoding does not claim byte-for-byte
// identity with any other implementation's encoder (see DESIGN.md); the
// scenarios instead assert the class of failure and the relational
// behavior the parameters imply.

var testParams = common.ProtocolParameters{
	MinFeeA:            1,
	MinFeeB:            1,
	KeyDeposit:         100,
	PoolDeposit:        250,
	MinUTxOValue:       100,
	MinPoolCost:        100,
	PoolRetireMaxEpoch: 10,
}

type actor struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
	addr common.Address
}

func newActor(t *testing.T) actor {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	cred := common.NewKeyHashCredential(common.Blake2b224Hash(pub))
	addr := common.NewPaymentAddress(common.NetworkTestnet, cred, common.StakeReference{Kind: common.StakeReferenceNone})
	return actor{pub: pub, priv: priv, addr: addr}
}

func (a actor) witness(id common.TxId) common.VKeyWitness {
	return common.VKeyWitness{VKey: []byte(a.pub), Signature: ed25519.Sign(a.priv, id.Bytes())}
}

func genesisUTxO(t *testing.T, alice, bob actor) (common.UTxO, common.TxId) {
	t.Helper()
	g := common.NewBlake2b256([]byte("genesis"))
	aliceOut, err := common.ToCompact(common.OfCoin(big.NewInt(10000)))
	require.NoError(t, err)
	bobOut, err := common.ToCompact(common.OfCoin(big.NewInt(1000)))
	require.NoError(t, err)
	return common.UTxO{
		{Id: g, Index: 0}: {Address: alice.addr, Value: aliceOut},
		{Id: g, Index: 1}: {Address: bob.addr, Value: bobOut},
	}, g
}

func baseEnv() common.Environment {
	return common.Environment{
		Slot:       0,
		Params:     testParams,
		Network:    common.NetworkTestnet,
		StakePools: map[common.PoolKeyHash]struct{}{},
	}
}

func TestS1_BadInputAndValueNotConservedTogether(t *testing.T) {
	alice, bob := newActor(t), newActor(t)
	utxo, g := genesisUTxO(t, alice, bob)
	state := common.LedgerState{UTxOState: common.NewUTxOState(utxo), DelegationState: common.NewDelegationState()}

	body := &common.TxBody{
		TxInputs: []common.TxIn{{Id: g, Index: 42}}, // does not exist
		TxOutputs: []common.TxOut{
			{Address: alice.addr, Value: common.OfCoin(big.NewInt(5500))},
			{Address: bob.addr, Value: common.OfCoin(big.NewInt(3000))},
		},
		TxForge: common.ZeroValue(),
		TxFee:   big.NewInt(1500),
		TxTTL:   1_000_000,
	}
	tx := &common.Transaction{Body: body}
	tx.Witnesses.VKeyWitnesses = []common.VKeyWitness{alice.witness(tx.Id())}

	_, err := shelley.ApplyLEDGER(baseEnv(), state, tx)
	require.Error(t, err)

	var badInputs common.BadInputsUTxOError
	var notConserved common.ValueNotConservedUTxOError
	assert.True(t, errors.As(err, &badInputs), "expected BadInputsUTxOError")
	assert.True(t, errors.As(err, &notConserved), "expected ValueNotConservedUTxOError")
	if len(badInputs.Missing) == 1 {
		assert.Equal(t, uint32(42), badInputs.Missing[0].Index)
	}
}

func TestS2_FeeTooSmall(t *testing.T) {
	alice, bob := newActor(t), newActor(t)
	utxo, g := genesisUTxO(t, alice, bob)
	state := common.LedgerState{UTxOState: common.NewUTxOState(utxo), DelegationState: common.NewDelegationState()}

	body := &common.TxBody{
		TxInputs: []common.TxIn{{Id: g, Index: 0}},
		TxOutputs: []common.TxOut{
			{Address: alice.addr, Value: common.OfCoin(big.NewInt(6999))},
			{Address: bob.addr, Value: common.OfCoin(big.NewInt(3000))},
		},
		TxForge: common.ZeroValue(),
		TxFee:   big.NewInt(1),
		TxTTL:   1_000_000,
	}
	tx := &common.Transaction{Body: body}
	tx.Witnesses.VKeyWitnesses = []common.VKeyWitness{alice.witness(tx.Id())}

	_, err := shelley.ApplyLEDGER(baseEnv(), state, tx)
	require.Error(t, err)

	var feeTooSmall common.FeeTooSmallUTxOError
	require.True(t, errors.As(err, &feeTooSmall))
	assert.Equal(t, big.NewInt(1), feeTooSmall.Actual)
	assert.True(t, feeTooSmall.Required.Cmp(feeTooSmall.Actual) > 0)
}

func TestS3_Expired(t *testing.T) {
	alice, bob := newActor(t), newActor(t)
	utxo, g := genesisUTxO(t, alice, bob)
	state := common.LedgerState{UTxOState: common.NewUTxOState(utxo), DelegationState: common.NewDelegationState()}

	body := &common.TxBody{
		TxInputs: []common.TxIn{{Id: g, Index: 0}},
		TxOutputs: []common.TxOut{
			{Address: alice.addr, Value: common.OfCoin(big.NewInt(6400))},
			{Address: bob.addr, Value: common.OfCoin(big.NewInt(3000))},
		},
		TxForge: common.ZeroValue(),
		TxFee:   big.NewInt(600),
		TxTTL:   0,
	}
	tx := &common.Transaction{Body: body}
	tx.Witnesses.VKeyWitnesses = []common.VKeyWitness{alice.witness(tx.Id())}

	env := baseEnv()
	env.Slot = 1
	_, err := shelley.ApplyLEDGER(env, state, tx)
	require.Error(t, err)

	var expired common.ExpiredUTxOError
	require.True(t, errors.As(err, &expired))
	assert.Equal(t, uint64(0), expired.Ttl)
	assert.Equal(t, uint64(1), expired.Slot)
}

func TestS4_OutputTooSmall(t *testing.T) {
	alice, bob := newActor(t), newActor(t)
	utxo, g := genesisUTxO(t, alice, bob)
	state := common.LedgerState{UTxOState: common.NewUTxOState(utxo), DelegationState: common.NewDelegationState()}

	body := &common.TxBody{
		TxInputs: []common.TxIn{{Id: g, Index: 0}},
		TxOutputs: []common.TxOut{
			{Address: alice.addr, Value: common.OfCoin(big.NewInt(9002))},
			{Address: bob.addr, Value: common.OfCoin(big.NewInt(1))},
		},
		TxForge: common.ZeroValue(),
		TxFee:   big.NewInt(997),
		TxTTL:   1_000_000,
	}
	tx := &common.Transaction{Body: body}
	tx.Witnesses.VKeyWitnesses = []common.VKeyWitness{alice.witness(tx.Id())}

	_, err := shelley.ApplyLEDGER(baseEnv(), state, tx)
	require.Error(t, err)

	var tooSmall common.OutputTooSmallUTxOError
	require.True(t, errors.As(err, &tooSmall))
	require.Len(t, tooSmall.Offenders, 1)
	assert.Equal(t, big.NewInt(1), tooSmall.Offenders[0].Value.CoinOf())
}

func TestS5_MissingWithdrawalWitness(t *testing.T) {
	alice, bob := newActor(t), newActor(t)
	utxo, g := genesisUTxO(t, alice, bob)
	state := common.LedgerState{UTxOState: common.NewUTxOState(utxo), DelegationState: common.NewDelegationState()}

	bobStakeCred := common.NewKeyHashCredential(common.Blake2b224Hash(bob.pub))
	bobRewardAddr := common.NewRewardAddress(common.NetworkTestnet, bobStakeCred)

	body := &common.TxBody{
		TxInputs:      []common.TxIn{{Id: g, Index: 0}},
		TxOutputs:     []common.TxOut{{Address: alice.addr, Value: common.OfCoin(big.NewInt(10000))}},
		TxForge:       common.ZeroValue(),
		TxWithdrawals: map[common.Address]*big.Int{bobRewardAddr: big.NewInt(10)},
		TxFee:         big.NewInt(10),
		TxTTL:         1_000_000,
	}
	tx := &common.Transaction{Body: body}
	tx.Witnesses.VKeyWitnesses = []common.VKeyWitness{alice.witness(tx.Id())} // no stake witness for bob

	_, err := shelley.ApplyLEDGER(baseEnv(), state, tx)
	require.Error(t, err)

	var missing common.MissingVKeyWitnessesUTXOWError
	require.True(t, errors.As(err, &missing))
	require.Len(t, missing.Missing, 1)
	assert.Equal(t, bobStakeCred.Credential, missing.Missing[0])
}

func TestS6_Accept(t *testing.T) {
	alice, bob := newActor(t), newActor(t)
	utxo, g := genesisUTxO(t, alice, bob)
	state := common.LedgerState{UTxOState: common.NewUTxOState(utxo), DelegationState: common.NewDelegationState()}

	body := &common.TxBody{
		TxInputs: []common.TxIn{{Id: g, Index: 0}},
		TxOutputs: []common.TxOut{
			{Address: alice.addr, Value: common.OfCoin(big.NewInt(6404))},
			{Address: bob.addr, Value: common.OfCoin(big.NewInt(3000))},
		},
		TxForge: common.ZeroValue(),
		TxFee:   big.NewInt(596),
		TxTTL:   1_000_000,
	}
	tx := &common.Transaction{Body: body}
	tx.Witnesses.VKeyWitnesses = []common.VKeyWitness{alice.witness(tx.Id())}

	next, err := shelley.ApplyLEDGER(baseEnv(), state, tx)
	require.NoError(t, err)

	txid := tx.Id()
	out0, ok := next.UTxOState.Utxo.Lookup(common.TxIn{Id: txid, Index: 0})
	require.True(t, ok)
	v0, err := out0.Value.ToValue()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(6404), v0.CoinOf())

	out1, ok := next.UTxOState.Utxo.Lookup(common.TxIn{Id: txid, Index: 1})
	require.True(t, ok)
	v1, err := out1.Value.ToValue()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3000), v1.CoinOf())

	_, spent := next.UTxOState.Utxo.Lookup(common.TxIn{Id: g, Index: 0})
	assert.False(t, spent)

	assert.Equal(t, big.NewInt(596), next.UTxOState.Fees)
}

func TestWrongNetworkOutputsAndWithdrawalsCollectedSeparately(t *testing.T) {
	alice, bob := newActor(t), newActor(t)
	utxo, g := genesisUTxO(t, alice, bob)
	state := common.LedgerState{UTxOState: common.NewUTxOState(utxo), DelegationState: common.NewDelegationState()}

	mainnetAlice := common.NewPaymentAddress(common.NetworkMainnet, alice.addr.Payment, common.StakeReference{Kind: common.StakeReferenceNone})
	mainnetBob := common.NewPaymentAddress(common.NetworkMainnet, bob.addr.Payment, common.StakeReference{Kind: common.StakeReferenceNone})

	aliceStakeCred := common.NewKeyHashCredential(common.Blake2b224Hash(alice.pub))
	bobStakeCred := common.NewKeyHashCredential(common.Blake2b224Hash(bob.pub))
	mainnetAliceReward := common.NewRewardAddress(common.NetworkMainnet, aliceStakeCred)
	mainnetBobReward := common.NewRewardAddress(common.NetworkMainnet, bobStakeCred)

	body := &common.TxBody{
		TxInputs: []common.TxIn{{Id: g, Index: 0}},
		TxOutputs: []common.TxOut{
			{Address: mainnetAlice, Value: common.OfCoin(big.NewInt(5000))},
			{Address: mainnetBob, Value: common.OfCoin(big.NewInt(5000))},
		},
		TxForge: common.ZeroValue(),
		TxWithdrawals: map[common.Address]*big.Int{
			mainnetAliceReward: big.NewInt(1),
			mainnetBobReward:   big.NewInt(1),
		},
		TxFee: big.NewInt(0),
		TxTTL: 1_000_000,
	}
	tx := &common.Transaction{Body: body}
	tx.Witnesses.VKeyWitnesses = []common.VKeyWitness{alice.witness(tx.Id()), bob.witness(tx.Id())}

	_, err := shelley.ApplyLEDGER(baseEnv(), state, tx)
	require.Error(t, err)

	var wrongOutputs common.WrongNetworkError
	require.True(t, errors.As(err, &wrongOutputs), "expected WrongNetworkError")
	assert.Len(t, wrongOutputs.Offenders, 2)

	var wrongWithdrawals common.WrongNetworkWithdrawalError
	require.True(t, errors.As(err, &wrongWithdrawals), "expected WrongNetworkWithdrawalError")
	assert.Len(t, wrongWithdrawals.Offenders, 2)
}

func TestIdempotentRejectionLeavesStateUnchanged(t *testing.T) {
	alice, bob := newActor(t), newActor(t)
	utxo, g := genesisUTxO(t, alice, bob)
	before := common.LedgerState{UTxOState: common.NewUTxOState(utxo), DelegationState: common.NewDelegationState()}

	body := &common.TxBody{
		TxInputs:  []common.TxIn{{Id: g, Index: 0}},
		TxOutputs: []common.TxOut{{Address: alice.addr, Value: common.OfCoin(big.NewInt(1))}},
		TxForge:   common.ZeroValue(),
		TxFee:     big.NewInt(9999),
		TxTTL:     1_000_000,
	}
	tx := &common.Transaction{Body: body}
	tx.Witnesses.VKeyWitnesses = []common.VKeyWitness{alice.witness(tx.Id())}

	after, err := shelley.ApplyLEDGER(baseEnv(), before, tx)
	require.Error(t, err)
	assert.Equal(t, before, after)
}
