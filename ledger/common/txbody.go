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
	"bytes"
	"fmt"
	"math/big"
	"slices"

	icbor "github.com/bariscicek/cardano-ledger-specs/internal/cbor"
)

// TxId is the hash of a transaction body's canonical encoding.
type TxId = Blake2b256

// TxIn references a previously produced output.
type TxIn struct {
	Id    TxId
	Index uint32
}

func (i TxIn) String() string { return fmt.Sprintf("%s#%d", i.Id, i.Index) }

func compareTxIn(a, b TxIn) int {
	if c := bytes.Compare(a.Id.Bytes(), b.Id.Bytes()); c != 0 {
		return c
	}
	if a.Index < b.Index {
		return -1
	}
	if a.Index > b.Index {
		return 1
	}
	return 0
}

// SortedTxIns returns a new, ascending-sorted copy of ins, the canonical
// set ordering used both for encoding and for the UTXO rule's input set.
func SortedTxIns(ins []TxIn) []TxIn {
	out := slices.Clone(ins)
	slices.SortFunc(out, compareTxIn)
	return out
}

// TxOut is an (address, value) pair produced by a transaction.
type TxOut struct {
	Address Address
	Value   Value
}

// CompactValue is the encoding-optimized, stored form of a Value.
type CompactValue struct {
	data []byte
}

// ToCompact encodes v into its stored form.
func ToCompact(v Value) (CompactValue, error) {
	w, err := valueToWire(v)
	if err != nil {
		return CompactValue{}, err
	}
	data, err := icbor.Encode(w)
	if err != nil {
		return CompactValue{}, err
	}
	return CompactValue{data: data}, nil
}

// ToValue decodes a CompactValue back into a Value.
func (c CompactValue) ToValue() (Value, error) {
	var w wireValue
	if err := icbor.Decode(c.data, &w); err != nil {
		return Value{}, err
	}
	return wireToValue(w)
}

func (c CompactValue) Bytes() []byte { return c.data }

// wireValue is the canonical, primitive-only encoding of a Value: a coin
// amount plus a sorted policy -> asset-name -> amount map.
type wireValue struct {
	Coin   []byte
	Assets []wirePolicy
}

type wirePolicy struct {
	Policy []byte
	Assets []wireAsset
}

type wireAsset struct {
	Name   []byte
	Amount []byte
}

func valueToWire(v Value) (wireValue, error) {
	w := wireValue{Coin: signedBigIntBytes(v.CoinOf())}
	// Group by policy, preserving sign via big.Int GobEncode-style bytes is
	// insufficient (loses sign), so store sign-magnitude explicitly.
	type amt struct {
		neg bool
		mag []byte
	}
	_ = amt{}
	byPolicy := map[PolicyID][]AssetID{}
	for _, id := range v.Assets() {
		if id.isBase() {
			continue
		}
		byPolicy[id.Policy] = append(byPolicy[id.Policy], id)
	}
	policies := make([]PolicyID, 0, len(byPolicy))
	for p := range byPolicy {
		policies = append(policies, p)
	}
	slices.SortFunc(policies, func(a, b PolicyID) int {
		return bytes.Compare(a.Bytes(), b.Bytes())
	})
	for _, p := range policies {
		wp := wirePolicy{Policy: p.Bytes()}
		for _, id := range byPolicy[p] {
			a := v.Asset(id.Policy, id.Name.Bytes())
			wp.Assets = append(wp.Assets, wireAsset{
				Name:   id.Name.Bytes(),
				Amount: signedBigIntBytes(a),
			})
		}
		w.Assets = append(w.Assets, wp)
	}
	return w, nil
}

func wireToValue(w wireValue) (Value, error) {
	coin, err := signedBigIntFromBytes(w.Coin)
	if err != nil {
		return Value{}, err
	}
	out := OfCoin(coin)
	for _, wp := range w.Assets {
		policy := NewBlake2b224(wp.Policy)
		for _, wa := range wp.Assets {
			amt, err := signedBigIntFromBytes(wa.Amount)
			if err != nil {
				return Value{}, err
			}
			out = out.WithAsset(policy, wa.Name, amt)
		}
	}
	return out, nil
}

// signedBigIntBytes encodes a signed integer as a sign byte plus magnitude,
// since big.Int.Bytes() discards the sign.
func signedBigIntBytes(v *big.Int) []byte {
	sign := byte(0)
	if v.Sign() < 0 {
		sign = 1
	}
	return append([]byte{sign}, v.Bytes()...)
}

func signedBigIntFromBytes(data []byte) (*big.Int, error) {
	if len(data) == 0 {
		return new(big.Int), nil
	}
	mag := new(big.Int).SetBytes(data[1:])
	if data[0] == 1 {
		mag.Neg(mag)
	}
	return mag, nil
}

// UTxOOut is the stored form of a transaction output.
type UTxOOut struct {
	Address Address
	Value   CompactValue
}

// TxBody is the canonical record hashed to derive a transaction's identity.
type TxBody struct {
	TxInputs       []TxIn
	TxOutputs      []TxOut
	TxCertificates []Certificate
	TxForge        Value
	TxWithdrawals  map[Address]*big.Int
	TxFee          *big.Int
	TxTTL          uint64
	TxUpdate       *ProtocolParameterUpdate
	TxMetadataHash *Blake2b256

	cachedId *TxId
}

// Fee returns the transaction's declared fee, or zero if unset.
func (b *TxBody) Fee() *big.Int {
	if b.TxFee == nil {
		return new(big.Int)
	}
	return b.TxFee
}

// CanonicalCBOR produces the deterministic byte encoding whose hash is the
// transaction identity. Equal semantic content always yields identical
// bytes: inputs are sorted, withdrawal keys are sorted by address bytes,
// and every optional field is either fully present or fully absent.
func (b *TxBody) CanonicalCBOR() ([]byte, error) {
	w, err := b.toWire()
	if err != nil {
		return nil, err
	}
	return icbor.Encode(w)
}

// Id returns the transaction identity, hashing and caching on first call.
func (b *TxBody) Id() TxId {
	if b.cachedId != nil {
		return *b.cachedId
	}
	data, err := b.CanonicalCBOR()
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding tx body: %s", err))
	}
	id := Blake2b256Hash(data)
	b.cachedId = &id
	return id
}

// Txouts returns the UTxO produced by this body, keyed by (Id, index).
func (b *TxBody) Txouts() map[TxIn]UTxOOut {
	id := b.Id()
	out := make(map[TxIn]UTxOOut, len(b.TxOutputs))
	for i, o := range b.TxOutputs {
		cv, err := ToCompact(o.Value)
		if err != nil {
			panic(fmt.Sprintf("unexpected error compacting value: %s", err))
		}
		out[TxIn{Id: id, Index: uint32(i)}] = UTxOOut{Address: o.Address, Value: cv}
	}
	return out
}

type wireTxIn struct {
	icbor.StructAsArray
	Id    []byte
	Index uint32
}

type wireTxOut struct {
	icbor.StructAsArray
	Address []byte
	Value   wireValue
}

type wireCert struct {
	icbor.StructAsArray
	Kind          uint
	Credential    []byte
	CredIsScript  bool
	PoolKeyHash   []byte
	VrfKeyHash    []byte
	Pledge        uint64
	Cost          uint64
	MarginNum     int64
	MarginDenom   uint64
	RewardAccount []byte
	PoolOwners    [][]byte
	RetireEpoch   uint64
}

const (
	certKindStakeReg = iota
	certKindStakeDereg
	certKindStakeDeleg
	certKindPoolReg
	certKindPoolRetire
)

func certToWire(c Certificate) (wireCert, error) {
	switch v := c.(type) {
	case StakeRegistrationCertificate:
		return wireCert{
			Kind:         certKindStakeReg,
			Credential:   v.StakeCredential.Credential.Bytes(),
			CredIsScript: v.StakeCredential.IsScriptHash(),
		}, nil
	case StakeDeregistrationCertificate:
		return wireCert{
			Kind:         certKindStakeDereg,
			Credential:   v.StakeCredential.Credential.Bytes(),
			CredIsScript: v.StakeCredential.IsScriptHash(),
		}, nil
	case StakeDelegationCertificate:
		return wireCert{
			Kind:         certKindStakeDeleg,
			Credential:   v.StakeCredential.Credential.Bytes(),
			CredIsScript: v.StakeCredential.IsScriptHash(),
			PoolKeyHash:  v.PoolKeyHash.Bytes(),
		}, nil
	case PoolRegistrationCertificate:
		owners := make([][]byte, len(v.PoolOwners))
		for i, o := range v.PoolOwners {
			owners[i] = o.Bytes()
		}
		num, denom := int64(0), uint64(1)
		if v.Margin != nil {
			num = v.Margin.Num().Int64()
			denom = v.Margin.Denom().Uint64()
		}
		return wireCert{
			Kind:          certKindPoolReg,
			PoolKeyHash:   v.Operator.Bytes(),
			VrfKeyHash:    v.VrfKeyHash.Bytes(),
			Pledge:        v.Pledge,
			Cost:          v.Cost,
			MarginNum:     num,
			MarginDenom:   denom,
			RewardAccount: v.RewardAccount.Bytes(),
			PoolOwners:    owners,
		}, nil
	case PoolRetirementCertificate:
		return wireCert{
			Kind:        certKindPoolRetire,
			PoolKeyHash: v.PoolKeyHash.Bytes(),
			RetireEpoch: v.RetireEpoch,
		}, nil
	default:
		return wireCert{}, fmt.Errorf("unsupported certificate type %T", c)
	}
}

func wireToCert(w wireCert) (Certificate, error) {
	credOf := func() Credential {
		if w.CredIsScript {
			return NewScriptHashCredential(NewBlake2b224(w.Credential))
		}
		return NewKeyHashCredential(NewBlake2b224(w.Credential))
	}
	switch w.Kind {
	case certKindStakeReg:
		return StakeRegistrationCertificate{StakeCredential: credOf()}, nil
	case certKindStakeDereg:
		return StakeDeregistrationCertificate{StakeCredential: credOf()}, nil
	case certKindStakeDeleg:
		return StakeDelegationCertificate{
			StakeCredential: credOf(),
			PoolKeyHash:     NewBlake2b224(w.PoolKeyHash),
		}, nil
	case certKindPoolReg:
		owners := make([]Blake2b224, len(w.PoolOwners))
		for i, o := range w.PoolOwners {
			owners[i] = NewBlake2b224(o)
		}
		denom := w.MarginDenom
		if denom == 0 {
			denom = 1
		}
		return PoolRegistrationCertificate{
			Operator:      NewBlake2b224(w.PoolKeyHash),
			VrfKeyHash:    NewBlake2b256(w.VrfKeyHash),
			Pledge:        w.Pledge,
			Cost:          w.Cost,
			Margin:        big.NewRat(w.MarginNum, int64(denom)),
			RewardAccount: NewBlake2b224(w.RewardAccount),
			PoolOwners:    owners,
		}, nil
	case certKindPoolRetire:
		return PoolRetirementCertificate{
			PoolKeyHash: NewBlake2b224(w.PoolKeyHash),
			RetireEpoch: w.RetireEpoch,
		}, nil
	default:
		return nil, fmt.Errorf("unknown certificate kind %d", w.Kind)
	}
}

type wireWithdrawal struct {
	icbor.StructAsArray
	Address []byte
	Amount  []byte
}

type wireTxBody struct {
	icbor.StructAsArray
	Inputs            []wireTxIn
	Outputs           []wireTxOut
	Certificates      []wireCert
	Forge             wireValue
	Withdrawals       []wireWithdrawal
	Fee               []byte
	Ttl               uint64
	HasUpdate         bool
	UpdateEpoch       uint64
	UpdateGenesisKeys [][]byte
	MetadataHash      []byte
	HasMetaHash       bool
}

func (b *TxBody) toWire() (wireTxBody, error) {
	w := wireTxBody{Ttl: b.TxTTL, Fee: signedBigIntBytes(b.Fee())}
	for _, in := range SortedTxIns(b.TxInputs) {
		w.Inputs = append(w.Inputs, wireTxIn{Id: in.Id.Bytes(), Index: in.Index})
	}
	for _, o := range b.TxOutputs {
		vw, err := valueToWire(o.Value)
		if err != nil {
			return wireTxBody{}, err
		}
		w.Outputs = append(w.Outputs, wireTxOut{Address: o.Address.Bytes(), Value: vw})
	}
	for _, c := range b.TxCertificates {
		cw, err := certToWire(c)
		if err != nil {
			return wireTxBody{}, err
		}
		w.Certificates = append(w.Certificates, cw)
	}
	fv, err := valueToWire(b.TxForge)
	if err != nil {
		return wireTxBody{}, err
	}
	w.Forge = fv
	addrs := make([]Address, 0, len(b.TxWithdrawals))
	for a := range b.TxWithdrawals {
		addrs = append(addrs, a)
	}
	slices.SortFunc(addrs, func(a, bb Address) int {
		return bytes.Compare(a.Bytes(), bb.Bytes())
	})
	for _, a := range addrs {
		w.Withdrawals = append(w.Withdrawals, wireWithdrawal{
			Address: a.Bytes(),
			Amount:  signedBigIntBytes(b.TxWithdrawals[a]),
		})
	}
	if b.TxUpdate != nil {
		w.HasUpdate = true
		w.UpdateEpoch = b.TxUpdate.Epoch
		for _, k := range b.TxUpdate.GenesisDelegateKeys {
			w.UpdateGenesisKeys = append(w.UpdateGenesisKeys, k.Bytes())
		}
	}
	if b.TxMetadataHash != nil {
		w.HasMetaHash = true
		w.MetadataHash = b.TxMetadataHash.Bytes()
	}
	return w, nil
}

// DecodeTxBody rebuilds a TxBody from its canonical encoding.
func DecodeTxBody(data []byte) (*TxBody, error) {
	var w wireTxBody
	if err := icbor.Decode(data, &w); err != nil {
		return nil, err
	}
	b := &TxBody{TxTTL: w.Ttl}
	fee, err := signedBigIntFromBytes(w.Fee)
	if err != nil {
		return nil, err
	}
	b.TxFee = fee
	for _, in := range w.Inputs {
		b.TxInputs = append(b.TxInputs, TxIn{Id: NewBlake2b256(in.Id), Index: in.Index})
	}
	for _, o := range w.Outputs {
		addr, err := NewAddressFromBytes(o.Address)
		if err != nil {
			return nil, err
		}
		v, err := wireToValue(o.Value)
		if err != nil {
			return nil, err
		}
		b.TxOutputs = append(b.TxOutputs, TxOut{Address: addr, Value: v})
	}
	for _, cw := range w.Certificates {
		c, err := wireToCert(cw)
		if err != nil {
			return nil, err
		}
		b.TxCertificates = append(b.TxCertificates, c)
	}
	forge, err := wireToValue(w.Forge)
	if err != nil {
		return nil, err
	}
	b.TxForge = forge
	if len(w.Withdrawals) > 0 {
		b.TxWithdrawals = make(map[Address]*big.Int, len(w.Withdrawals))
		for _, wd := range w.Withdrawals {
			addr, err := NewAddressFromBytes(wd.Address)
			if err != nil {
				return nil, err
			}
			amt, err := signedBigIntFromBytes(wd.Amount)
			if err != nil {
				return nil, err
			}
			b.TxWithdrawals[addr] = amt
		}
	}
	if w.HasUpdate {
		update := &ProtocolParameterUpdate{Epoch: w.UpdateEpoch}
		for _, k := range w.UpdateGenesisKeys {
			update.GenesisDelegateKeys = append(update.GenesisDelegateKeys, NewBlake2b224(k))
		}
		b.TxUpdate = update
	}
	if w.HasMetaHash {
		h := NewBlake2b256(w.MetadataHash)
		b.TxMetadataHash = &h
	}
	return b, nil
}
