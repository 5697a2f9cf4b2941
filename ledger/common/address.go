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
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	NetworkTestnet uint8 = 0
	NetworkMainnet uint8 = 1

	AddressHashSize = Blake2b224Size

	addrTypeKeyKey       = 0b0000
	addrTypeScriptKey    = 0b0001
	addrTypeKeyScript    = 0b0010
	addrTypeScriptScript = 0b0011
	addrTypeKeyPointer   = 0b0100
	addrTypeScriptPtr    = 0b0101
	addrTypeKeyNone      = 0b0110
	addrTypeScriptNone   = 0b0111
	addrTypeNoneKey      = 0b1110
	addrTypeNoneScript   = 0b1111
)

// StakeReferenceKind discriminates how an Address ties to a stake account.
type StakeReferenceKind int

const (
	StakeReferenceNone StakeReferenceKind = iota
	StakeReferenceBase
	StakeReferencePointer
)

// Pointer identifies a stake registration certificate by its position in
// the chain, for pointer-style stake references.
type Pointer struct {
	Slot      uint64
	TxIndex   uint64
	CertIndex uint64
}

// StakeReference is the staking half of an Address: absent, a base
// credential carried inline, or a pointer into certificate history.
type StakeReference struct {
	Kind       StakeReferenceKind
	Credential Credential
	Pointer    Pointer
}

// Address carries a network tag, a payment credential, and a staking
// reference (base credential, pointer, or none).
type Address struct {
	Network    uint8
	Payment    Credential
	Staking    StakeReference
	isStakeKey bool // true if this Address is itself a reward account (no payment part)
}

// NewPaymentAddress builds a payment address (with or without a staking
// reference) for the given network.
func NewPaymentAddress(network uint8, payment Credential, staking StakeReference) Address {
	return Address{Network: network, Payment: payment, Staking: staking}
}

// NewRewardAddress builds a reward (stake) account address, which carries
// no payment credential, only a staking one.
func NewRewardAddress(network uint8, staking Credential) Address {
	return Address{
		Network:    network,
		Staking:    StakeReference{Kind: StakeReferenceBase, Credential: staking},
		isStakeKey: true,
	}
}

func (a Address) IsRewardAccount() bool { return a.isStakeKey }

func (a Address) addrType() uint8 {
	if a.isStakeKey {
		if a.Staking.Credential.IsScriptHash() {
			return addrTypeNoneScript
		}
		return addrTypeNoneKey
	}
	scriptPay := a.Payment.IsScriptHash()
	switch a.Staking.Kind {
	case StakeReferenceNone:
		if scriptPay {
			return addrTypeScriptNone
		}
		return addrTypeKeyNone
	case StakeReferencePointer:
		if scriptPay {
			return addrTypeScriptPtr
		}
		return addrTypeKeyPointer
	default: // base
		scriptStake := a.Staking.Credential.IsScriptHash()
		switch {
		case !scriptPay && !scriptStake:
			return addrTypeKeyKey
		case scriptPay && !scriptStake:
			return addrTypeScriptKey
		case !scriptPay && scriptStake:
			return addrTypeKeyScript
		default:
			return addrTypeScriptScript
		}
	}
}

// Bytes returns the raw (non-bech32) encoding of the address.
func (a Address) Bytes() []byte {
	buf := bytes.NewBuffer(nil)
	header := (a.addrType() << 4) | (a.Network & 0x0F)
	buf.WriteByte(header)
	if !a.isStakeKey {
		buf.Write(a.Payment.Credential.Bytes())
	}
	switch a.Staking.Kind {
	case StakeReferenceBase:
		buf.Write(a.Staking.Credential.Credential.Bytes())
	case StakeReferencePointer:
		writeVarUint(buf, a.Staking.Pointer.Slot)
		writeVarUint(buf, a.Staking.Pointer.TxIndex)
		writeVarUint(buf, a.Staking.Pointer.CertIndex)
	}
	return buf.Bytes()
}

func writeVarUint(buf *bytes.Buffer, val uint64) {
	var stack []byte
	stack = append(stack, byte(val&0x7F))
	val /= 128
	for val > 0 {
		stack = append(stack, byte((val&0x7F)|0x80))
		val /= 128
	}
	for i := len(stack) - 1; i >= 0; i-- {
		buf.WriteByte(stack[i])
	}
}

func readVarUint(data []byte) (uint64, int, error) {
	var ret uint64
	for i, b := range data {
		ret = (ret << 7) | uint64(b&0x7F)
		if b&0x80 == 0 {
			return ret, i + 1, nil
		}
	}
	return 0, 0, errors.New("truncated pointer varint")
}

func (a Address) hrp() string {
	if a.isStakeKey || a.addrType() == addrTypeNoneKey || a.addrType() == addrTypeNoneScript {
		if a.Network != NetworkMainnet {
			return "stake_test"
		}
		return "stake"
	}
	if a.Network != NetworkMainnet {
		return "addr_test"
	}
	return "addr"
}

// String returns the bech32-encoded address.
func (a Address) String() string {
	data := a.Bytes()
	conv, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		panic(fmt.Sprintf("unexpected bech32 conversion error: %s", err))
	}
	encoded, err := bech32.Encode(a.hrp(), conv)
	if err != nil {
		panic(fmt.Sprintf("unexpected bech32 encoding error: %s", err))
	}
	return encoded
}

// NewAddressFromBech32 decodes a bech32-encoded Shelley address or reward
// account.
func NewAddressFromBech32(s string) (Address, error) {
	_, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return Address{}, err
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, err
	}
	return NewAddressFromBytes(raw)
}

// NewAddressFromBytes decodes the raw (post-bech32) form of an address.
func NewAddressFromBytes(data []byte) (Address, error) {
	if len(data) < 1 {
		return Address{}, errors.New("empty address")
	}
	header := data[0]
	addrType := (header & 0xF0) >> 4
	network := header & 0x0F
	rest := data[1:]

	readCred := func(scriptHash bool) (Credential, []byte, error) {
		if len(rest) < AddressHashSize {
			return Credential{}, nil, errors.New("truncated credential")
		}
		h := NewBlake2b224(rest[:AddressHashSize])
		if scriptHash {
			return NewScriptHashCredential(h), rest[AddressHashSize:], nil
		}
		return NewKeyHashCredential(h), rest[AddressHashSize:], nil
	}

	switch addrType {
	case addrTypeNoneKey, addrTypeNoneScript:
		cred, remain, err := readCred(addrType == addrTypeNoneScript)
		if err != nil {
			return Address{}, err
		}
		if len(remain) != 0 {
			return Address{}, errors.New("trailing bytes in reward address")
		}
		return Address{
			Network:    network,
			Staking:    StakeReference{Kind: StakeReferenceBase, Credential: cred},
			isStakeKey: true,
		}, nil
	case addrTypeKeyKey, addrTypeScriptKey, addrTypeKeyScript, addrTypeScriptScript,
		addrTypeKeyPointer, addrTypeScriptPtr, addrTypeKeyNone, addrTypeScriptNone:
		payCred, remain, err := readCred(addrType == addrTypeScriptKey ||
			addrType == addrTypeScriptScript || addrType == addrTypeScriptPtr ||
			addrType == addrTypeScriptNone)
		if err != nil {
			return Address{}, err
		}
		rest = remain
		var staking StakeReference
		switch addrType {
		case addrTypeKeyKey, addrTypeScriptKey:
			cred, remain2, err := readCred(false)
			if err != nil {
				return Address{}, err
			}
			rest = remain2
			staking = StakeReference{Kind: StakeReferenceBase, Credential: cred}
		case addrTypeKeyScript, addrTypeScriptScript:
			cred, remain2, err := readCred(true)
			if err != nil {
				return Address{}, err
			}
			rest = remain2
			staking = StakeReference{Kind: StakeReferenceBase, Credential: cred}
		case addrTypeKeyPointer, addrTypeScriptPtr:
			slot, n1, err := readVarUint(rest)
			if err != nil {
				return Address{}, err
			}
			rest = rest[n1:]
			txIdx, n2, err := readVarUint(rest)
			if err != nil {
				return Address{}, err
			}
			rest = rest[n2:]
			certIdx, n3, err := readVarUint(rest)
			if err != nil {
				return Address{}, err
			}
			rest = rest[n3:]
			staking = StakeReference{
				Kind:    StakeReferencePointer,
				Pointer: Pointer{Slot: slot, TxIndex: txIdx, CertIndex: certIdx},
			}
		default:
			staking = StakeReference{Kind: StakeReferenceNone}
		}
		if len(rest) != 0 {
			return Address{}, errors.New("trailing bytes in address")
		}
		return Address{Network: network, Payment: payCred, Staking: staking}, nil
	default:
		return Address{}, fmt.Errorf("unsupported address type %#x", addrType)
	}
}
