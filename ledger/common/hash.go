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

// Package common holds the era-independent data model and algebra of the
// UTxO ledger core: values, credentials, addresses, transaction bodies,
// the UTxO map, witnesses, certificates, and the validation-rule pipeline
// that era packages (see ledger/shelley) assemble into concrete rules.
package common

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b256Size = 32
	Blake2b224Size = 28
)

// Blake2b256 is the digest used for transaction and block identities.
type Blake2b256 [Blake2b256Size]byte

func NewBlake2b256(data []byte) Blake2b256 {
	var b Blake2b256
	copy(b[:], data)
	return b
}

// Blake2b256Hash hashes data with Blake2b-256.
func Blake2b256Hash(data []byte) Blake2b256 {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("unexpected error creating blake2b-256: %s", err))
	}
	h.Write(data)
	return Blake2b256(h.Sum(nil))
}

func (b Blake2b256) String() string { return hex.EncodeToString(b[:]) }
func (b Blake2b256) Bytes() []byte  { return b[:] }
func (b Blake2b256) IsZero() bool   { return b == Blake2b256{} }

// Blake2b224 is the digest used for key hashes, script hashes, and policy IDs.
type Blake2b224 [Blake2b224Size]byte

func NewBlake2b224(data []byte) Blake2b224 {
	var b Blake2b224
	copy(b[:], data)
	return b
}

// Blake2b224Hash hashes data with Blake2b-224.
func Blake2b224Hash(data []byte) Blake2b224 {
	h, err := blake2b.New(Blake2b224Size, nil)
	if err != nil {
		panic(fmt.Sprintf("unexpected error creating blake2b-224: %s", err))
	}
	h.Write(data)
	return Blake2b224(h.Sum(nil))
}

func (b Blake2b224) String() string { return hex.EncodeToString(b[:]) }
func (b Blake2b224) Bytes() []byte  { return b[:] }
func (b Blake2b224) IsZero() bool   { return b == Blake2b224{} }
