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

import "math/big"

// Certificate is an on-chain command that mutates delegation state. Which
// witnesses a given certificate demands is not fixed per certificate type:
// it follows the credential it carries (see RequiredKeyHashes,
// ScriptsNeeded in witness.go), since a stake credential may be backed by
// either a key hash or a script hash.
type Certificate interface {
	isCertificate()
}

type PoolKeyHash = Blake2b224
type VrfKeyHash = Blake2b256

// StakeRegistrationCertificate registers a stake credential.
type StakeRegistrationCertificate struct {
	StakeCredential Credential
}

func (StakeRegistrationCertificate) isCertificate() {}

// StakeDeregistrationCertificate deregisters a stake credential and refunds
// its deposit.
type StakeDeregistrationCertificate struct {
	StakeCredential Credential
}

func (StakeDeregistrationCertificate) isCertificate() {}

// StakeDelegationCertificate delegates a stake credential to a pool.
type StakeDelegationCertificate struct {
	StakeCredential Credential
	PoolKeyHash     PoolKeyHash
}

func (StakeDelegationCertificate) isCertificate() {}

// PoolRegistrationCertificate registers or re-registers a stake pool. Its
// operator key and every listed owner always require a vkey witness; pool
// credentials are never script-locked.
type PoolRegistrationCertificate struct {
	Operator      PoolKeyHash
	VrfKeyHash    VrfKeyHash
	Pledge        uint64
	Cost          uint64
	Margin        *big.Rat
	RewardAccount Blake2b224
	PoolOwners    []Blake2b224
}

func (PoolRegistrationCertificate) isCertificate() {}

// PoolRetirementCertificate schedules a pool for retirement at a future
// epoch.
type PoolRetirementCertificate struct {
	PoolKeyHash PoolKeyHash
	RetireEpoch uint64
}

func (PoolRetirementCertificate) isCertificate() {}
