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

import "crypto/ed25519"

// VKeyWitness pairs a verification key with its signature over a
// transaction identity.
type VKeyWitness struct {
	VKey      []byte
	Signature []byte
}

// KeyHash returns the credential hash this witness's key corresponds to.
func (w VKeyWitness) KeyHash() Blake2b224 {
	return Blake2b224Hash(w.VKey)
}

// Verify reports whether the witness's signature validates over the given
// transaction identity under its own key. It never panics on malformed
// key or signature material; those simply fail to verify.
func (w VKeyWitness) Verify(id TxId) bool {
	if len(w.VKey) != ed25519.PublicKeySize {
		return false
	}
	if len(w.Signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(w.VKey), id.Bytes(), w.Signature)
}

// TransactionWitnessSet carries every witness accompanying a transaction:
// vkey signatures and the native scripts that back script-hash credentials.
type TransactionWitnessSet struct {
	VKeyWitnesses []VKeyWitness
	Scripts       []NativeScript
}

// VerifiedKeyHashes returns the set of key hashes with a validly-signed
// witness over id. A malformed or mis-signed VKeyWitness contributes
// nothing; it is not an error at this layer, only a missing witness.
func (w TransactionWitnessSet) VerifiedKeyHashes(id TxId) map[Blake2b224]struct{} {
	out := make(map[Blake2b224]struct{}, len(w.VKeyWitnesses))
	for _, vw := range w.VKeyWitnesses {
		if vw.Verify(id) {
			out[vw.KeyHash()] = struct{}{}
		}
	}
	return out
}

// ScriptsByHash indexes the witness set's native scripts by their hash.
func (w TransactionWitnessSet) ScriptsByHash() map[ScriptHash]NativeScript {
	out := make(map[ScriptHash]NativeScript, len(w.Scripts))
	for _, s := range w.Scripts {
		out[s.Hash()] = s
	}
	return out
}

// RequiredKeyHashes computes the set of key-hash credentials a transaction
// must carry a vkey witness for: spent inputs' payment credentials,
// certificate-authorizing credentials, withdrawal reward-account
// credentials, and (for a protocol-parameter update) every voting genesis
// delegate key, restricted to those that are key hashes (script-hash
// credentials are discharged via scriptsNeeded instead) plus any explicit
// extra signers a certificate demands.
func RequiredKeyHashes(body *TxBody, resolved map[TxIn]UTxOOut) map[Blake2b224]struct{} {
	out := make(map[Blake2b224]struct{})
	for _, in := range body.TxInputs {
		out2, ok := resolved[in]
		if !ok {
			continue
		}
		if out2.Address.IsRewardAccount() {
			continue
		}
		if out2.Address.Payment.IsKeyHash() {
			out[out2.Address.Payment.Credential] = struct{}{}
		}
	}
	for _, c := range body.TxCertificates {
		if cred, ok := certificateCredential(c); ok && cred.IsKeyHash() {
			out[cred.Credential] = struct{}{}
		}
		if pkc, ok := c.(PoolRegistrationCertificate); ok {
			out[pkc.Operator] = struct{}{}
			for _, owner := range pkc.PoolOwners {
				out[owner] = struct{}{}
			}
		}
		if prc, ok := c.(PoolRetirementCertificate); ok {
			out[prc.PoolKeyHash] = struct{}{}
		}
	}
	for addr := range body.TxWithdrawals {
		if addr.Staking.Credential.IsKeyHash() {
			out[addr.Staking.Credential.Credential] = struct{}{}
		}
	}
	if body.TxUpdate != nil {
		for _, keyHash := range body.TxUpdate.GenesisDelegateKeys {
			out[keyHash] = struct{}{}
		}
	}
	return out
}

// ScriptsNeeded computes the set of script hashes a transaction must
// discharge: script-hash payment credentials among spent inputs,
// script-locked certificate credentials, script-locked withdrawal
// accounts, and minting policy IDs.
func ScriptsNeeded(body *TxBody, resolved map[TxIn]UTxOOut) map[ScriptHash]struct{} {
	out := make(map[ScriptHash]struct{})
	for _, in := range body.TxInputs {
		out2, ok := resolved[in]
		if !ok {
			continue
		}
		if !out2.Address.IsRewardAccount() && out2.Address.Payment.IsScriptHash() {
			out[out2.Address.Payment.Credential] = struct{}{}
		}
	}
	for _, c := range body.TxCertificates {
		// Only deregistration and delegation certificates can be discharged
		// by a script; a registration certificate never needs one even
		// when its credential is a script hash (spec §4.E.3).
		var cred Credential
		var ok bool
		switch v := c.(type) {
		case StakeDeregistrationCertificate:
			cred, ok = v.StakeCredential, true
		case StakeDelegationCertificate:
			cred, ok = v.StakeCredential, true
		}
		if ok && cred.IsScriptHash() {
			out[cred.Credential] = struct{}{}
		}
	}
	for addr := range body.TxWithdrawals {
		if addr.Staking.Credential.IsScriptHash() {
			out[addr.Staking.Credential.Credential] = struct{}{}
		}
	}
	for _, id := range body.TxForge.Assets() {
		if !id.isBase() {
			out[id.Policy] = struct{}{}
		}
	}
	return out
}

func certificateCredential(c Certificate) (Credential, bool) {
	switch v := c.(type) {
	case StakeRegistrationCertificate:
		return v.StakeCredential, true
	case StakeDeregistrationCertificate:
		return v.StakeCredential, true
	case StakeDelegationCertificate:
		return v.StakeCredential, true
	default:
		return Credential{}, false
	}
}
