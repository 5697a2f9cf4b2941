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

// Metadata is an opaque, hashable auxiliary payload accompanying a
// transaction. Its internal structure is out of scope for this ledger
// core; only its presence and hash consistency with the body are checked.
type Metadata []byte

// Hash returns the metadata's identifying digest.
func (m Metadata) Hash() Blake2b256 { return Blake2b256Hash(m) }

// Transaction is the unit the ledger applies: a canonical body plus the
// witnesses authorizing it. No field of Body may be mutated after
// construction; Body.Id() is fixed at creation and cached.
type Transaction struct {
	Body       *TxBody
	Witnesses  TransactionWitnessSet
	Metadata   Metadata // present iff Body.TxMetadataHash is set
}

// Id returns the transaction's identity, delegating to the body.
func (tx *Transaction) Id() TxId { return tx.Body.Id() }

// EncodedSize returns the canonical encoded size of the body in bytes,
// used by the fee floor and max-size checks. Witnesses are not part of
// this ledger core's size accounting; the fee formula in spec §4.F is
// defined purely in terms of the hashed body.
func (tx *Transaction) EncodedSize() (int, error) {
	data, err := tx.Body.CanonicalCBOR()
	if err != nil {
		return 0, err
	}
	return len(data), nil
}
