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

const (
	CredentialTypeKeyHash    = 0
	CredentialTypeScriptHash = 1
)

// Credential is an authorization token: either a key hash or a script hash.
type Credential struct {
	CredType   uint
	Credential Blake2b224
}

// NewKeyHashCredential builds a key-hash credential.
func NewKeyHashCredential(hash Blake2b224) Credential {
	return Credential{CredType: CredentialTypeKeyHash, Credential: hash}
}

// NewScriptHashCredential builds a script-hash credential.
func NewScriptHashCredential(hash Blake2b224) Credential {
	return Credential{CredType: CredentialTypeScriptHash, Credential: hash}
}

func (c Credential) IsKeyHash() bool    { return c.CredType == CredentialTypeKeyHash }
func (c Credential) IsScriptHash() bool { return c.CredType == CredentialTypeScriptHash }

func (c Credential) String() string {
	if c.IsScriptHash() {
		return "script:" + c.Credential.String()
	}
	return "key:" + c.Credential.String()
}
