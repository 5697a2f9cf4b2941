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

package main

import (
	"encoding/hex"

	"github.com/bariscicek/cardano-ledger-specs/ledger/common"
)

func hexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

func hexToHash256(s string) (common.Blake2b256, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return common.Blake2b256{}, err
	}
	return common.NewBlake2b256(b), nil
}
