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

package cbor

import "encoding/hex"

// ByteString wraps a byte slice in a comparable, map-keyable value.
type ByteString struct {
	data string
}

// NewByteString builds a ByteString from raw bytes.
func NewByteString(data []byte) ByteString {
	return ByteString{data: string(data)}
}

// Bytes returns a copy of the underlying bytes.
func (bs ByteString) Bytes() []byte {
	return []byte(bs.data)
}

func (bs ByteString) String() string {
	return hex.EncodeToString([]byte(bs.data))
}

func (bs ByteString) MarshalCBOR() ([]byte, error) {
	return Encode([]byte(bs.data))
}

func (bs *ByteString) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if err := Decode(data, &tmp); err != nil {
		return err
	}
	bs.data = string(tmp)
	return nil
}
