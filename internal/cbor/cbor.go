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

// Package cbor provides the canonical CBOR encoding used to compute
// transaction identities. Encoding is deterministic: map keys are sorted,
// integers use their shortest form, and there is no ambiguity between an
// absent optional field and a present-but-zero one.
package cbor

import (
	"bytes"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

// RawMessage passes through already-encoded CBOR without re-encoding it.
type RawMessage = _cbor.RawMessage

// StructAsArray tells the encoder to represent the embedding struct as a
// CBOR array of its fields in declaration order, rather than as a map.
type StructAsArray struct {
	_ struct{} `cbor:",toarray"`
}

var (
	encMode     _cbor.EncMode
	encModeOnce sync.Once
	encModeErr  error

	decMode     _cbor.DecMode
	decModeOnce sync.Once
	decModeErr  error
)

func getEncMode() (_cbor.EncMode, error) {
	encModeOnce.Do(func() {
		opts := _cbor.EncOptions{
			Sort: _cbor.SortCoreDeterministic,
		}
		encMode, encModeErr = opts.EncMode()
	})
	return encMode, encModeErr
}

func getDecMode() (_cbor.DecMode, error) {
	decModeOnce.Do(func() {
		opts := _cbor.DecOptions{
			MaxNestedLevels: 256,
		}
		decMode, decModeErr = opts.DecMode()
	})
	return decMode, decModeErr
}

// Encode produces the canonical CBOR encoding of data.
func Encode(data any) ([]byte, error) {
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	if err := em.NewEncoder(buf).Encode(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes CBOR bytes into dest.
func Decode(data []byte, dest any) error {
	dm, err := getDecMode()
	if err != nil {
		return err
	}
	return dm.NewDecoder(bytes.NewReader(data)).Decode(dest)
}
