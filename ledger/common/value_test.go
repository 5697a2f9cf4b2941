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

package common_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/bariscicek/cardano-ledger-specs/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomValue(r *rand.Rand) common.Value {
	v := common.OfCoin(big.NewInt(r.Int63n(2000) - 1000))
	policy := common.NewBlake2b224([]byte{byte(r.Intn(3))})
	for i := 0; i < r.Intn(3); i++ {
		name := []byte{byte(i)}
		amt := big.NewInt(r.Int63n(500) - 250)
		v = v.WithAsset(policy, name, amt)
	}
	return v
}

func TestValueMonoidCommutativeAssociative(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a := randomValue(r)
		b := randomValue(r)
		c := randomValue(r)

		assert.True(t, a.Add(b).Eq(b.Add(a)), "commutative")
		assert.True(t, a.Add(b).Add(c).Eq(a.Add(b.Add(c))), "associative")
		assert.True(t, a.Add(common.ZeroValue()).Eq(a), "identity")
	}
}

func TestValueAddPositiveIsPositive(t *testing.T) {
	a := common.OfCoin(big.NewInt(10)).WithAsset(common.NewBlake2b224([]byte{1}), []byte("x"), big.NewInt(5))
	b := common.OfCoin(big.NewInt(3)).WithAsset(common.NewBlake2b224([]byte{1}), []byte("x"), big.NewInt(2))
	assert.True(t, a.IsPositive())
	assert.True(t, b.IsPositive())
	assert.True(t, a.Add(b).IsPositive())
}

func TestValueSubNegateRoundTrip(t *testing.T) {
	a := common.OfCoin(big.NewInt(42))
	b := common.OfCoin(big.NewInt(17))
	diff := a.Sub(b)
	require.Equal(t, big.NewInt(25), diff.CoinOf())
	assert.True(t, diff.Add(b).Eq(a))
}

func TestValueLeqTreatsAbsentAsZero(t *testing.T) {
	empty := common.ZeroValue()
	positive := common.OfCoin(big.NewInt(1))
	assert.True(t, empty.Leq(positive))
	assert.False(t, positive.Leq(empty))
}

func TestValueEmptyIsNotPositive(t *testing.T) {
	assert.False(t, common.ZeroValue().IsPositive())
}

func TestValueHasNegative(t *testing.T) {
	v := common.OfCoin(big.NewInt(-5))
	assert.True(t, v.HasNegative())
	assert.False(t, common.OfCoin(big.NewInt(5)).HasNegative())
}
