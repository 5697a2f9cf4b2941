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

// Command utxoledger-apply reads a JSON scenario describing a ledger
// state, an environment, and a transaction from stdin, applies LEDGER,
// and prints the resulting state or failure list as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/bariscicek/cardano-ledger-specs/ledger/common"
	"github.com/bariscicek/cardano-ledger-specs/ledger/shelley"
)

type scenario struct {
	Network      uint8    `json:"network"`
	Slot         uint64   `json:"slot"`
	CurrentEpoch uint64   `json:"current_epoch"`
	Params       pparams  `json:"params"`
	Utxo         []utxoIn `json:"utxo"`
	Tx           txIn     `json:"tx"`
}

type pparams struct {
	MinFeeA            uint64 `json:"min_fee_a"`
	MinFeeB            uint64 `json:"min_fee_b"`
	KeyDeposit         uint64 `json:"key_deposit"`
	PoolDeposit        uint64 `json:"pool_deposit"`
	MinUTxOValue       uint64 `json:"min_utxo_value"`
	MinPoolCost        uint64 `json:"min_pool_cost"`
	MaxTxSize          uint64 `json:"max_tx_size"`
	PoolRetireMaxEpoch uint64 `json:"pool_retire_max_epoch"`
}

func (p pparams) toDomain() common.ProtocolParameters {
	return common.ProtocolParameters{
		MinFeeA:            p.MinFeeA,
		MinFeeB:            p.MinFeeB,
		KeyDeposit:         p.KeyDeposit,
		PoolDeposit:        p.PoolDeposit,
		MinUTxOValue:       p.MinUTxOValue,
		MinPoolCost:        p.MinPoolCost,
		MaxTxSize:          p.MaxTxSize,
		PoolRetireMaxEpoch: p.PoolRetireMaxEpoch,
	}
}

type utxoIn struct {
	TxId    string `json:"tx_id"`
	Index   uint32 `json:"index"`
	Address string `json:"address"`
	Coin    uint64 `json:"coin"`
}

type txOut struct {
	Address string `json:"address"`
	Coin    uint64 `json:"coin"`
}

type txInput struct {
	TxId  string `json:"tx_id"`
	Index uint32 `json:"index"`
}

type vkeyWitness struct {
	VKeyHex      string `json:"vkey"`
	SignatureHex string `json:"signature"`
}

type txIn struct {
	Inputs    []txInput     `json:"inputs"`
	Outputs   []txOut       `json:"outputs"`
	Fee       uint64        `json:"fee"`
	Ttl       uint64        `json:"ttl"`
	Witnesses []vkeyWitness `json:"witnesses"`
}

func main() {
	var s scenario
	if err := json.NewDecoder(os.Stdin).Decode(&s); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR(decode): %s\n", err)
		os.Exit(1)
	}

	utxo := make(common.UTxO, len(s.Utxo))
	for _, u := range s.Utxo {
		id, err := hexToHash256(u.TxId)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR(utxo tx_id): %s\n", err)
			os.Exit(1)
		}
		addr, err := common.NewAddressFromBech32(u.Address)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR(utxo address): %s\n", err)
			os.Exit(1)
		}
		cv, err := common.ToCompact(common.OfCoin(new(big.Int).SetUint64(u.Coin)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR(utxo value): %s\n", err)
			os.Exit(1)
		}
		utxo[common.TxIn{Id: id, Index: u.Index}] = common.UTxOOut{Address: addr, Value: cv}
	}

	body := &common.TxBody{TxFee: new(big.Int).SetUint64(s.Tx.Fee), TxTTL: s.Tx.Ttl, TxForge: common.ZeroValue()}
	for _, in := range s.Tx.Inputs {
		id, err := hexToHash256(in.TxId)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR(input tx_id): %s\n", err)
			os.Exit(1)
		}
		body.TxInputs = append(body.TxInputs, common.TxIn{Id: id, Index: in.Index})
	}
	for _, o := range s.Tx.Outputs {
		addr, err := common.NewAddressFromBech32(o.Address)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR(output address): %s\n", err)
			os.Exit(1)
		}
		body.TxOutputs = append(body.TxOutputs, common.TxOut{Address: addr, Value: common.OfCoin(new(big.Int).SetUint64(o.Coin))})
	}

	tx := &common.Transaction{Body: body}
	for _, w := range s.Tx.Witnesses {
		vkey, err := hexToBytes(w.VKeyHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR(vkey): %s\n", err)
			os.Exit(1)
		}
		sig, err := hexToBytes(w.SignatureHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR(signature): %s\n", err)
			os.Exit(1)
		}
		tx.Witnesses.VKeyWitnesses = append(tx.Witnesses.VKeyWitnesses, common.VKeyWitness{VKey: vkey, Signature: sig})
	}

	env := common.Environment{
		Slot:         s.Slot,
		Params:       s.Params.toDomain(),
		Network:      s.Network,
		CurrentEpoch: s.CurrentEpoch,
		StakePools:   map[common.PoolKeyHash]struct{}{},
	}
	state := common.LedgerState{UTxOState: common.NewUTxOState(utxo), DelegationState: common.NewDelegationState()}

	next, err := shelley.ApplyLEDGER(env, state, tx)
	if err != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{"accepted": false, "error": err.Error()})
		os.Exit(1)
	}

	outputs := make([]map[string]any, 0, len(next.UTxOState.Utxo))
	for in, out := range next.UTxOState.Utxo {
		v, _ := out.Value.ToValue()
		outputs = append(outputs, map[string]any{
			"tx_id":   in.Id.String(),
			"index":   in.Index,
			"address": out.Address.String(),
			"coin":    v.CoinOf().String(),
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]any{
		"accepted": true,
		"tx_id":    tx.Id().String(),
		"fees":     next.UTxOState.Fees.String(),
		"utxo":     outputs,
	})
}
