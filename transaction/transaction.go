// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/binary"

	"github.com/bitmark-inc/smchash/fault"
)

// packed form is: from ‖ to ‖ amount ‖ nonce
const (
	PackedSize    = 2*AddressLength + 8 + 8
	CoinbaseValue = 5000
)

// Transaction - transfer of an amount between two addresses
type Transaction struct {
	From   Address `json:"from"`
	To     Address `json:"to"`
	Amount uint64  `json:"amount,string"`
	Nonce  uint64  `json:"nonce,string"`
}

// Packed - binary form of one or more transactions
type Packed []byte

// Pack - fixed size little endian encoding
func (tx *Transaction) Pack() Packed {
	buffer := make([]byte, PackedSize)
	copy(buffer, tx.From[:])
	copy(buffer[AddressLength:], tx.To[:])
	binary.LittleEndian.PutUint64(buffer[2*AddressLength:], tx.Amount)
	binary.LittleEndian.PutUint64(buffer[2*AddressLength+8:], tx.Nonce)
	return buffer
}

// IsCoinbase - transfer from the zero address
func (tx *Transaction) IsCoinbase() bool {
	return tx.From.IsZero()
}

// Unpack - decode exactly one transaction
func (packed Packed) Unpack() (*Transaction, error) {
	if PackedSize != len(packed) {
		return nil, fault.ErrTransactionPackLength
	}

	tx := &Transaction{
		Amount: binary.LittleEndian.Uint64(packed[2*AddressLength:]),
		Nonce:  binary.LittleEndian.Uint64(packed[2*AddressLength+8:]),
	}
	copy(tx.From[:], packed[:AddressLength])
	copy(tx.To[:], packed[AddressLength:2*AddressLength])
	return tx, nil
}

// UnpackAll - split a block payload back into transactions
func (packed Packed) UnpackAll() ([]*Transaction, error) {
	if 0 != len(packed)%PackedSize {
		return nil, fault.ErrTransactionPackLength
	}

	n := len(packed) / PackedSize
	txs := make([]*Transaction, 0, n)
	for i := 0; i < n; i += 1 {
		tx, err := packed[i*PackedSize : (i+1)*PackedSize].Unpack()
		if nil != err {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// NewCoinbase - reward to a fresh random miner address
func NewCoinbase() (*Transaction, error) {
	miner, err := NewAddress()
	if nil != err {
		return nil, err
	}
	return &Transaction{
		To:     miner,
		Amount: CoinbaseValue,
	}, nil
}

// Generate - a coinbase followed by count random transfers
//
// transfer i has amount (i+1)*100 and nonce i
func Generate(count int) ([]*Transaction, error) {
	if count < 0 {
		return nil, fault.ErrInvalidCount
	}

	coinbase, err := NewCoinbase()
	if nil != err {
		return nil, err
	}

	txs := make([]*Transaction, 0, count+1)
	txs = append(txs, coinbase)

	for i := 0; i < count; i += 1 {
		from, err := NewAddress()
		if nil != err {
			return nil, err
		}
		to, err := NewAddress()
		if nil != err {
			return nil, err
		}
		txs = append(txs, &Transaction{
			From:   from,
			To:     to,
			Amount: uint64(i+1) * 100,
			Nonce:  uint64(i),
		})
	}
	return txs, nil
}

// Pack - concatenate the packed form of each transaction
func Pack(txs []*Transaction) Packed {
	buffer := make([]byte, 0, len(txs)*PackedSize)
	for _, tx := range txs {
		buffer = append(buffer, tx.Pack()...)
	}
	return buffer
}
