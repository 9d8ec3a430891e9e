// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"

	"github.com/bitmark-inc/smchash/digest"
	"github.com/bitmark-inc/smchash/fault"
	"github.com/bitmark-inc/smchash/proof"
)

// byte sizes of the fixed preimage fields
const (
	PreviousHashSize = digest.Length // hash of the preceding block
	TimestampSize    = 8             // seconds since 1970-01-01T00:00 UTC
)

// Block - immutable once created
type Block struct {
	previous  digest.Digest
	payload   []byte
	timestamp uint64
	nonce     proof.Nonce
	hash      digest.Digest
}

// New - mine a block, blocking until a solution is found
//
// the search is unbounded, see proof.Mine
func New(previous digest.Digest, payload []byte, timestamp uint64, difficulty proof.Difficulty) (*Block, error) {
	return NewWithContext(context.Background(), previous, payload, timestamp, difficulty)
}

// NewWithContext - mine a block, giving up when the context is done
func NewWithContext(ctx context.Context, previous digest.Digest, payload []byte, timestamp uint64, difficulty proof.Difficulty) (*Block, error) {
	b := &Block{
		previous:  previous,
		payload:   append([]byte{}, payload...),
		timestamp: timestamp,
	}

	nonce, hash, err := proof.Search(ctx, b.Preimage(), difficulty, proof.Limits{})
	if nil != err {
		return nil, err
	}

	b.nonce = nonce
	b.hash = hash
	return b, nil
}

// Assemble - rebuild a block from its fields, e.g. one received from
// elsewhere; nothing is checked, call Validate
func Assemble(previous digest.Digest, payload []byte, timestamp uint64, nonce proof.Nonce, hash digest.Digest) *Block {
	return &Block{
		previous:  previous,
		payload:   append([]byte{}, payload...),
		timestamp: timestamp,
		nonce:     nonce,
		hash:      hash,
	}
}

// Preimage - the bytes whose proof of work is the block hash
func (b *Block) Preimage() []byte {
	buffer := make([]byte, 0, PreviousHashSize+len(b.payload)+TimestampSize)
	buffer = append(buffer, b.previous[:]...)
	buffer = append(buffer, b.payload...)

	var timestamp [TimestampSize]byte
	binary.LittleEndian.PutUint64(timestamp[:], b.timestamp)
	return append(buffer, timestamp[:]...)
}

// Validate - re-derive the proof of work from the block's own fields
func (b *Block) Validate(difficulty proof.Difficulty) bool {
	return proof.Verify(b.Preimage(), b.nonce, difficulty, b.hash)
}

// PreviousHash - link to the preceding block
func (b *Block) PreviousHash() digest.Digest {
	return b.previous
}

// Payload - a copy of the opaque payload
func (b *Block) Payload() []byte {
	return append([]byte{}, b.payload...)
}

// Timestamp - as supplied at creation
func (b *Block) Timestamp() uint64 {
	return b.timestamp
}

// Nonce - proof of work solution
func (b *Block) Nonce() proof.Nonce {
	return b.nonce
}

// Hash - the block's digest
func (b *Block) Hash() digest.Digest {
	return b.hash
}

// String - short form for logging
func (b *Block) String() string {
	return b.hash.String()
}

type blockJSON struct {
	Previous  digest.Digest `json:"previous"`
	Payload   string        `json:"payload"`
	Timestamp uint64        `json:"timestamp,string"`
	Nonce     proof.Nonce   `json:"nonce"`
	Hash      digest.Digest `json:"hash"`
}

// MarshalJSON - digests and payload as hex
func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(blockJSON{
		Previous:  b.previous,
		Payload:   hex.EncodeToString(b.payload),
		Timestamp: b.timestamp,
		Nonce:     b.nonce,
		Hash:      b.hash,
	})
}

// UnmarshalJSON - inverse of MarshalJSON, the result is not validated
func (b *Block) UnmarshalJSON(s []byte) error {
	var j blockJSON
	err := json.Unmarshal(s, &j)
	if nil != err {
		return err
	}

	payload, err := hex.DecodeString(j.Payload)
	if nil != err {
		return fault.ErrInvalidHex
	}

	*b = Block{
		previous:  j.Previous,
		payload:   payload,
		timestamp: j.Timestamp,
		nonce:     j.Nonce,
		hash:      j.Hash,
	}
	return nil
}
