// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"sync"

	"github.com/bitmark-inc/smchash/block"
	"github.com/bitmark-inc/smchash/digest"
	"github.com/bitmark-inc/smchash/fault"
	"github.com/bitmark-inc/smchash/proof"
)

// Ledger - ordered list of blocks, index 0 is the genesis block
type Ledger struct {
	sync.RWMutex
	difficulty proof.Difficulty
	blocks     []*block.Block
	heights    map[digest.Digest]uint64
}

// NewLedger - create an empty ledger
func NewLedger(difficulty proof.Difficulty) (*Ledger, error) {
	if !difficulty.Valid() {
		return nil, fault.ErrInvalidDifficulty
	}
	return &Ledger{
		difficulty: difficulty,
		blocks:     make([]*block.Block, 0, 64),
		heights:    make(map[digest.Digest]uint64),
	}, nil
}

// Difficulty - required of every block
func (l *Ledger) Difficulty() proof.Difficulty {
	return l.difficulty
}

// Append - add a block to the end of the chain
//
// returns the height of the new block, heights start at zero
func (l *Ledger) Append(b *block.Block) (uint64, error) {
	l.Lock()
	defer l.Unlock()

	hash := b.Hash()
	if _, ok := l.heights[hash]; ok {
		return 0, fault.ErrBlockExists
	}

	tip, height := l.tip()
	if 0 == height {
		if !b.PreviousHash().IsZero() {
			return 0, fault.ErrInvalidGenesis
		}
	} else if tip != b.PreviousHash() {
		return 0, fault.ErrPreviousHashMismatch
	}

	if !b.Validate(l.difficulty) {
		return 0, fault.ErrInvalidProof
	}

	l.blocks = append(l.blocks, b)
	l.heights[hash] = height
	return height, nil
}

// Tip - hash of the last block and the number of blocks
//
// an empty ledger returns the all-zero hash, i.e. the previous hash
// expected of a genesis block
func (l *Ledger) Tip() (digest.Digest, uint64) {
	l.RLock()
	defer l.RUnlock()
	return l.tip()
}

// Height - number of blocks
func (l *Ledger) Height() uint64 {
	l.RLock()
	defer l.RUnlock()
	return uint64(len(l.blocks))
}

// Get - block at a particular height
func (l *Ledger) Get(height uint64) (*block.Block, error) {
	l.RLock()
	defer l.RUnlock()

	if height >= uint64(len(l.blocks)) {
		return nil, fault.ErrBlockNotFound
	}
	return l.blocks[height], nil
}

// Lookup - find a block and its height by hash
func (l *Ledger) Lookup(hash digest.Digest) (*block.Block, uint64, error) {
	l.RLock()
	defer l.RUnlock()

	height, ok := l.heights[hash]
	if !ok {
		return nil, 0, fault.ErrBlockNotFound
	}
	return l.blocks[height], height, nil
}

// Blocks - snapshot of the chain in order
func (l *Ledger) Blocks() []*block.Block {
	l.RLock()
	defer l.RUnlock()

	blocks := make([]*block.Block, len(l.blocks))
	copy(blocks, l.blocks)
	return blocks
}

// Validate - re-check every proof of work and every link
//
// on failure the height of the first bad block is returned with the
// error, otherwise the number of blocks checked
func (l *Ledger) Validate() (uint64, error) {
	l.RLock()
	defer l.RUnlock()

	var previous digest.Digest
	for i, b := range l.blocks {
		height := uint64(i)
		if previous != b.PreviousHash() {
			if 0 == height {
				return height, fault.ErrInvalidGenesis
			}
			return height, fault.ErrPreviousHashMismatch
		}
		if !b.Validate(l.difficulty) {
			return height, fault.ErrInvalidProof
		}
		previous = b.Hash()
	}
	return uint64(len(l.blocks)), nil
}

func (l *Ledger) tip() (digest.Digest, uint64) {
	n := len(l.blocks)
	if 0 == n {
		return digest.Digest{}, 0
	}
	return l.blocks[n-1].Hash(), uint64(n)
}
