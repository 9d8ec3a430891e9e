// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/smchash/block"
	"github.com/bitmark-inc/smchash/chain"
	"github.com/bitmark-inc/smchash/digest"
	"github.com/bitmark-inc/smchash/fault"
	"github.com/bitmark-inc/smchash/proof"
)

const (
	testDifficulty = proof.Difficulty(4)
)

func mineOnto(t *testing.T, previous digest.Digest, n int) *block.Block {
	b, err := block.New(previous, []byte(fmt.Sprintf("payload-%d", n)), uint64(1000+n), testDifficulty)
	if nil != err {
		t.Fatalf("mine block: %d  error: %s", n, err)
	}
	return b
}

func buildLedger(t *testing.T, count int) *chain.Ledger {
	l, err := chain.NewLedger(testDifficulty)
	if nil != err {
		t.Fatalf("new ledger error: %s", err)
	}
	for i := 0; i < count; i += 1 {
		tip, _ := l.Tip()
		height, err := l.Append(mineOnto(t, tip, i))
		if nil != err {
			t.Fatalf("append: %d  error: %s", i, err)
		}
		if uint64(i) != height {
			t.Fatalf("append: %d  height: %d", i, height)
		}
	}
	return l
}

func TestNewLedger(t *testing.T) {
	l, err := chain.NewLedger(testDifficulty)
	assert.Nil(t, err, "new ledger")
	assert.Equal(t, testDifficulty, l.Difficulty(), "difficulty")
	assert.Equal(t, uint64(0), l.Height(), "height")

	tip, height := l.Tip()
	assert.True(t, tip.IsZero(), "empty tip")
	assert.Equal(t, uint64(0), height, "empty height")

	_, err = chain.NewLedger(proof.MaximumDifficulty + 1)
	assert.Equal(t, fault.ErrInvalidDifficulty, err, "invalid difficulty")
}

func TestAppend(t *testing.T) {
	l := buildLedger(t, 5)

	assert.Equal(t, uint64(5), l.Height(), "height")

	blocks := l.Blocks()
	assert.Equal(t, 5, len(blocks), "blocks")
	assert.True(t, blocks[0].PreviousHash().IsZero(), "genesis previous")
	for i := 1; i < len(blocks); i += 1 {
		assert.Equal(t, blocks[i-1].Hash(), blocks[i].PreviousHash(), "link: %d", i)
	}

	tip, height := l.Tip()
	assert.Equal(t, blocks[4].Hash(), tip, "tip")
	assert.Equal(t, uint64(5), height, "tip height")

	checked, err := l.Validate()
	assert.Nil(t, err, "validate")
	assert.Equal(t, uint64(5), checked, "blocks checked")
}

func TestAppendErrors(t *testing.T) {
	l, err := chain.NewLedger(testDifficulty)
	assert.Nil(t, err, "new ledger")

	notGenesis := mineOnto(t, digest.NewDigest([]byte("elsewhere")), 0)
	_, err = l.Append(notGenesis)
	assert.Equal(t, fault.ErrInvalidGenesis, err, "non-zero genesis previous")

	genesis := mineOnto(t, digest.Digest{}, 0)
	_, err = l.Append(genesis)
	assert.Nil(t, err, "genesis")

	_, err = l.Append(genesis)
	assert.Equal(t, fault.ErrBlockExists, err, "duplicate")

	stale := mineOnto(t, digest.Digest{}, 1)
	_, err = l.Append(stale)
	assert.Equal(t, fault.ErrPreviousHashMismatch, err, "stale block")

	good := mineOnto(t, genesis.Hash(), 1)
	forged := block.Assemble(good.PreviousHash(), []byte("forged"), good.Timestamp(), good.Nonce(), good.Hash())
	_, err = l.Append(forged)
	assert.Equal(t, fault.ErrInvalidProof, err, "forged payload")

	_, err = l.Append(good)
	assert.Nil(t, err, "good block after failures")
	assert.Equal(t, uint64(2), l.Height(), "height")
}

func TestAppendEasierBlock(t *testing.T) {
	l, err := chain.NewLedger(proof.Difficulty(16))
	assert.Nil(t, err, "new ledger")

	// 0x90… does not have 16 leading zero bits
	easy, err := block.New(digest.Digest{}, []byte("Hello SMCHash!"), 12345, 4)
	assert.Nil(t, err, "mine")

	_, err = l.Append(easy)
	assert.Equal(t, fault.ErrInvalidProof, err, "block below ledger difficulty")
}

func TestLookup(t *testing.T) {
	l := buildLedger(t, 3)

	for i := uint64(0); i < 3; i += 1 {
		b, err := l.Get(i)
		assert.Nil(t, err, "get: %d", i)

		found, height, err := l.Lookup(b.Hash())
		assert.Nil(t, err, "lookup: %d", i)
		assert.Equal(t, i, height, "height: %d", i)
		assert.Equal(t, b, found, "block: %d", i)
	}

	_, err := l.Get(3)
	assert.Equal(t, fault.ErrBlockNotFound, err, "get beyond tip")

	_, _, err = l.Lookup(digest.NewDigest([]byte("missing")))
	assert.Equal(t, fault.ErrBlockNotFound, err, "lookup missing")
	assert.True(t, fault.IsErrNotFound(err), "not found class")
}

func TestConcurrentAppend(t *testing.T) {
	l, err := chain.NewLedger(testDifficulty)
	assert.Nil(t, err, "new ledger")

	const workers = 4
	const rounds = 5

	var wg sync.WaitGroup
	for w := 0; w < workers; w += 1 {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for r := 0; r < rounds; r += 1 {
				tip, _ := l.Tip()
				b, err := block.New(tip, []byte(fmt.Sprintf("worker-%d-%d", w, r)), uint64(r), testDifficulty)
				if nil != err {
					t.Errorf("worker: %d  mine error: %s", w, err)
					return
				}
				_, err = l.Append(b)
				if nil != err && fault.ErrPreviousHashMismatch != err && fault.ErrInvalidGenesis != err {
					t.Errorf("worker: %d  unexpected append error: %s", w, err)
				}
			}
		}(w)
	}
	wg.Wait()

	assert.True(t, l.Height() >= 1, "no blocks appended")
	assert.True(t, l.Height() <= workers*rounds, "too many blocks")

	checked, err := l.Validate()
	assert.Nil(t, err, "validate")
	assert.Equal(t, l.Height(), checked, "blocks checked")
}
