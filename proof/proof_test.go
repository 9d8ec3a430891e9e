// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/smchash/digest"
	"github.com/bitmark-inc/smchash/fault"
	"github.com/bitmark-inc/smchash/proof"
)

var blockchainData = []byte("blockchain data")

// sequential search results are part of the contract
func TestMineVectors(t *testing.T) {
	vectors := []struct {
		data       []byte
		difficulty proof.Difficulty
		nonce      proof.Nonce
		digest     string
	}{
		{blockchainData, 0, 0, "4aa06214030b7e17fe13911f21bde9e7"},
		{blockchainData, 1, 0, "4aa06214030b7e17fe13911f21bde9e7"},
		{blockchainData, 4, 2, "b0801c9347314a9f837da317748dd8eb"},
		{blockchainData, 8, 123, "00a047e006968f44db40c2dfae0d1335"},
		{blockchainData, 12, 123, "00a047e006968f44db40c2dfae0d1335"},
		{blockchainData, 16, 87444, "000071ccf74a226c88b69c15b85e30fd"},
		{[]byte{}, 8, 108, "00e1c0e3fa98c99cd26d723a23407c9c"},
	}

	for i, item := range vectors {
		nonce, d, err := proof.Mine(item.data, item.difficulty)
		if nil != err {
			t.Fatalf("%d: mine error: %s", i, err)
		}
		if item.nonce != nonce {
			t.Errorf("%d: nonce actual: %d  expected: %d", i, nonce, item.nonce)
		}
		if item.digest != d.String() {
			t.Errorf("%d: digest actual: %s  expected: %s", i, d, item.digest)
		}
		if !proof.Verify(item.data, nonce, item.difficulty, d) {
			t.Errorf("%d: solution did not verify", i)
		}
	}
}

func TestMineSoundness(t *testing.T) {
	for difficulty := proof.Difficulty(0); difficulty <= 14; difficulty += 1 {
		nonce, d, err := proof.Mine(blockchainData, difficulty)
		assert.Nil(t, err, "mine error")
		assert.True(t, proof.Verify(blockchainData, nonce, difficulty, d), "difficulty: %d", difficulty)

		for i := 0; i < int(difficulty/8); i += 1 {
			assert.Equal(t, byte(0), d[i], "difficulty: %d byte: %d", difficulty, i)
		}
		if bits := difficulty % 8; bits > 0 {
			mask := byte(0xff >> (8 - bits))
			assert.Equal(t, byte(0), d[difficulty/8]&mask, "difficulty: %d partial byte: %02x", difficulty, d[difficulty/8])
		}
	}
}

func TestConcreteScenario(t *testing.T) {
	nonce, d, err := proof.Mine(blockchainData, 8)
	assert.Nil(t, err, "mine error")
	assert.Equal(t, byte(0), d[0], "first byte")
	assert.True(t, proof.Verify(blockchainData, nonce, 8, d), "verify")
}

func TestVerifyRejects(t *testing.T) {
	nonce, d, err := proof.Mine(blockchainData, 8)
	assert.Nil(t, err, "mine error")

	assert.False(t, proof.Verify(blockchainData, nonce+1, 8, d), "wrong nonce verified")
	assert.False(t, proof.Verify([]byte("blockchain datA"), nonce, 8, d), "wrong data verified")

	wrong := d
	wrong[15] ^= 0x80
	assert.False(t, proof.Verify(blockchainData, nonce, 8, wrong), "wrong digest verified")

	// a digest that matches but does not meet the difficulty
	assert.False(t, proof.Verify(blockchainData, nonce, 16, d), "difficulty not met")

	// a digest that meets the difficulty but does not match
	assert.False(t, proof.Verify(blockchainData, nonce, 0, digest.Digest{}), "unrelated zero digest verified")

	assert.False(t, proof.Verify(blockchainData, nonce, 129, d), "out of range difficulty")
}

func TestDifficultyRange(t *testing.T) {
	for _, bits := range []int{0, 1, 8, 64, 127, 128} {
		difficulty, err := proof.NewDifficulty(bits)
		assert.Nil(t, err, "bits: %d", bits)
		assert.Equal(t, proof.Difficulty(bits), difficulty, "bits: %d", bits)
		assert.True(t, difficulty.Valid(), "bits: %d", bits)
	}

	for _, bits := range []int{-1, 129, 200, 256, 1000} {
		_, err := proof.NewDifficulty(bits)
		assert.Equal(t, fault.ErrInvalidDifficulty, err, "bits: %d", bits)
	}

	_, _, err := proof.Mine(blockchainData, proof.Difficulty(129))
	assert.Equal(t, fault.ErrInvalidDifficulty, err, "mine accepted 129")

	_, _, err = proof.MineParallel(context.Background(), blockchainData, proof.Difficulty(255), 2)
	assert.Equal(t, fault.ErrInvalidDifficulty, err, "parallel mine accepted 255")

	assert.Equal(t, "12", proof.Difficulty(12).String(), "string")
}

func TestMeets(t *testing.T) {
	tests := []struct {
		d          digest.Digest
		difficulty proof.Difficulty
		expected   bool
	}{
		{digest.Digest{0xff}, 0, true},
		{digest.Digest{0x01}, 1, false},
		{digest.Digest{0x02}, 1, true},
		{digest.Digest{0xf0}, 4, true},
		{digest.Digest{0xf8}, 4, false},
		{digest.Digest{0x00, 0x80}, 8, true},
		{digest.Digest{0x00, 0x80}, 15, true},
		{digest.Digest{0x00, 0x80}, 16, false},
		{digest.Digest{0x00, 0x00, 0x01}, 17, false},
		{digest.Digest{}, 128, true},
		{digest.Digest{15: 0x01}, 128, false},
		{digest.Digest{}, 129, false},
	}

	for i, item := range tests {
		actual := proof.Meets(item.d, item.difficulty)
		if item.expected != actual {
			t.Errorf("%d: %s at %d actual: %t  expected: %t", i, item.d, item.difficulty, actual, item.expected)
		}
	}
}

func TestSearchLimits(t *testing.T) {
	_, _, err := proof.Search(context.Background(), blockchainData, 16, proof.Limits{MaxAttempts: 100})
	assert.Equal(t, fault.ErrAttemptsExhausted, err, "attempts not bounded")

	// the solution at 123 is inside the bound
	nonce, _, err := proof.Search(context.Background(), blockchainData, 8, proof.Limits{MaxAttempts: 124})
	assert.Nil(t, err, "search error")
	assert.Equal(t, proof.Nonce(123), nonce, "wrong nonce")

	nonce, d, err := proof.Search(context.Background(), blockchainData, 8, proof.Limits{Start: 124})
	assert.Nil(t, err, "search error")
	assert.True(t, nonce > 123, "search did not start at 124: %d", nonce)
	assert.True(t, proof.Verify(blockchainData, nonce, 8, d), "verify")

	nonce, _, err = proof.Search(context.Background(), blockchainData, 8, proof.Limits{Start: 3, Stride: 5})
	assert.Nil(t, err, "search error")
	assert.Equal(t, proof.Nonce(3), nonce%5, "stride not honoured: %d", nonce)

	_, _, err = proof.Search(context.Background(), blockchainData, 0, proof.Limits{Start: ^proof.Nonce(0)})
	assert.Nil(t, err, "the last nonce can be tried")

	_, _, err = proof.Search(context.Background(), blockchainData, 128, proof.Limits{Start: ^proof.Nonce(0) - 3})
	assert.Equal(t, fault.ErrNonceSpaceExhausted, err, "nonce wrapped")
}

func TestSearchCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := proof.Search(ctx, blockchainData, 128, proof.Limits{})
	assert.Equal(t, context.Canceled, err, "cancelled search")

	ctx, cancel = context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err = proof.Search(ctx, blockchainData, 128, proof.Limits{})
	assert.Equal(t, context.DeadlineExceeded, err, "deadline search")
}

func TestMineParallel(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 7} {
		nonce, d, err := proof.MineParallel(context.Background(), blockchainData, 10, workers)
		assert.Nil(t, err, "workers: %d", workers)
		assert.True(t, proof.Verify(blockchainData, nonce, 10, d), "workers: %d", workers)
	}

	// a single worker is the sequential search
	nonce, _, err := proof.MineParallel(context.Background(), blockchainData, 8, 1)
	assert.Nil(t, err, "single worker")
	assert.Equal(t, proof.Nonce(123), nonce, "single worker nonce")

	_, _, err = proof.MineParallel(context.Background(), blockchainData, 8, 0)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero workers")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, _, err = proof.MineParallel(ctx, blockchainData, 128, 3)
	assert.Equal(t, context.DeadlineExceeded, err, "deadline")
}
