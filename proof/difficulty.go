// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"strconv"

	"github.com/bitmark-inc/smchash/digest"
	"github.com/bitmark-inc/smchash/fault"
)

// MaximumDifficulty - every bit of the digest is zero
const MaximumDifficulty = 8 * digest.Length

// Difficulty - number of leading zero bits required of a solution
type Difficulty uint8

// NewDifficulty - validated difficulty from a bit count
func NewDifficulty(bits int) (Difficulty, error) {
	if bits < 0 || bits > MaximumDifficulty {
		return 0, fault.ErrInvalidDifficulty
	}
	return Difficulty(bits), nil
}

// Valid - check range, values above 128 would index past the digest
func (difficulty Difficulty) Valid() bool {
	return difficulty <= MaximumDifficulty
}

// String - decimal bit count
func (difficulty Difficulty) String() string {
	return strconv.Itoa(int(difficulty))
}

// Meets - true if the digest satisfies the difficulty
//
// an out of range difficulty is never met
func Meets(d digest.Digest, difficulty Difficulty) bool {
	if !difficulty.Valid() {
		return false
	}

	zeroBytes := int(difficulty / 8)
	remainingBits := uint(difficulty % 8)

	for i := 0; i < zeroBytes; i += 1 {
		if 0 != d[i] {
			return false
		}
	}

	if remainingBits > 0 {
		mask := byte(0xff >> (8 - remainingBits))
		if 0 != d[zeroBytes]&mask {
			return false
		}
	}
	return true
}
