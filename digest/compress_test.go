// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"testing"
)

// the literal word order tables must match their generating formulae
func TestWordIndex(t *testing.T) {
	formulae := [4]func(i int) int{
		func(i int) int { return i },
		func(i int) int { return (5*i + 1) % 16 },
		func(i int) int { return (3*i + 5) % 16 },
		func(i int) int { return (7 * i) % 16 },
	}

	for round, f := range formulae {
		seen := make(map[uint8]bool)
		for i := 0; i < 16; i += 1 {
			actual := wordIndex[round][i]
			if int(actual) != f(i) {
				t.Errorf("round: %d step: %d  actual: %d  expected: %d", round, i, actual, f(i))
			}
			seen[actual] = true
		}
		if 16 != len(seen) {
			t.Errorf("round: %d is not a permutation: %v", round, wordIndex[round])
		}
	}
}

func TestRotationRange(t *testing.T) {
	for round, amounts := range rotation {
		for _, s := range amounts {
			if s < 1 || s > 31 {
				t.Errorf("round: %d has rotation: %d out of range", round, s)
			}
		}
	}
}

func TestCompress(t *testing.T) {

	var sequence [BlockSize]byte
	for i := range sequence {
		sequence[i] = byte(i)
	}

	tests := []struct {
		state    State
		chunk    [BlockSize]byte
		expected State
	}{
		{
			state:    State{},
			expected: State{0xe10da084, 0x6e92a81a, 0x47913442, 0x4c75b246},
		},
		{
			state:    InitialState(),
			chunk:    sequence,
			expected: State{0x7beb03ad, 0x2c8d4364, 0xe6eccf13, 0xfd596a69},
		},
	}

	for i, item := range tests {
		chunk := item.chunk
		actual := Compress(item.state, &chunk)
		if actual != item.expected {
			t.Errorf("%d: actual: %08x  expected: %08x", i, actual, item.expected)
		}
		if chunk != item.chunk {
			t.Errorf("%d: chunk was modified", i)
		}
	}
}

func TestCompressIsPure(t *testing.T) {
	var chunk [BlockSize]byte
	copy(chunk[:], "the same chunk and state always give the same result")

	state := InitialState()
	first := Compress(state, &chunk)
	second := Compress(state, &chunk)

	if first != second {
		t.Errorf("compress differs: %08x  %08x", first, second)
	}
	if InitialState() != state {
		t.Errorf("state was modified: %08x", state)
	}
}
