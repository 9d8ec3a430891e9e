// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"encoding/binary"
	"math/bits"
)

// BlockSize - number of bytes consumed by one compression
const BlockSize = 64

// State - the four word chaining value
type State [4]uint32

// initial chaining value
const (
	init0 = 0x6a09e667
	init1 = 0xbb67ae85
	init2 = 0x3c6ef372
	init3 = 0xa54ff53a
)

// InitialState - chaining value of an empty hasher
func InitialState() State {
	return State{init0, init1, init2, init3}
}

// per round additive constant, the step index is added to it
const (
	k0 = 0x79cc4519
	k1 = 0x9d8a7a87
	k2 = 0xe9b5dba5
	k3 = 0xc19bf274
)

// message word order for each round:
//
//	i, (5i+1) mod 16, (3i+5) mod 16, 7i mod 16
var wordIndex = [4][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{1, 6, 11, 0, 5, 10, 15, 4, 9, 14, 3, 8, 13, 2, 7, 12},
	{5, 8, 11, 14, 1, 4, 7, 10, 13, 0, 3, 6, 9, 12, 15, 2},
	{0, 7, 14, 5, 12, 3, 10, 1, 8, 15, 6, 13, 4, 11, 2, 9},
}

// left rotation for each round, selected by step mod 4
var rotation = [4][4]int{
	{7, 12, 17, 22},
	{5, 9, 14, 20},
	{4, 11, 16, 23},
	{6, 10, 15, 21},
}

// Compress - fold one chunk into a state and return the new state
func Compress(state State, chunk *[BlockSize]byte) State {

	var w [16]uint32
	for i := 0; i < 16; i += 1 {
		w[i] = binary.LittleEndian.Uint32(chunk[4*i:])
	}

	a, b, c, d := state[0], state[1], state[2], state[3]

	// round 0: if b then c else d
	for i := 0; i < 16; i += 1 {
		f := (b & c) | (^b & d)
		a, b, c, d = d, b+bits.RotateLeft32(a+f+w[wordIndex[0][i]]+k0+uint32(i), rotation[0][i&3]), b, c
	}

	// round 1
	for i := 0; i < 16; i += 1 {
		f := (b & d) | (c &^ d)
		a, b, c, d = d, b+bits.RotateLeft32(a+f+w[wordIndex[1][i]]+k1+uint32(i), rotation[1][i&3]), b, c
	}

	// round 2: parity
	for i := 0; i < 16; i += 1 {
		f := b ^ c ^ d
		a, b, c, d = d, b+bits.RotateLeft32(a+f+w[wordIndex[2][i]]+k2+uint32(i), rotation[2][i&3]), b, c
	}

	// round 3
	for i := 0; i < 16; i += 1 {
		f := c ^ (b | ^d)
		a, b, c, d = d, b+bits.RotateLeft32(a+f+w[wordIndex[3][i]]+k3+uint32(i), rotation[3][i&3]), b, c
	}

	return State{
		state[0] + a,
		state[1] + b,
		state[2] + c,
		state[3] + d,
	}
}
