// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"crypto/subtle"
	"encoding/binary"
	"hash"

	"github.com/bitmark-inc/smchash/fault"
)

// Hasher - accumulates input for a single digest
//
// Write may be called any number of times, then Finalise exactly
// once; after that the hasher rejects all further calls.  A hasher
// value may be copied before it is finalised to continue two
// computations from a common prefix.
type Hasher struct {
	state     State
	buffer    [BlockSize]byte
	used      int    // bytes held in buffer
	total     uint64 // bytes written since creation
	finalised bool
}

// New - create a hasher in its initial state
func New() *Hasher {
	return &Hasher{
		state: InitialState(),
	}
}

// Write - add data, compressing every complete chunk
func (h *Hasher) Write(p []byte) (int, error) {
	if h.finalised {
		return 0, fault.ErrAlreadyFinalised
	}
	h.absorb(p)
	return len(p), nil
}

// Finalise - pad, compress the remainder and return the digest
func (h *Hasher) Finalise() (Digest, error) {
	if h.finalised {
		return Digest{}, fault.ErrAlreadyFinalised
	}
	h.finalised = true
	return h.pad(), nil
}

func (h *Hasher) absorb(p []byte) {
	h.total += uint64(len(p))

	if h.used > 0 {
		n := copy(h.buffer[h.used:], p)
		h.used += n
		p = p[n:]
		if BlockSize != h.used {
			return
		}
		h.state = Compress(h.state, &h.buffer)
		h.used = 0
	}

	for len(p) >= BlockSize {
		copy(h.buffer[:], p[:BlockSize])
		h.state = Compress(h.state, &h.buffer)
		p = p[BlockSize:]
	}

	h.used = copy(h.buffer[:], p)
}

// 0x80, zeros up to 56 mod 64, then the little endian bit count
func (h *Hasher) pad() Digest {
	bitLength := h.total << 3

	var padding [BlockSize + 8]byte
	padding[0] = 0x80
	zeros := (55 - h.total) % BlockSize
	binary.LittleEndian.PutUint64(padding[1+zeros:], bitLength)
	h.absorb(padding[:1+zeros+8])

	var digest Digest
	for i, word := range h.state {
		binary.LittleEndian.PutUint32(digest[4*i:], word)
	}
	return digest
}

// NewDigest - one shot digest of a byte slice
func NewDigest(data []byte) Digest {
	h := New()
	h.absorb(data)
	return h.pad()
}

// Verify - recompute the digest of data and compare in constant time
func Verify(data []byte, expected Digest) bool {
	return Equal(NewDigest(data), expected)
}

// Equal - constant time digest comparison
func Equal(a Digest, b Digest) bool {
	return 1 == subtle.ConstantTimeCompare(a[:], b[:])
}

// adapter so that the digest can be used with io.Copy etc.
type hashWriter struct {
	h Hasher
}

// NewHash - a hash.Hash view of the digest; Sum does not disturb the
// running state
func NewHash() hash.Hash {
	return &hashWriter{
		h: *New(),
	}
}

func (w *hashWriter) Write(p []byte) (int, error) {
	return w.h.Write(p)
}

func (w *hashWriter) Sum(b []byte) []byte {
	clone := w.h
	digest := clone.pad()
	return append(b, digest[:]...)
}

func (w *hashWriter) Reset() {
	w.h = *New()
}

func (w *hashWriter) Size() int {
	return Length
}

func (w *hashWriter) BlockSize() int {
	return BlockSize
}
