// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/bitmark-inc/smchash/fault"
)

// NonceSize - bytes in the encoded nonce
const NonceSize = 8

// Nonce - value appended to the data being proved
type Nonce uint64

// Bytes - little endian encoding as appended to the preimage
func (nonce Nonce) Bytes() [NonceSize]byte {
	var b [NonceSize]byte
	binary.LittleEndian.PutUint64(b[:], uint64(nonce))
	return b
}

// MarshalJSON - convert a nonce to little endian hex for JSON
func (nonce Nonce) MarshalJSON() ([]byte, error) {

	bits := nonce.Bytes()

	size := 2 + hex.EncodedLen(len(bits))
	buffer := make([]byte, size)
	buffer[0] = '"'
	buffer[size-1] = '"'
	hex.Encode(buffer[1:], bits[:])
	return buffer, nil
}

// UnmarshalJSON - convert a nonce little endian hex string to nonce value
func (nonce *Nonce) UnmarshalJSON(s []byte) error {
	// length = '"' + characters + '"'
	if len(s) < 2 {
		return fault.ErrInvalidHex
	}
	last := len(s) - 1
	if '"' != s[0] || '"' != s[last] {
		return fault.ErrInvalidHex
	}

	b := s[1:last]
	if hex.EncodedLen(NonceSize) != len(b) {
		return fault.ErrInvalidHex
	}

	buffer := make([]byte, NonceSize)
	_, err := hex.Decode(buffer, b)
	if nil != err {
		return fault.ErrInvalidHex
	}
	*nonce = Nonce(binary.LittleEndian.Uint64(buffer))
	return nil
}
