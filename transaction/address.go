// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"crypto/rand"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/smchash/fault"
)

// AddressLength - bytes in an address
const AddressLength = 16

// Address - account identifier
type Address [AddressLength]byte

// NewAddress - random address
func NewAddress() (Address, error) {
	var a Address
	_, err := rand.Read(a[:])
	if nil != err {
		return Address{}, err
	}
	return a, nil
}

// AddressFromBytes - copy an exact length byte slice
func AddressFromBytes(a *Address, buffer []byte) error {
	if AddressLength != len(buffer) {
		return fault.ErrInvalidAddressLength
	}
	copy(a[:], buffer)
	return nil
}

// AddressFromBase58 - decode the String form
func AddressFromBase58(s string) (Address, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Address{}, err
	}

	var a Address
	err = AddressFromBytes(&a, buffer)
	return a, err
}

// IsZero - the coinbase source
func (a Address) IsZero() bool {
	return a == Address{}
}

// String - base58 form
func (a Address) String() string {
	return base58.Encode(a[:])
}

// MarshalText - base58 for JSON
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - from base58
func (a *Address) UnmarshalText(s []byte) error {
	decoded, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
