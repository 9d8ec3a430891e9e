// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proof - proof of work over the SMCHash digest
//
// A solution for data at difficulty d is a nonce such that the digest
// of data followed by the little endian nonce has at least d leading
// zero bits: the first d/8 bytes are zero and, when d is not a
// multiple of eight, the low d mod 8 bits of the following byte are
// zero.
//
// The package holds no state between calls, so independent searches
// may run on any number of goroutines.
package proof
