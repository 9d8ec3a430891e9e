// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package block - a proof of work record linked to its predecessor
//
// The block hash is the proof of work solution over
//
//	previous hash ‖ payload ‖ timestamp (little endian)
//
// so the hash both identifies the block and commits to its
// content.  Checking that a block's previous hash is the hash of the
// block before it is left to the caller.
package block
