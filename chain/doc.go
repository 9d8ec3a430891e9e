// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain - in-memory sequence of linked blocks
//
// Blocks themselves know nothing of their neighbours; the ledger
// enforces that every block refers to the hash of its predecessor and
// carries a valid proof of work at the ledger's difficulty.  The first
// block (the genesis block) must refer to the all-zero hash.
//
// A ledger is safe for concurrent use.
package chain
