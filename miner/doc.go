// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package miner - a pool of workers extending a ledger
//
// Each worker repeatedly builds a payload of random transactions,
// mines a block on the current tip, re-validates it and appends it to
// the ledger.  When another worker extends the ledger first the block
// no longer links to the tip; it is counted as stale and discarded.
//
// The number of workers, the block rate and the mining settings can
// be changed while running.
package miner
