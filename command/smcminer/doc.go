// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Proof-of-work mining daemon
//
// This program mines SMCHash blocks onto an in-memory ledger using a
// pool of worker threads, optionally broadcasting each new block over
// ZeroMQ.  The configuration file is watched and worker count, block
// rate and mining settings are reloaded when it changes.  On shutdown
// the complete ledger is re-validated.
package main
