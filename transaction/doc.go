// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - simple value transfers used as block payload
//
// Transactions are not signed or checked against balances; they exist
// to give mined blocks a realistic payload.  A block payload is the
// concatenation of packed transactions, the first being a coinbase.
package transaction
