// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest - 128 bit SMCHash block digest
//
// A four word state is folded over 64 byte chunks by a four round
// compression function, the input being padded MD style with a
// little endian bit count.  The construction is deterministic and
// fast but has not been analysed; it must not be relied on for
// preimage or collision resistance.
package digest
