// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - announce mined blocks over ZeroMQ
//
// Each message is two frames:
//
//	"block"
//	JSON encoded block
//
// A subscriber re-validates nothing by itself; it only decodes and
// drops blocks it has seen recently.
package publish
