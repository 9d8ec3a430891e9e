// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// smchash - command line access to the digest, proof and block packages
//
// every command prints its result as indented JSON on stdout:
//
//	smchash hash 'hello world'
//	smchash verify --digest=78f807dade247c6509ec76bccc2d9862 'hello world'
//	smchash mine --difficulty=8 'blockchain data'
//	smchash block --timestamp=12345 --difficulty=8 'Hello SMCHash!'
//	smchash bench --threads=2 --duration=10
//	smchash watch --connect=tcp://127.0.0.1:2140
package main
