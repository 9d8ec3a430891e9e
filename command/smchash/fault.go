// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/smchash/fault"
)

// command errors - keep in alphabetic order
const (
	ErrAmbiguousInput = fault.InvalidError("give either a string or a file, not both")
	ErrMissingDigest  = fault.InvalidError("missing digest")
	ErrMissingInput   = fault.InvalidError("missing input string or file")
	ErrMissingPayload = fault.InvalidError("missing payload")
)
