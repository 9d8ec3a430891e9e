// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/smchash/digest"
)

type verifyResult struct {
	Input    string        `json:"input"`
	Expected digest.Digest `json:"expected"`
	Actual   digest.Digest `json:"actual"`
	Valid    bool          `json:"valid"`
}

func runVerify(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	s := c.String("digest")
	if "" == s {
		return ErrMissingDigest
	}
	expected, err := digest.DigestFromString(s)
	if nil != err {
		return err
	}

	data, name, err := readInput(c, m)
	if nil != err {
		return err
	}

	return printJson(m.w, verifyResult{
		Input:    name,
		Expected: expected,
		Actual:   digest.NewDigest(data),
		Valid:    digest.Verify(data, expected),
	})
}
