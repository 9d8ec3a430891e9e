// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/smchash/digest"
)

type hashResult struct {
	Input  string        `json:"input"`
	Length int64         `json:"length"`
	Digest digest.Digest `json:"digest"`
}

func runHash(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	r, name, err := openInput(c, m)
	if nil != err {
		return err
	}
	defer r.Close()

	h := digest.NewHash()
	n, err := io.Copy(h, r)
	if nil != err {
		return err
	}

	var d digest.Digest
	err = digest.DigestFromBytes(&d, h.Sum(nil))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "hashed: %d bytes from: %q\n", n, name)
	}

	return printJson(m.w, hashResult{
		Input:  name,
		Length: n,
		Digest: d,
	})
}
