// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/smchash/block"
	"github.com/bitmark-inc/smchash/digest"
)

type blockResult struct {
	Block   *block.Block `json:"block"`
	Valid   bool         `json:"valid"`
	Elapsed string       `json:"elapsed"`
}

func runBlock(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	difficulty, err := difficultyFlag(c)
	if nil != err {
		return err
	}

	previous := digest.Digest{}
	if s := c.String("previous"); "" != s {
		previous, err = digest.DigestFromString(s)
		if nil != err {
			return err
		}
	}

	timestamp := c.Uint64("timestamp")
	if 0 == timestamp {
		timestamp = uint64(time.Now().Unix())
	}

	payload, _, err := readInput(c, m)
	if nil != err {
		if ErrMissingInput == err {
			return ErrMissingPayload
		}
		return err
	}

	ctx, cancel := interruptContext(c.Duration("timeout"))
	defer cancel()

	if m.verbose {
		fmt.Fprintf(m.e, "previous: %s  timestamp: %d  difficulty: %s\n", previous, timestamp, difficulty)
	}

	start := time.Now()
	b, err := block.NewWithContext(ctx, previous, payload, timestamp, difficulty)
	if nil != err {
		return err
	}

	return printJson(m.w, blockResult{
		Block:   b,
		Valid:   b.Validate(difficulty),
		Elapsed: time.Since(start).String(),
	})
}
