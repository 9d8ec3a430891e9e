// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/smchash/block"
	"github.com/bitmark-inc/smchash/chain"
	"github.com/bitmark-inc/smchash/fault"
	"github.com/bitmark-inc/smchash/publish"
)

type watchResult struct {
	Block  *block.Block `json:"block"`
	Valid  bool         `json:"valid"`
	Height *uint64      `json:"height,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func runWatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	connect := c.String("connect")
	if "" == connect {
		return fault.ErrMissingBroadcast
	}

	difficulty, err := difficultyFlag(c)
	if nil != err {
		return err
	}

	count := c.Int("count")
	if count < 0 {
		return fault.ErrInvalidCount
	}

	var ledger *chain.Ledger
	if c.Bool("chain") {
		ledger, err = chain.NewLedger(difficulty)
		if nil != err {
			return err
		}
	}

	err = startLogging(c, m)
	if nil != err {
		return err
	}
	defer logger.Finalise()

	subscriber, err := publish.NewSubscriber(connect, logger.New("watch"))
	if nil != err {
		return err
	}
	defer subscriber.Close()

	if m.verbose {
		fmt.Fprintf(m.e, "connected to: %s\n", connect)
	}

	ctx, cancel := interruptContext(0)
	defer cancel()

	for received := 0; 0 == count || received < count; received += 1 {
		b, err := subscriber.Receive(ctx)
		if nil != ctx.Err() {
			// interrupted
			return nil
		}
		if nil != err {
			return err
		}

		result := watchResult{
			Block: b,
			Valid: b.Validate(difficulty),
		}

		if nil != ledger {
			height, err := ledger.Append(b)
			if nil != err {
				result.Error = err.Error()
			} else {
				result.Height = &height
			}
		}

		err = printJson(m.w, result)
		if nil != err {
			return err
		}
	}

	return nil
}
