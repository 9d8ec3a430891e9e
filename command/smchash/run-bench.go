// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/smchash/chain"
	"github.com/bitmark-inc/smchash/digest"
	"github.com/bitmark-inc/smchash/fault"
	"github.com/bitmark-inc/smchash/miner"
)

const defaultBenchDuration = 10 * time.Second

type benchResult struct {
	Threads    int           `json:"threads"`
	Height     uint64        `json:"height"`
	Tip        digest.Digest `json:"tip"`
	ChainValid bool          `json:"chain_valid"`
	Statistics miner.Summary `json:"statistics"`
}

func runBench(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	difficulty, err := difficultyFlag(c)
	if nil != err {
		return err
	}

	threads := c.Int("threads")
	transactions := c.Int("transactions")
	if threads < 1 || transactions < 0 {
		return fault.ErrInvalidCount
	}

	err = startLogging(c, m)
	if nil != err {
		return err
	}
	defer logger.Finalise()

	log := logger.New("bench")

	ledger, err := chain.NewLedger(difficulty)
	if nil != err {
		return err
	}

	settings := miner.Settings{
		Difficulty:   difficulty,
		Transactions: transactions,
	}
	mnr, err := miner.New(ledger, nil, settings, runtime.NumCPU(), logger.New("miner"))
	if nil != err {
		return err
	}

	mnr.SetThreadCount(threads)
	log.Infof("threads: %d  duration: %s", mnr.ActiveThreads(), c.Duration("duration"))

	ctx, cancel := interruptContext(c.Duration("duration"))
	defer cancel()
	<-ctx.Done()

	active := mnr.ActiveThreads()
	mnr.Stop()

	checked, err := ledger.Validate()
	if nil != err {
		log.Errorf("ledger invalid at height: %d  error: %s", checked, err)
	}

	tip, height := ledger.Tip()
	return printJson(m.w, benchResult{
		Threads:    active,
		Height:     height,
		Tip:        tip,
		ChainValid: nil == err,
		Statistics: mnr.Statistics(),
	})
}
