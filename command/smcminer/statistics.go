// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/smchash/chain"
	"github.com/bitmark-inc/smchash/miner"
)

const (
	statisticsLoggerPrefix = "statistics"
)

type summarySource interface {
	Statistics() miner.Summary
}

// periodic log of mining progress
type reporter struct {
	log      *logger.L
	source   summarySource
	ledger   *chain.Ledger
	interval time.Duration
}

func newReporter(log *logger.L, source summarySource, ledger *chain.Ledger, interval time.Duration) *reporter {
	return &reporter{
		log:      log,
		source:   source,
		ledger:   ledger,
		interval: interval,
	}
}

// Run - background process
func (r *reporter) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			r.report()
		}
	}
}

func (r *reporter) report() {
	s := r.source.Statistics()
	tip, height := r.ledger.Tip()
	r.log.Infof("height: %d  tip: %s", height, tip)
	r.log.Infof("mined: %d  stale: %d  failed: %d  transactions: %d", s.Mined, s.Stale, s.Failed, s.Transactions)
	r.log.Infof("average mining: %s  verification: %s  blocks/s: %.2f  transactions/s: %.2f",
		s.AverageMining, s.AverageVerification, s.BlocksPerSecond, s.TransactionsPerSecond)
}
