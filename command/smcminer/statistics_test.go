// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/smchash/background"
	"github.com/bitmark-inc/smchash/block"
	"github.com/bitmark-inc/smchash/chain"
	"github.com/bitmark-inc/smchash/digest"
	"github.com/bitmark-inc/smchash/fixtures"
	"github.com/bitmark-inc/smchash/miner"
)

type countingSource struct {
	calls uint64
}

func (c *countingSource) Statistics() miner.Summary {
	atomic.AddUint64(&c.calls, 1)
	return miner.Summary{Mined: 1}
}

func TestReporter(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ledger, err := chain.NewLedger(2)
	assert.Nil(t, err, "new ledger")

	source := &countingSource{}
	r := newReporter(logger.New("test"), source, ledger, 5*time.Millisecond)

	bg := background.Start(background.Processes{r}, nil)
	time.Sleep(100 * time.Millisecond)
	bg.Stop()

	calls := atomic.LoadUint64(&source.calls)
	assert.True(t, calls > 0, "no reports")

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, atomic.LoadUint64(&source.calls), "report after stop")
}

func TestShutdownReport(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ledger, err := chain.NewLedger(2)
	assert.Nil(t, err, "new ledger")

	b, err := block.New(digest.Digest{}, []byte("genesis"), 1, 2)
	assert.Nil(t, err, "mine")
	_, err = ledger.Append(b)
	assert.Nil(t, err, "append")

	// must not panic with or without console output
	shutdownReport(logger.New("test"), miner.Summary{Mined: 1}, ledger, false)
	shutdownReport(logger.New("test"), miner.Summary{Mined: 1}, ledger, true)
}
