// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miner

import (
	"sync"
	"time"
)

// Statistics - running totals for a miner
type Statistics struct {
	sync.Mutex
	start            time.Time
	mined            uint64
	stale            uint64
	failed           uint64
	transactions     uint64
	miningTime       time.Duration
	verificationTime time.Duration
}

// Summary - snapshot of statistics
type Summary struct {
	Elapsed               time.Duration `json:"elapsed"`
	Mined                 uint64        `json:"mined"`
	Stale                 uint64        `json:"stale"`
	Failed                uint64        `json:"failed"`
	Transactions          uint64        `json:"transactions"`
	AverageMining         time.Duration `json:"average_mining"`
	AverageVerification   time.Duration `json:"average_verification"`
	BlocksPerSecond       float64       `json:"blocks_per_second"`
	TransactionsPerSecond float64       `json:"transactions_per_second"`
}

// NewStatistics - start counting from now
func NewStatistics() *Statistics {
	return &Statistics{
		start: time.Now(),
	}
}

// Mined - record a block appended to the ledger
func (s *Statistics) Mined(mining time.Duration, verification time.Duration, transactions int) {
	s.Lock()
	s.mined += 1
	s.transactions += uint64(transactions)
	s.miningTime += mining
	s.verificationTime += verification
	s.Unlock()
}

// Stale - record a block that lost the race to the tip
func (s *Statistics) Stale() {
	s.Lock()
	s.stale += 1
	s.Unlock()
}

// Failed - record a timed out or rejected attempt
func (s *Statistics) Failed() {
	s.Lock()
	s.failed += 1
	s.Unlock()
}

// Summary - totals, averages and rates so far
func (s *Statistics) Summary() Summary {
	s.Lock()
	defer s.Unlock()

	summary := Summary{
		Elapsed:      time.Since(s.start),
		Mined:        s.mined,
		Stale:        s.stale,
		Failed:       s.failed,
		Transactions: s.transactions,
	}

	if s.mined > 0 {
		summary.AverageMining = s.miningTime / time.Duration(s.mined)
		summary.AverageVerification = s.verificationTime / time.Duration(s.mined)
	}

	if seconds := summary.Elapsed.Seconds(); seconds > 0 {
		summary.BlocksPerSecond = float64(s.mined) / seconds
		summary.TransactionsPerSecond = float64(s.transactions) / seconds
	}
	return summary
}
