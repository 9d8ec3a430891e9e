// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miner

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/smchash/block"
	"github.com/bitmark-inc/smchash/chain"
	"github.com/bitmark-inc/smchash/fault"
	"github.com/bitmark-inc/smchash/proof"
	"github.com/bitmark-inc/smchash/publish"
	"github.com/bitmark-inc/smchash/transaction"
)

const (
	errorProoferID = -1
)

// Settings - may be changed while mining
type Settings struct {
	Difficulty      proof.Difficulty // never below the ledger's difficulty
	Transactions    int              // transfers per block, excluding the coinbase
	BlockTimeout    time.Duration    // zero for no limit
	BlocksPerMinute int              // zero for no limit
}

// Miner - pool of mining workers
type Miner struct {
	sync.Mutex

	log       *logger.L
	ledger    *chain.Ledger
	publisher publish.Publisher
	stats     *Statistics
	limiter   *rate.Limiter
	settings  Settings

	// one entry per possible worker, nil when the ID is free
	workers  []context.CancelFunc
	cpuCount int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	clock func() time.Time
}

// New - create a miner with no running workers
//
// publisher may be nil; cpuCount bounds the number of workers
func New(ledger *chain.Ledger, publisher publish.Publisher, settings Settings, cpuCount int, log *logger.L) (*Miner, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if cpuCount < 1 {
		return nil, fault.ErrInvalidCount
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := &Miner{
		log:       log,
		ledger:    ledger,
		publisher: publisher,
		stats:     NewStatistics(),
		limiter:   rate.NewLimiter(rate.Inf, 1),
		workers:   make([]context.CancelFunc, cpuCount),
		cpuCount:  cpuCount,
		ctx:       ctx,
		cancel:    cancel,
		clock:     time.Now,
	}

	err := m.Update(settings)
	if nil != err {
		cancel()
		return nil, err
	}
	return m, nil
}

// Update - replace the settings, running workers pick them up for
// their next block
func (m *Miner) Update(settings Settings) error {
	if !settings.Difficulty.Valid() {
		return fault.ErrInvalidDifficulty
	}
	if settings.Transactions < 0 || settings.BlocksPerMinute < 0 || settings.BlockTimeout < 0 {
		return fault.ErrInvalidCount
	}

	if minimum := m.ledger.Difficulty(); settings.Difficulty < minimum {
		m.log.Warnf("difficulty: %s raised to ledger difficulty: %s", settings.Difficulty, minimum)
		settings.Difficulty = minimum
	}

	limit := rate.Inf
	if settings.BlocksPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(settings.BlocksPerMinute))
	}
	m.limiter.SetLimit(limit)

	m.Lock()
	m.settings = settings
	m.Unlock()

	m.log.Infof("settings: %+v", settings)
	return nil
}

// SetThreadCount - start or stop workers to reach the target
//
// the target is bounded by 1 and the CPU count; returns the change
func (m *Miner) SetThreadCount(target int) int {
	m.Lock()
	defer m.Unlock()

	if nil != m.ctx.Err() {
		return 0
	}

	difference := m.differenceToTargetThreadCount(target, m.activeThread())
	if 0 == difference {
		return 0
	}
	m.log.Infof("worker count change: %d", difference)

	if difference > 0 {
		for i := 0; i < difference; i += 1 {
			id, err := m.nextProoferID()
			if nil != err {
				m.log.Errorf("no free worker ID: %s", err)
				break
			}
			m.newProofer(id)
		}
	} else {
		m.deleteProofer(-difference)
	}
	return difference
}

// ActiveThreads - number of running workers
func (m *Miner) ActiveThreads() int {
	m.Lock()
	defer m.Unlock()
	return m.activeThread()
}

// Statistics - snapshot of the counters
func (m *Miner) Statistics() Summary {
	return m.stats.Summary()
}

// Stop - cancel all mining and wait for every worker to return
func (m *Miner) Stop() {
	m.Lock()
	m.cancel()
	for i := range m.workers {
		m.workers[i] = nil
	}
	m.Unlock()

	m.wg.Wait()
	m.log.Info("stopped")
}

// must hold lock
func (m *Miner) activeThread() int {
	n := 0
	for _, w := range m.workers {
		if nil != w {
			n += 1
		}
	}
	return n
}

// must hold lock
func (m *Miner) nextProoferID() (int, error) {
	for i, w := range m.workers {
		if nil == w {
			return i, nil
		}
	}
	return errorProoferID, fault.ErrInvalidCount
}

func (m *Miner) differenceToTargetThreadCount(target int, current int) int {
	if target < 1 {
		target = 1
	}
	if target > m.cpuCount {
		target = m.cpuCount
	}
	return target - current
}

// must hold lock
func (m *Miner) newProofer(id int) {
	ctx, cancel := context.WithCancel(m.ctx)
	m.workers[id] = cancel
	m.wg.Add(1)
	go m.work(ctx, id)
}

// must hold lock; highest IDs are stopped first
func (m *Miner) deleteProofer(count int) {
	for i := len(m.workers) - 1; i >= 0 && count > 0; i -= 1 {
		if cancel := m.workers[i]; nil != cancel {
			cancel()
			m.workers[i] = nil
			count -= 1
		}
	}
}

func (m *Miner) work(ctx context.Context, id int) {
	defer m.wg.Done()

	m.log.Infof("worker[%d]: starting…", id)
	defer m.log.Infof("worker[%d]: stopped", id)

	for {
		err := m.limiter.Wait(ctx)
		if nil != err {
			return
		}
		if nil != ctx.Err() {
			return
		}
		m.mineOne(ctx, id)
	}
}

// one complete attempt: mine, verify, append, publish
func (m *Miner) mineOne(ctx context.Context, id int) {
	m.Lock()
	settings := m.settings
	m.Unlock()

	txs, err := transaction.Generate(settings.Transactions)
	if nil != err {
		m.log.Errorf("worker[%d]: generate transactions error: %s", id, err)
		m.stats.Failed()
		return
	}

	mineCtx := ctx
	if settings.BlockTimeout > 0 {
		var cancel context.CancelFunc
		mineCtx, cancel = context.WithTimeout(ctx, settings.BlockTimeout)
		defer cancel()
	}

	previous, height := m.ledger.Tip()
	timestamp := uint64(m.clock().Unix())

	start := time.Now()
	b, err := block.NewWithContext(mineCtx, previous, transaction.Pack(txs), timestamp, settings.Difficulty)
	miningTime := time.Since(start)
	if nil != err {
		if nil != ctx.Err() {
			return // stopping
		}
		if errors.Is(err, context.DeadlineExceeded) {
			m.log.Warnf("worker[%d]: block: %d timed out after: %s", id, height, miningTime)
		} else {
			m.log.Errorf("worker[%d]: block: %d error: %s", id, height, err)
		}
		m.stats.Failed()
		return
	}

	start = time.Now()
	valid := b.Validate(settings.Difficulty)
	verificationTime := time.Since(start)
	if !valid {
		m.log.Criticalf("worker[%d]: mined block: %s does not validate", id, b)
		m.stats.Failed()
		return
	}

	height, err = m.ledger.Append(b)
	switch err {
	case nil:
	case fault.ErrPreviousHashMismatch, fault.ErrInvalidGenesis:
		m.log.Debugf("worker[%d]: stale block: %s", id, b)
		m.stats.Stale()
		return
	default:
		m.log.Errorf("worker[%d]: append block: %s  error: %s", id, b, err)
		m.stats.Failed()
		return
	}

	m.stats.Mined(miningTime, verificationTime, len(txs))
	m.log.Infof("worker[%d]: block: %d  hash: %s  nonce: %d  in: %s", id, height, b, b.Nonce(), miningTime)

	if nil != m.publisher {
		err = m.publisher.Publish(b)
		if nil != err {
			m.log.Warnf("worker[%d]: publish block: %s  error: %s", id, b, err)
		}
	}
}
