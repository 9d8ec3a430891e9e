// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/smchash/background"
)

type counter struct {
	initial  uint64
	final    uint64
	count    uint64
	finished bool
}

func (c *counter) Run(args interface{}, shutdown <-chan struct{}) {

	t := args.(*testing.T)
	if c.initial != atomic.LoadUint64(&c.count) {
		t.Errorf("initialisation failed: unexpected initial count: %d", c.count)
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}
		atomic.AddUint64(&c.count, 9)
		time.Sleep(time.Millisecond)
	}

	// observed by the test after Stop returns
	atomic.StoreUint64(&c.count, c.final)
	c.finished = true
}

func TestBackground(t *testing.T) {

	proc1 := &counter{initial: 246, count: 246, final: 987654321}
	proc2 := &counter{initial: 777, count: 777, final: 897645312}

	processes := background.Processes{
		proc1,
		proc2,
	}

	p := background.Start(processes, t)
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	assert.True(t, proc1.finished, "process 1 did not finish")
	assert.True(t, proc2.finished, "process 2 did not finish")
	assert.Equal(t, proc1.final, atomic.LoadUint64(&proc1.count), "process 1 final count")
	assert.Equal(t, proc2.final, atomic.LoadUint64(&proc2.count), "process 2 final count")
}

func TestStopTwice(t *testing.T) {
	proc := &counter{final: 1}

	p := background.Start(background.Processes{proc}, t)
	p.Stop()
	p.Stop()

	assert.True(t, proc.finished, "process did not finish")
}

func TestStopEmpty(t *testing.T) {
	p := background.Start(background.Processes{}, nil)
	p.Stop()

	var nilHandle *background.T
	nilHandle.Stop()
}
