// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"
	"strings"
	"sync"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/smchash/block"
	"github.com/bitmark-inc/smchash/fault"
)

// Broadcaster - ZeroMQ PUB socket bound to every broadcast endpoint
type Broadcaster struct {
	sync.Mutex
	log    *logger.L
	socket *zmq.Socket
	closed bool
}

// NewBroadcaster - bind the broadcast endpoints
func NewBroadcaster(configuration *Configuration, log *logger.L) (*Broadcaster, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if nil == configuration || 0 == len(configuration.Broadcast) {
		return nil, fault.ErrMissingBroadcast
	}

	log.Info("initialising…")

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return nil, err
	}

	socket.SetLinger(0)

	for i, bindTo := range configuration.Broadcast {
		if strings.Contains(bindTo, "[") {
			socket.SetIpv6(true)
		}
		err = socket.Bind(bindTo)
		if nil != err {
			log.Errorf("cannot bind[%d]: %q  error: %s", i, bindTo, err)
			socket.Close()
			return nil, err
		}
		log.Infof("bind[%d]: %q", i, bindTo)
	}

	return &Broadcaster{
		log:    log,
		socket: socket,
	}, nil
}

// Publish - send one block, never blocks
//
// with no connected subscribers the message is discarded
func (brdc *Broadcaster) Publish(b *block.Block) error {
	data, err := json.Marshal(b)
	if nil != err {
		return err
	}

	brdc.Lock()
	defer brdc.Unlock()

	if brdc.closed {
		return fault.ErrPublisherClosed
	}

	brdc.log.Debugf("sending: %s  block: %s", BlockTopic, b)

	_, err = brdc.socket.Send(BlockTopic, zmq.SNDMORE|zmq.DONTWAIT)
	if nil != err {
		return err
	}
	_, err = brdc.socket.SendBytes(data, zmq.DONTWAIT)
	return err
}

// Close - release the socket
func (brdc *Broadcaster) Close() error {
	brdc.Lock()
	defer brdc.Unlock()

	if brdc.closed {
		return fault.ErrPublisherClosed
	}
	brdc.closed = true
	brdc.log.Info("closing…")
	return brdc.socket.Close()
}
