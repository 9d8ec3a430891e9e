// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/smchash/block"
	"github.com/bitmark-inc/smchash/fault"
)

const (
	pollInterval     = 100 * time.Millisecond
	seenExpiration   = 10 * time.Minute
	seenCleanupCycle = 20 * time.Minute
)

// Subscriber - ZeroMQ SUB socket connected to one broadcaster
type Subscriber struct {
	log    *logger.L
	socket *zmq.Socket
	poller *zmq.Poller
	seen   *cache.Cache
}

// NewSubscriber - connect and subscribe to blocks
func NewSubscriber(connectTo string, log *logger.L) (*Subscriber, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	socket, err := zmq.NewSocket(zmq.SUB)
	if nil != err {
		return nil, err
	}

	socket.SetLinger(0)
	socket.SetIpv6(strings.Contains(connectTo, "["))

	// keep-alive settings
	socket.SetTcpKeepalive(1)
	socket.SetTcpKeepaliveCnt(5)
	socket.SetTcpKeepaliveIdle(60)
	socket.SetTcpKeepaliveIntvl(60)

	err = socket.SetSubscribe(BlockTopic)
	if nil != err {
		socket.Close()
		return nil, err
	}

	log.Infof("connect to: %q", connectTo)
	err = socket.Connect(connectTo)
	if nil != err {
		socket.Close()
		return nil, err
	}

	poller := zmq.NewPoller()
	poller.Add(socket, zmq.POLLIN)

	return &Subscriber{
		log:    log,
		socket: socket,
		poller: poller,
		seen:   cache.New(seenExpiration, seenCleanupCycle),
	}, nil
}

// Receive - wait for a block not received before
//
// malformed messages are logged and skipped
func (s *Subscriber) Receive(ctx context.Context) (*block.Block, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		polled, err := s.poller.Poll(pollInterval)
		if nil != err {
			return nil, err
		}
		if 0 == len(polled) {
			continue
		}

		message, err := s.socket.RecvMessageBytes(0)
		if nil != err {
			return nil, err
		}

		b, err := decode(message)
		if nil != err {
			s.log.Warnf("discard message: %x  error: %s", message, err)
			continue
		}

		key := b.Hash().String()
		if _, found := s.seen.Get(key); found {
			s.log.Debugf("duplicate block: %s", key)
			continue
		}
		s.seen.Set(key, true, cache.DefaultExpiration)

		return b, nil
	}
}

// Close - release the socket
func (s *Subscriber) Close() error {
	s.seen.Flush()
	return s.socket.Close()
}

func decode(message [][]byte) (*block.Block, error) {
	if 2 != len(message) || BlockTopic != string(message[0]) {
		return nil, fault.ErrUnexpectedMessageTopic
	}

	var b block.Block
	err := json.Unmarshal(message[1], &b)
	if nil != err {
		return nil, err
	}
	return &b, nil
}
