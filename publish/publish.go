// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"github.com/bitmark-inc/smchash/block"
)

//go:generate mockgen -destination=mocks/publisher.go -package=mocks github.com/bitmark-inc/smchash/publish Publisher

// BlockTopic - first frame of every message
const BlockTopic = "block"

// Configuration - the "publish" table of the configuration file
type Configuration struct {
	Broadcast []string `gluamapper:"broadcast" json:"broadcast"`
}

// Publisher - send blocks to any listeners
type Publisher interface {
	Publish(*block.Block) error
	Close() error
}
