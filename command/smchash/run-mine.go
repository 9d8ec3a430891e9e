// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/smchash/digest"
	"github.com/bitmark-inc/smchash/fault"
	"github.com/bitmark-inc/smchash/proof"
)

type mineResult struct {
	Input       string           `json:"input"`
	Difficulty  proof.Difficulty `json:"difficulty"`
	Nonce       uint64           `json:"nonce"`
	PackedNonce proof.Nonce      `json:"packed_nonce"`
	Digest      digest.Digest    `json:"digest"`
	Elapsed     string           `json:"elapsed"`
}

func runMine(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	difficulty, err := difficultyFlag(c)
	if nil != err {
		return err
	}

	workers := c.Int("workers")
	if workers < 1 {
		return fault.ErrInvalidCount
	}

	data, name, err := readInput(c, m)
	if nil != err {
		return err
	}

	ctx, cancel := interruptContext(c.Duration("timeout"))
	defer cancel()

	if m.verbose {
		fmt.Fprintf(m.e, "mining: %q  difficulty: %s  workers: %d\n", name, difficulty, workers)
	}

	start := time.Now()

	var nonce proof.Nonce
	var d digest.Digest
	if 1 == workers {
		nonce, d, err = proof.Search(ctx, data, difficulty, proof.Limits{})
	} else {
		nonce, d, err = proof.MineParallel(ctx, data, difficulty, workers)
	}
	if nil != err {
		return err
	}

	return printJson(m.w, mineResult{
		Input:       name,
		Difficulty:  difficulty,
		Nonce:       uint64(nonce),
		PackedNonce: nonce,
		Digest:      d,
		Elapsed:     time.Since(start).String(),
	})
}
