// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"context"

	"github.com/bitmark-inc/smchash/digest"
	"github.com/bitmark-inc/smchash/fault"
)

type result struct {
	nonce  Nonce
	digest digest.Digest
	err    error
}

// MineParallel - search disjoint nonce ranges on several goroutines
//
// worker i tries i, i+n, i+2n… for n workers; the first solution
// found is returned and the remaining workers are cancelled, so with
// more than one worker the nonce need not be the smallest solution
func MineParallel(ctx context.Context, data []byte, difficulty Difficulty, workers int) (Nonce, digest.Digest, error) {
	if workers < 1 {
		return 0, digest.Digest{}, fault.ErrInvalidCount
	}
	if !difficulty.Valid() {
		return 0, digest.Digest{}, fault.ErrInvalidDifficulty
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// buffered so that cancelled workers never block
	results := make(chan result, workers)

	for i := 0; i < workers; i += 1 {
		limits := Limits{
			Start:  Nonce(i),
			Stride: uint64(workers),
		}
		go func() {
			nonce, d, err := Search(ctx, data, difficulty, limits)
			results <- result{nonce: nonce, digest: d, err: err}
		}()
	}

	var firstError error
	for i := 0; i < workers; i += 1 {
		r := <-results
		if nil == r.err {
			return r.nonce, r.digest, nil
		}
		if nil == firstError {
			firstError = r.err
		}
	}
	return 0, digest.Digest{}, firstError
}
