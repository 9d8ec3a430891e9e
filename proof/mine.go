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

// Limits - bounds on a nonce search
type Limits struct {
	Start       Nonce  // first nonce tried
	Stride      uint64 // distance between nonces tried, zero means one
	MaxAttempts uint64 // zero for no limit
}

// Mine - search nonces 0, 1, 2… for the first solution
//
// There is no bound on the number of attempts: at a high difficulty
// this may not return in any practical time.  Use Search to cancel
// or bound the work.
func Mine(data []byte, difficulty Difficulty) (Nonce, digest.Digest, error) {
	return Search(context.Background(), data, difficulty, Limits{})
}

// Search - nonce search that can be cancelled or bounded
//
// the context is checked before every attempt
func Search(ctx context.Context, data []byte, difficulty Difficulty, limits Limits) (Nonce, digest.Digest, error) {
	if !difficulty.Valid() {
		return 0, digest.Digest{}, fault.ErrInvalidDifficulty
	}

	stride := Nonce(limits.Stride)
	if 0 == stride {
		stride = 1
	}

	// the data is absorbed once, each attempt continues from a copy
	prefix := digest.New()
	_, _ = prefix.Write(data)

	done := ctx.Done()
	nonce := limits.Start

	for attempts := uint64(0); ; attempts += 1 {
		if 0 != limits.MaxAttempts && attempts >= limits.MaxAttempts {
			return 0, digest.Digest{}, fault.ErrAttemptsExhausted
		}

		select {
		case <-done:
			return 0, digest.Digest{}, ctx.Err()
		default:
		}

		d := finish(prefix, nonce)
		if Meets(d, difficulty) {
			return nonce, d, nil
		}

		next := nonce + stride
		if next < nonce {
			return 0, digest.Digest{}, fault.ErrNonceSpaceExhausted
		}
		nonce = next
	}
}

// Verify - check a claimed solution
//
// the digest of data and nonce must equal expected and expected must
// meet the difficulty; neither check alone is sufficient
func Verify(data []byte, nonce Nonce, difficulty Difficulty, expected digest.Digest) bool {
	prefix := digest.New()
	_, _ = prefix.Write(data)

	if !digest.Equal(finish(prefix, nonce), expected) {
		return false
	}
	return Meets(expected, difficulty)
}

// digest of the prefix followed by the little endian nonce
func finish(prefix *digest.Hasher, nonce Nonce) digest.Digest {
	h := *prefix
	b := nonce.Bytes()
	_, _ = h.Write(b[:])
	d, _ := h.Finalise()
	return d
}
