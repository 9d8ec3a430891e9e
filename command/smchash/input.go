// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/smchash/proof"
)

const stdinName = "-"

// openInput - the --file flag or the first argument, never both
//
// the returned name is the file name or the string itself
func openInput(c *cli.Context, m *metadata) (io.ReadCloser, string, error) {
	fileName := c.String("file")
	hasArgument := c.NArg() > 0

	switch {
	case "" != fileName && hasArgument:
		return nil, "", ErrAmbiguousInput

	case stdinName == fileName:
		return ioutil.NopCloser(m.r), fileName, nil

	case "" != fileName:
		f, err := os.Open(fileName)
		if nil != err {
			return nil, "", err
		}
		return f, fileName, nil

	case hasArgument:
		s := c.Args().First()
		return ioutil.NopCloser(strings.NewReader(s)), s, nil

	default:
		return nil, "", ErrMissingInput
	}
}

func readInput(c *cli.Context, m *metadata) ([]byte, string, error) {
	r, name, err := openInput(c, m)
	if nil != err {
		return nil, "", err
	}
	defer r.Close()

	data, err := ioutil.ReadAll(r)
	if nil != err {
		return nil, "", err
	}
	return data, name, nil
}

func difficultyFlag(c *cli.Context) (proof.Difficulty, error) {
	return proof.NewDifficulty(c.Int("difficulty"))
}

// context cancelled by SIGINT or SIGTERM, or after a non-zero timeout
func interruptContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	if timeout > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, timeout)
		parent := cancel
		cancel = func() {
			stop()
			parent()
		}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(ch)
	}()

	return ctx, cancel
}
