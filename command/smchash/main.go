// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

type metadata struct {
	verbose bool
	r       io.Reader
	w       io.Writer
	e       io.Writer
}

func main() {

	app := newApp(os.Stdin, os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(r io.Reader, w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "smchash"
	app.Usage = "SMCHash digests, proof of work and blocks"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e
	app.Metadata = map[string]interface{}{}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}

	difficultyFlag := cli.IntFlag{
		Name:  "difficulty, d",
		Value: 8,
		Usage: " required leading zero `BITS` [0..128]",
	}
	fileFlag := cli.StringFlag{
		Name:  "file, f",
		Value: "",
		Usage: " read input from `FILE`, - for stdin",
	}
	timeoutFlag := cli.DurationFlag{
		Name:  "timeout, t",
		Value: 0,
		Usage: " give up after `DURATION`, zero for no limit",
	}
	logDirectoryFlag := cli.StringFlag{
		Name:  "log-directory, l",
		Value: os.TempDir(),
		Usage: " write the log file to `DIR`",
	}

	app.Commands = []cli.Command{
		{
			Name:      "hash",
			Usage:     "digest of a string or file",
			ArgsUsage: "[STRING]",
			Flags: []cli.Flag{
				fileFlag,
			},
			Action: runHash,
		},
		{
			Name:      "verify",
			Usage:     "check a string or file against a digest",
			ArgsUsage: "[STRING]\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "digest, D",
					Value: "",
					Usage: "*expected `HEX` digest",
				},
				fileFlag,
			},
			Action: runVerify,
		},
		{
			Name:      "mine",
			Usage:     "search for a nonce that meets a difficulty",
			ArgsUsage: "[STRING]",
			Flags: []cli.Flag{
				difficultyFlag,
				cli.IntFlag{
					Name:  "workers, w",
					Value: 1,
					Usage: " number of search `COUNT` goroutines, one gives the smallest nonce",
				},
				timeoutFlag,
				fileFlag,
			},
			Action: runMine,
		},
		{
			Name:      "block",
			Usage:     "mine a block over a payload",
			ArgsUsage: "[PAYLOAD]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "previous, p",
					Value: "",
					Usage: " previous block `HEX` digest [zero]",
				},
				cli.Uint64Flag{
					Name:  "timestamp, T",
					Value: 0,
					Usage: " block `SECONDS` since the epoch [now]",
				},
				difficultyFlag,
				timeoutFlag,
				fileFlag,
			},
			Action: runBlock,
		},
		{
			Name:  "bench",
			Usage: "mine a local chain and report statistics",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "threads, n",
					Value: 1,
					Usage: " mining `COUNT` threads",
				},
				cli.DurationFlag{
					Name:  "duration, D",
					Value: defaultBenchDuration,
					Usage: " run for `DURATION`",
				},
				difficultyFlag,
				cli.IntFlag{
					Name:  "transactions, x",
					Value: 10,
					Usage: " `COUNT` of transactions per block",
				},
				logDirectoryFlag,
			},
			Action: runBench,
		},
		{
			Name:      "watch",
			Usage:     "print blocks published by a miner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*subscribe to `ENDPOINT` e.g. tcp://127.0.0.1:2140",
				},
				difficultyFlag,
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: " stop after `COUNT` blocks, zero to run until interrupted",
				},
				cli.BoolFlag{
					Name:  "chain, C",
					Usage: " link received blocks into a ledger",
				},
				logDirectoryFlag,
			},
			Action: runWatch,
		},
		{
			Name:  "version",
			Usage: "display smchash version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			verbose: c.GlobalBool("verbose"),
			r:       r,
			w:       c.App.Writer,
			e:       c.App.ErrWriter,
		}
		return nil
	}

	return app
}
