// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"
)

const (
	logFile  = "smchash.log"
	logSize  = 1048576
	logCount = 10
)

// start the logger for the long running commands, call logger.Finalise
// when done
func startLogging(c *cli.Context, m *metadata) error {
	level := "warn"
	if m.verbose {
		level = "info"
	}

	return logger.Initialise(logger.Configuration{
		Directory: c.String("log-directory"),
		File:      logFile,
		Size:      logSize,
		Count:     logCount,
		Console:   m.verbose,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	})
}
