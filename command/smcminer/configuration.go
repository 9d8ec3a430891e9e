// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/smchash/configuration"
	"github.com/bitmark-inc/smchash/fault"
	"github.com/bitmark-inc/smchash/miner"
	"github.com/bitmark-inc/smchash/proof"
	"github.com/bitmark-inc/smchash/publish"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultDifficulty           = 8
	defaultMaxCPUUsage          = 50
	defaultTransactionsPerBlock = 10
	defaultBlockTimeout         = 120 // seconds
	defaultStatisticsInterval   = 60  // seconds

	defaultLogDirectory = "log"
	defaultLogFile      = "smcminer.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// Configuration - the table returned by the configuration file
type Configuration struct {
	DataDirectory        string                `gluamapper:"data_directory" json:"data_directory"`
	PidFile              string                `gluamapper:"pidfile" json:"pidfile"`
	Difficulty           int                   `gluamapper:"difficulty" json:"difficulty"`
	MaxCPUUsage          int                   `gluamapper:"max_cpu_usage" json:"max_cpu_usage"`
	TransactionsPerBlock int                   `gluamapper:"transactions_per_block" json:"transactions_per_block"`
	MaxBlocksPerMinute   int                   `gluamapper:"max_blocks_per_minute" json:"max_blocks_per_minute"`
	BlockTimeout         int                   `gluamapper:"block_timeout" json:"block_timeout"`
	StatisticsInterval   int                   `gluamapper:"statistics_interval" json:"statistics_interval"`
	Publish              publish.Configuration `gluamapper:"publish" json:"publish"`
	Logging              logger.Configuration  `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	options := &Configuration{
		DataDirectory:        defaultDataDirectory,
		PidFile:              "", // no PidFile by default
		Difficulty:           defaultDifficulty,
		MaxCPUUsage:          defaultMaxCPUUsage,
		TransactionsPerBlock: defaultTransactionsPerBlock,
		MaxBlocksPerMinute:   0, // unlimited
		BlockTimeout:         defaultBlockTimeout,
		StatisticsInterval:   defaultStatisticsInterval,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if _, err := proof.NewDifficulty(options.Difficulty); nil != err {
		return nil, err
	}
	if options.TransactionsPerBlock < 0 {
		return nil, fault.ErrInvalidCount
	}
	if options.MaxBlocksPerMinute < 0 {
		options.MaxBlocksPerMinute = 0
	}
	if options.MaxCPUUsage <= 0 || options.MaxCPUUsage > 100 {
		options.MaxCPUUsage = defaultMaxCPUUsage
	}
	if options.BlockTimeout <= 0 {
		options.BlockTimeout = defaultBlockTimeout
	}
	if options.StatisticsInterval <= 0 {
		options.StatisticsInterval = defaultStatisticsInterval
	}

	dataDirectory, err := configuration.DataDirectory(configurationFileName, options.DataDirectory)
	if nil != err {
		return nil, err
	}
	options.DataDirectory = dataDirectory

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = configuration.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// log file must be a plain name inside the log directory
	if err := configuration.CheckPlainName(options.Logging.File); nil != err {
		return nil, err
	}

	// make absolute and create directories if they do not already exist
	options.Logging.Directory = configuration.EnsureAbsolute(options.DataDirectory, options.Logging.Directory)
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	// done
	return options, nil
}

// miner settings derived from the configuration
func (c *Configuration) settings() miner.Settings {
	return miner.Settings{
		Difficulty:      proof.Difficulty(c.Difficulty),
		Transactions:    c.TransactionsPerBlock,
		BlockTimeout:    time.Duration(c.BlockTimeout) * time.Second,
		BlocksPerMinute: c.MaxBlocksPerMinute,
	}
}

func (c *Configuration) maxCPUUsage() int {
	return c.MaxCPUUsage
}

func (c *Configuration) statisticsInterval() time.Duration {
	return time.Duration(c.StatisticsInterval) * time.Second
}
