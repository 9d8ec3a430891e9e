// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/smchash/fault"
	"github.com/bitmark-inc/smchash/miner"
)

const (
	defaultRefreshDelay = 2 * time.Second
	minThreadCount      = 1
	ReaderLoggerPrefix  = "config-reader"
)

// Proofer - the part of the miner driven by configuration changes
type Proofer interface {
	Update(miner.Settings) error
	SetThreadCount(int) int
	ActiveThreads() int
}

// ConfigReaderData - holds the current configuration and applies
// changes signalled by the file watcher
type ConfigReaderData struct {
	sync.RWMutex
	fileName             string
	refreshDelay         time.Duration
	log                  *logger.L
	currentConfiguration *Configuration
	threadCount          uint32
	cpuCount             uint32
	proofer              Proofer
	channels             WatcherChannel
}

func newConfigReader(fileName string, channels WatcherChannel) *ConfigReaderData {
	return &ConfigReaderData{
		fileName:     fileName,
		refreshDelay: defaultRefreshDelay,
		threadCount:  minThreadCount,
		cpuCount:     uint32(runtime.NumCPU()),
		channels:     channels,
	}
}

// SetLog - logging is only possible after the first read
func (c *ConfigReaderData) SetLog(log *logger.L) error {
	if nil == log {
		return fault.ErrInvalidLoggerChannel
	}
	c.Lock()
	c.log = log
	c.Unlock()
	return nil
}

// SetProofer - target of notifications
func (c *ConfigReaderData) SetProofer(proofer Proofer) {
	c.Lock()
	c.proofer = proofer
	c.Unlock()
}

// Refresh - re-read the configuration file
//
// on error the previous configuration is kept
func (c *ConfigReaderData) Refresh() error {
	configuration, err := getConfiguration(c.fileName)
	if nil != err {
		return err
	}
	c.update(configuration)
	return nil
}

// GetConfig - the most recently read configuration
func (c *ConfigReaderData) GetConfig() (*Configuration, error) {
	c.RLock()
	defer c.RUnlock()

	if nil == c.currentConfiguration {
		return nil, fault.ErrConfigurationNotFound
	}
	return c.currentConfiguration, nil
}

// Run - background process: apply configuration file changes
func (c *ConfigReaderData) Run(args interface{}, shutdown <-chan struct{}) {
	log := c.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-c.channels.change:
			log.Debugf("file change event, wait: %s for writes to settle", c.refreshDelay)
			select {
			case <-shutdown:
				break loop
			case <-time.After(c.refreshDelay):
			}

			err := c.Refresh()
			if nil != err {
				log.Errorf("failed to read configuration from: %q  error: %s", c.fileName, err)
				continue loop
			}
			c.notify()

		case <-c.channels.remove:
			log.Warnf("configuration file: %q removed, keeping current settings", c.fileName)
		}
	}
	log.Info("stopped")
}

// notify - push the current configuration into the proofer
func (c *ConfigReaderData) notify() {
	c.RLock()
	proofer := c.proofer
	configuration := c.currentConfiguration
	threadCount := c.threadCount
	log := c.log
	c.RUnlock()

	if nil == proofer || nil == configuration {
		return
	}

	err := proofer.Update(configuration.settings())
	if nil != err && nil != log {
		log.Errorf("update settings error: %s", err)
	}

	change := proofer.SetThreadCount(int(threadCount))
	if nil != log {
		log.Infof("target thread count: %d  change: %d  active: %d", threadCount, change, proofer.ActiveThreads())
	}
}

func (c *ConfigReaderData) update(newConfiguration *Configuration) {
	c.Lock()
	defer c.Unlock()

	c.currentConfiguration = newConfiguration
	c.threadCount = c.optimalThreadCount()
	if nil != c.log {
		c.log.Debugf("updating configuration, target thread count: %d", c.threadCount)
	}
}

func (c *ConfigReaderData) updateCpuCount(count uint32) {
	if count > 0 {
		c.Lock()
		c.cpuCount = count
		c.Unlock()
	}
}

// OptimalThreadCount - max_cpu_usage percent of the CPUs, at least one
func (c *ConfigReaderData) OptimalThreadCount() uint32 {
	c.RLock()
	defer c.RUnlock()
	return c.optimalThreadCount()
}

// must hold lock
func (c *ConfigReaderData) optimalThreadCount() uint32 {
	if nil == c.currentConfiguration {
		return minThreadCount
	}

	percentage := float32(c.currentConfiguration.maxCPUUsage()) / 100
	threadCount := uint32(float32(c.cpuCount) * percentage)

	if threadCount <= minThreadCount {
		return minThreadCount
	}

	if threadCount > c.cpuCount {
		return c.cpuCount
	}

	return threadCount
}
