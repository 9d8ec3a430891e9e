// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/smchash/background"
	"github.com/bitmark-inc/smchash/chain"
	"github.com/bitmark-inc/smchash/miner"
	"github.com/bitmark-inc/smchash/proof"
	"github.com/bitmark-inc/smchash/publish"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]", program)
	}

	if len(options["config-file"]) > 1 {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	configurationFile := ""
	if 1 == len(options["config-file"]) {
		configurationFile = options["config-file"][0]
	}

	// command processing
	// these commands do not need the logger or any background process
	if len(arguments) > 0 && processSetupCommand(program, arguments, configurationFile) {
		return
	}

	if "" == configurationFile {
		exitwithstatus.Message("%s: a config-file option is required", program)
	}

	// read options and parse the configuration file
	watcherChannel := newWatcherChannel()
	reader := newConfigReader(configurationFile, watcherChannel)

	err = reader.Refresh()
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	masterConfiguration, err := reader.GetConfig()
	if nil != err {
		exitwithstatus.Message("%s: configuration is not found", program)
	}

	// start logging
	if len(options["verbose"]) > 0 {
		masterConfiguration.Logging.Console = true
	}
	if err = logger.Initialise(masterConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	err = reader.SetLog(logger.New(ReaderLoggerPrefix))
	if nil != err {
		exitwithstatus.Message("%s: new logger %q failed with error: %s", program, ReaderLoggerPrefix, err)
	}

	watcher, err := newFileWatcher(configurationFile, logger.New(FileWatcherLoggerPrefix), watcherChannel)
	if nil != err {
		exitwithstatus.Message("%s: file watcher setup failed with error: %s", program, err)
	}

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("masterConfiguration: %v", masterConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != masterConfiguration.PidFile {
		lockFile, err := os.OpenFile(masterConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, masterConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(masterConfiguration.PidFile)
	}

	// the ledger difficulty is fixed for the life of the process
	ledger, err := chain.NewLedger(proof.Difficulty(masterConfiguration.Difficulty))
	if nil != err {
		log.Criticalf("new ledger error: %s", err)
		exitwithstatus.Message("%s: new ledger error: %s", program, err)
	}

	var publisher publish.Publisher
	if len(masterConfiguration.Publish.Broadcast) > 0 {
		brdc, err := publish.NewBroadcaster(&masterConfiguration.Publish, logger.New("broadcaster"))
		if nil != err {
			log.Criticalf("broadcaster error: %s", err)
			exitwithstatus.Message("%s: broadcaster error: %s", program, err)
		}
		defer brdc.Close()
		publisher = brdc
	}

	m, err := miner.New(ledger, publisher, masterConfiguration.settings(), runtime.NumCPU(), logger.New("miner"))
	if nil != err {
		log.Criticalf("miner error: %s", err)
		exitwithstatus.Message("%s: miner error: %s", program, err)
	}
	reader.SetProofer(m)

	// start background processes
	processes := background.Processes{
		watcher,
		reader,
		newReporter(logger.New(statisticsLoggerPrefix), m, ledger, masterConfiguration.statisticsInterval()),
	}
	bg := background.Start(processes, nil)

	// start the workers
	reader.notify()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down...\n")
	}

	bg.Stop()
	m.Stop()

	shutdownReport(log, m.Statistics(), ledger, 0 == len(options["quiet"]))
}

// re-validate the whole ledger and summarise the run
func shutdownReport(log *logger.L, s miner.Summary, ledger *chain.Ledger, console bool) {
	checked, err := ledger.Validate()
	if nil != err {
		log.Criticalf("ledger invalid at block: %d  error: %s", checked, err)
	} else {
		log.Infof("ledger valid: %d blocks", checked)
	}
	log.Infof("summary: %+v", s)

	if !console {
		return
	}
	fmt.Printf("blocks mined: %d  stale: %d  failed: %d\n", s.Mined, s.Stale, s.Failed)
	fmt.Printf("average mining time: %s  verification time: %s\n", s.AverageMining, s.AverageVerification)
	fmt.Printf("blocks per second: %.2f  transactions per second: %.2f\n", s.BlocksPerSecond, s.TransactionsPerSecond)
	if nil != err {
		fmt.Printf("ledger INVALID at block: %d  error: %s\n", checked, err)
	} else {
		fmt.Printf("ledger valid: %d blocks\n", checked)
	}
}
