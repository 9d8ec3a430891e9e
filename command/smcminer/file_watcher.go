// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/smchash/fault"
)

const (
	FileWatcherLoggerPrefix = "file-watcher"
)

// WatcherChannel - events from the watcher, buffered with capacity one
type WatcherChannel struct {
	change chan struct{}
	remove chan struct{}
}

func newWatcherChannel() WatcherChannel {
	return WatcherChannel{
		change: make(chan struct{}, 1),
		remove: make(chan struct{}, 1),
	}
}

// FileWatcherData - fsnotify watch on the configuration file
type FileWatcherData struct {
	log      *logger.L
	channel  WatcherChannel
	watcher  *fsnotify.Watcher
	filePath string
}

// the directory is watched rather than the file so that editors which
// replace the file are also seen
func newFileWatcher(targetFile string, log *logger.L, channel WatcherChannel) (*FileWatcherData, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		log.Errorf("parse file: %q  error: %s", targetFile, err)
		return nil, err
	}

	if _, err := os.Stat(filePath); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		return nil, err
	}

	err = watcher.Add(filepath.Dir(filePath))
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		watcher.Close()
		return nil, err
	}

	return &FileWatcherData{
		log:      log,
		watcher:  watcher,
		channel:  channel,
		filePath: filePath,
	}, nil
}

// Run - background process: forward events for the watched file
func (w *FileWatcherData) Run(args interface{}, shutdown <-chan struct{}) {
	w.log.Infof("watching: %q", w.filePath)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.log.Errorf("watcher error: %s", err)

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.filePath {
				continue loop
			}
			w.log.Infof("file event: %v", event)

			if watcherEventFileRemove(event) {
				w.sendEvent(w.channel.remove, "remove")
			} else if watcherEventFileChange(event) {
				w.sendEvent(w.channel.change, "change")
			}
		}
	}
	w.watcher.Close()
	w.log.Info("stopped")
}

func (w *FileWatcherData) isChannelFull(ch chan<- struct{}) bool {
	return len(ch) == cap(ch)
}

// events are coalesced: a full channel already has one pending
func (w *FileWatcherData) sendEvent(ch chan<- struct{}, name string) {
	if !w.isChannelFull(ch) {
		ch <- struct{}{}
	} else {
		w.log.Debugf("event channel: %s full, discard event", name)
	}
}

func watcherEventFileRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
