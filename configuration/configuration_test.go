// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/smchash/configuration"
	"github.com/bitmark-inc/smchash/fault"
)

type publishType struct {
	Broadcast []string `gluamapper:"broadcast"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Difficulty    int               `gluamapper:"difficulty"`
	Workers       int               `gluamapper:"workers"`
	Name          string            `gluamapper:"name"`
	Publish       publishType       `gluamapper:"publish"`
	Levels        map[string]string `gluamapper:"levels"`
}

const testLua = `
local M = {}

M.data_directory = "."
M.difficulty = 12
M.workers = cpu_count
M.name = arg[0]

M.publish = {
    broadcast = {
        "tcp://127.0.0.1:2140",
        "tcp://[::1]:2140",
    },
}

M.levels = {
    main = "info",
    proofer = "debug",
}

return M
`

func writeFile(t *testing.T, content string) (string, func()) {
	dir, err := ioutil.TempDir("", "configuration")
	if nil != err {
		t.Fatalf("temporary directory error: %s", err)
	}
	fileName := filepath.Join(dir, "test.conf")
	err = ioutil.WriteFile(fileName, []byte(content), 0600)
	if nil != err {
		t.Fatalf("write file error: %s", err)
	}
	return fileName, func() { os.RemoveAll(dir) }
}

func TestParseConfigurationFile(t *testing.T) {
	fileName, cleanup := writeFile(t, testLua)
	defer cleanup()

	config := &testConfiguration{
		Difficulty: 8,
		Name:       "default",
	}
	err := configuration.ParseConfigurationFile(fileName, config)
	assert.Nil(t, err, "parse")

	assert.Equal(t, ".", config.DataDirectory, "data directory")
	assert.Equal(t, 12, config.Difficulty, "difficulty")
	assert.Equal(t, runtime.NumCPU(), config.Workers, "cpu_count global")
	assert.Equal(t, fileName, config.Name, "arg[0] global")
	assert.Equal(t, []string{"tcp://127.0.0.1:2140", "tcp://[::1]:2140"}, config.Publish.Broadcast, "broadcast")
	assert.Equal(t, "debug", config.Levels["proofer"], "levels")
}

func TestParseKeepsDefaults(t *testing.T) {
	fileName, cleanup := writeFile(t, `return { workers = 3 }`)
	defer cleanup()

	config := &testConfiguration{
		Difficulty: 8,
		Name:       "default",
	}
	err := configuration.ParseConfigurationFile(fileName, config)
	assert.Nil(t, err, "parse")
	assert.Equal(t, 3, config.Workers, "workers")
	assert.Equal(t, 8, config.Difficulty, "default difficulty")
	assert.Equal(t, "default", config.Name, "default name")
}

func TestParseErrors(t *testing.T) {
	fileName, cleanup := writeFile(t, `return { workers = `)
	defer cleanup()

	config := testConfiguration{}
	err := configuration.ParseConfigurationFile(fileName, &config)
	assert.NotNil(t, err, "syntax error")

	err = configuration.ParseConfigurationFile(fileName, config)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "not a pointer")

	n := 0
	err = configuration.ParseConfigurationFile(fileName, &n)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "not a struct")

	err = configuration.ParseConfigurationFile(fileName+".missing", &config)
	assert.NotNil(t, err, "missing file")

	noTable, cleanup2 := writeFile(t, `local x = 1`)
	defer cleanup2()
	err = configuration.ParseConfigurationFile(noTable, &config)
	assert.Equal(t, fault.ErrConfigurationNotFound, err, "no returned table")
}

func TestDataDirectory(t *testing.T) {
	fileName, cleanup := writeFile(t, testLua)
	defer cleanup()

	dir := filepath.Dir(fileName)

	actual, err := configuration.DataDirectory(fileName, ".")
	assert.Nil(t, err, "dot")
	assert.Equal(t, filepath.Clean(dir), actual, "dot is configuration directory")

	actual, err = configuration.DataDirectory(fileName, dir+"/")
	assert.Nil(t, err, "explicit")
	assert.Equal(t, filepath.Clean(dir), actual, "explicit directory")

	_, err = configuration.DataDirectory(fileName, "")
	assert.NotNil(t, err, "empty")

	_, err = configuration.DataDirectory(fileName, "~")
	assert.NotNil(t, err, "home")

	_, err = configuration.DataDirectory(fileName, fileName)
	assert.NotNil(t, err, "file is not a directory")

	_, err = configuration.DataDirectory(fileName, filepath.Join(dir, "missing"))
	assert.NotNil(t, err, "missing directory")
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/data/log", configuration.EnsureAbsolute("/data", "log"), "relative")
	assert.Equal(t, "/var/log", configuration.EnsureAbsolute("/data", "/var/log"), "absolute")
	assert.Equal(t, "/data/log", configuration.EnsureAbsolute("/data", "./x/../log"), "cleaned")

	assert.Nil(t, configuration.CheckPlainName("miner.log"), "plain")
	assert.NotNil(t, configuration.CheckPlainName("log/miner.log"), "has directory")
}
