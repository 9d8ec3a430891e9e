// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDirectory - resolve the data_directory setting
//
// "." means the directory holding the configuration file; the
// directory must already exist
func DataDirectory(configurationFileName string, dataDirectory string) (string, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return "", err
	}

	switch dataDirectory {
	case "", "~":
		return "", fmt.Errorf("path: %q is not a valid directory", dataDirectory)
	case ".":
		dataDirectory, _ = filepath.Split(configurationFileName)
	}
	dataDirectory = filepath.Clean(dataDirectory)

	fileInfo, err := os.Stat(dataDirectory)
	if nil != err {
		return "", err
	}
	if !fileInfo.IsDir() {
		return "", fmt.Errorf("path: %q is not a directory", dataDirectory)
	}
	return dataDirectory, nil
}

// EnsureAbsolute - make a relative path absolute to a directory
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// CheckPlainName - reject file names that include a directory
func CheckPlainName(name string) error {
	switch filepath.Dir(name) {
	case "", ".":
		return nil
	default:
		return fmt.Errorf("file: %q is not plain name", name)
	}
}
