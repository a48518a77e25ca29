// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides various utility functions for dealing with file paths.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"

	"cogentcore.org/roadview/base/errors"
	"github.com/mitchellh/go-homedir"
)

// ExpandPath expands a leading ~ in the given path to the user's
// home directory and cleans the result. An empty path is returned as is.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	ex, err := homedir.Expand(path)
	if err != nil {
		return path, err
	}
	return filepath.Clean(ex), nil
}

// FileExists checks whether given file exists, returning true if so,
// false if not, and error if there is an error in accessing the file.
func FileExists(filePath string) (bool, error) {
	fileInfo, err := os.Stat(filePath)
	if err == nil {
		return !fileInfo.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
