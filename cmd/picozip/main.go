// Copyright 2026 Takase. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command picozip creates a stored ZIP archive from files and directories.
package main

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/takase1121/picozip"
)

var (
	comment string
	verbose bool
)

func main() {
	cmd := &cobra.Command{
		Use:          "picozip <archive.zip> <path>...",
		Short:        "Create a stored ZIP archive from the given files and directories",
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return runCreate(args[0], args[1:])
		},
	}
	cmd.Flags().StringVar(&comment, "comment", "", "archive comment")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every entry as it is added")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCreate(archive string, paths []string) error {
	w, err := picozip.Create(archive)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range paths {
		if err := addPath(w, path); err != nil {
			return err
		}
	}

	if comment != "" {
		if err := w.SetComment(comment); err != nil {
			return err
		}
	}
	if err := w.Finalize(); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	logrus.Infof("wrote %s (%d entries)", archive, len(paths))
	return nil
}

// addPath adds a single file, or walks a directory adding a marker for each
// subdirectory and an entry for each regular file. Entry names use forward
// slashes regardless of host separator.
func addPath(w *picozip.Writer, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		logrus.Debugf("adding file %s", root)
		return w.AddFile(filepath.ToSlash(root), root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := filepath.ToSlash(path)
		if d.IsDir() {
			logrus.Debugf("adding directory %s", name)
			return w.Mkdir(name)
		}
		logrus.Debugf("adding file %s", name)
		return w.AddFile(name, path)
	})
}
