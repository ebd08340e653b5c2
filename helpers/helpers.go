// Copyright © 2016 Zellyn Hunter <zellyn@gmail.com>

// Package helpers contains helper routines for writing files, allowing
// `-` to mean stdout. Every archive this tool opens needs random
// access (io.ReaderAt), so unlike the teacher's helpers package this
// one has no FileContentsOrStdIn counterpart: there is no verb here
// that reads a whole file's bytes up front rather than opening it as
// an archive.
package helpers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

func WriteOutput(filename string, contents []byte, force bool) error {
	if filename == "-" {
		_, err := os.Stdout.Write(contents)
		return err
	}
	if !force {
		if _, err := os.Stat(filename); !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot overwrite file %q without --force (-f)", filename)
		}
	}
	return os.WriteFile(filename, contents, 0666)
}
