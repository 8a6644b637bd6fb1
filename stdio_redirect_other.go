//go:build !unix

package main

import (
	"os"

	pkgerrors "github.com/pkg/errors"
)

// Without dup2 only writes through os.Stdout/os.Stderr are captured;
// runtime panics still go to the original stderr.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return pkgerrors.Wrap(err, "open stdio log")
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
