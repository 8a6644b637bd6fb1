//go:build unix

package main

import (
	"os"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// redirectStdIO points fds 1 and 2 at path so runtime panics from any
// goroutine land in the file.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return pkgerrors.Wrap(err, "open stdio log")
	}
	defer f.Close()

	for _, target := range []*os.File{os.Stdout, os.Stderr} {
		if err := unix.Dup2(int(f.Fd()), int(target.Fd())); err != nil {
			return pkgerrors.Wrapf(err, "dup2 onto fd %d", target.Fd())
		}
	}
	return nil
}
