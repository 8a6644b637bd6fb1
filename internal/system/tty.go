//go:build linux

package system

import (
	"os"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// Active VT first, then the current console.
var vtPaths = []string{"/dev/tty", "/dev/tty0"}

// SetGraphicsMode switches the active console to graphics mode so the
// console cursor and kernel messages stay off the watchface.
func SetGraphicsMode() error { return setKDMode(kdGraphics, "KD_GRAPHICS") }

// RestoreTextMode restores the console to text mode.
func RestoreTextMode() error { return setKDMode(kdText, "KD_TEXT") }

// HideCursor writes the ANSI escape to hide the cursor to the active VT.
func HideCursor() error { return writeVT("\x1b[?25l") }

func ShowCursor() error { return writeVT("\x1b[?25h") }

func setKDMode(mode int, name string) error {
	var lastErr error
	for _, p := range vtPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = pkgerrors.Wrapf(err, "open %s", p)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = pkgerrors.Wrapf(err, "%s on %s", name, p)
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return pkgerrors.Errorf("%s failed: no console", name)
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range vtPaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return pkgerrors.Wrap(lastErr, "write VT")
}
