//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// WatchExitKey reads every evdev device under /dev/input and calls onExit
// once when key is pressed. Without input devices it logs and returns.
func WatchExitKey(ctx context.Context, l logger, key uint16, onExit func()) {
	if onExit == nil {
		return
	}
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if l != nil {
			l.Infof("input", "no evdev devices, exit key disabled")
		}
		return
	}

	tvSize := binary.Size(unix.Timeval{})
	var once sync.Once
	trigger := func() {
		once.Do(func() {
			if l != nil {
				l.Infof("input", "exit key pressed")
			}
			onExit()
		})
	}
	for _, p := range paths {
		go readKeys(ctx, p, tvSize, key, trigger)
	}
}

func readKeys(ctx context.Context, path string, tvSize int, key uint16, trigger func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	defer unix.Close(fd)

	buf := make([]byte, 4096)
	for ctx.Err() == nil {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(fds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, code := range keyPresses(buf[:n], tvSize) {
			if code == key {
				trigger()
				return
			}
		}
	}
}
