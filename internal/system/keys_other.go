//go:build !linux

package system

import "context"

func WatchExitKey(ctx context.Context, l logger, key uint16, onExit func()) {
	if l != nil {
		l.Infof("input", "exit key not supported on this platform")
	}
}
