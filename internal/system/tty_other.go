//go:build !linux

package system

// Console modes only exist on the Linux VT; elsewhere these are no-ops.

func SetGraphicsMode() error { return nil }
func RestoreTextMode() error { return nil }
func HideCursor() error      { return nil }
func ShowCursor() error      { return nil }
