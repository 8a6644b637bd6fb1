// Package system holds the host console plumbing used by the watch daemon.
package system

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Console takes over the text console for the watchface and gives it back.
type Console struct {
	Logger logger
	active bool
}

// Acquire switches to graphics mode and hides the cursor. Failures are
// logged; the face still renders, only with a cursor blinking over it.
func (c *Console) Acquire() {
	if err := SetGraphicsMode(); err != nil {
		c.errorf("KD_GRAPHICS failed: %v", err)
	} else {
		c.infof("KD_GRAPHICS set")
	}
	if err := HideCursor(); err != nil {
		c.errorf("hide cursor failed: %v", err)
	}
	c.active = true
}

// Release restores the cursor and text mode. It is safe to call twice.
func (c *Console) Release() {
	if !c.active {
		return
	}
	c.active = false
	if err := ShowCursor(); err != nil {
		c.errorf("show cursor failed: %v", err)
	}
	if err := RestoreTextMode(); err != nil {
		c.errorf("KD_TEXT failed: %v", err)
	} else {
		c.infof("KD_TEXT set")
	}
}

func (c *Console) infof(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Infof("tty", format, args...)
	}
}

func (c *Console) errorf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("tty", format, args...)
	}
}
