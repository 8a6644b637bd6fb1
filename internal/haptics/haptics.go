// Package haptics drives the vibration motor.
package haptics

import (
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Vibrator plays alerts on the wrist.
type Vibrator interface {
	DoublePulse() error
}

// Pattern alternates motor-on and motor-off durations, starting with on.
type Pattern []time.Duration

// DoublePulsePattern is two short buzzes.
var DoublePulsePattern = Pattern{200 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond}

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// GPIOVibrator switches a motor driver on a GPIO pin. Patterns play in the
// background one at a time so callers on the event loop never wait on them.
type GPIOVibrator struct {
	Logger logger

	pin   gpio.PinOut
	sleep func(time.Duration)
	mu    sync.Mutex
	wg    sync.WaitGroup
}

func NewGPIOVibrator(pin gpio.PinOut) *GPIOVibrator {
	return &GPIOVibrator{pin: pin, sleep: time.Sleep}
}

// OpenGPIOVibrator initializes the host drivers and looks the pin up by name, e.g. "GPIO26".
func OpenGPIOVibrator(name string) (*GPIOVibrator, error) {
	if _, err := host.Init(); err != nil {
		return nil, pkgerrors.Wrap(err, "periph host init")
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, pkgerrors.Errorf("no gpio pin named %q", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, pkgerrors.Wrapf(err, "set %s low", name)
	}
	return NewGPIOVibrator(pin), nil
}

func (v *GPIOVibrator) DoublePulse() error {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		if err := v.Play(DoublePulsePattern); err != nil && v.Logger != nil {
			v.Logger.Errorf("haptics", "double pulse failed: %v", err)
		}
	}()
	return nil
}

// Play runs p to completion and leaves the motor off.
func (v *GPIOVibrator) Play(p Pattern) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, d := range p {
		level := gpio.Low
		if i%2 == 0 {
			level = gpio.High
		}
		if err := v.pin.Out(level); err != nil {
			_ = v.pin.Out(gpio.Low)
			return pkgerrors.Wrap(err, "drive motor pin")
		}
		v.sleep(d)
	}
	return v.pin.Out(gpio.Low)
}

// Wait blocks until queued patterns have played.
func (v *GPIOVibrator) Wait() { v.wg.Wait() }

func (v *GPIOVibrator) Close() error {
	v.wg.Wait()
	return v.pin.Out(gpio.Low)
}

// LogVibrator stands in for a motor where there is none.
type LogVibrator struct {
	Logger logger
	mu     sync.Mutex
	pulses int
}

func (v *LogVibrator) DoublePulse() error {
	v.mu.Lock()
	v.pulses++
	v.mu.Unlock()
	if v.Logger != nil {
		v.Logger.Infof("haptics", "double pulse")
	}
	return nil
}

// Pulses returns how many double pulses were requested.
func (v *LogVibrator) Pulses() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pulses
}
