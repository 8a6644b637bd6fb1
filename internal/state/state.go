package state

import (
	"sync"

	"github.com/rook-computer/wristface/internal/icons"
	"github.com/rook-computer/wristface/internal/settings"
)

type BatteryStatus struct {
	Percent  int
	Charging bool
}

type StepStatus struct {
	Steps float64
	Goal  int
}

type BluetoothStatus struct {
	Connected bool
	// Known is false until the first connectivity report.
	Known bool
}

type WeatherStatus struct {
	IconCode        string
	TemperatureText string
}

type ClockText struct {
	Time string
	Date string
	Day  string
}

// State is the full watchface model read by the screen.
type State struct {
	Settings      settings.Settings
	Battery       BatteryStatus
	Steps         StepStatus
	Bluetooth     BluetoothStatus
	Weather       WeatherStatus
	Clock         ClockText
	WeatherIcon   *icons.Bitmap
	BluetoothIcon *icons.Bitmap
	// Dirty is the set of surfaces to repaint; filled in by Store.TakeDirty.
	Dirty Surface
}

// BluetoothIconVisible reports whether the disconnected indicator is shown.
func (s State) BluetoothIconVisible() bool {
	return s.Bluetooth.Known && !s.Bluetooth.Connected
}

// Store is written by the event loop and read by the renderer.
type Store struct {
	mu    sync.RWMutex
	state State
	dirty Surface
}

func NewStore() *Store {
	return &Store{state: State{Settings: settings.Defaults()}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	snap := store.state
	snap.Dirty = store.dirty
	return snap
}

// TakeDirty returns a snapshot together with the pending dirty set and clears it.
func (store *Store) TakeDirty() State {
	store.mu.Lock()
	defer store.mu.Unlock()
	snap := store.state
	snap.Dirty = store.dirty
	store.dirty = 0
	return snap
}

func (store *Store) MarkDirty(surfaces Surface) {
	store.mu.Lock()
	store.dirty |= surfaces
	store.mu.Unlock()
}

func (store *Store) SetSettings(s settings.Settings) {
	store.mu.Lock()
	store.state.Settings = s
	store.mu.Unlock()
}

func (store *Store) UpdateBattery(battery BatteryStatus) {
	store.mu.Lock()
	store.state.Battery = battery
	store.mu.Unlock()
}

func (store *Store) UpdateSteps(steps StepStatus) {
	store.mu.Lock()
	store.state.Steps = steps
	store.mu.Unlock()
}

func (store *Store) UpdateBluetooth(bt BluetoothStatus) {
	store.mu.Lock()
	store.state.Bluetooth = bt
	store.mu.Unlock()
}

func (store *Store) UpdateWeather(weather WeatherStatus) {
	store.mu.Lock()
	store.state.Weather = weather
	store.mu.Unlock()
}

func (store *Store) UpdateClock(clock ClockText) {
	store.mu.Lock()
	store.state.Clock = clock
	store.mu.Unlock()
}

func (store *Store) SetIcons(weather, bluetooth *icons.Bitmap) {
	store.mu.Lock()
	store.state.WeatherIcon = weather
	store.state.BluetoothIcon = bluetooth
	store.mu.Unlock()
}
