package face

import (
	"time"

	"github.com/rook-computer/wristface/internal/companion"
	"github.com/rook-computer/wristface/internal/haptics"
	"github.com/rook-computer/wristface/internal/icons"
	"github.com/rook-computer/wristface/internal/settings"
	"github.com/rook-computer/wristface/internal/state"
)

const DefaultStepGoal = 100

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// BatteryService reports the current charge on demand.
type BatteryService interface {
	Peek() (state.BatteryStatus, error)
}

// HealthService sums today's steps.
type HealthService interface {
	StepsToday(now time.Time) float64
}

// ConnectionService reports whether the companion link is up.
type ConnectionService interface {
	Connected() (bool, error)
}

// Outbox queues an outbound message; results come back as OutboxSent or OutboxFailed.
type Outbox interface {
	Send(req companion.Request) error
}

// Controller owns the watch state and implements Handler. It must only be
// driven from one goroutine, normally the Loop's.
type Controller struct {
	Battery    BatteryService
	Health     HealthService
	Connection ConnectionService
	Outbox     Outbox
	Vibrator   haptics.Vibrator
	Logger     logger

	Clock24h bool
	StepGoal int
	Now      func() time.Time

	store         *state.Store
	settings      settings.Store
	weatherSlot   *icons.Slot
	bluetoothSlot *icons.Slot
}

func NewController(store *state.Store, settingsStore settings.Store, bank icons.Bank) *Controller {
	return &Controller{
		StepGoal:      DefaultStepGoal,
		Now:           time.Now,
		store:         store,
		settings:      settingsStore,
		weatherSlot:   icons.NewSlot(bank),
		bluetoothSlot: icons.NewSlot(bank),
	}
}

// Start loads settings and seeds every tracker from its service, then marks
// the whole face dirty and persists the settings once.
func (c *Controller) Start(now time.Time) {
	current := c.settings.Load()
	c.store.SetSettings(current)
	c.store.UpdateClock(FormatClock(now, c.Clock24h))

	if c.Battery != nil {
		if status, err := c.Battery.Peek(); err != nil {
			c.errorf("battery peek failed: %v", err)
		} else {
			c.store.UpdateBattery(clampBattery(status))
		}
	}
	c.store.UpdateSteps(c.steps(now))
	if c.Connection != nil {
		if connected, err := c.Connection.Connected(); err != nil {
			c.errorf("connection peek failed: %v", err)
		} else {
			c.store.UpdateBluetooth(state.BluetoothStatus{Connected: connected, Known: true})
		}
	}

	c.resolveIcons()
	c.store.MarkDirty(state.SurfaceAll)
	c.persist(current)
	c.infof("started, settings=%+v", current)
}

// Close releases the icon bitmaps.
func (c *Controller) Close() {
	c.weatherSlot.Close()
	c.bluetoothSlot.Close()
	c.store.SetIcons(nil, nil)
}

func (c *Controller) MinuteTick(now time.Time) {
	c.store.UpdateClock(FormatClock(now, c.Clock24h))
	c.store.MarkDirty(state.SurfaceClock | state.SurfaceDate | state.SurfaceDay)
	// The day counter resets at midnight without a movement event.
	if steps := c.steps(now); steps != c.store.Snapshot().Steps {
		c.store.UpdateSteps(steps)
		c.store.MarkDirty(state.SurfaceSteps)
	}
	if WeatherDue(now) {
		c.requestWeather()
	}
}

func (c *Controller) BatteryChanged(status state.BatteryStatus) {
	c.store.UpdateBattery(clampBattery(status))
	c.store.MarkDirty(state.SurfaceBattery)
}

func (c *Controller) HealthMovement() {
	c.store.UpdateSteps(c.steps(c.now()))
	c.store.MarkDirty(state.SurfaceSteps)
}

func (c *Controller) ConnectionChanged(connected bool) {
	prev := c.store.Snapshot().Bluetooth
	c.store.UpdateBluetooth(state.BluetoothStatus{Connected: connected, Known: true})
	c.store.MarkDirty(state.SurfaceBluetooth)

	// An unknown prior state counts as connected: the link watcher only
	// reports changes.
	wasConnected := prev.Connected || !prev.Known
	if connected || !wasConnected {
		return
	}
	c.infof("companion disconnected")
	if c.Vibrator == nil {
		return
	}
	if err := c.Vibrator.DoublePulse(); err != nil {
		c.errorf("vibration failed: %v", err)
	}
}

func (c *Controller) InboxReceived(msg companion.Message) {
	dirty := state.SurfaceNone
	if msg.HasWeather() {
		c.store.UpdateWeather(state.WeatherStatus{
			IconCode:        *msg.Icon,
			TemperatureText: FormatTemperature(*msg.Temperature),
		})
		dirty |= state.SurfaceTemperature | state.SurfaceWeatherIcon
	} else if msg.Temperature != nil || msg.Icon != nil {
		c.infof("inbox: temperature and icon must arrive together, weather left unchanged")
	}

	if msg.InvertColors != nil {
		current := c.store.Snapshot().Settings
		next := settings.ApplyInvert(msg.InvertColors.Enabled())
		if next != current {
			c.store.SetSettings(next)
			dirty = state.SurfaceAll
		}
		c.persist(next)
	}

	c.resolveIcons()
	c.store.MarkDirty(dirty)
}

func (c *Controller) InboxDropped(reason error) {
	c.errorf("inbound message dropped: %v", reason)
}

func (c *Controller) OutboxSent(req companion.Request) {
	c.infof("outbox send success, id=%s", req.ID)
}

func (c *Controller) OutboxFailed(req companion.Request, err error) {
	c.errorf("outbox send failed, id=%s: %v", req.ID, err)
}

func (c *Controller) requestWeather() {
	if c.Outbox == nil {
		c.infof("weather due but no outbox configured")
		return
	}
	req := companion.NewWeatherRequest()
	if err := c.Outbox.Send(req); err != nil {
		c.errorf("outbox send failed, id=%s: %v", req.ID, err)
		return
	}
	c.infof("weather requested, id=%s", req.ID)
}

// resolveIcons points both icon slots at the assets matching the current
// weather code and color scheme. An unknown code clears the weather icon.
func (c *Controller) resolveIcons() {
	snap := c.store.Snapshot()
	invert := snap.Settings.InvertColors

	id, ok := icons.Resolve(snap.Weather.IconCode, invert)
	if !ok && snap.Weather.IconCode != "" {
		c.infof("unknown weather icon code %q, clearing icon", snap.Weather.IconCode)
	}
	if _, err := c.weatherSlot.Swap(id); err != nil {
		c.errorf("weather icon %s: %v", id, err)
	}
	if _, err := c.bluetoothSlot.Swap(icons.BluetoothAsset(invert)); err != nil {
		c.errorf("bluetooth icon: %v", err)
	}
	c.store.SetIcons(c.weatherSlot.Current(), c.bluetoothSlot.Current())
}

func (c *Controller) persist(s settings.Settings) {
	if err := c.settings.Save(s); err != nil {
		c.errorf("saving settings failed: %v", err)
	}
}

func (c *Controller) steps(now time.Time) state.StepStatus {
	goal := c.StepGoal
	if goal <= 0 {
		goal = DefaultStepGoal
	}
	status := state.StepStatus{Goal: goal}
	if c.Health != nil {
		status.Steps = c.Health.StepsToday(now)
	}
	return status
}

func (c *Controller) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func clampBattery(status state.BatteryStatus) state.BatteryStatus {
	if status.Percent < 0 {
		status.Percent = 0
	}
	if status.Percent > 100 {
		status.Percent = 100
	}
	return status
}

func (c *Controller) infof(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Infof("face", format, args...)
	}
}

func (c *Controller) errorf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Errorf("face", format, args...)
	}
}
