package sources

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"

	"github.com/rook-computer/wristface/internal/state"
)

const DefaultBatteryInterval = 30 * time.Second

var ErrNoBattery = pkgerrors.New("no battery found")

// BatteryPoller samples the system battery and reports changes in charge
// level or plug state.
type BatteryPoller struct {
	Interval time.Duration
	Logger   logger

	read func() ([]*battery.Battery, error)
	mu   sync.Mutex
	last *state.BatteryStatus
}

func NewBatteryPoller(interval time.Duration) *BatteryPoller {
	if interval <= 0 {
		interval = DefaultBatteryInterval
	}
	return &BatteryPoller{Interval: interval, read: battery.GetAll}
}

// Peek reads the battery now.
func (p *BatteryPoller) Peek() (state.BatteryStatus, error) {
	bats, err := p.read()
	if err != nil && len(bats) == 0 {
		return state.BatteryStatus{}, pkgerrors.Wrap(err, "read batteries")
	}
	return statusFrom(bats)
}

// Run polls until ctx is done, calling emit when the status differs from
// the last one seen.
func (p *BatteryPoller) Run(ctx context.Context, emit func(state.BatteryStatus)) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	p.poll(emit)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(emit)
		}
	}
}

func (p *BatteryPoller) poll(emit func(state.BatteryStatus)) {
	status, err := p.Peek()
	if err != nil {
		if p.Logger != nil {
			p.Logger.Errorf("battery", "poll failed: %v", err)
		}
		return
	}
	p.mu.Lock()
	changed := p.last == nil || *p.last != status
	p.last = &status
	p.mu.Unlock()
	if changed {
		emit(status)
	}
}

// statusFrom folds every battery into one percentage. The pack counts as
// charging when any cell charges or sits full on the charger.
func statusFrom(bats []*battery.Battery) (state.BatteryStatus, error) {
	var current, full float64
	charging := false
	for _, bat := range bats {
		if bat == nil {
			continue
		}
		current += bat.Current
		full += bat.Full
		if bat.State == battery.Charging || bat.State == battery.Full {
			charging = true
		}
	}
	if full <= 0 {
		return state.BatteryStatus{}, ErrNoBattery
	}
	percent := int(math.Round(current / full * 100))
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return state.BatteryStatus{Percent: percent, Charging: charging}, nil
}
