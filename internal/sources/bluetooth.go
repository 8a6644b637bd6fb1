package sources

import (
	"sync"

	pkgerrors "github.com/pkg/errors"
	"tinygo.org/x/bluetooth"
)

var ErrLinkNotStarted = pkgerrors.New("bluetooth link watcher not started")

type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// LinkWatcher follows BLE connections on the local adapter. The companion
// link is up while at least one central is connected.
type LinkWatcher struct {
	Logger logger

	adapter *bluetooth.Adapter
	mu      sync.Mutex
	peers   int
	started bool
	up      bool
}

func NewLinkWatcher() *LinkWatcher {
	return &LinkWatcher{adapter: bluetooth.DefaultAdapter}
}

// Start enables the adapter and reports each change of the link through emit.
func (w *LinkWatcher) Start(emit func(connected bool)) error {
	w.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		w.observe(connected, emit)
	})
	if err := w.adapter.Enable(); err != nil {
		return pkgerrors.Wrap(err, "enable bluetooth adapter")
	}
	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	if w.Logger != nil {
		w.Logger.Infof("bluetooth", "adapter enabled")
	}
	return nil
}

func (w *LinkWatcher) observe(connected bool, emit func(bool)) {
	w.mu.Lock()
	if connected {
		w.peers++
	} else if w.peers > 0 {
		w.peers--
	}
	up := w.peers > 0
	changed := up != w.up
	w.up = up
	w.mu.Unlock()
	if changed {
		emit(up)
	}
}

// Connected reports the current link state.
func (w *LinkWatcher) Connected() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return false, ErrLinkNotStarted
	}
	return w.up, nil
}
