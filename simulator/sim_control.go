package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"

	"github.com/rook-computer/wristface/internal/app"
	"github.com/rook-computer/wristface/internal/companion"
	"github.com/rook-computer/wristface/internal/face"
	"github.com/rook-computer/wristface/internal/haptics"
	"github.com/rook-computer/wristface/internal/render"
)

type SimFaults struct {
	OutboxFail bool `json:"outboxFail"`
}

// ConsoleOutbox prints each outbound request instead of reaching a phone.
type ConsoleOutbox struct {
	companion.RecordingOutbox

	mu   sync.RWMutex
	fail bool
}

func (o *ConsoleOutbox) Deliver(ctx context.Context, req companion.Request) error {
	o.mu.RLock()
	fail := o.fail
	o.mu.RUnlock()

	keys := make([]string, 0, len(req.Payload))
	for k := range req.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	payload := ""
	for _, k := range keys {
		payload += " " + k + "=" + strconv.Itoa(req.Payload[k])
	}

	if err := o.RecordingOutbox.Deliver(ctx, req); err != nil {
		return err
	}
	if fail {
		color.Red("outbox %s:%s (simulated failure)", req.ID, payload)
		return pkgerrors.New("simulated outbox failure")
	}
	color.Cyan("outbox %s:%s", req.ID, payload)
	return nil
}

func (o *ConsoleOutbox) setFail(fail bool) {
	o.mu.Lock()
	o.fail = fail
	o.mu.Unlock()
}

// SimControl drives the watch with synthetic events.
type SimControl struct {
	app      *app.App
	frames   *render.ImageOutput
	outbox   *ConsoleOutbox
	vibrator *haptics.LogVibrator

	faults struct {
		mu sync.RWMutex
		v  SimFaults
	}
}

func NewSimControl(a *app.App, frames *render.ImageOutput, outbox *ConsoleOutbox, vibrator *haptics.LogVibrator) *SimControl {
	return &SimControl{app: a, frames: frames, outbox: outbox, vibrator: vibrator}
}

func (c *SimControl) Faults() SimFaults {
	c.faults.mu.RLock()
	defer c.faults.mu.RUnlock()
	return c.faults.v
}

func (c *SimControl) SetFaults(v SimFaults) {
	c.faults.mu.Lock()
	c.faults.v = v
	c.faults.mu.Unlock()
	c.outbox.setFail(v.OutboxFail)
}

func (c *SimControl) post(r *http.Request, ev face.Event) error {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	return c.app.Loop.Post(ctx, ev)
}

type simStatus struct {
	Presents int                 `json:"presents"`
	Pulses   int                 `json:"pulses"`
	Outbox   []companion.Request `json:"outbox"`
	Faults   SimFaults           `json:"faults"`
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/tick", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		now := time.Now()
		if raw := r.URL.Query().Get("at"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeSimError(w, http.StatusBadRequest, "at must be RFC3339")
				return
			}
			now = parsed
		}
		if err := control.post(r, face.MinuteTick{Now: now}); err != nil {
			writeSimError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "now": now.Format(time.RFC3339)})
	})

	mux.HandleFunc("/sim/battery", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var body struct {
			Percent  *int `json:"percent"`
			Charging bool `json:"charging"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Percent == nil {
			writeSimError(w, http.StatusBadRequest, "expected {\"percent\": n, \"charging\": bool}")
			return
		}
		ev := face.BatteryChanged{}
		ev.Status.Percent = *body.Percent
		ev.Status.Charging = body.Charging
		if err := control.post(r, ev); err != nil {
			writeSimError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/sim/bluetooth", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var body struct {
			Connected *bool `json:"connected"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Connected == nil {
			writeSimError(w, http.StatusBadRequest, "expected {\"connected\": bool}")
			return
		}
		if err := control.post(r, face.ConnectionChanged{Connected: *body.Connected}); err != nil {
			writeSimError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/sim/steps", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var body struct {
			Add float64 `json:"add"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Add < 0 {
			writeSimError(w, http.StatusBadRequest, "expected {\"add\": n} with n >= 0")
			return
		}
		control.app.Steps.Add(time.Now(), body.Add)
		if err := control.post(r, face.HealthMovement{}); err != nil {
			writeSimError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, map[string]any{"ok": true, "steps": control.app.Steps.StepsToday(time.Now())})
	})

	mux.HandleFunc("/sim/frame.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		data, err := control.frames.PNG()
		if err != nil {
			writeSimError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})

	mux.HandleFunc("/sim/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeSimJSON(w, http.StatusOK, simStatus{
			Presents: control.frames.Presents(),
			Pulses:   control.vibrator.Pulses(),
			Outbox:   control.outbox.Requests(),
			Faults:   control.Faults(),
		})
	})

	mux.HandleFunc("/sim/faults", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.Faults())
		case http.MethodPost:
			var patch struct {
				OutboxFail *bool `json:"outboxFail"`
			}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			current := control.Faults()
			if patch.OutboxFail != nil {
				current.OutboxFail = *patch.OutboxFail
			}
			control.SetFaults(current)
			writeSimJSON(w, http.StatusOK, current)
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
