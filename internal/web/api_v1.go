package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rook-computer/wristface/internal/companion"
	"github.com/rook-computer/wristface/internal/face"
	"github.com/rook-computer/wristface/internal/render"
	"github.com/rook-computer/wristface/internal/state"
)

const (
	maxHealthBody     = 1 << 10
	defaultPairingPx  = 256
	maxPairingPx      = 1024
	configPagePath    = "/config"
	contentTypeJSON   = "application/json; charset=utf-8"
	contentTypePNG    = "image/png"
	headerContentType = "Content-Type"
)

var errNoEventLoop = errors.New("event loop not configured")

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type healthRequest struct {
	Steps *float64 `json:"steps"`
}

type stateResponse struct {
	Settings  settingsResponse  `json:"settings"`
	Battery   batteryResponse   `json:"battery"`
	Steps     stepsResponse     `json:"steps"`
	Bluetooth bluetoothResponse `json:"bluetooth"`
	Weather   weatherResponse   `json:"weather"`
	Clock     clockResponse     `json:"clock"`
}

type settingsResponse struct {
	InvertColors bool   `json:"invertColors"`
	Background   string `json:"background"`
	Foreground   string `json:"foreground"`
}

type batteryResponse struct {
	Percent  int  `json:"percent"`
	Charging bool `json:"charging"`
}

type stepsResponse struct {
	Steps float64 `json:"steps"`
	Goal  int     `json:"goal"`
}

type bluetoothResponse struct {
	Connected   bool `json:"connected"`
	Known       bool `json:"known"`
	IconVisible bool `json:"iconVisible"`
}

type weatherResponse struct {
	IconCode    string `json:"iconCode"`
	Temperature string `json:"temperature"`
	HasIcon     bool   `json:"hasIcon"`
}

type clockResponse struct {
	Time string `json:"time"`
	Date string `json:"date"`
	Day  string `json:"day"`
}

func apiV1RouterWithDeps(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/inbox", func(w http.ResponseWriter, r *http.Request) { handleInbox(w, r, deps) })
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { handleHealth(w, r, deps) })
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, deps) })
	mux.HandleFunc("/pairing.png", func(w http.ResponseWriter, r *http.Request) { handlePairing(w, r, deps) })
	return mux
}

// handleInbox accepts one companion message. Rejected bodies are still
// reported to the loop so the drop is logged alongside the other events.
func handleInbox(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var (
		msg companion.Message
		err error
	)
	if r.ContentLength > int64(deps.InboxSize) {
		err = companion.ErrInboxOverflow
	} else {
		msg, err = companion.Decode(r.Body, deps.InboxSize)
	}
	if err != nil {
		if postErr := deps.post(r, face.InboxDropped{Reason: err}); postErr != nil {
			deps.errorf("inbox: could not report drop: %v", postErr)
		}
		if errors.Is(err, companion.ErrInboxOverflow) {
			writeAPIError(w, http.StatusRequestEntityTooLarge, "inbox_overflow", err.Error())
			return
		}
		writeAPIError(w, http.StatusBadRequest, "malformed_message", err.Error())
		return
	}

	if err := deps.post(r, face.InboxReceived{Message: msg}); err != nil {
		deps.errorf("inbox: %v", err)
		writeAPIError(w, http.StatusServiceUnavailable, "unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func handleHealth(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Steps == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_supported", "health data not supported")
		return
	}

	var req healthRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxHealthBody)).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if req.Steps == nil || *req.Steps < 0 {
		writeAPIError(w, http.StatusBadRequest, "bad_request", "steps must be a non-negative number")
		return
	}

	deps.Steps.Set(deps.Now(), *req.Steps)
	if err := deps.post(r, face.HealthMovement{}); err != nil {
		deps.errorf("health: %v", err)
		writeAPIError(w, http.StatusServiceUnavailable, "unavailable", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func handleState(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.State == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "unavailable", "state not available")
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(deps.State.Snapshot()))
}

func newStateResponse(st state.State) stateResponse {
	return stateResponse{
		Settings: settingsResponse{
			InvertColors: st.Settings.InvertColors,
			Background:   st.Settings.Background.String(),
			Foreground:   st.Settings.Foreground.String(),
		},
		Battery: batteryResponse{Percent: st.Battery.Percent, Charging: st.Battery.Charging},
		Steps:   stepsResponse{Steps: st.Steps.Steps, Goal: st.Steps.Goal},
		Bluetooth: bluetoothResponse{
			Connected:   st.Bluetooth.Connected,
			Known:       st.Bluetooth.Known,
			IconVisible: st.BluetoothIconVisible(),
		},
		Weather: weatherResponse{
			IconCode:    st.Weather.IconCode,
			Temperature: st.Weather.TemperatureText,
			HasIcon:     st.WeatherIcon != nil,
		},
		Clock: clockResponse{Time: st.Clock.Time, Date: st.Clock.Date, Day: st.Clock.Day},
	}
}

// handlePairing renders a QR code pointing the companion at the config page.
func handlePairing(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	size := defaultPairingPx
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxPairingPx {
			writeAPIError(w, http.StatusBadRequest, "bad_request", "size must be between 1 and 1024")
			return
		}
		size = n
	}

	data, err := render.GenerateQRCodePNG(pairingURL(r, deps.PublicURL), size)
	if err != nil {
		deps.errorf("pairing qr: %v", err)
		writeAPIError(w, http.StatusInternalServerError, "internal_error", "could not render QR code")
		return
	}
	w.Header().Set(headerContentType, contentTypePNG)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func pairingURL(r *http.Request, publicURL string) string {
	base := strings.TrimRight(publicURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + configPagePath
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
