package web

import (
	"net/http"
)

type APIV1Config struct {
	Deps APIV1Deps
}

// RegisterAPIV1 registers the companion API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, cfg APIV1Config) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1RouterWithDeps(cfg.Deps)))
}

// RegisterUI serves either embedded UI assets or a directory. The settings
// page is also reachable at /config, the address encoded in the pairing code.
func RegisterUI(mux *http.ServeMux, staticDir string) {
	ui := StaticUIHandler(staticDir)
	mux.Handle("/", ui)
	mux.Handle(configPagePath, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r2 := r.Clone(r.Context())
		r2.URL.Path = "/"
		ui.ServeHTTP(w, r2)
	}))
}

// NewDefaultMux builds the standard mux used by both the device and simulator:
// - /api/v1/* for the API
// - / and /config for the settings page
func NewDefaultMux(staticDir string, cfg APIV1Config) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, cfg)
	RegisterUI(mux, staticDir)
	return mux
}
