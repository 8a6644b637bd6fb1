package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/rook-computer/wristface/internal/app"
	"github.com/rook-computer/wristface/internal/config"
	"github.com/rook-computer/wristface/internal/haptics"
	"github.com/rook-computer/wristface/internal/render"
	"github.com/rook-computer/wristface/internal/settings"
	"github.com/rook-computer/wristface/internal/web"
)

func main() {
	defaultListen := os.Getenv(config.EnvListenAddr)
	if defaultListen == "" {
		defaultListen = ":8080"
	}

	configPath := flag.String("config", "", "config file path; also configurable via "+config.EnvConfigPath)
	listenAddr := flag.String("listen", defaultListen, "http listen address; also configurable via "+config.EnvListenAddr)
	devMode := flag.Bool("dev", false, "enable permissive CORS; also configurable via "+config.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve the settings page from this directory (optional); when empty, the embedded page is served")
	settingsPath := flag.String("settings", "", "persist settings to this file; when empty, settings live in memory")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	cfg.Server.Listen = *listenAddr
	cfg.Server.Dev = cfg.Server.Dev || *devMode
	cfg.Display.Backend = config.DisplayNone

	logger := app.NewFileLogger(os.Stderr, *debug || cfg.Log.Debug)

	var store settings.Store = &settings.MemoryStore{}
	if *settingsPath != "" {
		fs := settings.NewFileStore(*settingsPath)
		fs.Logger = logger
		store = fs
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	frames := &render.ImageOutput{}
	outbox := &ConsoleOutbox{}
	vibrator := &haptics.LogVibrator{Logger: logger}

	a := app.New(cfg, render.NewRenderer(frames), store, outbox, vibrator, logger)
	control := NewSimControl(a, frames, outbox, vibrator)

	deps := a.APIDeps()
	server := web.NewHTTPServer(cfg.Server.Listen, deps)
	server.StaticDir = *staticDir
	server.DevMode = cfg.Server.Dev
	mux := web.NewDefaultMux(server.StaticDir, web.APIV1Config{Deps: deps})
	registerSimEndpoints(mux, control)
	server.Handler = mux
	a.Web = server

	bold := color.New(color.Bold)
	bold.Println("wristface simulator listening on", cfg.Server.Listen)
	fmt.Println("Settings page: http://" + trimLeadingColon(cfg.Server.Listen) + "/config")
	fmt.Println("Frame:         http://" + trimLeadingColon(cfg.Server.Listen) + "/sim/frame.png")
	fmt.Println("API:           http://" + trimLeadingColon(cfg.Server.Listen) + "/api/v1/")

	if err := a.Start(processCtx); err != nil && processCtx.Err() == nil {
		color.Red("simulator error: %v", err)
		os.Exit(1)
	}
}

func trimLeadingColon(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if addr == "" {
		return "127.0.0.1:8080"
	}
	return addr
}
