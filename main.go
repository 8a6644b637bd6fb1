package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/wristface/internal/app"
	"github.com/rook-computer/wristface/internal/companion"
	"github.com/rook-computer/wristface/internal/config"
	"github.com/rook-computer/wristface/internal/haptics"
	"github.com/rook-computer/wristface/internal/render"
	"github.com/rook-computer/wristface/internal/settings"
	"github.com/rook-computer/wristface/internal/sources"
	"github.com/rook-computer/wristface/internal/system"
)

func main() {
	fmt.Println("wristface starting")

	configPath := flag.String("config", "", "config file path; also configurable via "+config.EnvConfigPath)
	debug := flag.Bool("debug", false, "enable debug logging")
	logFile := flag.String("log", "", "append log records to this file (default: log.file from config, else stderr)")
	backend := flag.String("backend", "", "display backend: framebuffer | epaper | none; also configurable via "+config.EnvDisplay)
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via WRISTFACE_STDIO_LOG")
	exitOnF4 := flag.Bool("exit-on-f4", false, "stop when F4 is pressed on any attached keyboard")
	flag.Parse()

	// Best-effort: crashes stay diagnosable even with the console in graphics mode.
	stdioPath := *stdioLog
	if stdioPath == "" {
		stdioPath = os.Getenv("WRISTFACE_STDIO_LOG")
	}
	if stdioPath != "" {
		if err := redirectStdIO(stdioPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if *backend != "" {
		cfg.Display.Backend = *backend
		if err := cfg.Validate(); err != nil {
			fmt.Println("config error:", err)
			os.Exit(2)
		}
	}
	if *debug {
		cfg.Log.Debug = true
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	logger := newLogger(cfg.Log)
	logger.Infof("main", "display=%s listen=%s settings=%s", cfg.Display.Backend, cfg.Server.Listen, cfg.Settings.Path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settingsStore := settings.NewFileStore(cfg.Settings.Path)
	settingsStore.Logger = logger

	var deliverer companion.Deliverer = companion.NewHTTPOutbox(cfg.Companion.OutboxURL, cfg.Companion.Timeout.Duration)

	var vibrator haptics.Vibrator = &haptics.LogVibrator{Logger: logger}
	if cfg.Haptics.Pin != "" {
		v, err := haptics.OpenGPIOVibrator(cfg.Haptics.Pin)
		if err != nil {
			logger.Errorf("haptics", "vibration motor unavailable, logging pulses instead: %v", err)
		} else {
			v.Logger = logger
			defer v.Close()
			vibrator = v
		}
	}

	a := app.New(cfg, newRenderer(cfg.Display, logger), settingsStore, deliverer, vibrator, logger)
	a.Console = cfg.Display.Backend == config.DisplayFramebuffer
	a.Battery = sources.NewBatteryPoller(cfg.Sources.BatteryInterval.Duration)
	if cfg.Sources.Bluetooth {
		a.Link = sources.NewLinkWatcher()
	}
	if *exitOnF4 {
		a.ExitKey = system.KeyF4
	}

	if err := a.Start(ctx); err != nil && ctx.Err() == nil {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}

func newRenderer(cfg config.DisplayConfig, logger app.Logger) render.Renderer {
	switch cfg.Backend {
	case config.DisplayEPaper:
		return render.NewRenderer(&render.EPDOutput{SPIPort: cfg.SPIPort, Logger: logger})
	case config.DisplayNone:
		return &render.NoopRenderer{}
	default:
		return render.NewRenderer(&render.FBOutput{Path: cfg.Framebuffer, Logger: logger})
	}
}

func newLogger(cfg config.LogConfig) app.Logger {
	var w io.Writer = os.Stderr
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Println("log open error:", err)
		} else {
			w = f
		}
	}
	return app.NewFileLogger(w, cfg.Debug)
}
