package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/wristface/internal/app/screens"
	"github.com/rook-computer/wristface/internal/companion"
	"github.com/rook-computer/wristface/internal/config"
	"github.com/rook-computer/wristface/internal/face"
	"github.com/rook-computer/wristface/internal/haptics"
	"github.com/rook-computer/wristface/internal/health"
	"github.com/rook-computer/wristface/internal/icons"
	"github.com/rook-computer/wristface/internal/render"
	"github.com/rook-computer/wristface/internal/settings"
	"github.com/rook-computer/wristface/internal/sources"
	"github.com/rook-computer/wristface/internal/state"
	"github.com/rook-computer/wristface/internal/system"
	"github.com/rook-computer/wristface/internal/web"
)

// App wires the event sources, the controller loop, the renderer and the
// companion API together.
type App struct {
	Config     *config.Config
	Store      *state.Store
	Render     render.Renderer
	Web        web.Server
	Controller *face.Controller
	Loop       *face.Loop
	Steps      *health.DayCounter
	Outbox     *companion.AsyncOutbox
	Ticker     *sources.MinuteTicker
	Logger     Logger

	// Battery and Link are optional; without them the matching surface
	// keeps its initial value.
	Battery *sources.BatteryPoller
	Link    *sources.LinkWatcher

	// Console switches the VT to graphics mode while the face is shown.
	Console bool
	// ExitKey, when non-zero, is an evdev key code that stops the app.
	ExitKey uint16

	screen *screens.WatchfaceScreen

	exitOnce atomic.Bool
	exitCh   chan error
}

// New builds an App around cfg. The outbox delivers through d and reports
// results back into the loop.
func New(cfg *config.Config, renderer render.Renderer, settingsStore settings.Store, d companion.Deliverer, vibrator haptics.Vibrator, logger Logger) *App {
	if logger == nil {
		logger = NoopLogger{}
	}
	store := state.NewStore()
	steps := health.NewDayCounter()

	ctrl := face.NewController(store, settingsStore, icons.NewAssetBank())
	ctrl.Clock24h = cfg.Display.Clock24h
	ctrl.StepGoal = cfg.Display.StepGoal
	ctrl.Health = steps
	ctrl.Vibrator = vibrator
	ctrl.Logger = logger

	loop := face.NewLoop(ctrl, face.DefaultQueueSize)
	loop.Logger = logger

	outbox := companion.NewAsyncOutbox(d,
		func(req companion.Request) { loop.TryPost(face.OutboxSent{Request: req}) },
		func(req companion.Request, err error) { loop.TryPost(face.OutboxFailed{Request: req, Err: err}) },
	)
	outbox.Timeout = cfg.Companion.Timeout.Duration
	ctrl.Outbox = outbox

	screen := screens.NewWatchfaceScreen()
	screen.LineWidth = cfg.Display.LineWidth

	a := &App{
		Config:     cfg,
		Store:      store,
		Render:     renderer,
		Controller: ctrl,
		Loop:       loop,
		Steps:      steps,
		Outbox:     outbox,
		Ticker:     sources.NewMinuteTicker(),
		Logger:     logger,
		screen:     screen,
		exitCh:     make(chan error, 1),
	}
	server := web.NewHTTPServer(cfg.Server.Listen, a.APIDeps())
	server.DevMode = cfg.Server.Dev
	a.Web = server
	return a
}

// APIDeps returns the companion API dependencies backed by this app.
func (app *App) APIDeps() web.APIV1Deps {
	return web.APIV1Deps{
		Events:    app.Loop,
		State:     app.Store,
		Steps:     app.Steps,
		Logger:    app.Logger,
		InboxSize: app.Config.Companion.InboxSize,
		PublicURL: app.Config.Server.PublicURL,
	}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start runs the watch until ctx is done or Exit is called.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)

	if app.Render == nil {
		app.Render = &render.NoopRenderer{}
	}
	if cr, ok := app.Render.(*render.CanvasRenderer); ok {
		cr.Logger = app.Logger
		if interval := app.Config.Display.FrameInterval.Duration; interval > 0 {
			cr.FrameInterval = interval
		}
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if app.Console {
		console := &system.Console{Logger: app.Logger}
		console.Acquire()
		defer console.Release()
	}

	if err := app.setScreen(ctx); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.startLink()
	if app.Battery != nil {
		app.Battery.Logger = app.Logger
		app.Controller.Battery = app.Battery
	}
	app.Controller.Start(time.Now())
	app.Render.RedrawWithState(app.Store.TakeDirty())

	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	run(func() { _ = app.Loop.Run(runCtx) })
	run(func() { app.Render.RunLoop(runCtx, app.Store) })
	run(func() {
		app.Ticker.Run(runCtx, func(now time.Time) { app.post(runCtx, face.MinuteTick{Now: now}) })
	})
	if app.Battery != nil {
		run(func() {
			app.Battery.Run(runCtx, func(status state.BatteryStatus) {
				app.post(runCtx, face.BatteryChanged{Status: status})
			})
		})
	}
	if app.ExitKey != 0 {
		system.WatchExitKey(runCtx, app.Logger, app.ExitKey, func() { app.Exit(nil) })
	}

	if app.Web != nil {
		if err := app.Web.Start(runCtx); err != nil {
			app.Logger.Errorf("web", "server start error: %v", err)
		}
	}
	app.Logger.Infof("app", "watchface running")

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}

	cancel()
	if app.Web != nil {
		_ = app.Web.Stop()
	}
	wg.Wait()
	app.Outbox.Close()
	app.Controller.Close()
	_ = app.screen.Stop()
	app.Logger.Infof("app", "watchface stopped")
	return err
}

// startLink subscribes to companion connectivity. Without an adapter the
// controller runs without a connection service and the icon stays hidden.
func (app *App) startLink() {
	if app.Link == nil {
		return
	}
	app.Link.Logger = app.Logger
	err := app.Link.Start(func(connected bool) {
		app.Loop.TryPost(face.ConnectionChanged{Connected: connected})
	})
	if err != nil {
		app.Logger.Errorf("bluetooth", "link watcher disabled: %v", err)
		return
	}
	app.Controller.Connection = app.Link
}

func (app *App) setScreen(ctx context.Context) error {
	app.Render.SetScreen(app.screen)
	return app.screen.Start(ctx)
}

func (app *App) post(ctx context.Context, ev face.Event) {
	if err := app.Loop.Post(ctx, ev); err != nil && ctx.Err() == nil {
		app.Logger.Errorf("app", "post %s: %v", ev.Kind(), err)
	}
}

func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}
