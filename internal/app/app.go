// internal/app/app.go
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/waozixyz/kryon-gui/ecs"
	"github.com/waozixyz/kryon-gui/gui"
	"github.com/waozixyz/kryon-gui/render"
)

// ActionHandler is called when a Button carrying the registered action id is clicked.
type ActionHandler func(click gui.ClickEvent)

// App owns the world and the layout state and drives a renderer frame by frame.
type App struct {
	world    *ecs.World
	renderer render.Renderer
	resolver *gui.LayoutResolver
	handlers map[string]ActionHandler
	logger   *zap.Logger
	report   gui.LayoutReport

	maxRounds int
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the App's logger; the layout resolver logs under its "layout" name.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMaxRounds caps the layout rounds per frame.
func WithMaxRounds(n int) Option {
	return func(a *App) {
		a.maxRounds = n
	}
}

// New creates an App over world.
func New(world *ecs.World, renderer render.Renderer, opts ...Option) *App {
	a := &App{
		world:     world,
		renderer:  renderer,
		handlers:  make(map[string]ActionHandler),
		logger:    zap.NewNop(),
		maxRounds: gui.DefaultMaxRounds,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.resolver = gui.NewLayoutResolver(gui.NewResolvedRects(),
		gui.WithMaxRounds(a.maxRounds), gui.WithLogger(a.logger.Named("layout")))
	return a
}

func (a *App) World() *ecs.World { return a.world }

func (a *App) Rects() *gui.ResolvedRects { return a.resolver.Rects() }

// LastReport returns the layout report of the most recent frame.
func (a *App) LastReport() gui.LayoutReport { return a.report }

// RegisterActionHandler binds fn to clicks on buttons whose Action id is id.
func (a *App) RegisterActionHandler(id string, fn ActionHandler) {
	if id == "" || fn == nil {
		a.logger.Warn("App: ignoring action handler with empty id or nil function", zap.String("id", id))
		return
	}
	if _, exists := a.handlers[id]; exists {
		a.logger.Warn("App: replacing action handler", zap.String("id", id))
	}
	a.handlers[id] = fn
}

// KeyboardCaptured reports whether an input field holds keyboard focus.
func (a *App) KeyboardCaptured() bool {
	_, ok := gui.FocusedInputField(a.world)
	return ok
}

// Frame runs one frame. Layout resolves before any system reads the cache.
func (a *App) Frame() {
	pointer := a.renderer.PollPointer()
	keyboard := a.renderer.PollKeyboard()

	a.report = a.resolver.Resolve(a.world, a.renderer)
	rects := a.resolver.Rects()

	clicks := gui.ButtonSystem(a.world, rects, pointer)
	gui.CheckboxSystem(a.world)
	gui.SliderSystem(a.world, rects, pointer)
	gui.InputFieldSystem(a.world, rects, pointer, keyboard, a.renderer.MeasureText)
	gui.DragSystem(a.world, rects, pointer)
	a.dispatch(clicks)

	a.renderer.BeginFrame()
	a.renderer.DrawGui(a.world, rects)
	a.renderer.EndFrame()
}

func (a *App) dispatch(clicks []gui.ClickEvent) {
	for _, click := range clicks {
		if click.ActionID == "" {
			continue
		}
		handler, ok := a.handlers[click.ActionID]
		if !ok {
			a.logger.Debug("App: click with no registered handler",
				zap.String("action_id", click.ActionID), zap.Uint32("entity", uint32(click.Entity)))
			continue
		}
		handler(click)
	}
}

// Run opens the window and runs frames until the renderer asks to close or
// ctx is cancelled. It returns the number of frames run.
func (a *App) Run(ctx context.Context, config render.WindowConfig) (int, error) {
	if err := a.renderer.Init(config); err != nil {
		a.renderer.Cleanup()
		return 0, fmt.Errorf("failed to initialize renderer: %w", err)
	}
	defer a.renderer.Cleanup()

	a.logger.Info("Entering main loop...")
	frames := 0
	for !a.renderer.ShouldClose() {
		if ctx.Err() != nil {
			a.logger.Info("App: context cancelled, leaving main loop")
			break
		}
		a.Frame()
		frames++
	}
	a.logger.Info("Exiting.", zap.Int("frames", frames))
	return frames, nil
}
