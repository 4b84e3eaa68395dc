// internal/app/run.go
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/waozixyz/kryon-gui/ecs"
	"github.com/waozixyz/kryon-gui/gui"
	"github.com/waozixyz/kryon-gui/internal/config"
	"github.com/waozixyz/kryon-gui/render"
	"github.com/waozixyz/kryon-gui/scene"

	// NOTE: NO direct import of specific renderers like raylib here!
)

// LoadScene loads a scene file with the core and UI loaders into a new world.
func LoadScene(path string, logger *zap.Logger) (*ecs.World, map[string]ecs.Entity, error) {
	loader := scene.NewLoader(logger.Named("scene"))
	gui.RegisterSceneLoaders(loader)

	world := ecs.NewWorld()
	ids, err := loader.LoadFile(path, world)
	if err != nil {
		return nil, nil, err
	}
	return world, ids, nil
}

// WindowConfig converts the window section of the configuration.
func WindowConfig(cfg config.WindowConfig) (render.WindowConfig, error) {
	bg, err := config.ParseHexColor(cfg.Background)
	if err != nil {
		return render.WindowConfig{}, err
	}
	return render.WindowConfig{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Title:     cfg.Title,
		Resizable: cfg.Resizable,
		TargetFPS: cfg.TargetFPS,
		DefaultBg: bg,
	}, nil
}

// Run is the core application logic, independent of the specific renderer:
// it loads the configured scene, binds handlers and runs the main loop.
func Run(ctx context.Context, renderer render.Renderer, cfg *config.Config, logger *zap.Logger, handlers map[string]ActionHandler) (int, error) {
	if cfg.Scene.Path == "" {
		return 0, fmt.Errorf("no scene file configured (scene.path)")
	}
	windowConfig, err := WindowConfig(cfg.Window)
	if err != nil {
		return 0, err
	}

	logger.Info("Loading scene file", zap.String("path", cfg.Scene.Path))
	world, ids, err := LoadScene(cfg.Scene.Path, logger)
	if err != nil {
		return 0, fmt.Errorf("failed to load scene %q: %w", cfg.Scene.Path, err)
	}
	if world.Len() == 0 {
		logger.Warn("No entities found in scene file. Exiting.")
		return 0, nil
	}
	logger.Info("Scene loaded", zap.Int("entities", world.Len()), zap.Int("ids", len(ids)))

	a := New(world, renderer, WithLogger(logger), WithMaxRounds(cfg.Layout.MaxRounds))
	for id, fn := range handlers {
		a.RegisterActionHandler(id, fn)
	}
	return a.Run(ctx, windowConfig)
}
