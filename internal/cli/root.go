// internal/cli/root.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/waozixyz/kryon-gui/gui"
	"github.com/waozixyz/kryon-gui/internal/app"
	"github.com/waozixyz/kryon-gui/internal/config"
	"github.com/waozixyz/kryon-gui/internal/observability"
	"github.com/waozixyz/kryon-gui/render"
)

// RendererFactory builds the backend for a run. assetDir is where images are
// looked up.
type RendererFactory func(assetDir string, logger *zap.Logger) render.Renderer

// QuitAction is the action id that closes the application.
const QuitAction = "quit"

// NewRootCmd creates the kryon command. Each call has its own viper instance.
func NewRootCmd(newRenderer RendererFactory) *cobra.Command {
	var (
		cfgFile  string
		headless bool
		frames   int
		cfg      *config.Config
	)
	v := viper.New()
	config.SetDefaults(v)

	cmd := &cobra.Command{
		Use:   "kryon [scene.json]",
		Short: "Render a Kryon scene file.",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				v.Set("scene.path", args[0])
			}
			if err := initializeConfig(v, cfgFile); err != nil {
				return err
			}
			var err error
			cfg, err = config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.NewDefaultConfig().Logger)
				return err
			}
			observability.InitializeLogger(cfg.Logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			defer observability.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			assetDir := cfg.Scene.AssetDir
			if assetDir == "" {
				assetDir = filepath.Dir(cfg.Scene.Path)
			}

			var renderer render.Renderer
			if headless {
				renderer = render.NewMockRenderer(cfg.Window.Width, cfg.Window.Height, frames)
			} else {
				renderer = newRenderer(assetDir, logger.Named("renderer"))
			}

			handlers := map[string]app.ActionHandler{
				QuitAction: func(gui.ClickEvent) { cancel() },
			}
			n, err := app.Run(ctx, renderer, cfg, logger, handlers)
			if err != nil {
				return err
			}
			cmd.Printf("ran %d frames\n", n)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./kryon.yaml)")
	cmd.Flags().StringP("scene", "s", "", "scene file to load")
	cmd.Flags().Int("max-rounds", gui.DefaultMaxRounds, "layout rounds per frame")
	cmd.Flags().BoolVar(&headless, "headless", false, "run without a window")
	cmd.Flags().IntVar(&frames, "frames", 1, "frames to run in headless mode (0 runs until interrupted)")
	_ = v.BindPFlag("scene.path", cmd.Flags().Lookup("scene"))
	_ = v.BindPFlag("layout.max_rounds", cmd.Flags().Lookup("max-rounds"))

	return cmd
}

// initializeConfig reads the config file. A missing default file is not an error.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("kryon")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
