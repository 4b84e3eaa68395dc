// cmd/kryon-raylib/main.go
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/waozixyz/kryon-gui/internal/cli"
	"github.com/waozixyz/kryon-gui/render"
	"github.com/waozixyz/kryon-gui/render/raylib"
)

func main() {
	root := cli.NewRootCmd(func(assetDir string, logger *zap.Logger) render.Renderer {
		return raylib.NewRaylibRenderer(assetDir, logger)
	})
	root.Use = "kryon-raylib [scene.json]"

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
