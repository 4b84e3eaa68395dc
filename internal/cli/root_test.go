// internal/cli/root_test.go
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waozixyz/kryon-gui/internal/observability"
	"github.com/waozixyz/kryon-gui/render"
)

const sceneJSON = `{"entities":[
	{"id":"panel","components":{"Box":{"width":"50%","height":"50%"},"Anchor":{"x":"25%","y":"25%"}}},
	{"id":"label","components":{"Parent":"panel","Element":{},"Text":{"text":"hi"}}}
]}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, factory RendererFactory, args ...string) (string, error) {
	t.Helper()
	observability.ResetForTest()
	t.Cleanup(observability.ResetForTest)

	cmd := NewRootCmd(factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func noRenderer(t *testing.T) RendererFactory {
	return func(string, *zap.Logger) render.Renderer {
		t.Fatal("headless runs must not build the window renderer")
		return nil
	}
}

func TestHeadlessRun(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "main.json", sceneJSON)

	out, err := execute(t, noRenderer(t), "--headless", "--frames", "3", "--scene", scene)
	require.NoError(t, err)
	assert.Contains(t, out, "ran 3 frames")
}

func TestSceneAsArgument(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "main.json", sceneJSON)

	out, err := execute(t, noRenderer(t), "--headless", scene)
	require.NoError(t, err)
	assert.Contains(t, out, "ran 1 frames")
}

func TestFactoryGetsSceneDirAsAssetDir(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "main.json", sceneJSON)

	var gotDir string
	factory := func(assetDir string, _ *zap.Logger) render.Renderer {
		gotDir = assetDir
		return render.NewMockRenderer(320, 240, 2)
	}
	out, err := execute(t, factory, "--scene", scene)
	require.NoError(t, err)
	assert.Equal(t, dir, gotDir)
	assert.Contains(t, out, "ran 2 frames")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	scene := writeFile(t, dir, "main.json", sceneJSON)
	cfgPath := writeFile(t, dir, "kryon.yaml", "scene:\n  path: "+scene+"\n  asset_dir: /assets\nlogger:\n  level: warn\n")

	var gotDir string
	factory := func(assetDir string, _ *zap.Logger) render.Renderer {
		gotDir = assetDir
		return render.NewMockRenderer(320, 240, 1)
	}
	_, err := execute(t, factory, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "/assets", gotDir)
}

func TestCommandErrors(t *testing.T) {
	_, err := execute(t, noRenderer(t), "--headless")
	assert.ErrorContains(t, err, "scene.path")

	_, err = execute(t, noRenderer(t), "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error reading config file")

	_, err = execute(t, noRenderer(t), "--headless", "--max-rounds", "0", "--scene", "x.json")
	assert.ErrorContains(t, err, "layout.max_rounds")
}
