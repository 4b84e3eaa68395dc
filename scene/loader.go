// scene/loader.go
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/waozixyz/kryon-gui/core"
	"github.com/waozixyz/kryon-gui/ecs"
)

// ErrImportCycle is returned when a scene file imports itself, directly or not.
var ErrImportCycle = errors.New("scene: import cycle")

// parentKey is the reserved component name wiring a core.Parent by entity id.
const parentKey = "Parent"

// ComponentLoader decodes data and attaches the resulting attribute(s) to e.
type ComponentLoader func(w *ecs.World, e ecs.Entity, data []byte) error

// Loader turns scene documents into entities.
type Loader struct {
	loaders map[string]ComponentLoader
	logger  *zap.Logger
}

// NewLoader creates a Loader with the core attribute loaders registered.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loader{
		loaders: make(map[string]ComponentLoader),
		logger:  logger,
	}
	l.Register("Transform", loadTransform).
		Register("Visible", loadVisible)
	return l
}

// Logger returns the logger loaders should report recoverable problems to.
func (l *Loader) Logger() *zap.Logger {
	return l.logger
}

// Register binds a component name to its loader, replacing any previous one.
func (l *Loader) Register(name string, loader ComponentLoader) *Loader {
	if name == "" || loader == nil {
		l.logger.Warn("Scene: ignoring loader registration with empty name or nil loader", zap.String("name", name))
		return l
	}
	if name == parentKey {
		l.logger.Warn("Scene: 'Parent' is reserved and cannot be overridden")
		return l
	}
	l.loaders[name] = loader
	return l
}

type pendingParent struct {
	child    ecs.Entity
	childID  string
	parentID string
}

type loadState struct {
	world    *ecs.World
	ids      map[string]ecs.Entity
	parents  []pendingParent
	visiting map[string]struct{}
}

// LoadFile loads path and everything it imports into w, then wires Parent
// references by id. It returns the id-to-entity map of the whole load.
func (l *Loader) LoadFile(path string, w *ecs.World) (map[string]ecs.Entity, error) {
	st := l.newState(w)
	l.logger.Info("Scene: loading", zap.String("path", path))
	if err := l.loadFile(st, path); err != nil {
		return nil, err
	}
	l.wireParents(st)
	l.logger.Info("Scene: loading complete", zap.Int("entities", len(st.ids)))
	return st.ids, nil
}

// Load reads a single document from r. Imports are resolved against baseDir.
func (l *Loader) Load(r io.Reader, baseDir string, w *ecs.World) (map[string]ecs.Entity, error) {
	doc, err := ReadDocument(r)
	if err != nil {
		return nil, err
	}
	st := l.newState(w)
	if err := l.loadDocument(st, doc, baseDir); err != nil {
		return nil, err
	}
	l.wireParents(st)
	return st.ids, nil
}

func (l *Loader) newState(w *ecs.World) *loadState {
	return &loadState{
		world:    w,
		ids:      make(map[string]ecs.Entity),
		visiting: make(map[string]struct{}),
	}
}

func (l *Loader) loadFile(st *loadState, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if _, ok := st.visiting[abs]; ok {
		return fmt.Errorf("%w: %s", ErrImportCycle, path)
	}
	st.visiting[abs] = struct{}{}
	defer delete(st.visiting, abs)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("scene: cannot open %q: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadDocument(f)
	if err != nil {
		return fmt.Errorf("scene: %q: %w", path, err)
	}
	return l.loadDocument(st, doc, filepath.Dir(path))
}

func (l *Loader) loadDocument(st *loadState, doc *Document, baseDir string) error {
	for _, entry := range doc.Entities {
		if entry.IsImport() {
			importPath := filepath.Join(baseDir, entry.Import)
			l.logger.Debug("Scene: importing sub-scene", zap.String("path", importPath))
			if err := l.loadFile(st, importPath); err != nil {
				return err
			}
			continue
		}
		l.spawnEntry(st, entry)
	}
	return nil
}

func (l *Loader) spawnEntry(st *loadState, entry Entry) {
	e := st.world.Spawn()
	if entry.ID != "" {
		if _, dup := st.ids[entry.ID]; dup {
			l.logger.Warn("Scene: duplicate entity id, later definition wins", zap.String("id", entry.ID))
		}
		st.ids[entry.ID] = e
	}

	names := make([]string, 0, len(entry.Components))
	for name := range entry.Components {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		data := entry.Components[name]
		if name == parentKey {
			var parentID string
			if err := json.Unmarshal(data, &parentID); err != nil || parentID == "" {
				l.logger.Warn("Scene: 'Parent' must be a non-empty entity id string", zap.String("id", entry.ID))
				continue
			}
			st.parents = append(st.parents, pendingParent{child: e, childID: entry.ID, parentID: parentID})
			continue
		}

		loader, ok := l.loaders[name]
		if !ok {
			l.logger.Warn("Scene: no component loader registered", zap.String("component", name), zap.String("id", entry.ID))
			continue
		}
		if err := loader(st.world, e, data); err != nil {
			l.logger.Warn("Scene: component skipped",
				zap.String("component", name), zap.String("id", entry.ID), zap.Error(err))
		}
	}
}

func (l *Loader) wireParents(st *loadState) {
	for _, p := range st.parents {
		parent, ok := st.ids[p.parentID]
		if !ok {
			l.logger.Warn("Scene: parent entity not found",
				zap.String("parent_id", p.parentID), zap.String("child_id", p.childID))
			continue
		}
		if err := ecs.Insert(st.world, p.child, core.Parent{Entity: parent}); err != nil {
			l.logger.Warn("Scene: cannot attach Parent", zap.String("child_id", p.childID), zap.Error(err))
		}
	}
}

type vec2Data struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type transformData struct {
	Position vec2Data  `json:"position"`
	Scale    *vec2Data `json:"scale"`
}

func loadTransform(w *ecs.World, e ecs.Entity, data []byte) error {
	var d transformData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	tr := core.NewTransform(core.Vec2{X: d.Position.X, Y: d.Position.Y})
	if d.Scale != nil {
		tr.Scale = core.Vec2{X: d.Scale.X, Y: d.Scale.Y}
	}
	return ecs.Insert(w, e, tr)
}

func loadVisible(w *ecs.World, e ecs.Entity, data []byte) error {
	var visible bool
	if err := json.Unmarshal(data, &visible); err != nil {
		return fmt.Errorf("visible: %w", err)
	}
	return ecs.Insert(w, e, core.Visible{Visible: visible})
}
