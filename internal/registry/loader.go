package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"ramcalc/internal/common/fsutil"
	"ramcalc/pkg/types"
)

// Inspect reads calculator metadata from a .gguf file or a config.json.
// A directory is accepted when it contains a config.json.
func Inspect(path string) (types.Model, error) {
	abs, err := fsutil.AbsPath(path)
	if err != nil {
		return types.Model{}, err
	}
	if st, err := os.Stat(abs); err == nil && st.IsDir() {
		abs = filepath.Join(abs, ConfigFileName)
	}
	switch {
	case fsutil.HasExt(abs, ".gguf"):
		return InspectGGUF(abs)
	case filepath.Base(abs) == ConfigFileName || fsutil.HasExt(abs, ".json"):
		return LoadHFConfig(abs)
	default:
		return types.Model{}, unsupportedFormatError{path: path}
	}
}

// LoadDir scans dir for *.gguf files and for subdirectories holding a
// config.json. Files whose metadata cannot be read are still listed with
// Model.Error set.
func LoadDir(dir string) ([]types.Model, error) {
	abs, err := fsutil.AbsPath(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		p := filepath.Join(abs, e.Name())
		var (
			m   types.Model
			err error
		)
		switch {
		case e.IsDir():
			cfg := filepath.Join(p, ConfigFileName)
			if !fsutil.IsFile(cfg) {
				continue
			}
			m, err = LoadHFConfig(cfg)
		case fsutil.HasExt(e.Name(), ".gguf"):
			m, err = InspectGGUF(p)
		default:
			continue
		}
		if err != nil {
			m.Error = err.Error()
		}
		models = append(models, m)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}

// Registry is an in-memory index of discovered models. It is safe for
// concurrent use and can be reloaded.
type Registry struct {
	mu      sync.RWMutex
	dir     string
	models  []types.Model
	lastErr error
}

// New returns a registry serving the given models.
func New(models []types.Model) *Registry {
	return &Registry{models: append([]types.Model(nil), models...)}
}

// Open loads dir into a new registry. An empty dir yields an empty registry.
func Open(dir string) (*Registry, error) {
	r := &Registry{dir: dir}
	if dir == "" {
		return r, nil
	}
	return r, r.Reload()
}

// Reload rescans the directory the registry was opened with. On failure the
// previous models are kept and the registry reports not ready until a later
// reload succeeds.
func (r *Registry) Reload() error {
	if r.dir == "" {
		return nil
	}
	models, err := LoadDir(r.dir)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = err
	if err != nil {
		return err
	}
	r.models = models
	return nil
}

// Ready reports whether the last reload succeeded.
func (r *Registry) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr == nil
}

// List returns a copy of the known models sorted by id.
func (r *Registry) List() []types.Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]types.Model(nil), r.models...)
}

// Get returns the model with the given id.
func (r *Registry) Get(id string) (types.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.models {
		if m.ID == id {
			return m, nil
		}
	}
	return types.Model{}, ErrModelNotFound(id)
}
