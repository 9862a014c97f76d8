package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics *PhysicsConfig
	Stage   *StageConfig
}

// Loader loads game configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadPhysics loads physics.json, falling back to physics.yaml.
// Fields missing from the file keep their default values.
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	cfg := DefaultPhysicsConfig()
	name, err := l.decodeFirst(cfg, "physics.json", "physics.yaml", "physics.yml")
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// LoadStage loads a stage by name from stages/. A name ending in .tmx is
// read as a Tiled map; otherwise .json and .yaml are tried in that order.
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	if strings.HasSuffix(name, ".tmx") {
		return LoadTMXStage(l.fsys, path.Join("stages", name))
	}

	var cfg StageConfig
	base := path.Join("stages", name)
	if _, err := l.decodeFirst(&cfg, base+".json", base+".yaml", base+".yml"); err != nil {
		return nil, fmt.Errorf("failed to load stage %s: %w", name, err)
	}
	if len(cfg.TileMapping) == 0 {
		cfg.TileMapping = DefaultTileMapping()
	}
	return &cfg, nil
}

// LoadAll loads physics and the named stage
func (l *Loader) LoadAll(stage string) (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	st, err := l.LoadStage(stage)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics: physics,
		Stage:   st,
	}, nil
}

// decodeFirst decodes the first candidate file that exists into v
// and returns its name.
func (l *Loader) decodeFirst(v any, candidates ...string) (string, error) {
	for _, name := range candidates {
		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := Decode(name, data, v); err != nil {
			return "", err
		}
		return name, nil
	}
	return "", fmt.Errorf("failed to read %s: %w", strings.Join(candidates, ", "), fs.ErrNotExist)
}

// Decode parses data as JSON or YAML depending on the file extension
func Decode(name string, data []byte, v any) error {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
	}
	return nil
}
