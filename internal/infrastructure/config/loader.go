package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	EngineFile   = "engine.yaml"
	SpritesFile  = "sprites.yaml"
	EntitiesFile = "entities.yaml"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Engine   *EngineConfig
	Sprites  *SpritesConfig
	Entities *EntitiesConfig
}

// Loader loads configuration from YAML files using fs.FS interface
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

// BasePath returns the directory the loader reads from.
func (l *Loader) BasePath() string {
	return l.basePath
}

// FS returns the loader's filesystem.
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// LoadEngine loads engine.yaml over the defaults and validates it
func (l *Loader) LoadEngine() (*EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := l.decode(EngineFile, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", EngineFile, err)
	}
	return &cfg, nil
}

// LoadSprites loads sprites.yaml
func (l *Loader) LoadSprites() (*SpritesConfig, error) {
	var cfg SpritesConfig
	if err := l.decode(SpritesFile, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEntities loads entities.yaml
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	var cfg EntitiesConfig
	if err := l.decode(EntitiesFile, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadStage loads stages/<name>.yaml and checks it against the templates
func (l *Loader) LoadStage(name string, templates map[string]TemplateConfig) (*StageConfig, error) {
	var cfg StageConfig
	if err := l.decode("stages/"+name+".yaml", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(templates); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadAll loads all base configurations (engine, sprites, entities)
func (l *Loader) LoadAll() (*GameConfig, error) {
	engine, err := l.LoadEngine()
	if err != nil {
		return nil, err
	}

	sprites, err := l.LoadSprites()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Engine:   engine,
		Sprites:  sprites,
		Entities: entities,
	}, nil
}

func (l *Loader) decode(name string, out any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
