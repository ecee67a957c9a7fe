package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/hackassist/assets"
	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/pkg/filesystem"
	"github.com/doeshing/hackassist/internal/ports"
)

// FileLoader loads YAML configuration from ~/.hackassist/config.yaml (overridable via HACKASSIST_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
				return domain.Config{}, fmt.Errorf("write default config: %w", err)
			}
			return DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg = hydrateDefaults(cfg)
	if err := cfg.ValidateConsistency(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandHome(l.overridePath)
	}
	if custom := os.Getenv("HACKASSIST_CONFIG"); custom != "" {
		return filesystem.ExpandHome(custom)
	}
	return filepath.Join(filesystem.AppDir("hackassist"), "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

// DefaultConfig is the configuration shipped in the embedded default file.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return hydrateDefaults(cfg)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Model.Provider == "" {
		cfg.Model.Provider = domain.ProviderGemini
	}
	if cfg.Model.ModelID == "" {
		cfg.Model.ModelID = cfg.Model.GetModelID()
	}
	if cfg.Model.AuthEnvVar == "" {
		cfg.Model.AuthEnvVar = domain.DefaultAuthEnvVar
	}
	if cfg.Model.Name == "" {
		cfg.Model.Name = cfg.Model.ModelID
	}
	if cfg.Session.HistoryLimit == 0 {
		cfg.Session.HistoryLimit = domain.DefaultHistoryLimit
	}
	if cfg.Session.MaxOutputChars == 0 {
		cfg.Session.MaxOutputChars = domain.DefaultMaxOutputChars
	}
	if cfg.Session.RequestTimeoutSeconds == 0 {
		cfg.Session.RequestTimeoutSeconds = int(domain.DefaultRequestTimeout.Seconds())
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
