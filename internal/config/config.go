// Package config loads the site configuration file and resolves it, together
// with an optional CLI-supplied environment name or literal URL, into one
// immutable BuildConfig consumed by the cache gate, pipeline, and watcher.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "git.home.luguber.info/inful/mdpress/internal/errors"
	"git.home.luguber.info/inful/mdpress/internal/logfields"
)

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = "config.yaml"

// Environment is a named override set. Fields are pointers so that an entry
// can override url, build_dir, both, or neither.
type Environment struct {
	URL      *string `yaml:"url,omitempty"`
	BuildDir *string `yaml:"build_dir,omitempty"`
}

// File is the raw on-disk configuration. Optional scalars are pointer-typed
// so default application can distinguish "absent" from an explicitly set
// empty or false value.
type File struct {
	URL          string                 `yaml:"url,omitempty"`
	BuildDir     *string                `yaml:"build_dir,omitempty"`
	Template     *string                `yaml:"template,omitempty"`
	Cache        *bool                  `yaml:"cache,omitempty"`
	Environments map[string]Environment `yaml:"environments,omitempty"`
}

// BuildConfig is the effective configuration for one build invocation.
// It is constructed once by Resolve and never mutated afterwards.
type BuildConfig struct {
	URL          string
	BuildDir     string
	Root         string
	Template     string
	CacheEnabled bool
	Environments map[string]Environment
}

// PostsDir returns the posts source directory under the working directory.
func (c *BuildConfig) PostsDir() string { return filepath.Join(c.Root, "posts") }

// PagesDir returns the pages source directory under the working directory.
func (c *BuildConfig) PagesDir() string { return filepath.Join(c.Root, "pages") }

// TemplateDir returns the directory of the active template set.
func (c *BuildConfig) TemplateDir() string {
	return filepath.Join(c.Root, "templates", c.Template)
}

// OutputDir returns the absolute build output directory.
func (c *BuildConfig) OutputDir() string {
	if filepath.IsAbs(c.BuildDir) {
		return c.BuildDir
	}
	return filepath.Join(c.Root, c.BuildDir)
}

// Load reads the configuration file at path. Environment variables from
// .env/.env.local (first found wins) are loaded beforehand and ${VAR}
// references in the YAML are expanded.
func Load(path string) (*File, error) {
	loadEnvFile(filepath.Dir(path))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.ConfigError(fmt.Sprintf("configuration file not found: %s", path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryConfig, apperrors.SeverityFatal, "read config file")
	}

	expanded := os.ExpandEnv(string(data))

	var f File
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryConfig, apperrors.SeverityFatal, "unmarshal config")
	}
	return &f, nil
}

// loadEnvFile loads environment variables from the first of .env/.env.local
// found next to the config file. Missing files are not an error.
func loadEnvFile(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(p), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(p))
		return
	}
}
