package config

import (
	"fmt"
	"regexp"

	apperrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

// Built-in defaults, applied per key only where the config file left the
// field absent. An explicit `cache: false` or `build_dir: ""` is respected.
const (
	DefaultBuildDir = "build"
	DefaultTemplate = "default"
)

// envNamePattern decides whether the CLI token names an environment or is a
// literal URL. Word characters only means environment name; anything with
// punctuation (scheme separators, dots, slashes) is a URL. This is a
// deliberate simple heuristic, kept predictable rather than smart.
var envNamePattern = regexp.MustCompile(`^\w+$`)

// IsEnvironmentName reports whether token classifies as an environment name.
func IsEnvironmentName(token string) bool {
	return envNamePattern.MatchString(token)
}

// applyDefaults fills in built-in defaults for fields absent from the file.
// Presence-based: only nil pointers are filled.
func applyDefaults(f *File) {
	if f.BuildDir == nil {
		d := DefaultBuildDir
		f.BuildDir = &d
	}
	if f.Template == nil {
		d := DefaultTemplate
		f.Template = &d
	}
	if f.Cache == nil {
		d := true
		f.Cache = &d
	}
}

// Resolve merges the loaded file, built-in defaults, and the optional CLI
// token (environment name or literal URL) into one effective BuildConfig.
//
// Precedence for the URL, highest first: literal URL token, environment
// override, config file value. The two token forms are mutually exclusive
// per invocation since classification picks exactly one.
func Resolve(f *File, root, token string) (*BuildConfig, error) {
	applyDefaults(f)

	cfg := &BuildConfig{
		URL:          f.URL,
		BuildDir:     *f.BuildDir,
		Root:         root,
		Template:     *f.Template,
		CacheEnabled: *f.Cache,
		Environments: f.Environments,
	}

	if token != "" {
		if IsEnvironmentName(token) {
			env, ok := f.Environments[token]
			if !ok {
				return nil, apperrors.ConfigError(fmt.Sprintf("unknown environment: %s", token))
			}
			if env.URL != nil {
				cfg.URL = *env.URL
			}
			if env.BuildDir != nil {
				cfg.BuildDir = *env.BuildDir
			}
		} else {
			cfg.URL = token
		}
	}

	if cfg.URL == "" {
		return nil, apperrors.ConfigError("missing required config field: url")
	}
	return cfg, nil
}
