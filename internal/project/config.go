package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment overrides.
const (
	EnvLanguage       = "UMLTS_LANGUAGE"
	EnvMaxDiagnostics = "UMLTS_MAX_DIAGNOSTICS"
)

// Config is the effective project configuration for one invocation.
type Config struct {
	// Root is the project directory; empty when no manifest was found.
	Root         string
	ManifestPath string
	Manifest     Manifest
	// EnvFile is the .env that contributed values, if any.
	EnvFile string
}

// Found reports whether a manifest backs this config.
func (c *Config) Found() bool { return c != nil && c.ManifestPath != "" }

// SourceDirs resolves [project].sources against Root.
func (c *Config) SourceDirs() ([]string, error) {
	if !c.Found() {
		return nil, errors.New("no " + ManifestName + " found")
	}
	dirs := make([]string, 0, len(c.Manifest.Project.Sources))
	for _, s := range c.Manifest.Project.Sources {
		dir, err := ResolveSourceDir(c.Root, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.ManifestPath, err)
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

// Load finds umlts.toml from start, decodes it and applies .env and process
// environment overrides. Without a manifest the defaults are used, still with
// env overrides (the .env is then looked up next to start).
func Load(start string) (*Config, error) {
	manifestPath, ok, err := FindManifest(start)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Manifest: DefaultManifest("")}
	envDir := start
	if ok {
		m, err := LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		cfg.Manifest = m
		cfg.ManifestPath = manifestPath
		cfg.Root = filepath.Dir(manifestPath)
		envDir = cfg.Root
	} else if info, statErr := os.Stat(start); statErr == nil && !info.IsDir() {
		envDir = filepath.Dir(start)
	}

	env, envFile, err := readEnv(envDir)
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = envFile
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readEnv reads dir/.env; a missing file is not an error.
func readEnv(dir string) (map[string]string, string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, EnvFileName)
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, "", nil
		}
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return env, path, nil
}

// applyEnv: process environment beats .env, both beat the manifest.
func (c *Config) applyEnv(file map[string]string) error {
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
	if v, ok := lookup(EnvLanguage); ok && strings.TrimSpace(v) != "" {
		c.Manifest.Compile.Language = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvMaxDiagnostics); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return fmt.Errorf("%s: invalid value %q", EnvMaxDiagnostics, v)
		}
		c.Manifest.Compile.MaxDiagnostics = n
	}
	return nil
}
