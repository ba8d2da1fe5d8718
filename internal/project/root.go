package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ManifestName is the project manifest file name.
const ManifestName = "umlts.toml"

// EnvFileName is read from the project root when present.
const EnvFileName = ".env"

// FindManifest walks up from start (a file or directory) to locate umlts.toml.
func FindManifest(start string) (path string, ok bool, err error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing umlts.toml, if any.
func FindProjectRoot(start string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(start)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

// ResolveSourceDir validates a [project].sources entry relative to root.
func ResolveSourceDir(root, dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", fmt.Errorf("empty source directory")
	}
	if filepath.IsAbs(dir) {
		return "", fmt.Errorf("invalid source directory %q: must be relative", dir)
	}
	full := filepath.Join(root, filepath.Clean(filepath.FromSlash(dir)))
	if !pathWithin(root, full) {
		return "", fmt.Errorf("invalid source directory %q: escapes project root", dir)
	}
	info, err := os.Stat(full)
	if err != nil {
		return "", fmt.Errorf("invalid source directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid source directory %q: not a directory", dir)
	}
	return full, nil
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
