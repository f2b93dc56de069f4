package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureUserConfig makes sure a config.yml exists in the data dir, seeding it
// from the shipped default on first run, and returns its path. An existing
// user config is never touched.
func EnsureUserConfig(dataDir, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	if _, err := os.Stat(userPath); err == nil {
		return userPath, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	b, err := os.ReadFile(defaultPath)
	if err != nil {
		return "", fmt.Errorf("read default config: %w", err)
	}
	if err := os.WriteFile(userPath, b, 0o644); err != nil {
		return "", fmt.Errorf("seed user config: %w", err)
	}
	return userPath, nil
}
