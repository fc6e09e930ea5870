package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath applies CLI/XDG/home fallback rules for config.conf location.
func ResolvePath(explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "mil-decoder", "config.conf"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("unable to resolve user home for config fallback")
	}

	return filepath.Join(home, ".config", "mil-decoder", "config.conf"), nil
}

// ResolveSessionDir applies config/XDG/home fallback rules for the directory
// holding named session subdirectories.
func ResolveSessionDir(configured string) (string, error) {
	if strings.TrimSpace(configured) != "" {
		return configured, nil
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "mil-decoder", "sessions"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("unable to resolve user home for session storage")
	}

	return filepath.Join(home, ".local", "share", "mil-decoder", "sessions"), nil
}
