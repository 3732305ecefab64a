// Package config provides the global configuration directory for groundwork.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the groundwork configuration directory.
//
// Resolution:
//   - $GROUNDWORK_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/groundwork if set (respects XDG on any platform)
//   - %AppData%/groundwork on Windows
//   - ~/.config/groundwork on macOS and Linux
//
// Global framework template overrides live in Dir()/templates, and a
// global catalog override in Dir()/catalog.yaml.
func Dir() string {
	if dir := os.Getenv("GROUNDWORK_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "groundwork")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "groundwork")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "groundwork")
}

// TemplatesDir returns the global template override directory.
func TemplatesDir() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "templates")
}

// CatalogPath returns the global catalog override path.
func CatalogPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "catalog.yaml")
}
