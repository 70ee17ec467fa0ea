package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/llmonitor/barlist/pkg/barlist"
)

// Defaults.
const (
	DefaultTheme  = "default"
	DefaultFormat = "auto"
	DefaultWidth  = 0 // 0 = terminal width
	LocalFile     = ".barlist.yaml"
)

// Column is the YAML form of barlist.ColumnSpec.
type Column struct {
	Name   string `yaml:"name"`
	Key    string `yaml:"key,omitempty"`
	Main   bool   `yaml:"main,omitempty"`
	Bar    bool   `yaml:"bar,omitempty"`
	Render string `yaml:"render,omitempty"`
}

// Chart is the YAML form of barlist.Chart.
type Chart struct {
	Title        string                `yaml:"title,omitempty"`
	Limit        int                   `yaml:"limit,omitempty"`
	CustomMetric *barlist.CustomMetric `yaml:"custom_metric,omitempty"`
	Columns      []Column              `yaml:"columns,omitempty"`

	mainHint string // --main key for charts whose columns are inferred
}

// File represents the contents of a barlist config file.
type File struct {
	Theme  string  `yaml:"theme,omitempty"`
	Format string  `yaml:"format,omitempty"`
	Width  int     `yaml:"width,omitempty"`
	Limit  int     `yaml:"limit,omitempty"`
	Charts []Chart `yaml:"charts,omitempty"`
}

// LoadFile reads the config file. An explicit path must exist; otherwise the
// local file and then the user config directory are tried, and a missing file
// yields an empty config. The returned path is "" when no file was used.
func LoadFile(explicit string) (*File, string, error) {
	path := explicit
	if path == "" {
		path = findConfigPath()
	}
	if path == "" {
		klog.V(1).InfoS("no config file found, using defaults")
		return &File{}, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit == "" && errors.Is(err, os.ErrNotExist) {
			return &File{}, "", nil
		}
		return nil, path, fmt.Errorf("reading config %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, path, fmt.Errorf("parsing config %s: %w", path, err)
	}
	klog.V(1).InfoS("loaded config", "path", path, "charts", len(f.Charts))
	return &f, path, nil
}

// findConfigPath checks the working directory first, then the user config dir.
func findConfigPath() string {
	if _, err := os.Stat(LocalFile); err == nil {
		return LocalFile
	}
	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		klog.V(2).InfoS("user config dir unavailable", "err", err, "path", configHome)
		return ""
	}
	p := filepath.Join(configHome, "barlist", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
