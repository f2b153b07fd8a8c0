package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"boxbreath/internal/breath"
)

const (
	AppName        = "boxbreath"
	configFileName = "config.yaml"
	historyDBName  = "history.db"
)

// Settings are the startup values for a session. They seed the
// controller; edits made in the settings panel are not written back.
type Settings struct {
	Breath    breath.Config
	HideTimer bool
	PreRoll   time.Duration
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Breath:  breath.DefaultConfig(),
		PreRoll: breath.DefaultPreRoll,
	}
}

type yamlSettings struct {
	InSeconds      float64 `yaml:"in_seconds"`
	HoldInSeconds  float64 `yaml:"hold_in_seconds"`
	OutSeconds     float64 `yaml:"out_seconds"`
	HoldOutSeconds float64 `yaml:"hold_out_seconds"`
	Color          string  `yaml:"color"`
	HideTimer      bool    `yaml:"hide_timer"`
	PreRollMillis  int     `yaml:"pre_roll_ms"`
}

// Load reads startup settings from path. An empty path means the default
// location under the user config dir; a missing file yields Defaults.
func Load(path string) (Settings, error) {
	settings := Defaults()
	if path == "" {
		resolved, err := DefaultConfigPath()
		if err != nil {
			return settings, err
		}
		path = resolved
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// DefaultConfigPath returns where Load looks when no path is given.
func DefaultConfigPath() (string, error) {
	return inConfigDir(configFileName)
}

// DefaultHistoryPath returns the default session history database.
func DefaultHistoryPath() (string, error) {
	return inConfigDir(historyDBName)
}

func inConfigDir(name string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, AppName, name), nil
}

// Values outside what the settings form would accept are ignored.
func applyYamlSettings(settings *Settings, fileData yamlSettings) {
	apply := func(seconds float64, dst *time.Duration) {
		if seconds > 0 && seconds <= MaxPhaseSeconds {
			*dst = time.Duration(seconds * float64(time.Second))
		}
	}
	apply(fileData.InSeconds, &settings.Breath.In)
	apply(fileData.HoldInSeconds, &settings.Breath.HoldIn)
	apply(fileData.OutSeconds, &settings.Breath.Out)
	apply(fileData.HoldOutSeconds, &settings.Breath.HoldOut)

	if fileData.Color != "" && ValidateColor(fileData.Color) == nil {
		settings.Breath.Color = fileData.Color
	}
	if fileData.PreRollMillis > 0 {
		settings.PreRoll = time.Duration(fileData.PreRollMillis) * time.Millisecond
	}
	settings.HideTimer = fileData.HideTimer
}
