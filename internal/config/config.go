/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
// Minimal schema to start; can evolve with config_version migrations.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields should be preserved when possible (yaml handles this by ignoring extras on unmarshal).

type RenderConfig struct {
	Preset      string `yaml:"preset"`       // builtin or user preset name
	Format      string `yaml:"format"`       // "png" | "svg" | "pdf"
	OutDir      string `yaml:"out_dir"`      // default output directory for rendered cards
	FontsDir    string `yaml:"fonts_dir"`    // directory of TTF/OTF files registered at startup
	FontPack    string `yaml:"font_pack"`    // optional zip font pack (see internal/fontpack)
	PresetsFile string `yaml:"presets_file"` // optional JSON preset document merged over builtins
}

type GeneralConfig struct {
	TelemetryOptIn bool `yaml:"telemetry_opt_in"`
	CatalogEnabled bool `yaml:"catalog_enabled"` // record rendered cards into the local catalog
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Render        RenderConfig  `yaml:"render"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, CatalogEnabled: true},
		Render:        RenderConfig{Preset: "classic", Format: "png", OutDir: "captions"},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvRenderPreset   = "GCAP_RENDER_PRESET"
	EnvRenderFormat   = "GCAP_RENDER_FORMAT"
	EnvRenderOutDir   = "GCAP_RENDER_OUT_DIR"
	EnvFontsDir       = "GCAP_FONTS_DIR"
	EnvFontPack       = "GCAP_FONT_PACK"
	EnvPresetsFile    = "GCAP_PRESETS_FILE"
	EnvTelemetryOptIn = "GCAP_TELEMETRY_OPT_IN"
	EnvCatalogEnabled = "GCAP_CATALOG_ENABLED"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GCAP_LOG_LEVEL"
	EnvLogFormat = "GCAP_LOG_FORMAT"
	EnvLogSource = "GCAP_LOG_SOURCE"
	EnvLogFile   = "GCAP_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoCaptioner")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoCaptioner")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "gocaptioner")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	dst.General.CatalogEnabled = src.General.CatalogEnabled
	if strings.TrimSpace(src.Render.Preset) != "" {
		dst.Render.Preset = strings.TrimSpace(src.Render.Preset)
	}
	if strings.TrimSpace(src.Render.Format) != "" {
		dst.Render.Format = strings.ToLower(strings.TrimSpace(src.Render.Format))
	}
	if strings.TrimSpace(src.Render.OutDir) != "" {
		dst.Render.OutDir = strings.TrimSpace(src.Render.OutDir)
	}
	if strings.TrimSpace(src.Render.FontsDir) != "" {
		dst.Render.FontsDir = strings.TrimSpace(src.Render.FontsDir)
	}
	if strings.TrimSpace(src.Render.FontPack) != "" {
		dst.Render.FontPack = strings.TrimSpace(src.Render.FontPack)
	}
	if strings.TrimSpace(src.Render.PresetsFile) != "" {
		dst.Render.PresetsFile = strings.TrimSpace(src.Render.PresetsFile)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvRenderPreset)); v != "" {
		cfg.Render.Preset = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderFormat)); v != "" {
		cfg.Render.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderOutDir)); v != "" {
		cfg.Render.OutDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontsDir)); v != "" {
		cfg.Render.FontsDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontPack)); v != "" {
		cfg.Render.FontPack = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPresetsFile)); v != "" {
		cfg.Render.PresetsFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvCatalogEnabled)); v != "" {
		cfg.General.CatalogEnabled = parseBool(v)
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "render.preset":
		if os.Getenv(EnvRenderPreset) != "" {
			return EnvRenderPreset, true
		}
	case "render.format":
		if os.Getenv(EnvRenderFormat) != "" {
			return EnvRenderFormat, true
		}
	case "render.out_dir":
		if os.Getenv(EnvRenderOutDir) != "" {
			return EnvRenderOutDir, true
		}
	case "general.telemetry_opt_in":
		if os.Getenv(EnvTelemetryOptIn) != "" {
			return EnvTelemetryOptIn, true
		}
	case "general.catalog_enabled":
		if os.Getenv(EnvCatalogEnabled) != "" {
			return EnvCatalogEnabled, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
