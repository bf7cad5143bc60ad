// Package config loads the optional TOML configuration file.
//
// Every default reproduces the plain behavior: todos.json in the working
// directory, emoji markers, color when the terminal supports it and no
// diagnostics output.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/todomenu/internal/logging"
	"github.com/idilsaglam/todomenu/internal/store/jsonstore"
)

// DefaultConfigFile is looked up in the working directory. Its absence is
// not an error.
const DefaultConfigFile = ".todo.toml"

// Config holds all configurable settings.
type Config struct {
	File  string `toml:"file"`
	ASCII bool   `toml:"ascii"`
	Color bool   `toml:"color"`
	Log   Log    `toml:"log"`
}

// Log configures the diagnostics channel.
type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		File:  jsonstore.DefaultPath,
		Color: true,
		Log:   Log{Level: logging.DefaultLevel},
	}
}

// Load reads path over the defaults. When required is false a missing file
// yields the defaults.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.File == "" {
		cfg.File = jsonstore.DefaultPath
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = logging.DefaultLevel
	}
	return cfg, nil
}

// LogOptions converts the log section for the logging package.
func (c Config) LogOptions() logging.Options {
	return logging.Options{File: c.Log.File, Level: c.Log.Level}
}
