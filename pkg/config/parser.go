package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ParseConfig decodes configuration JSON
func ParseConfig(data []byte) (Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("%w: failed to parse config file: %v", ErrInvalidConfig, err)
	}
	return config, nil
}

// Load reads, validates and parses a configuration file. A relative files
// directory is resolved against the directory holding the config file.
func Load(configFile string) (Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return Config{}, fmt.Errorf("%w: failed to read config file: %w", ErrInvalidConfig, err)
	}

	if err := Validate(data); err != nil {
		return Config{}, err
	}

	config, err := ParseConfig(data)
	if err != nil {
		return Config{}, err
	}

	if config.Files != "" && !filepath.IsAbs(config.Files) {
		config.Files = filepath.Join(filepath.Dir(configFile), config.Files)
	}

	return config, nil
}

// LoadOptional behaves like Load but returns an empty Config when the file
// does not exist. A file that exists must still be valid.
func LoadOptional(configFile string) (Config, bool, error) {
	config, err := Load(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, false, nil
		}
		return Config{}, false, err
	}
	return config, true, nil
}

// ResolvePath locates a config file. Absolute paths are returned as-is;
// relative paths are tried against the working directory first and then
// against the directory of the running executable.
func ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	if _, err := os.Stat(path); err == nil {
		return path
	}

	exe, err := os.Executable()
	if err != nil {
		return path
	}

	candidate := filepath.Join(filepath.Dir(exe), path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return path
}
