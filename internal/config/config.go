// Package config loads the workbench's optional .orw.json (JSONC via
// hujson) configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tailscale/hujson"
)

// ErrConfigFileNotFound is returned when an explicit --config path does
// not exist.
var ErrConfigFileNotFound = errors.New("config file not found")

// ErrConfigInvalid is returned when a config file exists but fails to
// parse, or fails semantic validation.
var ErrConfigInvalid = errors.New("invalid config file")

// ConfigFileName is the default project config file name.
const ConfigFileName = ".orw.json"

// Config holds the workbench's optional persistent settings.
type Config struct {
	// BaseAddress is added to file offsets in disasm/vft output, either
	// a decimal or "0x"-prefixed hex string in the file.
	BaseAddress    uint64 `json:"-"`
	RawBaseAddress string `json:"base_address,omitempty"`

	// Editor overrides $VISUAL/$EDITOR for the edit command.
	Editor string `json:"editor,omitempty"`

	// ExportDir is the directory export writes into. Empty means the
	// current working directory.
	ExportDir string `json:"export_dir,omitempty"`
}

// LoadInput holds the inputs to [Load].
type LoadInput struct {
	WorkDir    string
	ConfigPath string // explicit --config path; empty uses ConfigFileName in WorkDir
}

// Load reads the project config file, if any. A missing default file is
// not an error; an explicit --config path that does not exist is.
func Load(input LoadInput) (Config, error) {
	path := input.ConfigPath

	mustExist := path != ""
	if path == "" {
		path = filepath.Join(input.WorkDir, ConfigFileName)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(input.WorkDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, nil
		}

		if mustExist {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}

		return Config{}, nil
	}

	return parse(data, path)
}

func parse(data []byte, path string) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	if cfg.RawBaseAddress != "" {
		v, err := strconv.ParseUint(cfg.RawBaseAddress, 0, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w %s: bad base_address %q: %w", ErrConfigInvalid, path, cfg.RawBaseAddress, err)
		}

		cfg.BaseAddress = v
	}

	return cfg, nil
}
