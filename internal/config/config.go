package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/chapmanb/biosqlweb/internal/diagram"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BIOSQLWEB_"

type Config struct {
	Input          string   `json:"input"`
	Format         string   `json:"format"`
	OutputJSON     string   `json:"output_json"`
	LogFile        string   `json:"log_file"`
	LogLevel       string   `json:"log_level"`
	IndexPath      string   `json:"index_path"`
	IndexCacheSize int      `json:"index_cache_size"`
	DefaultColor   string   `json:"default_color"`
	NameQualifiers []string `json:"name_qualifiers"`
	ShowHidden     bool     `json:"show_hidden"`
}

// LoadConfig loads a JSON config from the given path. If path is empty, looks for ./config.json.
// A missing file yields defaults. Variables from ./.env are loaded first and
// BIOSQLWEB_* variables then override file values.
func LoadConfig(path string) (*Config, error) {
	// .env is optional; variables already set win
	_ = godotenv.Load()

	if path == "" {
		path = "config.json"
	}
	var c Config
	f, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// not fatal: keep defaults
	case err != nil:
		return nil, err
	default:
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&c); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return &c, nil
}

// Diagram returns the feature settings the config carries.
func (c *Config) Diagram() diagram.Settings {
	return diagram.Settings{
		DefaultColor:   c.DefaultColor,
		NameQualifiers: c.NameQualifiers,
		ShowHidden:     c.ShowHidden,
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"INPUT":         &c.Input,
		"FORMAT":        &c.Format,
		"OUTPUT_JSON":   &c.OutputJSON,
		"LOG_FILE":      &c.LogFile,
		"LOG_LEVEL":     &c.LogLevel,
		"INDEX_PATH":    &c.IndexPath,
		"DEFAULT_COLOR": &c.DefaultColor,
	}
	for name, dst := range str {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	if v, ok := lookup(EnvPrefix + "INDEX_CACHE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sINDEX_CACHE_SIZE: %w", EnvPrefix, err)
		}
		c.IndexCacheSize = n
	}
	if v, ok := lookup(EnvPrefix + "SHOW_HIDDEN"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSHOW_HIDDEN: %w", EnvPrefix, err)
		}
		c.ShowHidden = b
	}
	if v, ok := lookup(EnvPrefix + "NAME_QUALIFIERS"); ok {
		c.NameQualifiers = nil
		for _, q := range strings.Split(v, ",") {
			if q = strings.TrimSpace(q); q != "" {
				c.NameQualifiers = append(c.NameQualifiers, q)
			}
		}
	}
	return nil
}
