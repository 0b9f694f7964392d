package zcore

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the TOML startup document, loaded once at startup.
type Config struct {
	Trace  TraceConfig  `toml:"trace"`
	Tables TablesConfig `toml:"tables"`
	Input  InputConfig  `toml:"input"`
}

// TraceConfig configures the Logger's minimum level.
type TraceConfig struct {
	Level string `toml:"level"`
}

// TablesConfig supplies header-style table-override addresses for
// memory images that don't carry real header bytes at 0x34/0x36
// (synthetic fixtures, CLI testing). A zero value means "use the
// built-in default"; a real memory header override still wins over
// these.
type TablesConfig struct {
	ExtrasTableAddr   uint32 `toml:"extras_table_addr"`
	AlphabetTableAddr uint32 `toml:"alphabet_table_addr"`
}

// InputConfig configures ReadPipeline defaults.
type InputConfig struct {
	DefaultReadTimeoutTenths int `toml:"default_read_timeout_tenths"`
}

// DefaultConfig returns the default configuration: info-level
// tracing, no table overrides, no read timeout.
func DefaultConfig() *Config {
	return &Config{Trace: TraceConfig{Level: "info"}}
}

// LoadConfig reads path as TOML and returns a Config. An empty path or
// a missing file is not an error - LoadConfig returns DefaultConfig();
// a malformed file is.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("zcore: cannot read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("zcore: parse error in %s: %w", path, err)
	}
	return cfg, nil
}
