package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the console's runtime configuration. Every field carries a
// default so a missing config file is a valid deployment.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Export   ExportConfig   `mapstructure:"export"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	History  HistoryConfig  `mapstructure:"history"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

type SnapshotConfig struct {
	Path string `mapstructure:"path"`
}

type HistoryConfig struct {
	// ListLimit bounds the history tab listing; the stored retention cap
	// is fixed at the persistence layer.
	ListLimit int `mapstructure:"list_limit"`
}

// Load reads configuration from path (optional) with environment
// overrides prefixed OPS_ATLAS.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("storage.db_path", "ops-atlas.db")
	v.SetDefault("export.dir", "exports")
	v.SetDefault("snapshot.path", "snapshot.json")
	v.SetDefault("history.list_limit", 20)

	v.SetEnvPrefix("OPS_ATLAS")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
