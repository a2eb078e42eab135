package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all service settings
type Config struct {
	ListenAddr       string  `yaml:"listen_addr"`
	DBPath           string  `yaml:"db_path"`
	ExportDir        string  `yaml:"export_dir"`
	PreviewLimit     int     `yaml:"preview_limit"`
	DefaultChunkSize int     `yaml:"default_chunk_size"`
	RecordsPerSecond float64 `yaml:"estimate_records_per_second"`
	KBPerRecord      float64 `yaml:"estimate_kb_per_record"`
	SeedRecords      int     `yaml:"seed_records"`
	Debug            bool    `yaml:"debug"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		ListenAddr:       ":8080",
		DBPath:           "export.db",
		ExportDir:        "exports",
		PreviewLimit:     100,
		DefaultChunkSize: 10000,
		RecordsPerSecond: 5000,
		KBPerRecord:      0.25,
	}
}

// Load reads a yaml config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.PreviewLimit <= 0 || cfg.PreviewLimit > 100 {
		cfg.PreviewLimit = 100
	}
	if cfg.DefaultChunkSize < 1 {
		cfg.DefaultChunkSize = 10000
	}
	return cfg, nil
}
