package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "modelgen.yaml"

// config mirrors modelgen.yaml. Flags override individual keys.
type config struct {
	Source  string      `yaml:"source"`
	Format  string      `yaml:"format"`
	Dialect string      `yaml:"dialect"`
	Minify  bool        `yaml:"minify"`
	Output  string      `yaml:"output"`
	Models  []string    `yaml:"models"`
	Serve   serveConfig `yaml:"serve"`
	Cache   cacheConfig `yaml:"cache"`
}

type serveConfig struct {
	Addr   string `yaml:"addr"`
	Prefix string `yaml:"prefix"`
	Watch  bool   `yaml:"watch"`
}

type cacheConfig struct {
	RedisAddr string        `yaml:"redisAddr"`
	Prefix    string        `yaml:"prefix"`
	TTL       time.Duration `yaml:"ttl"`
}

func defaultConfig() config {
	return config{
		Serve: serveConfig{Addr: ":8080", Prefix: "/models"},
	}
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the path was given explicitly.
func loadConfig(path string, explicit bool) (config, error) {
	cfg := defaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
