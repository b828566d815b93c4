package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"mosey/log"
)

type Config struct {
	Run RunConfig `toml:"run"`
}

type RunConfig struct {
	// Illegal is the default undocumented opcode policy, overridable
	// with --illegal.
	Illegal string `toml:"illegal_policy"`

	// Addr is the default load address, overridable with --addr.
	Addr string `toml:"load_addr"`
}

func defaultConfig() Config {
	return Config{
		Run: RunConfig{
			Illegal: "stop",
			Addr:    "0x0600",
		},
	}
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("mosey")
	if err := configdir.MakePath(dir); err != nil {
		log.ModHost.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the mosey config
// directory, or provides a default one.
func LoadConfigOrDefault() Config {
	cfg := defaultConfig()
	_, err := toml.DecodeFile(filepath.Join(ConfigDir, cfgFilename), &cfg)
	if err != nil {
		return defaultConfig()
	}
	return cfg
}

// SaveConfig into mosey config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}
