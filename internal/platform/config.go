package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name of the optional config file (pantry.yaml).
	ConfigFileName = "pantry"
	configFileType = "yaml"

	// EnvPrefix prefixes environment overrides, e.g. PANTRY_DATA_DIR.
	EnvPrefix = "PANTRY"

	DefaultDataDir = "data"
	DefaultAddr    = "127.0.0.1:8080"

	cfgKeyDataDir  = "data_dir"
	cfgKeyBackend  = "backend"
	cfgKeyAddr     = "addr"
	cfgKeyReadOnly = "read_only"
)

// Config is the file and environment level configuration.
// Command-line flags take precedence over it.
type Config struct {
	DataDir  string
	Backend  string
	Addr     string
	ReadOnly bool

	// File is the config file that was read, empty when none was found.
	File string
}

// LoadConfig reads configuration with the precedence env > config file > default.
// When file is empty, pantry.yaml is looked up in searchDir; a missing file is not an error.
// A relative data_dir is resolved against the directory of the config file (or searchDir).
func LoadConfig(file, searchDir string) (Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDataDir, DefaultDataDir)
	v.SetDefault(cfgKeyBackend, AdapterFS)
	v.SetDefault(cfgKeyAddr, DefaultAddr)
	v.SetDefault(cfgKeyReadOnly, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(searchDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		DataDir:  v.GetString(cfgKeyDataDir),
		Backend:  v.GetString(cfgKeyBackend),
		Addr:     v.GetString(cfgKeyAddr),
		ReadOnly: v.GetBool(cfgKeyReadOnly),
		File:     v.ConfigFileUsed(),
	}

	switch cfg.Backend {
	case AdapterFS, AdapterSQLite:
	default:
		return Config{}, fmt.Errorf("unknown backend %q (want %s or %s)", cfg.Backend, AdapterFS, AdapterSQLite)
	}

	base := searchDir
	if cfg.File != "" {
		base = filepath.Dir(cfg.File)
	}
	if !filepath.IsAbs(cfg.DataDir) && base != "" {
		cfg.DataDir = filepath.Join(base, cfg.DataDir)
	}
	return cfg, nil
}

// Options converts the configuration into store options.
func (c Config) Options() []Option {
	return []Option{
		WithAdapter(c.Backend),
		WithReadOnly(c.ReadOnly),
	}
}
