// Package config loads config.yaml from the configuration directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

const (
	fileName = "config"
	fileType = "yaml"
	fileExt  = "config.yaml"

	// EnvPrefix prefixes environment overrides, for example PHONEBOOK_BACKEND.
	EnvPrefix = "PHONEBOOK"
)

// Config keys.
const (
	KeyBackend   = "backend"
	KeyDataDir   = "data_dir"
	KeyDataFile  = "data_file"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeyLogFile   = "log_file"
)

// Defaults.
const (
	DefaultBackend   = types.BackendJSON
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultLogName   = "phonebook.log"
)

// envKeys are bound to PHONEBOOK_<KEY>. data_dir is left out; the paths
// package reads PHONEBOOK_DATA_DIR below the config value.
var envKeys = []string{KeyBackend, KeyDataFile, KeyLogLevel, KeyLogFormat, KeyLogFile}

// fileConfig is the structure written to a fresh config.yaml.
type fileConfig struct {
	Backend   string `yaml:"backend"`
	DataFile  string `yaml:"data_file"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

const defaultHeader = `# Phonebook configuration
# data_dir and log_file are optional. data_dir defaults to $(CWD)/data and the
# log is written to <data_dir>/phonebook.log.
`

// Settings is the resolved configuration.
type Settings struct {
	Backend   string
	DataDir   string // raw config value, resolved by paths.ResolveDataDir
	DataFile  string
	LogLevel  string
	LogFormat string
	LogFile   string
}

// Load reads config.yaml from configDir. It creates the directory and a
// default config.yaml on first run. A missing config.yaml is not an error.
func Load(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := WriteDefault(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyBackend, DefaultBackend)
	v.SetDefault(KeyDataFile, types.DefaultDataFile)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// WriteDefault creates config.yaml in configDir when it does not exist.
// An existing file is left untouched.
func WriteDefault(configDir string) error {
	path := filepath.Join(configDir, fileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&fileConfig{
		Backend:   DefaultBackend,
		DataFile:  types.DefaultDataFile,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(defaultHeader), data...), 0o644)
}

// Path returns the config.yaml path inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, fileExt)
}

// FromViper extracts Settings from a loaded configuration.
func FromViper(v *viper.Viper) Settings {
	return Settings{
		Backend:   v.GetString(KeyBackend),
		DataDir:   v.GetString(KeyDataDir),
		DataFile:  v.GetString(KeyDataFile),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		LogFile:   v.GetString(KeyLogFile),
	}
}

// LogPath returns the configured log file, or phonebook.log inside dataDir.
func (s Settings) LogPath(dataDir string) string {
	if s.LogFile != "" {
		return s.LogFile
	}
	return filepath.Join(dataDir, DefaultLogName)
}
