package config

import (
	"fmt"
	"time"

	"github.com/fierclash/profilekit/internal/paths"
	"github.com/spf13/viper"
)

// Pointer is a tool's config.json: it names the settings document by its
// asset GUID so the document can be moved inside the project.
type Pointer struct {
	SettingsGUID string `json:"settingsGUID"`
}

// Settings configures the profilekit CLI itself.
type Settings struct {
	// Project is the Unity project root.
	Project string `mapstructure:"project"`

	// Developer selects the in-Assets layout of the pointer files used when
	// working on the tools themselves.
	Developer bool `mapstructure:"developer"`

	// HTTPTimeout bounds each spreadsheet download.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// Keys read from the configuration file and the environment.
const (
	KeyProject     = "project"
	KeyDeveloper   = "developer"
	KeyHTTPTimeout = "http_timeout"
)

// EnvPrefix prefixes environment overrides, e.g. PROFILEKIT_PROJECT.
const EnvPrefix = "PROFILEKIT"

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Project:     ".",
		HTTPTimeout: 30 * time.Second,
	}
}

// NewViper returns a viper instance with defaults and environment binding
// applied. It does not read any file.
func NewViper() *viper.Viper {
	v := viper.New()
	def := Default()
	v.SetDefault(KeyProject, def.Project)
	v.SetDefault(KeyDeveloper, def.Developer)
	v.SetDefault(KeyHTTPTimeout, def.HTTPTimeout)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// ReadFile points v at cfgFile, or at .profilekit.yaml in the project root
// and then the home directory when cfgFile is empty, and reads it. A missing
// default config file is not an error; it returns the file used, if any.
func ReadFile(v *viper.Viper, cfgFile, projectRoot string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(projectRoot)
		v.AddConfigPath(paths.UserConfigDir())
		v.SetConfigType("yaml")
		v.SetConfigName(paths.ConfigName)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes Settings from v.
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding config: %w", err)
	}
	if s.Project == "" {
		s.Project = "."
	}
	if s.HTTPTimeout <= 0 {
		s.HTTPTimeout = Default().HTTPTimeout
	}
	return s, nil
}
