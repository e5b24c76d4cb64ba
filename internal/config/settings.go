package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CAMPUSPASS_API_URL.
const EnvPrefix = "CAMPUSPASS"

const settingsName = "settings"

// Settings holds runtime options resolved from flags, environment, the
// settings file and defaults, in that order.
type Settings struct {
	APIURL   string         `mapstructure:"api_url"`
	Timeout  time.Duration  `mapstructure:"timeout"`
	Retries  int            `mapstructure:"retries"`
	LogLevel string         `mapstructure:"log_level"`
	LogFile  string         `mapstructure:"log_file"`
	Layout   LayoutSettings `mapstructure:"layout"`
}

// LayoutSettings controls how terminal cells become viewport units.
type LayoutSettings struct {
	UnitsPerColumn float64 `mapstructure:"units_per_column"`
	UnitsPerRow    float64 `mapstructure:"units_per_row"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		APIURL:  "http://127.0.0.1:8787",
		Timeout: 10 * time.Second,
		Layout: LayoutSettings{
			UnitsPerColumn: 5,
			UnitsPerRow:    20,
		},
	}
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("retries", d.Retries)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("layout.units_per_column", d.Layout.UnitsPerColumn)
	v.SetDefault("layout.units_per_row", d.Layout.UnitsPerRow)
}

// SettingsPath returns the default settings file location.
func SettingsPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsName+".yaml"), nil
}

// LoadSettings configures v and resolves Settings. When file is empty the
// default settings file is used if it exists; a missing default file is
// not an error.
func LoadSettings(v *viper.Viper, file string) (Settings, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		dir, err := GetConfigDir()
		if err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName(settingsName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, s.Validate()
}

// Validate rejects settings no command can run with.
func (s Settings) Validate() error {
	if s.APIURL == "" {
		return fmt.Errorf("api_url must not be empty")
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	if s.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	if s.Layout.UnitsPerColumn <= 0 || s.Layout.UnitsPerRow <= 0 {
		return fmt.Errorf("layout units must be positive")
	}
	return nil
}

// EffectiveAPIURL prefers the profile's override over the settings value.
func (s Settings) EffectiveAPIURL(prefs *Preferences) string {
	if prefs != nil && prefs.APIURL != "" {
		return prefs.APIURL
	}
	return s.APIURL
}
