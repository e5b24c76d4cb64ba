// Package config provides user configuration management for campuspass.
//
// Two files live in the configuration directory:
//
//   - config.yaml: the Registry. It holds the local profile (user ID,
//     confirmed email, verified student record, finished tutorials),
//     preferences, and backends found by discovery. It is written by the
//     application with an atomic rename.
//   - settings.yaml: optional runtime Settings (api_url, timeout, log level,
//     layout units). Read through viper; flags and CAMPUSPASS_* environment
//     variables override it.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/campuspass or $HOME/.config/campuspass
//   - macOS: $HOME/.config/campuspass
//   - Windows: %LOCALAPPDATA%\campuspass
//
// # Security
//
// Passwords and one-time codes are never stored.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	registry.SetEmail("ada@uni.edu.ng")
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
//	settings, err := config.LoadSettings(viper.GetViper(), "")
package config
