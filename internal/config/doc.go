// Package config provides configuration structures and utilities for satpass.
// It defines the ground-station parameters, the satellite list, prediction
// window settings, and report/log output locations, all loaded from a YAML
// configuration file with sensible defaults.
package config
