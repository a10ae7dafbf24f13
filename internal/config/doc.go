// Package config loads sparkop settings.
//
// Values are layered by viper: built-in defaults, then an optional YAML
// file, then SPARKOP_* environment variables, then command-line flags.
// Nested keys map to environment variables by replacing dots with
// underscores, so chart.version is read from SPARKOP_CHART_VERSION.
package config
