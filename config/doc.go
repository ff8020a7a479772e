// Package config loads the application configuration from a YAML or TOML
// file and the environment, and converts it to the settings of the ai,
// search and chat packages.
package config
