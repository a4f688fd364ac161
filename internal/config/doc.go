// Package config loads and validates the application configuration.
//
// Configuration is assembled from three sources, later sources winning:
// an optional YAML file (config.yaml or configs/config.yaml), a .env
// file in the working directory, and FIELDPULSE_-prefixed environment
// variables. The resulting Config is immutable for the life of the
// process; there is no ambient global configuration state.
package config
