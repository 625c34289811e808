// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, an optional .env file, CLI flags) with precedence:
// CLI flags > YAML config > Environment variables > Defaults. It exposes strongly
// typed settings for the HTTP server, the storage backend, and the container fleet.
package config
