// Package config loads the scorecard CLI configuration from the `scorecard:`
// section of config.yaml.
//
// Load(path) reads the file, applies defaults (server endpoint
// http://localhost:8080, 10s timeout, 5 retries) and validates the result.
// Secrets are never stored in the file: key_env names the environment
// variable that holds the API key.
package config
