// Package types defines the game shapes shared by the scorecard CLI and
// tenpin-server. They are the JSON bodies of the HTTP API and the YAML
// entries of a score-sheet file.
package types
