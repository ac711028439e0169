// Package store keeps scored games in memory, keyed by game ID, and drops
// them once they are older than the configured TTL.
package store
