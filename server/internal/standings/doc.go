// Package standings keeps a rolling per-bowler summary of recently scored
// games.
//
// Engine.Record folds one scored game into its bowler's window of the last N
// games and returns the updated Standing. Averages, highs, lows and the
// strike and spare counts all describe that window; Games counts every game
// the bowler has recorded since the server started.
//
// Record takes the time explicitly so tests control the clock.
package standings
