// Package api implements the HTTP REST API for tenpin-server.
//
// New(deps) returns a Handler that serves:
//
//	GET  /api/v1/health          status, strict flag, game/bowler/announcement counts
//	POST /api/v1/score           score one game without recording it
//	GET  /api/v1/games           recent games, newest first (?bowler=, ?limit=)
//	POST /api/v1/games           score, record and announce one game (201); a
//	                             resent ID returns the held game (200), or 409
//	                             if its throws differ
//	GET  /api/v1/games/{id}      single game with its sheet; 404 if unknown or expired
//	GET  /api/v1/bowlers         standings, best average first
//	GET  /api/v1/bowlers/{name}  one bowler's standing; 404 if unknown
//	GET  /api/v1/announcements   announcements fired in the past hour
//
// All endpoints:
//   - Respond with Content-Type: application/json
//   - Return 405 for unsupported methods and 400 for malformed JSON
//   - Return 422 for pin counts outside 0..10 or more than 21 throws, and for
//     any other illegal game when strict mode is on
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api
