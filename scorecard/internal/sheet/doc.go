// Package sheet turns score sheets into throw lists.
//
// ParseNotation reads the symbols bowlers write on a sheet: X for a strike,
// / for a spare, - for a gutter ball and the digits 1 to 9. Frames may be
// separated by whitespace, commas or |. A token of exactly "10" is read as a
// single ball of ten pins, so plain integer lists work too:
//
//	X 7/ 9- X -8 8/ -6 X X X81
//	X|7/|9-|X|-8|8/|-6|X|X|X81
//	10 7 3 9 0 10 0 8 8 2 0 6 10 10 10 8 1
//
// ReadFile loads many games at once from YAML, from an xlsx workbook, or from
// a plain text file with one "bowler: sheet" line per game.
package sheet
