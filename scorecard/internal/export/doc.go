// Package export renders scored games for use outside tenpin.
//
// WriteText emits the Prometheus text exposition format, so a night's
// results can be dropped into a node_exporter textfile directory. Every game
// contributes one sample to each of these gauge families, labelled by bowler
// and game:
//
//	tenpin_game_score
//	tenpin_game_strikes
//	tenpin_game_spares
//	tenpin_game_opens
//	tenpin_frame_running   (additionally labelled by frame 1..10)
//
// WriteXLSX writes a workbook with one row per game and the running total
// after each frame. WriteChart draws those running totals as a PNG line chart.
package export
