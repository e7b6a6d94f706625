// SPDX-License-Identifier: MIT

// Package trajio reads observed trajectories and writes chain results.
//
// Trajectories are CSV files with one state per row and one column per
// coordinate, optionally preceded by a header row. Results (simulated paths,
// committor tables, PNG plots) are written atomically: a reader sees either
// the previous file or the complete new one.
package trajio
