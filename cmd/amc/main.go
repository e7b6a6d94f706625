// SPDX-License-Identifier: MIT

// amc builds an analogue Markov chain from a trajectory, simulates it and
// solves a committor problem between two level sets.
//
// The trajectory is read from a CSV file (one state per row) or, when none
// is given, generated by integrating a Langevin process. Results go to the
// output directory:
//
//	trajectory.csv   observed or generated trajectory
//	simulated.csv    analogue simulation
//	committor.csv    committor of every state
//	*.png            plots (unless disabled)
//	config.yaml      the resolved configuration
//
// Usage:
//
//	amc [-config amc.yaml] [-trajectory x.csv] [-k 10] [-steps 2000] [-out dir]
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "amc: %v\n", err)
		os.Exit(1)
	}
}
