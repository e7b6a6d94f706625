// SPDX-License-Identifier: MIT

package trajio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/stochrare/markov"
)

// WriteCommittor writes one row per original state: index, coordinates,
// reduced position and committor value. A non-empty runID is written as a
// leading comment line.
func WriteCommittor(w io.Writer, runID string, columns []string, states []markov.State, q *markov.Committor) error {
	if q == nil || len(states) != len(q.Position) {
		return fmt.Errorf("WriteCommittor: %d states vs committor of %d: %w", len(states), lenPos(q), ErrMismatch)
	}
	if len(states) == 0 {
		return fmt.Errorf("WriteCommittor: %w", ErrEmpty)
	}
	dim := len(states[0])
	if columns == nil {
		columns = defaultColumns(dim)
	}
	if len(columns) != dim {
		return fmt.Errorf("WriteCommittor: %d columns for dim %d: %w", len(columns), dim, ErrMismatch)
	}

	if runID != "" {
		if _, err := fmt.Fprintf(w, "# run %s\n", runID); err != nil {
			return err
		}
	}
	cw := csv.NewWriter(w)
	head := append(append([]string{"index"}, columns...), "position", "committor")
	if err := cw.Write(head); err != nil {
		return err
	}
	rec := make([]string, dim+3)
	for i, s := range states {
		rec[0] = strconv.Itoa(i)
		for j, v := range s {
			rec[j+1] = formatFloat(v)
		}
		rec[dim+1] = strconv.Itoa(q.Position[i])
		rec[dim+2] = formatFloat(q.At(i))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCommittorFile writes the committor table to path atomically.
func WriteCommittorFile(path, runID string, columns []string, states []markov.State, q *markov.Committor) error {
	var buf bytes.Buffer
	if err := WriteCommittor(&buf, runID, columns, states, q); err != nil {
		return err
	}
	return writeFile(path, &buf)
}

func lenPos(q *markov.Committor) int {
	if q == nil {
		return 0
	}
	return len(q.Position)
}
