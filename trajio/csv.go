// SPDX-License-Identifier: MIT

package trajio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/katalvlaran/stochrare/markov"
)

// Trajectory is a parsed trajectory file.
type Trajectory struct {
	Columns []string // coordinate names; x0, x1, ... when the file had no header
	States  []markov.State
}

// timeColumn names the step-index column WriteTrajectory puts first.
const timeColumn = "t"

// ReadTrajectory parses CSV rows into states. Lines starting with '#' are
// comments. With header set, the first record names the columns; a leading
// "t" column is the step index written by WriteTrajectory and is dropped,
// so written files read back as the same states.
func ReadTrajectory(r io.Reader, header bool) (*Trajectory, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 0 // first record fixes the width

	tr := &Trajectory{}
	line, skip := 0, 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadTrajectory: %v: %w", err, ErrMalformed)
		}
		line++
		if header && tr.Columns == nil {
			if strings.TrimSpace(rec[0]) == timeColumn {
				if len(rec) == 1 {
					return nil, fmt.Errorf("ReadTrajectory: header has only the %q column: %w", timeColumn, ErrMalformed)
				}
				skip = 1
			}
			tr.Columns = append([]string(nil), rec[skip:]...)
			continue
		}
		s := make(markov.State, len(rec)-skip)
		for j, field := range rec[skip:] {
			v, perr := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if perr != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("ReadTrajectory: record %d column %d %q: %w", line, j+skip, field, ErrMalformed)
			}
			s[j] = v
		}
		tr.States = append(tr.States, s)
	}
	if len(tr.States) == 0 {
		return nil, fmt.Errorf("ReadTrajectory: %w", ErrEmpty)
	}
	if tr.Columns == nil {
		tr.Columns = defaultColumns(len(tr.States[0]))
	}

	return tr, nil
}

// ReadTrajectoryFile opens path and calls ReadTrajectory.
func ReadTrajectoryFile(path string, header bool) (*Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadTrajectoryFile: %w", err)
	}
	defer f.Close()
	return ReadTrajectory(f, header)
}

// WriteTrajectory writes a header row followed by one row per state, each
// prefixed by its step index in a "t" column. A nil columns slice is replaced
// by x0, x1, ... A coordinate may not itself be named "t".
func WriteTrajectory(w io.Writer, columns []string, xs []markov.State) error {
	if len(xs) == 0 {
		return fmt.Errorf("WriteTrajectory: %w", ErrEmpty)
	}
	dim := len(xs[0])
	if columns == nil {
		columns = defaultColumns(dim)
	}
	if len(columns) != dim {
		return fmt.Errorf("WriteTrajectory: %d columns for dim %d: %w", len(columns), dim, ErrMismatch)
	}

	for _, c := range columns {
		if c == timeColumn {
			return fmt.Errorf("WriteTrajectory: column name %q is reserved: %w", timeColumn, ErrMismatch)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{timeColumn}, columns...)); err != nil {
		return err
	}
	rec := make([]string, dim+1)
	for t, s := range xs {
		if len(s) != dim {
			return fmt.Errorf("WriteTrajectory: state %d has dim %d: %w", t, len(s), ErrMismatch)
		}
		rec[0] = strconv.Itoa(t)
		for j, v := range s {
			rec[j+1] = formatFloat(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrajectoryFile writes the trajectory CSV to path atomically.
func WriteTrajectoryFile(path string, columns []string, xs []markov.State) error {
	var buf bytes.Buffer
	if err := WriteTrajectory(&buf, columns, xs); err != nil {
		return err
	}
	return writeFile(path, &buf)
}

func writeFile(path string, r io.Reader) error {
	if err := atomic.WriteFile(path, r); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func defaultColumns(dim int) []string {
	cols := make([]string, dim)
	for i := range cols {
		cols[i] = "x" + strconv.Itoa(i)
	}
	return cols
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
